package bitstream

// BitCursor reads a byte buffer bit by bit, least significant bit of each
// byte first.
//
// Reads past the end of the buffer yield zero bits instead of failing;
// export strings in circulation rely on it. Underrun reports how many bits
// were synthesized that way.
type BitCursor struct {
	buf      []byte
	pos      int
	underrun int
}

func NewBitCursor(buf []byte) *BitCursor {
	return &BitCursor{buf: buf}
}

// ReadBits reads n bits (1..32); the first bit read is the least significant
// bit of the result.
func (c *BitCursor) ReadBits(n int) uint32 {
	if n < 1 || n > 32 {
		panic("bitstream: ReadBits width out of range")
	}
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := c.pos >> 3
		if byteIdx < len(c.buf) {
			bit := (c.buf[byteIdx] >> uint(c.pos&7)) & 1
			v |= uint32(bit) << uint(i)
		} else {
			c.underrun++
		}
		c.pos++
	}
	return v
}

func (c *BitCursor) ReadBit() bool {
	return c.ReadBits(1) != 0
}

func (c *BitCursor) BitsRemaining() int {
	if r := len(c.buf)*8 - c.pos; r > 0 {
		return r
	}
	return 0
}

// Position is the number of bits consumed so far, including synthesized ones.
func (c *BitCursor) Position() int { return c.pos }

func (c *BitCursor) Underrun() int { return c.underrun }

// BitWriter appends bits least significant first, mirroring BitCursor.
type BitWriter struct {
	buf []byte
	n   int
}

func (w *BitWriter) WriteBits(v uint32, n int) {
	if n < 1 || n > 32 {
		panic("bitstream: WriteBits width out of range")
	}
	for i := 0; i < n; i++ {
		if w.n>>3 == len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[w.n>>3] |= 1 << uint(w.n&7)
		}
		w.n++
	}
}

func (w *BitWriter) WriteBit(b bool) {
	if b {
		w.WriteBits(1, 1)
		return
	}
	w.WriteBits(0, 1)
}

// Pad writes zero bits until the length is a multiple of m.
func (w *BitWriter) Pad(m int) {
	for w.n%m != 0 {
		w.WriteBits(0, 1)
	}
}

func (w *BitWriter) Len() int { return w.n }

func (w *BitWriter) Bytes() []byte { return w.buf }
