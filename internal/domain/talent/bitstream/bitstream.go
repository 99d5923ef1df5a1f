// Package bitstream converts export strings to bytes and reads them as a
// little-endian bit stream.
package bitstream

import (
	"fmt"
	"strings"
	"unicode"

	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var symbolValues = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}()

// DecodeAlphabetString maps every non-space symbol to 6 bits and packs them
// into floor(symbols*6/8) bytes, first symbol in the low bits. Trailing bits
// that do not fill a byte are dropped.
func DecodeAlphabetString(input string) ([]byte, error) {
	values := make([]byte, 0, len(input))
	pos := 0
	for _, r := range input {
		pos++
		if unicode.IsSpace(r) {
			continue
		}
		if r >= 0x80 || symbolValues[r] < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", talenterrors.ErrInvalidCharacter, r, pos)
		}
		values = append(values, byte(symbolValues[r]))
	}

	out := make([]byte, len(values)*6/8)
	var acc uint32
	var accBits uint
	n := 0
	for _, v := range values {
		acc |= uint32(v) << accBits
		accBits += 6
		for accBits >= 8 && n < len(out) {
			out[n] = byte(acc)
			n++
			acc >>= 8
			accBits -= 8
		}
	}
	return out, nil
}

// EncodeAlphabetBytes is the inverse of DecodeAlphabetString for the first
// bitLen bits of data. Missing bits in the last symbol are zero.
func EncodeAlphabetBytes(data []byte, bitLen int) string {
	if limit := len(data) * 8; bitLen > limit {
		bitLen = limit
	}
	var sb strings.Builder
	sb.Grow((bitLen + 5) / 6)
	c := NewBitCursor(data)
	for read := 0; read < bitLen; read += 6 {
		sb.WriteByte(alphabet[c.ReadBits(6)])
	}
	return sb.String()
}
