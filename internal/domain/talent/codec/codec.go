// Package codec parses talent export strings into selection records.
//
// Layout, little-endian within the stream:
//
//	version      8 bits
//	spec id     16 bits
//	tree hash  128 bits (16 bytes)
//	per node, in ascending node id order, until the stream ends:
//	  isSelected          1
//	  isPurchased         1  if selected
//	  isPartiallyRanked   1  if purchased
//	  ranksPurchased      6  if partially ranked
//	  isChoiceNode        1  if purchased
//	  choiceEntryIndex    2  if choice node
package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/bitstream"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

const (
	versionBits  = 8
	specIDBits   = 16
	treeHashSize = 16
	rankBits     = 6
	choiceBits   = 2

	// HeaderBytes is the minimum decoded length of a parsable string.
	HeaderBytes = (versionBits + specIDBits + treeHashSize*8) / 8

	// encoded output is padded to a multiple of lcm(6, 8) bits so that every
	// symbol decodes into whole bytes.
	symbolByteBoundary = 24
)

// Parse decodes an export string. The node loop never fails: a node cut off
// by the end of the stream reads as zeros (see SelectionRecord.UnderrunBits).
func Parse(exportString string) (*talent.SelectionRecord, error) {
	buf, err := bitstream.DecodeAlphabetString(exportString)
	if err != nil {
		return nil, err
	}
	if len(buf) < HeaderBytes {
		return nil, fmt.Errorf("%w: %d bytes decoded, header needs %d", talenterrors.ErrTooShort, len(buf), HeaderBytes)
	}

	c := bitstream.NewBitCursor(buf)
	rec := &talent.SelectionRecord{
		Version: int(c.ReadBits(versionBits)),
		SpecID:  int(c.ReadBits(specIDBits)),
	}
	rec.SpecName = talent.SpecName(rec.SpecID)

	hash := make([]byte, treeHashSize)
	for i := range hash {
		hash[i] = byte(c.ReadBits(8))
	}
	rec.TreeHash = hex.EncodeToString(hash)

	for c.BitsRemaining() >= 1 {
		rec.Selections = append(rec.Selections, readNode(c, len(rec.Selections)))
	}
	rec.UnderrunBits = c.Underrun()
	return rec, nil
}

func readNode(c *bitstream.BitCursor, index int) talent.NodeSelection {
	if !c.ReadBit() {
		return talent.Unselected(index)
	}
	if !c.ReadBit() {
		return talent.Granted(index)
	}

	partial := c.ReadBit()
	ranks := 0
	if partial {
		ranks = int(c.ReadBits(rankBits))
	}
	choice := talent.NoChoice
	if c.ReadBit() {
		choice = talent.ChoiceEntry(int(c.ReadBits(choiceBits)))
	}

	if partial {
		return talent.PurchasedPartial(index, ranks, choice)
	}
	return talent.PurchasedFull(index, choice)
}

// Encode writes rec back into an export string. The tree hash must be 32 hex
// characters (an empty hash encodes as zeros). Selection indices are taken
// from slice position, not from NodeSelection.Index.
func Encode(rec *talent.SelectionRecord) (string, error) {
	hash := make([]byte, treeHashSize)
	if rec.TreeHash != "" {
		decoded, err := hex.DecodeString(rec.TreeHash)
		if err != nil || len(decoded) != treeHashSize {
			return "", fmt.Errorf("tree hash %q is not %d hex bytes", rec.TreeHash, treeHashSize)
		}
		hash = decoded
	}

	w := &bitstream.BitWriter{}
	w.WriteBits(uint32(rec.Version), versionBits)
	w.WriteBits(uint32(rec.SpecID), specIDBits)
	for _, b := range hash {
		w.WriteBits(uint32(b), 8)
	}
	for _, s := range rec.Selections {
		writeNode(w, s)
	}
	w.Pad(symbolByteBoundary)
	return bitstream.EncodeAlphabetBytes(w.Bytes(), w.Len()), nil
}

func writeNode(w *bitstream.BitWriter, s talent.NodeSelection) {
	w.WriteBit(s.IsSelected())
	if !s.IsSelected() {
		return
	}
	w.WriteBit(s.IsPurchased())
	if !s.IsPurchased() {
		return
	}
	w.WriteBit(s.IsPartiallyRanked())
	if r, ok := s.RanksPurchased(); ok {
		w.WriteBits(uint32(r), rankBits)
	}
	w.WriteBit(s.IsChoiceNode())
	if ch, ok := s.ChoiceEntryIndex(); ok {
		w.WriteBits(uint32(ch), choiceBits)
	}
}
