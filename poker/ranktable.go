package poker

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"os"
)

const (
	deckBits = 52

	// FiveCardHands is C(52,5), the number of entries in a RankTable.
	FiveCardHands = 2598960
)

var rankTableMagic = [4]byte{'H', 'R', 'T', '1'}

// binom[n][k] = C(n, k) for n <= 52, k <= 5.
var binom = func() [deckBits + 1][6]uint32 {
	var b [deckBits + 1][6]uint32
	for n := 0; n <= deckBits; n++ {
		b[n][0] = 1
		for k := 1; k <= 5 && k <= n; k++ {
			b[n][k] = b[n-1][k-1] + b[n-1][k]
		}
	}
	return b
}()

// RankTable maps every 5-card subset of the deck to its Strength. Entries are addressed
// by the colex rank of the card mask, which is a minimal perfect hash over 5-bit masks.
type RankTable struct {
	ranks []Strength
}

// maskIndex returns the colex rank of a 5-bit card mask in [0, FiveCardHands).
func maskIndex(mask uint64) uint32 {
	var idx uint32
	k := 1
	for m := mask; m != 0; m &= m - 1 {
		idx += binom[bits.TrailingZeros64(m)][k]
		k++
	}
	return idx
}

// nextCombination returns the next larger integer with the same popcount (Gosper's hack).
func nextCombination(v uint64) uint64 {
	t := v | (v - 1)
	return (t + 1) | (((^t & -^t) - 1) >> (bits.TrailingZeros64(v) + 1))
}

// GenerateRankTable computes the strength of every 5-card hand. Masks are visited in
// increasing numeric order, which is exactly colex order, so entry i belongs to the i-th mask.
func GenerateRankTable() *RankTable {
	t := &RankTable{ranks: make([]Strength, FiveCardHands)}
	mask := uint64(0x1F)
	for i := range t.ranks {
		t.ranks[i] = fiveCardStrength(Hand(mask))
		mask = nextCombination(mask)
	}
	return t
}

// Len is the number of entries in the table.
func (t *RankTable) Len() int {
	return len(t.ranks)
}

// Lookup returns the strength of a 5-card hand given as a card mask.
func (t *RankTable) Lookup(mask uint64) (Strength, error) {
	if bits.OnesCount64(mask) != 5 || mask>>deckBits != 0 {
		return 0, fmt.Errorf("%w: mask %#x is not a 5-card hand", ErrInvalidInput, mask)
	}
	return t.ranks[maskIndex(mask)], nil
}

// WriteTo serialises the table as "HRT1", a little-endian uint32 count and one
// little-endian uint16 per entry.
func (t *RankTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var header [8]byte
	copy(header[:4], rankTableMagic[:])
	binary.LittleEndian.PutUint32(header[4:], uint32(len(t.ranks)))
	n, err := bw.Write(header[:])
	written := int64(n)
	if err != nil {
		return written, err
	}

	var buf [2]byte
	for _, s := range t.ranks {
		binary.LittleEndian.PutUint16(buf[:], uint16(s))
		n, err = bw.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// LoadRankTable reads a table written by WriteTo. Any malformed content is reported
// as ErrMissingResource.
func LoadRankTable(r io.Reader) (*RankTable, error) {
	br := bufio.NewReader(r)
	var header [8]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: read rank table header: %w", ErrMissingResource, err)
	}
	if !bytes.Equal(header[:4], rankTableMagic[:]) {
		return nil, fmt.Errorf("%w: bad rank table magic %q", ErrMissingResource, header[:4])
	}
	if count := binary.LittleEndian.Uint32(header[4:]); count != FiveCardHands {
		return nil, fmt.Errorf("%w: rank table has %d entries, want %d", ErrMissingResource, count, FiveCardHands)
	}

	raw := make([]uint16, FiveCardHands)
	if err := binary.Read(br, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: read rank table entries: %w", ErrMissingResource, err)
	}

	t := &RankTable{ranks: make([]Strength, FiveCardHands)}
	for i, v := range raw {
		s := Strength(v)
		if s < BestStrength || s > WorstStrength {
			return nil, fmt.Errorf("%w: rank table entry %d out of range: %d", ErrMissingResource, i, v)
		}
		t.ranks[i] = s
	}
	return t, nil
}

// LoadRankTableFile opens and reads a serialised table from disk.
func LoadRankTableFile(path string) (*RankTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingResource, err)
	}
	defer f.Close()
	return LoadRankTable(f)
}
