// Package abstraction maps cards to small integer buckets: a lossless index over the 169
// preflop hand classes and a lossy equity bucket for postflop streets.
package abstraction

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lox/holdemtree/poker"
)

// CanonicalHands is the number of strategically distinct preflop holdings.
const CanonicalHands = 169

// ErrNotFound reports a holding missing from the canonical list in use.
var ErrNotFound = errors.New("not found")

//go:embed preflop_canonical_hands.txt
var embeddedCanonicalHands string

// Canonicalize returns the suit-normalised form of two hole cards:
//
//	pair:    "Ah As"
//	suited:  lower rank first, both hearts ("2h Ah")
//	offsuit: higher rank first, hearts then spades ("Ah 2s")
//
// Card order does not matter.
func Canonicalize(hole [2]poker.Card) (string, error) {
	if _, err := poker.DistinctHand(hole[:]); err != nil {
		return "", err
	}
	hi, lo := hole[0].Rank(), hole[1].Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	switch {
	case hi == lo:
		return pairForm(hi), nil
	case hole[0].Suit() == hole[1].Suit():
		return suitedForm(hi, lo), nil
	default:
		return offsuitForm(hi, lo), nil
	}
}

func pairForm(r poker.Rank) string {
	return poker.NewCard(r, poker.Hearts).String() + " " + poker.NewCard(r, poker.Spades).String()
}

func suitedForm(hi, lo poker.Rank) string {
	return poker.NewCard(lo, poker.Hearts).String() + " " + poker.NewCard(hi, poker.Hearts).String()
}

func offsuitForm(hi, lo poker.Rank) string {
	return poker.NewCard(hi, poker.Hearts).String() + " " + poker.NewCard(lo, poker.Spades).String()
}

// CanonicalList is an ordered list of canonical holdings. A holding's lossless bucket is
// its 1-based position.
type CanonicalList struct {
	lines []string
	index map[string]int
}

func newCanonicalList(lines []string) (*CanonicalList, error) {
	l := &CanonicalList{lines: lines, index: make(map[string]int, len(lines))}
	for i, line := range lines {
		cards, err := poker.ParseCards(line)
		if err != nil || len(cards) != 2 {
			return nil, fmt.Errorf("%w: line %d: malformed hand %q", poker.ErrMissingResource, i+1, line)
		}
		canon, err := Canonicalize([2]poker.Card{cards[0], cards[1]})
		if err != nil || canon != line {
			return nil, fmt.Errorf("%w: line %d: %q is not canonical", poker.ErrMissingResource, i+1, line)
		}
		if _, dup := l.index[line]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate hand %q", poker.ErrMissingResource, i+1, line)
		}
		l.index[line] = i + 1
	}
	return l, nil
}

// GenerateCanonicalList builds the list for the given ranks (all ranks when empty),
// strongest first: for each high rank from Ace down, the pair, then suited and offsuit
// holdings with each lower rank.
func GenerateCanonicalList(ranks ...poker.Rank) (*CanonicalList, error) {
	universe, err := poker.Universe(ranks)
	if err != nil {
		return nil, err
	}
	var lines []string
	for hi := poker.Ace; hi >= poker.Two; hi-- {
		if !universe.HasCard(poker.NewCard(hi, poker.Hearts)) {
			continue
		}
		for lo := hi; lo >= poker.Two; lo-- {
			if !universe.HasCard(poker.NewCard(lo, poker.Hearts)) {
				continue
			}
			if lo == hi {
				lines = append(lines, pairForm(hi))
				continue
			}
			lines = append(lines, suitedForm(hi, lo), offsuitForm(hi, lo))
		}
	}
	return newCanonicalList(lines)
}

// LoadCanonicalList reads a full 169-line list, one holding per line. Blank lines at the
// end are ignored.
func LoadCanonicalList(r io.Reader) (*CanonicalList, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read canonical hands: %w", poker.ErrMissingResource, err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) != CanonicalHands {
		return nil, fmt.Errorf("%w: canonical hands list has %d lines, want %d", poker.ErrMissingResource, len(lines), CanonicalHands)
	}
	return newCanonicalList(lines)
}

// DefaultCanonicalList returns the list compiled into the binary.
func DefaultCanonicalList() *CanonicalList {
	l, err := LoadCanonicalList(strings.NewReader(embeddedCanonicalHands))
	if err != nil {
		panic(fmt.Sprintf("embedded canonical hands: %v", err))
	}
	return l
}

// Len is the number of holdings in the list.
func (l *CanonicalList) Len() int {
	return len(l.lines)
}

// Line returns the holding for a 1-based bucket.
func (l *CanonicalList) Line(bucket int) (string, error) {
	if bucket < 1 || bucket > len(l.lines) {
		return "", fmt.Errorf("%w: bucket %d", ErrNotFound, bucket)
	}
	return l.lines[bucket-1], nil
}

// WriteTo writes the list one holding per line.
func (l *CanonicalList) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, line := range l.lines {
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Lossless returns the 1-based position of the holding's canonical form.
func (l *CanonicalList) Lossless(hole [2]poker.Card) (int, error) {
	canon, err := Canonicalize(hole)
	if err != nil {
		return 0, err
	}
	idx, ok := l.index[canon]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, canon)
	}
	return idx, nil
}
