package poker

import "fmt"

// HoleNotation returns the suit-agnostic shorthand for two hole cards: "AA" for a pair,
// "AKs" when suited and "AKo" otherwise. The higher rank always comes first.
func HoleNotation(a, b Card) (string, error) {
	if _, err := DistinctHand([]Card{a, b}); err != nil {
		return "", err
	}
	hi, lo := a.Rank(), b.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return string([]byte{hi.Char(), lo.Char()}), nil
	}
	kind := byte('o')
	if a.Suit() == b.Suit() {
		kind = 's'
	}
	return string([]byte{hi.Char(), lo.Char(), kind}), nil
}

// ParseHoleNotation is the inverse of HoleNotation up to suits.
func ParseHoleNotation(s string) (hi, lo Rank, suited bool, err error) {
	if len(s) < 2 || len(s) > 3 {
		return 0, 0, false, fmt.Errorf("%w: invalid hand notation %q", ErrInvalidInput, s)
	}
	var ranks [2]Rank
	for i := range ranks {
		c, perr := ParseCard(string([]byte{s[i], 'c'}))
		if perr != nil {
			return 0, 0, false, fmt.Errorf("%w: invalid hand notation %q", ErrInvalidInput, s)
		}
		ranks[i] = c.Rank()
	}
	hi, lo = ranks[0], ranks[1]
	if lo > hi {
		hi, lo = lo, hi
	}
	switch {
	case len(s) == 2 && hi == lo:
		return hi, lo, false, nil
	case len(s) == 3 && hi != lo && (s[2] == 's' || s[2] == 'S'):
		return hi, lo, true, nil
	case len(s) == 3 && hi != lo && (s[2] == 'o' || s[2] == 'O'):
		return hi, lo, false, nil
	}
	return 0, 0, false, fmt.Errorf("%w: invalid hand notation %q", ErrInvalidInput, s)
}
