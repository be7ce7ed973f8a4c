// Package statistics summarises a run of heads-up hands.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// HandResult is the outcome of one hand.
type HandResult struct {
	Seed     int64
	Payout   [2]int // chip change per seat
	BigBlind int
	Showdown bool
	Round    int // furthest betting round, 0 (pre_flop) to 4 (show_down)
}

// NetBB is seat's result in big blinds.
func (r HandResult) NetBB(seat int) float64 {
	if r.BigBlind == 0 {
		return 0
	}
	return float64(r.Payout[seat]) / float64(r.BigBlind)
}

// Statistics accumulates seat 0's results. Heads-up play is zero-sum, so seat 1 is the
// negation; Imbalanced counts hands where the payouts did not cancel.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for median and percentiles

	ShowdownHands int
	ShowdownBB    float64
	FoldBB        float64

	Rounds     [5]int  // hands ending in each round
	MaxSwing   int     // largest chip amount changing hands
	Imbalanced []int64 // seeds of hands whose payouts did not sum to zero
}

// Add records one hand.
func (s *Statistics) Add(r HandResult) {
	net := r.NetBB(0)
	s.Hands++
	s.SumBB += net
	s.SumBB2 += net * net
	s.Values = append(s.Values, net)

	if r.Showdown {
		s.ShowdownHands++
		s.ShowdownBB += net
	} else {
		s.FoldBB += net
	}
	if r.Round >= 0 && r.Round < len(s.Rounds) {
		s.Rounds[r.Round]++
	}
	s.MaxSwing = max(s.MaxSwing, r.Payout[0], -r.Payout[0])
	if r.Payout[0]+r.Payout[1] != 0 {
		s.Imbalanced = append(s.Imbalanced, r.Seed)
	}
}

// Mean is seat 0's average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance is the sample variance of seat 0's results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 bounds the mean at 1.96 standard errors.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile interpolates linearly between the closest ranks; p is in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(s.Values))
	p = min(max(p, 0), 1)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// Validate checks that every hand conserved chips and the tallies agree.
func (s *Statistics) Validate() error {
	if len(s.Imbalanced) > 0 {
		return fmt.Errorf("%d hands did not conserve chips, first seed %d", len(s.Imbalanced), s.Imbalanced[0])
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if math.Abs(s.SumBB-s.ShowdownBB-s.FoldBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f showdown=%.6f fold=%.6f", s.SumBB, s.ShowdownBB, s.FoldBB)
	}
	rounds := 0
	for _, n := range s.Rounds {
		rounds += n
	}
	if rounds != s.Hands {
		return fmt.Errorf("round tally (%d) does not match hands count (%d)", rounds, s.Hands)
	}
	return nil
}
