// Package statistics aggregates hand outcomes from simulations: pot sizes
// in big blinds, showdown frequency and the usual error bars on the mean.
package statistics

import (
	"math"
	"sort"
)

// Tracker accumulates per-hand outcomes. Pot sizes are normalised to big
// blinds so runs at different stakes are comparable.
type Tracker struct {
	bigBlind int

	hands     int
	showdowns int
	pots      []float64 // pot sizes in big blinds, one per hand
	sumBB     float64
	sumBB2    float64 // sum of squares for variance
	maxPotBB  float64
}

// New creates a tracker for tables with the given big blind.
func New(bigBlind int) *Tracker {
	return &Tracker{bigBlind: bigBlind}
}

// Record incorporates one finished hand.
func (t *Tracker) Record(pot int, showdown bool) {
	potBB := float64(pot) / float64(t.bigBlind)
	t.hands++
	t.pots = append(t.pots, potBB)
	t.sumBB += potBB
	t.sumBB2 += potBB * potBB
	if showdown {
		t.showdowns++
	}
	if potBB > t.maxPotBB {
		t.maxPotBB = potBB
	}
}

// Hands returns the number of recorded hands.
func (t *Tracker) Hands() int { return t.hands }

// Showdowns returns the number of hands that reached showdown.
func (t *Tracker) Showdowns() int { return t.showdowns }

// ShowdownRate returns the fraction of hands that reached showdown.
func (t *Tracker) ShowdownRate() float64 {
	if t.hands == 0 {
		return 0
	}
	return float64(t.showdowns) / float64(t.hands)
}

// MeanPot returns the mean pot size in big blinds.
func (t *Tracker) MeanPot() float64 {
	if t.hands == 0 {
		return 0
	}
	return t.sumBB / float64(t.hands)
}

// Variance returns the sample variance of pot sizes.
func (t *Tracker) Variance() float64 {
	if t.hands < 2 {
		return 0
	}
	mean := t.MeanPot()
	return (t.sumBB2 - float64(t.hands)*mean*mean) / float64(t.hands-1)
}

// StdDev returns the sample standard deviation of pot sizes.
func (t *Tracker) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean pot size.
func (t *Tracker) StdError() float64 {
	if t.hands == 0 {
		return 0
	}
	return t.StdDev() / math.Sqrt(float64(t.hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean pot.
func (t *Tracker) ConfidenceInterval95() (float64, float64) {
	mean := t.MeanPot()
	margin := 1.96 * t.StdError()
	return mean - margin, mean + margin
}

// MedianPot returns the median pot size in big blinds.
func (t *Tracker) MedianPot() float64 {
	return t.Percentile(0.5)
}

// Percentile returns the pot size at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (t *Tracker) Percentile(p float64) float64 {
	if len(t.pots) == 0 {
		return 0
	}
	sorted := make([]float64, len(t.pots))
	copy(sorted, t.pots)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// MaxPot returns the largest pot observed, in big blinds.
func (t *Tracker) MaxPot() float64 { return t.maxPotBB }
