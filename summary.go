package watchscout

import (
	"math"
	"sort"
)

// PriceSummary holds descriptive statistics over a table's prices.
type PriceSummary struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation; zero for a single price
	Min   int64
	P25   float64
	P50   float64
	P75   float64
	Max   int64
}

// Summarize computes price statistics for the priced rows of t.
// Returns false when no row has a price.
func Summarize(t *OfferTable) (PriceSummary, bool) {
	if t == nil {
		return PriceSummary{}, false
	}

	prices := make([]int64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if p, ok := r.Price(); ok {
			prices = append(prices, p)
		}
	}
	if len(prices) == 0 {
		return PriceSummary{}, false
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	var sum float64
	for _, p := range prices {
		sum += float64(p)
	}
	n := len(prices)
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, p := range prices {
			d := float64(p) - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return PriceSummary{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   prices[0],
		P25:   percentile(prices, 0.25),
		P50:   percentile(prices, 0.50),
		P75:   percentile(prices, 0.75),
		Max:   prices[n-1],
	}, true
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []int64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}
