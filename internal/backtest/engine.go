// Package backtest replays the history one day at a time and measures how
// often the next day's open or close triple landed in the candidate pool.
package backtest

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

// CandidateFunc builds a candidate pool from the history available up to and
// including the last record it is given
type CandidateFunc func(history []model.DrawRecord) []string

// Run tests every (day, day+1) transition within the last lookback records.
// A non-positive lookback tests the whole sequence.
func Run(records []model.DrawRecord, candidates CandidateFunc, lookback int) model.BacktestResult {
	result := model.BacktestResult{
		Lookback:    lookback,
		Transitions: []model.TransitionOutcome{},
	}

	start := 0
	if lookback > 0 && lookback < len(records) {
		start = len(records) - lookback
	}

	consecutiveHits := 0
	consecutiveMisses := 0

	for day := start; day < len(records)-1; day++ {
		// only records[:day+1] are visible to the candidate function
		pool := candidates(records[: day+1 : day+1])
		next := records[day+1]

		hit := slices.Contains(pool, next.Open) || slices.Contains(pool, next.Close)
		result.Transitions = append(result.Transitions, model.TransitionOutcome{
			Index:     day,
			NextOpen:  next.Open,
			NextClose: next.Close,
			PoolSize:  len(pool),
			Hit:       hit,
		})
		result.Tested++

		if hit {
			result.Hits++
			consecutiveHits++
			consecutiveMisses = 0
		} else {
			consecutiveMisses++
			consecutiveHits = 0
		}

		if consecutiveHits > result.MaxConsecutive.Hits {
			result.MaxConsecutive.Hits = consecutiveHits
		}
		if consecutiveMisses > result.MaxConsecutive.Misses {
			result.MaxConsecutive.Misses = consecutiveMisses
		}
	}

	result.Accuracy = accuracy(result.Hits, result.Tested)
	return result
}

// accuracy is the hit percentage rounded to one decimal place
func accuracy(hits, tested int) float64 {
	if tested == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(tested)*1000) / 10
}

// FormatResults creates a human-readable summary of backtest results
func FormatResults(r model.BacktestResult) string {
	if r.Tested == 0 {
		return "No backtest results available"
	}

	var b strings.Builder
	b.WriteString("\n===== BACKTEST RESULTS =====\n")
	fmt.Fprintf(&b, "Transitions tested: %d\n", r.Tested)
	fmt.Fprintf(&b, "Hits: %d (%.1f%%)\n", r.Hits, r.Accuracy)
	fmt.Fprintf(&b, "Max consecutive hits: %d\n", r.MaxConsecutive.Hits)
	fmt.Fprintf(&b, "Max consecutive misses: %d\n", r.MaxConsecutive.Misses)
	return b.String()
}
