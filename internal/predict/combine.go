package predict

import (
	"slices"
	"sort"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

// PlaceholderPair pads the final selection when too few candidates qualify
const PlaceholderPair = "00"

// FallbackPairs is the documented "no signal" selection returned when there
// are no records at all
var FallbackPairs = []string{"13", "31", "68", "86"}

// MethodEmissions tags the output of one scoring method
type MethodEmissions struct {
	Method    string
	Emissions []Emission
}

type tally struct {
	score   float64
	methods []string
	reasons []string
}

// Combine folds the emissions of every method into one ranked list. The
// primary key is the number of distinct supporting methods, then the total
// score, then the value.
func Combine(sets ...MethodEmissions) []model.ScoredCandidate {
	acc := map[string]tally{}
	for _, set := range sets {
		for _, e := range set.Emissions {
			acc = fold(acc, set.Method, e)
		}
	}

	ranked := make([]model.ScoredCandidate, 0, len(acc))
	for v, t := range acc {
		ranked = append(ranked, model.ScoredCandidate{
			Value:             v,
			Score:             t.score,
			SupportingMethods: t.methods,
			Rationale:         t.reasons,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if len(a.SupportingMethods) != len(b.SupportingMethods) {
			return len(a.SupportingMethods) > len(b.SupportingMethods)
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Value < b.Value
	})
	return ranked
}

// fold adds one emission to the accumulator. A method is recorded once per
// value even when it emits the value repeatedly.
func fold(acc map[string]tally, method string, e Emission) map[string]tally {
	t := acc[e.Value]
	t.score += e.Score
	if !slices.Contains(t.methods, method) {
		t.methods = append(t.methods, method)
	}
	t.reasons = append(t.reasons, e.Reason)
	acc[e.Value] = t
	return acc
}

// SelectFinal walks the ranking and keeps the first n values absent from
// recent. Missing slots are padded with PlaceholderPair; padded reports
// whether that happened.
func SelectFinal(ranked []model.ScoredCandidate, recent []string, n int) (final []string, padded bool) {
	exclude := make(map[string]bool, len(recent))
	for _, v := range recent {
		exclude[v] = true
	}

	final = make([]string, 0, n)
	for _, c := range ranked {
		if len(final) == n {
			break
		}
		if !exclude[c.Value] {
			final = append(final, c.Value)
		}
	}
	for len(final) < n {
		final = append(final, PlaceholderPair)
		padded = true
	}
	return final, padded
}
