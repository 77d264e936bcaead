// Package frequency counts digits, digit sums and values over a record window.
package frequency

import (
	"sort"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

// Analyze builds the frequency tables of a window. Probabilities divide by the
// samples actually observed, so a short window is not biased toward zero.
func Analyze(window []model.DrawRecord) model.FrequencyTables {
	t := model.FrequencyTables{
		TripleCounts: make(map[string]int),
		PairCounts:   make(map[string]int),
	}

	for _, r := range window {
		for _, triple := range []string{r.Open, r.Close} {
			for i := 0; i < len(triple); i++ {
				t.DigitCounts[triple[i]-'0']++
				t.DigitSamples++
			}
			t.TripleCounts[triple]++
		}

		openSum := relation.DigitSum(r.Open)
		closeSum := relation.DigitSum(r.Close)
		t.OpenSumCounts[openSum]++
		t.CloseSumCounts[closeSum]++
		t.SumCounts[openSum]++
		t.SumCounts[closeSum]++
		t.SumSamples += 2

		t.PairCounts[r.Pair]++
	}

	t.DigitProbabilities = probabilities(t.DigitCounts, t.DigitSamples)
	t.OpenSumProbabilities = probabilities(t.OpenSumCounts, len(window))
	t.CloseSumProbabilities = probabilities(t.CloseSumCounts, len(window))
	t.SumProbabilities = probabilities(t.SumCounts, t.SumSamples)
	return t
}

func probabilities(counts [10]int, samples int) [10]float64 {
	var p [10]float64
	if samples == 0 {
		return p
	}
	for i, c := range counts {
		p[i] = float64(c) / float64(samples)
	}
	return p
}

// TopIndexes returns the indexes of the n largest counts, ties broken by the
// lower index
func TopIndexes(counts []int, n int) []int {
	idx := make([]int, len(counts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return counts[idx[a]] > counts[idx[b]]
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

// TopDigits returns the n most frequent digits of the window
func TopDigits(t model.FrequencyTables, n int) []int {
	return TopIndexes(t.DigitCounts[:], n)
}

// TopValues returns up to n values ordered by count desc and value asc
func TopValues(counts map[string]int, n int) []string {
	values := make([]string, 0, len(counts))
	for v, c := range counts {
		if c > 0 {
			values = append(values, v)
		}
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	if n < len(values) {
		values = values[:n]
	}
	return values
}
