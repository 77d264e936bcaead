package panel

import (
	"sort"
	"strconv"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

const sequentialDistance = 5

// DetectPatterns runs the pair pattern detectors over the window
func DetectPatterns(window []model.DrawRecord) model.Patterns {
	p := model.Patterns{
		Sequential:       []string{},
		Repeating:        []string{},
		MirrorRecurrence: []string{},
	}

	seen := make(map[string]bool, len(window))
	for _, r := range window {
		seen[r.Pair] = true
	}

	for i, r := range window {
		if i > 0 && abs(pairValue(r.Pair)-pairValue(window[i-1].Pair)) <= sequentialDistance {
			p.Sequential = append(p.Sequential, r.Pair)
		}
		if r.Pair[0] == r.Pair[1] {
			p.Repeating = append(p.Repeating, r.Pair)
		}
		if seen[relation.Mirror(r.Pair)] {
			p.MirrorRecurrence = append(p.MirrorRecurrence, r.Pair)
		}
	}

	p.FamilySequences = FamilySequences(window)
	return p
}

// FamilySequences looks for length-3 runs of pair families that already
// occurred at an earlier offset. The family that followed the earlier run is
// reported as the predicted family. The latest run is included, so its
// prediction points past the end of the window.
func FamilySequences(window []model.DrawRecord) []model.FamilySequence {
	history := make([]int, len(window))
	for i, r := range window {
		history[i] = relation.DigitSum(r.Pair)
	}

	sequences := []model.FamilySequence{}
	for i := 3; i <= len(history); i++ {
		run := [3]int{history[i-3], history[i-2], history[i-1]}
		for j := 0; j < i-3; j++ {
			if history[j] == run[0] && history[j+1] == run[1] && history[j+2] == run[2] {
				sequences = append(sequences, model.FamilySequence{
					Sequence:        run,
					Offset:          i - 3,
					EarlierOffset:   j,
					PredictedFamily: history[j+3],
					Confidence:      1.0,
				})
			}
		}
	}
	return sequences
}

// RecentRecurring returns triples seen at least minCount times, as open or
// close, in the last days records of the window
func RecentRecurring(window []model.DrawRecord, days, minCount int) []string {
	if days < len(window) {
		window = window[len(window)-days:]
	}
	counts := make(map[string]int)
	for _, r := range window {
		counts[r.Open]++
		counts[r.Close]++
	}

	var triples []string
	for v, c := range counts {
		if c >= minCount {
			triples = append(triples, v)
		}
	}
	sort.Strings(triples)
	return triples
}

func pairValue(p string) int {
	n, _ := strconv.Atoi(p)
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
