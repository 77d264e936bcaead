package predict

import (
	"math"
	"sort"
	"strings"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

// FallbackGuesses is used when no family triple carries a frequent digit
var FallbackGuesses = []string{"127", "136", "145", "128", "137"}

const (
	familyCount       = 3
	familyTriples     = 6
	bestGuessCount    = 5
	patternBase       = 0.7
	patternSequential = 0.2
)

// DigitVariety is the share of distinct digits in a triple
func DigitVariety(triple string) float64 {
	return float64(distinctDigits(triple)) / 3
}

// PatternScore rewards adjacent-digit runs and penalizes repeated digits
func PatternScore(triple string) float64 {
	score := patternBase
	if adjacentRun(triple) {
		score += patternSequential
	}
	switch distinctDigits(triple) {
	case 1:
		score *= 0.3
	case 2:
		score *= 0.6
	}
	return math.Min(score, 1.0)
}

// Quality combines observed frequency, digit variety and pattern score
func Quality(triple string, counts map[string]int) float64 {
	return float64(counts[triple])*0.4 + DigitVariety(triple)*0.3 + PatternScore(triple)*0.3
}

// OptimizeFamilies keeps, for each digit sum, the best triples of its family
// by quality and ranks the families by the mean quality of all members
func OptimizeFamilies(sums []int, counts map[string]int) []model.FamilySelection {
	selections := make([]model.FamilySelection, 0, len(sums))
	for _, sum := range sums {
		members := relation.TripleFamily(sum)
		quality := make(map[string]float64, len(members))
		total := 0.0
		for _, t := range members {
			quality[t] = Quality(t, counts)
			total += quality[t]
		}
		mean := total / float64(len(members))

		sort.SliceStable(members, func(i, j int) bool {
			return quality[members[i]] > quality[members[j]]
		})
		if len(members) > familyTriples {
			members = members[:familyTriples]
		}

		selections = append(selections, model.FamilySelection{
			Sum:     sum,
			Triples: members,
			Score:   round2(mean),
		})
	}

	sort.SliceStable(selections, func(i, j int) bool {
		return selections[i].Score > selections[j].Score
	})
	if len(selections) > familyCount {
		selections = selections[:familyCount]
	}
	return selections
}

// BestGuesses returns the first family triples that contain one of the
// frequent digits, falling back to FallbackGuesses
func BestGuesses(families []model.FamilySelection, frequentDigits []int) []string {
	var digits strings.Builder
	for _, d := range frequentDigits {
		digits.WriteByte(byte('0' + d))
	}

	seen := make(map[string]bool)
	var guesses []string
	for _, f := range families {
		for _, t := range f.Triples {
			if seen[t] {
				continue
			}
			seen[t] = true
			if strings.ContainsAny(t, digits.String()) && len(guesses) < bestGuessCount {
				guesses = append(guesses, t)
			}
		}
	}

	if len(guesses) == 0 {
		return append([]string(nil), FallbackGuesses...)
	}
	return guesses
}

func distinctDigits(s string) int {
	var seen [10]bool
	n := 0
	for i := 0; i < len(s); i++ {
		if d := s[i] - '0'; !seen[d] {
			seen[d] = true
			n++
		}
	}
	return n
}

func adjacentRun(s string) bool {
	for i := 1; i < len(s); i++ {
		if d := int(s[i]) - int(s[i-1]); d == 1 || d == -1 {
			return true
		}
	}
	return false
}
