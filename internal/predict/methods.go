package predict

import (
	"fmt"
	"math"
	"sort"

	"github.com/Alias1177/PanelPredictor/internal/frequency"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

// Emission is one candidate produced by a single scoring method
type Emission struct {
	Value  string
	Score  float64
	Reason string
}

// Role selects which triple role a panel is scored for
type Role int

const (
	RoleOpen Role = iota
	RoleClose
)

const (
	minPanelFrequency     = 2
	minPairHitPercent     = 5
	minTripleHitPercent   = 3
	adjacencyStates       = 3
	adjacencySuccessors   = 2
	hotDigitPairs         = 12
	hotDigitCount         = 3
	hotDigitScore         = 60
	gapMinDays            = 7
	gapMaxDays            = 30
	gapDueRatio           = 0.7
	gapScoreScale         = 70
	mirrorScore           = 65
	reverseScore          = 60
	pairFrequencyWeight   = 10
	pairRecencyWeight     = 50
	tripleFrequencyWeight = 15
	tripleRecencyWeight   = 60
	tripleRoleWeight      = 40
)

// PanelPairs scores pair panels by hit rate, frequency and recency and
// returns the best topN
func PanelPairs(stats map[string]model.PanelStats, topN int) []Emission {
	var out []Emission
	for v, s := range stats {
		if s.Appearances < minPanelFrequency {
			continue
		}
		hitRate := float64(s.Hits) / float64(s.Appearances)
		if math.Round(hitRate*100) < minPairHitPercent {
			continue
		}
		score := hitRate*100 +
			math.Log(float64(s.Appearances)+1)*pairFrequencyWeight +
			pairRecencyWeight/float64(s.LastSeenOffset)
		out = append(out, Emission{
			Value:  v,
			Score:  round2(score),
			Reason: fmt.Sprintf("Panel hit rate %.0f%% over %d appearances", hitRate*100, s.Appearances),
		})
	}
	return topEmissions(out, topN)
}

// PanelTriples scores triple panels for one role and returns the best topN
func PanelTriples(stats map[string]model.PanelStats, role Role, topN int) []Emission {
	var out []Emission
	for v, s := range stats {
		if s.Appearances < minPanelFrequency {
			continue
		}
		hitRate := float64(s.Hits) / float64(s.Appearances)
		if math.Round(hitRate*100) < minTripleHitPercent {
			continue
		}
		roleCount := s.AsOpen
		if role == RoleClose {
			roleCount = s.AsClose
		}
		roleRate := float64(roleCount) / float64(s.Appearances)
		score := hitRate*100 +
			math.Log(float64(s.Appearances)+1)*tripleFrequencyWeight +
			tripleRecencyWeight/float64(s.LastSeenOffset) +
			roleRate*tripleRoleWeight
		out = append(out, Emission{
			Value:  v,
			Score:  round2(score),
			Reason: fmt.Sprintf("Panel hit rate %.0f%%, role rate %.0f%%", hitRate*100, roleRate*100),
		})
	}
	return topEmissions(out, topN)
}

// Adjacency emits the most likely successors of the latest pairs according
// to a first-order transition table
func Adjacency(pairs []string) []Emission {
	transitions := make(map[string]map[string]int)
	for i := 1; i < len(pairs); i++ {
		from, to := pairs[i-1], pairs[i]
		if transitions[from] == nil {
			transitions[from] = make(map[string]int)
		}
		transitions[from][to]++
	}

	start := len(pairs) - adjacencyStates
	if start < 0 {
		start = 0
	}

	var out []Emission
	for _, from := range pairs[start:] {
		next := transitions[from]
		total := 0
		for _, c := range next {
			total += c
		}
		if total == 0 {
			continue
		}

		successors := make([]string, 0, len(next))
		for to := range next {
			successors = append(successors, to)
		}
		sort.Slice(successors, func(i, j int) bool {
			if next[successors[i]] != next[successors[j]] {
				return next[successors[i]] > next[successors[j]]
			}
			return successors[i] < successors[j]
		})
		if len(successors) > adjacencySuccessors {
			successors = successors[:adjacencySuccessors]
		}

		for _, to := range successors {
			out = append(out, Emission{
				Value:  to,
				Score:  math.Round(float64(next[to]) / float64(total) * 100),
				Reason: fmt.Sprintf("Transition: %s → %s", from, to),
			})
		}
	}
	return out
}

// HotDigits pairs up the most frequent digits of the latest pairs
func HotDigits(pairs []string) []Emission {
	start := len(pairs) - hotDigitPairs
	if start < 0 {
		start = 0
	}

	counts := make([]int, 10)
	for _, p := range pairs[start:] {
		for i := 0; i < len(p); i++ {
			counts[p[i]-'0']++
		}
	}

	var hot []int
	for _, d := range frequency.TopIndexes(counts, len(counts)) {
		if counts[d] > 0 && len(hot) < hotDigitCount {
			hot = append(hot, d)
		}
	}

	var out []Emission
	for _, a := range hot {
		for _, b := range hot {
			if a == b {
				continue
			}
			out = append(out, Emission{
				Value:  fmt.Sprintf("%d%d", a, b),
				Score:  hotDigitScore,
				Reason: fmt.Sprintf("Hot digits %d+%d", a, b),
			})
		}
	}
	return out
}

// Gap emits pairs that have been absent long enough relative to their
// average recurrence interval
func Gap(pairs []string) []Emission {
	lastSeen := make(map[string]int)
	occurrences := make(map[string]int)
	for i, p := range pairs {
		lastSeen[p] = i
		occurrences[p]++
	}

	values := make([]string, 0, len(lastSeen))
	for v := range lastSeen {
		values = append(values, v)
	}
	sort.Strings(values)

	total := len(pairs)
	var out []Emission
	for _, v := range values {
		daysSince := total - lastSeen[v] - 1
		if daysSince < gapMinDays || daysSince > gapMaxDays {
			continue
		}
		avgGap := float64(total) / float64(occurrences[v]+1)
		if float64(daysSince) < avgGap*gapDueRatio {
			continue
		}
		out = append(out, Emission{
			Value:  v,
			Score:  math.Round(float64(daysSince) / avgGap * gapScoreScale),
			Reason: fmt.Sprintf("Due after %d days (avg gap %.0f)", daysSince, math.Round(avgGap)),
		})
	}
	return out
}

// Mirror emits the digit mirror of the latest pair and, when it differs,
// its reversal
func Mirror(pairs []string) []Emission {
	if len(pairs) == 0 {
		return nil
	}
	last := pairs[len(pairs)-1]

	out := []Emission{{
		Value:  relation.Mirror(last),
		Score:  mirrorScore,
		Reason: "Mirror of " + last,
	}}
	if rev := relation.Reverse(last); rev != last {
		out = append(out, Emission{Value: rev, Score: reverseScore, Reason: "Reverse of " + last})
	}
	return out
}

func topEmissions(items []Emission, n int) []Emission {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Value < items[j].Value
	})
	if n < len(items) {
		items = items[:n]
	}
	return items
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
