package predict

import (
	"math"
	"slices"
	"sort"

	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

// Jackpot pool sources and their flat bonuses
const (
	SourceFamily    = "family"
	SourceBestGuess = "best-guess"
	SourceRecent    = "recent-recurrence"
)

var sourceBonus = map[string]int{
	SourceFamily:    200,
	SourceBestGuess: 500,
	SourceRecent:    300,
}

const (
	jackpotMinScore   = 800
	jackpotMinQuality = 0.5
	jackpotFrequency  = 50
	jackpotQuality    = 100
	jackpotSize       = 8
)

// JackpotInput gathers the candidate sources of the jackpot pool
type JackpotInput struct {
	Families    []model.FamilySelection
	BestGuesses []string
	Recent      []string
	Counts      map[string]int
}

// Jackpot scores the union of the sources and keeps the candidates that
// clear both the score and the quality threshold. The family bonus is earned
// once per family listing the triple, the other sources once per triple.
func Jackpot(in JackpotInput) []model.JackpotCandidate {
	sources := make(map[string][]string)
	bonus := make(map[string]int)
	add := func(triple, source string) {
		bonus[triple] += sourceBonus[source]
		if !slices.Contains(sources[triple], source) {
			sources[triple] = append(sources[triple], source)
		}
	}

	for _, f := range in.Families {
		for _, t := range dedupe(f.Triples) {
			add(t, SourceFamily)
		}
	}
	for _, t := range dedupe(in.BestGuesses) {
		add(t, SourceBestGuess)
	}
	for _, t := range dedupe(in.Recent) {
		if in.Counts[t] >= 2 {
			add(t, SourceRecent)
		}
	}

	var pool []model.JackpotCandidate
	for t, src := range sources {
		freq := in.Counts[t]
		quality := Quality(t, in.Counts)
		score := int(math.Round(float64(bonus[t]) + float64(freq*jackpotFrequency) + quality*jackpotQuality))

		if score < jackpotMinScore || round2(quality) < jackpotMinQuality {
			continue
		}
		pool = append(pool, model.JackpotCandidate{
			Value:     t,
			Cut:       relation.Cut(t),
			Score:     score,
			Frequency: freq,
			Quality:   round2(quality),
			Sources:   src,
		})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Value < pool[j].Value
	})
	if len(pool) > jackpotSize {
		pool = pool[:jackpotSize]
	}
	return pool
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
