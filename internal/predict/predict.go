// Package predict runs the five scoring methods over an analysis window,
// combines them into ranked pair and triple candidates and builds the
// jackpot pool.
package predict

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/Alias1177/PanelPredictor/internal/analysis"
	"github.com/Alias1177/PanelPredictor/internal/frequency"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/panel"
	"github.com/Alias1177/PanelPredictor/internal/relation"
)

const (
	methodWindowCap     = 90
	finalCount          = 4
	freshnessExclusion  = 5
	panelPairCount      = 8
	panelTripleCount    = 6
	rankedTripleCount   = 6
	tripleBaseWeight    = 120
	tripleRankStep      = 4
	crossRoleBonus      = 50
	frequentDigitCount  = 5
	topSumCount         = 3
	topPairCount        = 6
	recentDays          = 15
	recentMinOccurrence = 2
)

// Pattern pair weights
const (
	pairBaseWeight      = 100
	pairRankStep        = 3
	sequentialBonus     = 25
	repeatingBonus      = 30
	mirrorBonus         = 35
	familySequenceBonus = 40
	patternPairCount    = 8
)

// Predict produces the candidate lists for one analysis. windowSize bounds
// the records fed to the five scoring methods; a non-positive value uses the
// analysis window size.
func Predict(a model.AnalysisResult, windowSize int) model.PredictionResult {
	if windowSize <= 0 {
		windowSize = a.WindowSize
	}
	res := model.PredictionResult{
		WindowSize:         windowSize,
		RankedPairs:        []model.ScoredCandidate{},
		PatternPairs:       []model.ScoredCandidate{},
		RankedOpenTriples:  []model.ScoredCandidate{},
		RankedCloseTriples: []model.ScoredCandidate{},
		OpenFamilies:       []model.FamilySelection{},
		CloseFamilies:      []model.FamilySelection{},
		TopPairs:           []string{},
		JackpotCandidates:  []model.JackpotCandidate{},
	}

	res.FrequentDigits = frequency.TopDigits(a.Frequency, frequentDigitCount)
	res.TopOpenSums = frequency.TopIndexes(a.Frequency.OpenSumCounts[:], topSumCount)
	res.TopCloseSums = frequency.TopIndexes(a.Frequency.CloseSumCounts[:], topSumCount)

	if len(a.Window) == 0 {
		res.Final4Pairs = append([]string(nil), FallbackPairs...)
		res.Final4Fallback = true
		res.BestGuesses = append([]string(nil), FallbackGuesses...)
		res.Warnings = []model.Warning{{Method: "all", Message: "no records in the analysis window"}}
		return res
	}

	// 1. Five-method pair ranking
	panelPairs := PanelPairs(a.Panels.Pairs, panelPairCount)
	pairs := model.Pairs(analysis.Window(a.Window, min(windowSize, methodWindowCap)))
	sets := []MethodEmissions{
		{Method: model.MethodPanel, Emissions: panelPairs},
		{Method: model.MethodMatrix, Emissions: Adjacency(pairs)},
		{Method: model.MethodPattern, Emissions: HotDigits(pairs)},
		{Method: model.MethodGap, Emissions: Gap(pairs)},
		{Method: model.MethodMirror, Emissions: Mirror(pairs)},
	}
	for _, set := range sets {
		if len(set.Emissions) == 0 {
			res.Warnings = append(res.Warnings, insufficient(set.Method, len(pairs)))
		}
	}
	res.RankedPairs = Combine(sets...)

	recent := pairs
	if len(recent) > freshnessExclusion {
		recent = recent[len(recent)-freshnessExclusion:]
	}
	res.Final4Pairs, res.Final4Fallback = SelectFinal(res.RankedPairs, recent, finalCount)
	res.PatternPairs = RankPanelPairs(panelPairs, a.Patterns)

	// 2. Panel triples
	res.RankedOpenTriples, res.RankedCloseTriples = RankTriples(
		PanelTriples(a.Panels.OpenTriples, RoleOpen, panelTripleCount),
		PanelTriples(a.Panels.CloseTriples, RoleClose, panelTripleCount),
	)

	// 3. Families, guesses and the jackpot pool
	counts := a.Frequency.TripleCounts
	res.OpenFamilies = OptimizeFamilies(res.TopOpenSums, counts)
	res.CloseFamilies = OptimizeFamilies(res.TopCloseSums, counts)

	families := append(append([]model.FamilySelection(nil), res.OpenFamilies...), res.CloseFamilies...)
	res.BestGuesses = BestGuesses(families, res.FrequentDigits)
	res.JackpotCandidates = Jackpot(JackpotInput{
		Families:    families,
		BestGuesses: res.BestGuesses,
		Recent:      panel.RecentRecurring(a.Window, recentDays, recentMinOccurrence),
		Counts:      counts,
	})
	res.TopPairs = frequency.TopValues(a.Frequency.PairCounts, topPairCount)

	return res
}

// RankTriples weights the panel triples by position and rewards values that
// rank for both roles
func RankTriples(open, closing []Emission) (openRanked, closeRanked []model.ScoredCandidate) {
	inOpen := make(map[string]bool, len(open))
	for _, e := range open {
		inOpen[e.Value] = true
	}
	inClose := make(map[string]bool, len(closing))
	for _, e := range closing {
		inClose[e.Value] = true
	}

	rank := func(items []Emission, other map[string]bool, otherRole string) []model.ScoredCandidate {
		out := make([]model.ScoredCandidate, 0, len(items))
		for i, e := range items {
			c := model.ScoredCandidate{
				Value:             e.Value,
				Score:             float64(tripleBaseWeight - i*tripleRankStep),
				SupportingMethods: []string{model.MethodPanel},
				Rationale:         []string{e.Reason},
			}
			if other[e.Value] {
				c.Score += crossRoleBonus
				c.Rationale = append(c.Rationale, "Also ranked as "+otherRole)
			}
			out = append(out, c)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
		if len(out) > rankedTripleCount {
			out = out[:rankedTripleCount]
		}
		return out
	}

	return rank(open, inClose, "close"), rank(closing, inOpen, "open")
}

// RankPanelPairs weights the panel pairs by position and adds the pattern
// detector bonuses. Every member of a predicted family gets the sequence
// confidence share of the family bonus.
func RankPanelPairs(panelPairs []Emission, patterns model.Patterns) []model.ScoredCandidate {
	byValue := make(map[string]*model.ScoredCandidate)
	var order []string
	add := func(value string, score float64, method, reason string) {
		c, ok := byValue[value]
		if !ok {
			c = &model.ScoredCandidate{Value: value}
			byValue[value] = c
			order = append(order, value)
		}
		c.Score += score
		if !slices.Contains(c.SupportingMethods, method) {
			c.SupportingMethods = append(c.SupportingMethods, method)
		}
		c.Rationale = append(c.Rationale, reason)
	}

	for i, e := range panelPairs {
		add(e.Value, float64(pairBaseWeight-i*pairRankStep), model.MethodPanel, e.Reason)
	}
	for _, v := range patterns.Sequential {
		add(v, sequentialBonus, model.PatternSequential, "Within 5 of the previous pair")
	}
	for _, v := range patterns.Repeating {
		add(v, repeatingBonus, model.PatternRepeating, "Double digit pair")
	}
	for _, v := range patterns.MirrorRecurrence {
		add(v, mirrorBonus, model.PatternMirror, "Mirror of an earlier pair")
	}
	for _, seq := range patterns.FamilySequences {
		reason := fmt.Sprintf("Member of predicted family %d", seq.PredictedFamily)
		for _, v := range relation.PairFamily(seq.PredictedFamily) {
			add(v, familySequenceBonus*seq.Confidence, model.PatternFamily, reason)
		}
	}

	out := make([]model.ScoredCandidate, 0, len(order))
	for _, v := range order {
		c := *byValue[v]
		c.Score = math.Round(c.Score)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > patternPairCount {
		out = out[:patternPairCount]
	}
	return out
}

// JackpotValues analyzes records and returns the jackpot pool. It is the
// candidate function used for backtesting.
func JackpotValues(records []model.DrawRecord, windowSize int) []string {
	return Predict(analysis.Analyze(records, windowSize), windowSize).JackpotValues()
}

func insufficient(method string, n int) model.Warning {
	return model.Warning{
		Method:  method,
		Message: fmt.Sprintf("insufficient data: no candidates from %d records", n),
	}
}
