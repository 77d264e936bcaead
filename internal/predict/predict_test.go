package predict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PanelPredictor/internal/analysis"
	"github.com/Alias1177/PanelPredictor/internal/model"
)

func history(pairs ...string) []model.DrawRecord {
	records := make([]model.DrawRecord, len(pairs))
	for i, p := range pairs {
		records[i] = model.DrawRecord{
			Open:  fmt.Sprintf("%03d", (i*137)%1000),
			Pair:  p,
			Close: fmt.Sprintf("%03d", (i*251+7)%1000),
		}
	}
	return records
}

func TestPredictFreshnessExclusion(t *testing.T) {
	records := history("12", "34", "56", "78", "90", "13", "35", "57", "79", "91", "24", "46")
	res := Predict(analysis.Analyze(records, 30), 30)

	require.Len(t, res.Final4Pairs, 4)
	last5 := model.Pairs(records[len(records)-5:])
	for _, p := range res.Final4Pairs {
		assert.NotContains(t, last5, p)
	}
	assert.NotEmpty(t, res.RankedPairs)
}

func TestPredictDeterministic(t *testing.T) {
	records := history("12", "34", "12", "56", "12", "34", "88", "05", "50", "34", "12")
	a := analysis.Analyze(records, 30)
	assert.Equal(t, Predict(a, 30), Predict(a, 30))
	assert.Equal(t, Predict(a, 30).JackpotValues(), JackpotValues(records, 30))
}

func TestPredictNoRecords(t *testing.T) {
	res := Predict(analysis.Analyze(nil, 30), 30)

	assert.Equal(t, FallbackPairs, res.Final4Pairs)
	assert.True(t, res.Final4Fallback)
	assert.Equal(t, FallbackGuesses, res.BestGuesses)
	assert.NotEmpty(t, res.Warnings)
	assert.Empty(t, res.RankedPairs)
	assert.Empty(t, res.JackpotCandidates)
}

func TestPredictSingleRecord(t *testing.T) {
	res := Predict(analysis.Analyze(history("12"), 30), 30)

	// only the mirror and hot-digit methods can fire on one record
	assert.Contains(t, res.Final4Pairs, PlaceholderPair)
	assert.True(t, res.Final4Fallback)
	assert.NotContains(t, res.Final4Pairs, "12")

	methods := map[string]bool{}
	for _, w := range res.Warnings {
		methods[w.Method] = true
	}
	assert.True(t, methods[model.MethodPanel])
	assert.True(t, methods[model.MethodMatrix])
	assert.True(t, methods[model.MethodGap])
	assert.False(t, methods[model.MethodMirror])
}

func TestPredictSummaries(t *testing.T) {
	records := history("12", "34", "56", "78", "90", "13", "35", "57", "79", "91", "24", "46", "12")
	res := Predict(analysis.Analyze(records, 30), 30)

	assert.Len(t, res.FrequentDigits, 5)
	assert.Len(t, res.TopOpenSums, 3)
	assert.Len(t, res.TopCloseSums, 3)
	assert.Len(t, res.OpenFamilies, 3)
	assert.Len(t, res.CloseFamilies, 3)
	assert.LessOrEqual(t, len(res.BestGuesses), 5)
	assert.LessOrEqual(t, len(res.JackpotCandidates), 8)
	require.NotEmpty(t, res.TopPairs)
	assert.Equal(t, "12", res.TopPairs[0])
}

func TestRankTriples(t *testing.T) {
	open := []Emission{{Value: "111"}, {Value: "222"}, {Value: "333"}}
	closing := []Emission{{Value: "333"}, {Value: "444"}}

	o, c := RankTriples(open, closing)

	require.Len(t, o, 3)
	assert.Equal(t, "333", o[0].Value)
	assert.Equal(t, 162.0, o[0].Score)
	assert.Equal(t, "111", o[1].Value)
	assert.Equal(t, 120.0, o[1].Score)
	assert.Equal(t, 116.0, o[2].Score)

	require.Len(t, c, 2)
	assert.Equal(t, "333", c[0].Value)
	assert.Equal(t, 170.0, c[0].Score)
	assert.Equal(t, 116.0, c[1].Score)
}

func TestRankPanelPairs(t *testing.T) {
	panelPairs := []Emission{{Value: "12", Reason: "panel"}, {Value: "90", Reason: "panel"}}
	patterns := model.Patterns{
		Sequential:       []string{"44"},
		Repeating:        []string{"44"},
		MirrorRecurrence: []string{"12"},
		FamilySequences:  []model.FamilySequence{{PredictedFamily: 3, Confidence: 0.5}},
	}

	got := RankPanelPairs(panelPairs, patterns)

	require.Len(t, got, 8)
	values := make([]string, len(got))
	for i, c := range got {
		values[i] = c.Value
	}
	assert.Equal(t, []string{"12", "90", "44", "03", "21", "30", "49", "58"}, values)

	assert.Equal(t, 155.0, got[0].Score)
	assert.Equal(t, []string{model.MethodPanel, model.PatternMirror, model.PatternFamily}, got[0].SupportingMethods)
	assert.Equal(t, 97.0, got[1].Score)
	assert.Equal(t, 55.0, got[2].Score)
	assert.Equal(t, []string{model.PatternSequential, model.PatternRepeating}, got[2].SupportingMethods)
	assert.Equal(t, 20.0, got[3].Score)
}

func TestRankPanelPairsWithoutPatterns(t *testing.T) {
	got := RankPanelPairs([]Emission{{Value: "12"}, {Value: "34"}}, model.Patterns{})

	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Score)
	assert.Equal(t, 97.0, got[1].Score)
	assert.Empty(t, RankPanelPairs(nil, model.Patterns{}))
}

func TestPredictUsesDetectedPatterns(t *testing.T) {
	records := history("40", "44", "90", "12", "67", "44", "44", "21", "76", "12", "67", "05")
	a := analysis.Analyze(records, 30)
	require.NotZero(t, a.Patterns.Count())

	withPatterns := Predict(a, 30)
	a.Patterns = model.Patterns{}
	withoutPatterns := Predict(a, 30)

	require.NotEmpty(t, withPatterns.PatternPairs)
	assert.NotEqual(t, withPatterns.PatternPairs, withoutPatterns.PatternPairs)
	assert.Equal(t, withPatterns.RankedPairs, withoutPatterns.RankedPairs)
}
