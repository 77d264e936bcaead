// Package report collapses an analysis run into a summary with findings and
// recommendations.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

// AlgorithmVersion is stamped on every report
const AlgorithmVersion = "2.0.0"

const (
	summaryPairs       = 8
	focusPairs         = 3
	highConfidenceCut  = 1000
	detailedTriples    = 6
	highlightedTriples = 3
	strongAccuracy     = 70
	weakAccuracy       = 40
)

// Meta identifies the dataset a report was built for
type Meta struct {
	DatasetID   string
	DatasetName string
}

// Options controls the non-deterministic parts of a report
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// Inputs bundles the pipeline outputs a report is assembled from
type Inputs struct {
	Analysis   model.AnalysisResult
	Prediction model.PredictionResult
	Risk       model.RiskMetrics
	Validation model.Validation
	Backtest   model.BacktestResult
}

// Assemble builds the report. Only the id and generation time depend on opts.
func Assemble(meta Meta, in Inputs, opts Options) model.Report {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	p := in.Prediction
	r := model.Report{
		ID:               opts.NewID(),
		GeneratedAt:      opts.Now().UTC(),
		DatasetID:        meta.DatasetID,
		DatasetName:      meta.DatasetName,
		DataPoints:       len(in.Analysis.Records),
		WindowSize:       p.WindowSize,
		AlgorithmVersion: AlgorithmVersion,

		Summary:         summarize(in),
		KeyFindings:     findings(in),
		Recommendations: recommendations(in),

		FrequentDigits:     p.FrequentDigits,
		TopOpenSums:        p.TopOpenSums,
		TopCloseSums:       p.TopCloseSums,
		Final4Pairs:        p.Final4Pairs,
		Final4Fallback:     p.Final4Fallback,
		JackpotTriples:     p.JackpotValues(),
		JackpotPairs:       p.TopPairs,
		PredictedFamilies:  predictedFamilies(in.Analysis),
		Risk:               in.Risk,
		Validation:         in.Validation,
		HistoricalAccuracy: in.Backtest.Accuracy,
		Warnings:           p.Warnings,
	}
	if r.DatasetName == "" {
		r.DatasetName = r.DatasetID
	}
	return r
}

func summarize(in Inputs) model.ReportSummary {
	return model.ReportSummary{
		TotalPredictions:    min(len(in.Prediction.PatternPairs), summaryPairs),
		ConfidenceLevel:     overallConfidence(in.Prediction.PatternPairs),
		DataQuality:         DataQuality(len(in.Analysis.Records)),
		PatternStrength:     PatternStrength(in.Analysis.Patterns.Count()),
		ProbabilityInsights: insights(in.Analysis.Frequency),
	}
}

// overallConfidence compares the leading candidate with the best score
func overallConfidence(ranked []model.ScoredCandidate) int {
	if len(ranked) == 0 {
		return 0
	}
	best := ranked[0].Score
	for _, c := range ranked {
		best = math.Max(best, c.Score)
	}
	if best <= 0 {
		return 0
	}
	return int(math.Round(ranked[0].Score / best * 100))
}

// DataQuality labels a history by its length; 100 records or more rate Excellent
func DataQuality(points int) string {
	quality := min(100, points)
	switch {
	case points == 0:
		return "Poor"
	case quality >= 80:
		return "Excellent"
	case quality >= 60:
		return "Good"
	case quality >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

// PatternStrength labels the number of detected patterns
func PatternStrength(count int) string {
	switch {
	case count > 50:
		return "Strong"
	case count > 25:
		return "Moderate"
	case count > 10:
		return "Weak"
	default:
		return "Very Weak"
	}
}

func insights(f model.FrequencyTables) []string {
	if f.DigitSamples == 0 {
		return []string{}
	}
	return []string{
		"Most frequent digits: " + joinInts(topProbabilities(f.DigitProbabilities, 3)),
		"Most common sums: " + joinInts(topProbabilities(f.SumProbabilities, 2)),
	}
}

func findings(in Inputs) []string {
	var out []string
	p := in.Prediction
	if len(p.PatternPairs) > 0 {
		top := p.PatternPairs[0]
		out = append(out, fmt.Sprintf("Highest confidence pair: %s (score: %s)", top.Value, formatScore(top.Score)))
	}
	out = append(out,
		fmt.Sprintf("Jackpot triples identified: %d", len(p.JackpotCandidates)),
		fmt.Sprintf("Patterns detected: %d", in.Analysis.Patterns.Count()))
	return out
}

func recommendations(in Inputs) []string {
	var out []string
	p := in.Prediction

	if len(p.PatternPairs) > 0 {
		var focus []string
		for _, c := range p.PatternPairs[:min(focusPairs, len(p.PatternPairs))] {
			focus = append(focus, c.Value)
		}
		out = append(out, "Focus on pairs: "+strings.Join(focus, ", "))
	}

	var strong []string
	for _, c := range p.JackpotCandidates[:min(detailedTriples, len(p.JackpotCandidates))] {
		if c.Score > highConfidenceCut && len(strong) < highlightedTriples {
			strong = append(strong, c.Value)
		}
	}
	if len(strong) > 0 {
		out = append(out, "High-confidence triples: "+strings.Join(strong, ", "))
	}

	if in.Backtest.Tested > 0 {
		switch {
		case in.Backtest.Accuracy > strongAccuracy:
			out = append(out, "Historical accuracy is strong - high confidence in predictions")
		case in.Backtest.Accuracy < weakAccuracy:
			out = append(out, "Historical accuracy is low - use predictions with caution")
		}
	}
	return out
}

// predictedFamilies returns the families that followed an earlier copy of
// the latest three-day family run
func predictedFamilies(a model.AnalysisResult) []int {
	latest := len(a.Window) - 3
	seen := make(map[int]bool)
	var out []int
	for _, s := range a.Patterns.FamilySequences {
		if s.Offset == latest && !seen[s.PredictedFamily] {
			seen[s.PredictedFamily] = true
			out = append(out, s.PredictedFamily)
		}
	}
	sort.Ints(out)
	return out
}

func topProbabilities(p [10]float64, n int) []int {
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return p[idx[a]] > p[idx[b]] })
	return idx[:n]
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
