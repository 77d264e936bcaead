// Package analysis builds the windowed AnalysisResult that the predictor consumes.
package analysis

import (
	"github.com/Alias1177/PanelPredictor/internal/frequency"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/panel"
)

// DefaultWindowSize is used when the caller passes a non-positive window
const DefaultWindowSize = 30

// Window returns the suffix slice of at most size records
func Window(records []model.DrawRecord, size int) []model.DrawRecord {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if size >= len(records) {
		return records
	}
	return records[len(records)-size:]
}

// Analyze computes frequency tables, panel statistics and patterns over the
// trailing window of records
func Analyze(records []model.DrawRecord, windowSize int) model.AnalysisResult {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	window := Window(records, windowSize)

	return model.AnalysisResult{
		WindowSize: windowSize,
		Records:    records,
		Window:     window,
		Frequency:  frequency.Analyze(window),
		Panels:     panel.Scan(window),
		Patterns:   panel.DetectPatterns(window),
	}
}
