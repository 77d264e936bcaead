// Package pipeline composes analysis, prediction, risk and backtesting into
// one call and optionally memoizes the result.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PanelPredictor/internal/analysis"
	"github.com/Alias1177/PanelPredictor/internal/backtest"
	"github.com/Alias1177/PanelPredictor/internal/cache"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/parser"
	"github.com/Alias1177/PanelPredictor/internal/predict"
	"github.com/Alias1177/PanelPredictor/internal/report"
	"github.com/Alias1177/PanelPredictor/internal/risk"
)

// DefaultLookback is the number of trailing records backtested by default
const DefaultLookback = 30

// Outcome holds every result of one pipeline run
type Outcome struct {
	Analysis   model.AnalysisResult   `json:"analysis"`
	Prediction model.PredictionResult `json:"prediction"`
	Risk       model.RiskMetrics      `json:"risk"`
	Validation model.Validation       `json:"validation"`
	Backtest   model.BacktestResult   `json:"backtest"`
}

// Engine runs the pipeline
type Engine struct {
	cache  *cache.Cache[Outcome]
	report report.Options
	logger zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithCache memoizes outcomes in c
func WithCache(c *cache.Cache[Outcome]) Option {
	return func(e *Engine) { e.cache = c }
}

// WithReportOptions overrides report ids and timestamps
func WithReportOptions(opts report.Options) Option {
	return func(e *Engine) { e.report = opts }
}

// NewEngine creates a pipeline engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: log.With().Str("component", "pipeline").Logger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run analyzes records and returns the full outcome. The context is only
// checked before work starts.
func (e *Engine) Run(ctx context.Context, records []model.DrawRecord, window, lookback int) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if len(records) == 0 {
		return Outcome{}, &parser.ParseError{Reason: "empty record sequence", Err: parser.ErrNoRecords}
	}
	if window <= 0 {
		window = analysis.DefaultWindowSize
	}
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	var key cache.Key
	if e.cache != nil {
		k, err := cache.KeyFor(records, window, lookback)
		if err != nil {
			return Outcome{}, fmt.Errorf("cache key: %w", err)
		}
		key = k
		if out, ok := e.cache.Get(key); ok {
			e.logger.Debug().Int("records", len(records)).Int("window", window).Msg("Cache hit")
			return out, nil
		}
	}

	e.logger.Debug().Int("records", len(records)).Int("window", window).Int("lookback", lookback).Msg("Running pipeline")

	out := compute(records, window, lookback)
	for _, w := range out.Prediction.Warnings {
		e.logger.Warn().Str("method", w.Method).Msg(w.Message)
	}

	if e.cache != nil {
		e.cache.Add(key, out)
	}
	return out, nil
}

// Report runs the pipeline and assembles the report for a dataset
func (e *Engine) Report(ctx context.Context, meta report.Meta, records []model.DrawRecord, window, lookback int) (model.Report, error) {
	out, err := e.Run(ctx, records, window, lookback)
	if err != nil {
		return model.Report{}, fmt.Errorf("run pipeline for %s: %w", meta.DatasetID, err)
	}

	r := report.Assemble(meta, report.Inputs{
		Analysis:   out.Analysis,
		Prediction: out.Prediction,
		Risk:       out.Risk,
		Validation: out.Validation,
		Backtest:   out.Backtest,
	}, e.report)

	e.logger.Info().
		Str("dataset", meta.DatasetID).
		Int("records", len(records)).
		Strs("final4", r.Final4Pairs).
		Float64("accuracy", r.HistoricalAccuracy).
		Msg("Report assembled")
	return r, nil
}

func compute(records []model.DrawRecord, window, lookback int) Outcome {
	a := analysis.Analyze(records, window)
	p := predict.Predict(a, window)
	m := risk.Assess(p, records)

	return Outcome{
		Analysis:   a,
		Prediction: p,
		Risk:       m,
		Validation: risk.Validate(p, records, m),
		Backtest: backtest.Run(records, func(history []model.DrawRecord) []string {
			return predict.JackpotValues(history, window)
		}, lookback),
	}
}
