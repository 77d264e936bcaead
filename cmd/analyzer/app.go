package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Alias1177/PanelPredictor/internal/cache"
	"github.com/Alias1177/PanelPredictor/internal/config"
	"github.com/Alias1177/PanelPredictor/internal/database"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/parser"
	"github.com/Alias1177/PanelPredictor/internal/pipeline"
	"github.com/Alias1177/PanelPredictor/internal/platform/http"
	"github.com/Alias1177/PanelPredictor/internal/source"
)

// newEngine builds the pipeline with an outcome cache sized from config
func newEngine() (*pipeline.Engine, error) {
	if cfg.CacheSize <= 0 {
		return pipeline.NewEngine(), nil
	}
	c, err := cache.New[pipeline.Outcome](cfg.CacheSize, prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return pipeline.NewEngine(pipeline.WithCache(c)), nil
}

// newLoader routes catalog datasets to the data directory or the network
func newLoader() source.Router {
	client := http.NewClient(http.ClientOptions{
		Timeout:        cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
	})
	return source.Router{
		Files:  source.FileLoader{Dir: cfg.DataDir},
		Remote: source.NewRemoteLoader(client),
	}
}

// openStore connects to the record store
func openStore(ctx context.Context) (*database.DB, error) {
	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return db, nil
}

// resolveDatasets turns --dataset ids and --file paths into catalog entries
func resolveDatasets(ids, files []string) ([]config.Dataset, error) {
	var out []config.Dataset
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		out = append(out, config.Dataset{ID: id, Name: id, File: abs})
	}
	if len(ids) == 0 && len(files) > 0 {
		return out, nil
	}

	selected, err := catalog.Select(ids)
	if err != nil {
		return nil, err
	}
	return append(out, selected...), nil
}

// fetchRecords loads and parses the raw chart behind ds
func fetchRecords(ctx context.Context, loader source.Loader, ds config.Dataset) ([]model.DrawRecord, error) {
	raw, err := loader.Load(ctx, ds)
	if err != nil {
		return nil, err
	}
	records, err := parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, err)
	}
	return records, nil
}
