// Package source loads the raw chart text behind a catalog dataset.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PanelPredictor/internal/config"
)

// ErrNoSource is returned when a dataset names no location the loader understands
var ErrNoSource = errors.New("dataset has no usable source")

// Loader returns the raw text of a dataset
type Loader interface {
	Load(ctx context.Context, ds config.Dataset) (string, error)
}

// Fetcher retrieves the body behind a URL
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// FileLoader reads dataset files relative to Dir
type FileLoader struct {
	Dir string
}

// Load implements Loader
func (l FileLoader) Load(ctx context.Context, ds config.Dataset) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ds.File == "" {
		return "", fmt.Errorf("dataset %s: %w", ds.ID, ErrNoSource)
	}

	path := ds.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read dataset %s: %w", ds.ID, err)
	}
	return string(data), nil
}

// RemoteLoader fetches datasets that carry a URL
type RemoteLoader struct {
	Client Fetcher
	logger zerolog.Logger
}

// NewRemoteLoader creates a loader fetching through client
func NewRemoteLoader(client Fetcher) *RemoteLoader {
	return &RemoteLoader{
		Client: client,
		logger: log.With().Str("component", "source").Logger(),
	}
}

// Load implements Loader
func (l *RemoteLoader) Load(ctx context.Context, ds config.Dataset) (string, error) {
	if ds.URL == "" {
		return "", fmt.Errorf("dataset %s: %w", ds.ID, ErrNoSource)
	}

	l.logger.Debug().Str("dataset", ds.ID).Str("url", ds.URL).Msg("Fetching dataset")
	body, err := l.Client.Get(ctx, ds.URL)
	if err != nil {
		l.logger.Error().Err(err).Str("dataset", ds.ID).Msg("Fetch failed")
		return "", fmt.Errorf("fetch dataset %s: %w", ds.ID, err)
	}
	l.logger.Debug().Str("dataset", ds.ID).Int("bytes", len(body)).Msg("Dataset fetched")
	return string(body), nil
}

// Router dispatches each dataset to the file or remote loader
type Router struct {
	Files  Loader
	Remote Loader
}

// Resolve picks the loader for ds. A URL takes precedence over a file.
func (r Router) Resolve(ds config.Dataset) (Loader, error) {
	switch {
	case ds.URL != "" && r.Remote != nil:
		return r.Remote, nil
	case ds.File != "" && r.Files != nil:
		return r.Files, nil
	default:
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, ErrNoSource)
	}
}

// Load implements Loader
func (r Router) Load(ctx context.Context, ds config.Dataset) (string, error) {
	l, err := r.Resolve(ds)
	if err != nil {
		return "", err
	}
	return l.Load(ctx, ds)
}
