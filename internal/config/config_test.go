package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "WINDOW_SIZE", "LOOKBACK_DAYS", "CACHE_SIZE", "REQUEST_TIMEOUT", "TELEGRAM_CHAT_IDS", "BROADCAST_DATASETS", "DB_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.WindowSize)
	assert.Equal(t, 30, cfg.LookbackDays)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.TelegramChatIDs)
	assert.Empty(t, cfg.BroadcastDatasets)
	assert.False(t, cfg.DBEnabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WINDOW_SIZE", "60")
	t.Setenv("CACHE_SIZE", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("REQUESTS_PER_SEC", "2.5")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("TELEGRAM_CHAT_IDS", "101, -2002,oops")
	t.Setenv("BROADCAST_DATASETS", "KL, MAIN")

	cfg := FromEnv()

	assert.Equal(t, 60, cfg.WindowSize)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2.5, cfg.RequestsPerSec)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, []int64{101, -2002}, cfg.TelegramChatIDs)
	assert.Equal(t, []string{"KL", "MAIN"}, cfg.BroadcastDatasets)
}

func TestDurationFormats(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, FromEnv().RequestTimeout)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantIDs []string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "absent.yaml"),
			wantIDs: []string{"KL", "SHRD", "TB", "MLD", "MLN", "MAIN", "MADHURI", "PUNA", "SHRN", "RJD", "RJN", "MADHURI NIGHT"},
		},
		{
			name:    "valid",
			path:    write("ok.yaml", "datasets:\n  - id: KL\n    name: Kalyan\n    file: KL.html\n  - id: WEB\n    url: https://example.com/chart\n"),
			wantIDs: []string{"KL", "WEB"},
		},
		{
			name:    "malformed",
			path:    write("bad.yaml", "datasets: [\n"),
			wantErr: "parse catalog",
		},
		{
			name:    "duplicate id",
			path:    write("dup.yaml", "datasets:\n  - id: KL\n    file: a\n  - id: KL\n    file: b\n"),
			wantErr: "duplicate id",
		},
		{
			name:    "empty id",
			path:    write("empty.yaml", "datasets:\n  - file: a\n"),
			wantErr: "empty id",
		},
		{
			name:    "no source",
			path:    write("nosrc.yaml", "datasets:\n  - id: KL\n"),
			wantErr: "neither file nor url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadCatalog(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, len(c.Datasets))
			for i, ds := range c.Datasets {
				ids[i] = ds.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCatalogLookupAndSelect(t *testing.T) {
	c := DefaultCatalog()

	ds, ok := c.Lookup("MADHURI NIGHT")
	require.True(t, ok)
	assert.Equal(t, "MDHN.html", ds.File)

	_, ok = c.Lookup("NOPE")
	assert.False(t, ok)

	all, err := c.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 12)

	some, err := c.Select([]string{"TB", "KL"})
	require.NoError(t, err)
	assert.Equal(t, "TB", some[0].ID)
	assert.Equal(t, "KL", some[1].ID)

	_, err = c.Select([]string{"NOPE"})
	assert.Error(t, err)
}
