package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScope/internal/collector"
	"TrendScope/internal/config"
	"TrendScope/internal/model"
)

func mockConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_source:\n  provider: mock\n"), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_PrintsSummary(t *testing.T) {
	out, err := run(t, "--config", mockConfig(t), "analyze", "aapl", "--policy", "ma_cross")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "sma_50")
	assert.Contains(t, out, "SMA20>SMA50")
	assert.Contains(t, out, "mock (1y,")
}

func TestAnalyze_JSON(t *testing.T) {
	out, err := run(t, "--config", mockConfig(t), "analyze", "MSFT", "--period", "2y", "--json")
	require.NoError(t, err)

	var decoded struct {
		Summary model.Summary `json:"summary"`
		Chart   struct {
			Title string `json:"title"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "MSFT", decoded.Summary.Symbol)
	assert.Equal(t, "MSFT Stock Price Analysis", decoded.Chart.Title)
}

func TestAnalyze_Errors(t *testing.T) {
	path := mockConfig(t)

	_, err := run(t, "--config", path, "analyze", "AAPL", "--period", "1mo")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
	assert.Contains(t, err.Error(), "Insufficient data for analysis.")

	_, err = run(t, "--config", path, "analyze", "AAPL", "--period", "9d")
	assert.ErrorIs(t, err, model.ErrInvalidPeriod)

	_, err = run(t, "--config", path, "analyze", "AAPL", "--policy", "nope")
	assert.Error(t, err)

	_, err = run(t, "--config", path, "analyze")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "TrendScope dev\n", out)
}

func TestNewFetcher(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "yahoo", NewFetcher(cfg).Name())

	cfg.DataSource.Provider = "financego"
	assert.Equal(t, "financego", NewFetcher(cfg).Name())

	cfg.DataSource.Provider = "barsapi"
	cfg.DataSource.BaseURL = "http://bars.local"
	assert.Equal(t, "barsapi", NewFetcher(cfg).Name())

	cfg.DataSource.Provider = "mock"
	assert.IsType(t, &collector.MockFetcher{}, NewFetcher(cfg))
}
