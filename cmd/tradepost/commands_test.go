package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	necklaceKey = "고대:목걸이:3:추피 상"
	ringKey     = "고대:반지:2:치적 중"
)

// newBackend serves a small fixed dataset and points the config at it.
func newBackend(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/all-patterns", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"dealer": {
				"고대:목걸이:3:추피 상": {"grade": "고대", "part": "목걸이", "level": 3, "pattern": "추피 상",
					"base_price": 90000, "quality_prices": {"90": 95000}, "sample_count": 2},
				"고대:반지:2:치적 중": {"grade": "고대", "part": "반지", "level": 2, "pattern": "치적 중",
					"quality_prices": {"70": 12000}, "sample_count": 9}
			},
			"support": {}
		}`))
	})
	mux.HandleFunc("/api/price-trends", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"고대:목걸이:3:추피 상": [
				{"timestamp": 1700000000000, "quality_prices": {"90": 95000}, "sample_count": 2}
			],
			"고대:반지:2:치적 중": [
				{"timestamp": 1700000600000, "quality_prices": {"90": 13000}, "sample_count": 9}
			]
		}`))
	})
	mux.HandleFunc("/api/export", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("timestamp,price\n1,2\n"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	viper.Set(config.KeyBaseURL, srv.URL+"/api")
	t.Cleanup(viper.Reset)
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"dash", "patterns", "trends", "detail", "chart", "export", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	for _, flag := range []string{"config", "log-level", "log-format", "log-file", "api-url"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestTrendsCmdFlags(t *testing.T) {
	cmd := trendsCmd()

	assert.Equal(t, "table", cmd.Flag("format").DefValue)
	assert.Equal(t, "90", cmd.Flag("quality").DefValue)
	assert.Equal(t, "1d", cmd.Flag("range").DefValue)
	assert.Equal(t, "accessory", cmd.Flag("kind").DefValue)
	assert.Equal(t, "20", cmd.Flag("tail").DefValue)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "defaults"},
		{name: "bracelet relic", args: []string{"--kind", "bracelet", "--grade", "유물", "--range", "3m"}},
		{name: "bad role", args: []string{"--role", "tank"}, wantErr: true},
		{name: "bad grade", args: []string{"--grade", "전설"}, wantErr: true},
		{name: "bad range", args: []string{"--range", "2d"}, wantErr: true},
		{name: "bad kind", args: []string{"--kind", "gem"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			addSelectionFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			_, err := parseSelection(cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"grade=고대", "q=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"grade": "고대", "q": "a=b"}, got)

	got, err = parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseParams([]string{"novalue"})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestResolveKeys(t *testing.T) {
	_, err := resolveKeys([]string{" "}, false, nil)
	assert.ErrorIs(t, err, common.ErrEmptySelection)

	keys, err := resolveKeys([]string{"b", "a"}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, keys, "explicit keys keep their order")
}

func TestPatternsCmd_JSON(t *testing.T) {
	newBackend(t)

	out, err := run(t, patternsCmd(), "--json")
	require.NoError(t, err)

	var got []patternJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, necklaceKey, got[0].Key, "sorted by price descending")
	assert.Equal(t, ringKey, got[1].Key)
	assert.InDelta(t, 12000, got[1].Price, 0.001, "best tier price when base_price is absent")

	out, err = run(t, patternsCmd(), "--json", "--sort", "samples", "--part", "반지")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, ringKey, got[0].Key)
}

func TestPatternsCmd_InvalidFilter(t *testing.T) {
	newBackend(t)

	_, err := run(t, patternsCmd(), "--part", "팔찌")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestTrendsCmd_CSV(t *testing.T) {
	newBackend(t)

	out, err := run(t, trendsCmd(), "--all", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header plus one row per timestamp")
	assert.Equal(t, "timestamp,고대 목걸이 3연마 (추피 상),고대 반지 2연마 (치적 중)", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",95000,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",,13000"), lines[2])
}

func TestTrendsCmd_NoKeys(t *testing.T) {
	newBackend(t)

	_, err := run(t, trendsCmd())
	assert.ErrorIs(t, err, common.ErrEmptySelection)

	_, err = run(t, trendsCmd(), "--key", "unknown")
	assert.ErrorIs(t, err, common.ErrEmptySelection, "keys without data leave nothing to show")
}

func TestTrendsCmd_XLSXNeedsOut(t *testing.T) {
	_, err := run(t, trendsCmd(), "--all", "--format", "xlsx")
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestChartCmd(t *testing.T) {
	newBackend(t)
	path := filepath.Join(t.TempDir(), "trend.png")

	out, err := run(t, chartCmd(), "--key", necklaceKey, "--key", ringKey, "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 patterns")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestExportCmd(t *testing.T) {
	newBackend(t)
	dir := t.TempDir()

	out, err := run(t, exportCmd(), "--quiet", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported market data to")

	matches, err := filepath.Glob(filepath.Join(dir, "market-data-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "timestamp,price\n1,2\n", string(data))
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, versionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "tradepost dev")
}
