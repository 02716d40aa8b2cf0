package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, model.Quality90, cfg.UI.Quality)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyBaseURL, "https://market.example.com/api/")
	viper.Set(KeyTimeout, "3s")
	viper.Set(KeyTab, "bracelet")
	viper.Set(KeyQuality, "70")
	viper.Set(KeyRange, "1m")
	viper.Set(KeyRole, "support")
	viper.Set(KeyGrade, "유물")
	viper.Set(KeyExportDir, "/tmp/exports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://market.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, model.KindBracelet, cfg.UI.Tab)
	assert.Equal(t, model.Quality70, cfg.UI.Quality)
	assert.Equal(t, model.Range1Month, cfg.UI.Range)
	assert.Equal(t, model.RoleSupport, cfg.UI.Role)
	assert.Equal(t, model.GradeRelic, cfg.UI.Grade)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: KeyQuality, value: "95"},
		{key: KeyRange, value: "1y"},
		{key: KeyTab, value: "rings"},
		{key: KeyRole, value: "tank"},
		{key: KeyGrade, value: "전설"},
		{key: KeyBaseURL, value: "localhost:8000"},
		{key: KeyTimeout, value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidConfig))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TRADEPOST_TEST_DIR", "exports")

	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/var/exports", ExpandPath("/var/$TRADEPOST_TEST_DIR"))
	assert.Empty(t, ExpandPath(""))
}
