package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"HTTP_ADDR", "CORS_ORIGINS", "COLOR_TOLERANCE", "RENDER_DPI", "PDFTOPPM_BIN",
		"RENDER_TIMEOUT", "MAX_UPLOAD_BYTES", "LOG_LEVEL", "LOG_JSON", "ENABLE_METRICS",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 40.0, cfg.ColorTolerance)
	assert.Equal(t, 300, cfg.RenderDPI)
	assert.Equal(t, "pdftoppm", cfg.PdftoppmBin)
	assert.Equal(t, 20*time.Second, cfg.RenderTimeout)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.True(t, cfg.EnableMetrics)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:7860")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("COLOR_TOLERANCE", "80")
	t.Setenv("RENDER_DPI", "150")
	t.Setenv("RENDER_TIMEOUT", "5s")
	t.Setenv("LOG_JSON", "yes")
	t.Setenv("ENABLE_METRICS", "0")

	cfg := FromEnv()
	assert.Equal(t, "127.0.0.1:7860", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 80.0, cfg.ColorTolerance)
	assert.Equal(t, 150, cfg.RenderDPI)
	assert.Equal(t, 5*time.Second, cfg.RenderTimeout)
	assert.True(t, cfg.LogJSON)
	assert.False(t, cfg.EnableMetrics)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("COLOR_TOLERANCE", "wide")
	t.Setenv("RENDER_DPI", "-3")
	t.Setenv("RENDER_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 40.0, cfg.ColorTolerance)
	assert.Equal(t, 300, cfg.RenderDPI)
	assert.Equal(t, 20*time.Second, cfg.RenderTimeout)
}
