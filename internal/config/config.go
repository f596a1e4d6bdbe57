package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// Grading
	ColorTolerance float64
	RenderDPI      int
	PdftoppmBin    string
	RenderTimeout  time.Duration
	MaxUploadBytes int64

	LogLevel      string
	LogJSON       bool
	EnableMetrics bool
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
		ColorTolerance: envFloat("COLOR_TOLERANCE", 40),
		RenderDPI:      envInt("RENDER_DPI", 300),
		PdftoppmBin:    envOr("PDFTOPPM_BIN", "pdftoppm"),
		RenderTimeout:  envDuration("RENDER_TIMEOUT", 20*time.Second),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 20<<20)),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogJSON:        envBool("LOG_JSON", false),
		EnableMetrics:  envBool("ENABLE_METRICS", true),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
func envFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
