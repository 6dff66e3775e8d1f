package decayer

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
)

// Environment variables read by LoadCurveConfig and LoadLogLevel
const (
	EnvPoints        = "DECAYER_POINTS"
	EnvSpanHalfLives = "DECAYER_SPAN_HALF_LIVES"
	EnvMaxChainDepth = "DECAYER_MAX_CHAIN_DEPTH"
	EnvLogLevel      = "DECAYER_LOG_LEVEL"
)

// LoadCurveConfig starts from model.DefaultCurveConfig and overrides every
// setting present in the environment. A .env file is loaded first if present.
func LoadCurveConfig() (model.CurveConfig, error) {
	_ = godotenv.Load()

	config := model.DefaultCurveConfig()

	if v := os.Getenv(EnvPoints); v != "" {
		points, err := strconv.Atoi(v)
		if err != nil || points < 2 {
			return config, helper.NewError("curve configuration", fmt.Errorf("%s must be an integer of at least 2, got %q", EnvPoints, v))
		}
		config.Points = points
	}

	if v := os.Getenv(EnvSpanHalfLives); v != "" {
		multiple, err := strconv.ParseFloat(v, 64)
		if err != nil || !(multiple > 0) {
			return config, helper.NewError("curve configuration", fmt.Errorf("%s must be a positive number, got %q", EnvSpanHalfLives, v))
		}
		config.SpanHalfLives = multiple
	}

	if v := os.Getenv(EnvMaxChainDepth); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			return config, helper.NewError("curve configuration", fmt.Errorf("%s must be a non-negative integer, got %q", EnvMaxChainDepth, v))
		}
		config.MaxChainDepth = depth
	}

	return config, nil
}

// LoadLogLevel reads DECAYER_LOG_LEVEL, info if unset
func LoadLogLevel() slog.Level {
	_ = godotenv.Load()
	return helper.ParseLogLevel(os.Getenv(EnvLogLevel))
}
