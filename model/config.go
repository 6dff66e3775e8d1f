package model

// CurveConfig represents configuration for sampling and reporting curves
type CurveConfig struct {
	// Sampling
	Points        int     `json:"points"`          // samples over [0, span], both ends included
	SpanHalfLives float64 `json:"span_half_lives"` // span as a multiple of the longest half-life
	MaxChainDepth int     `json:"max_chain_depth"` // progeny followed past the last chain member

	// Presentation
	ActivityDecimals int32 `json:"activity_decimals"`
	PercentDecimals  int32 `json:"percent_decimals"`
}

// DefaultCurveConfig returns the default sampling and rounding settings
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		Points:           501,
		SpanHalfLives:    12,
		MaxChainDepth:    8,
		ActivityDecimals: 2,
		PercentDecimals:  1,
	}
}
