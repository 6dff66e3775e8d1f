package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/siherrmann/decayer/model"
)

// DefaultSpanHalfLives is the number of longest half-lives after which a
// chain counts as decayed or equilibrated
const DefaultSpanHalfLives = 12

// ErrNoFiniteHalfLife is returned when every chain member is stable
var ErrNoFiniteHalfLife = errors.New("no finite half-life")

// MaxSpan returns 12 times the longest finite half-life. The half-lives are
// expressed in unit already, so the span is as well.
func MaxSpan(halfLives []float64, unit model.TimeUnit) (float64, error) {
	return maxSpan(halfLives, unit, DefaultSpanHalfLives)
}

func maxSpan(halfLives []float64, unit model.TimeUnit, multiple float64) (float64, error) {
	if !unit.Valid() {
		return 0, fmt.Errorf("%w: time unit %q", model.ErrUnknownUnit, string(unit))
	}
	if !(multiple > 0) || math.IsInf(multiple, 0) {
		return 0, fmt.Errorf("span multiple must be positive and finite, got %v", multiple)
	}

	finite := lo.Filter(halfLives, func(h float64, _ int) bool {
		return h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
	})
	if len(finite) == 0 {
		return 0, ErrNoFiniteHalfLife
	}
	return multiple * lo.Max(finite), nil
}
