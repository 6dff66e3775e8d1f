package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is returned when a CurveRequest fails validation
var ErrInvalidRequest = errors.New("invalid curve request")

// MaxInitialActivity is the upper bound of each initial activity input
const MaxInitialActivity = 200

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timeunit", func(fl validator.FieldLevel) bool {
		return TimeUnit(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("activityunit", func(fl validator.FieldLevel) bool {
		return ActivityUnit(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("activity", func(fl validator.FieldLevel) bool {
		a := fl.Field().Float()
		return a >= 0 && a <= MaxInitialActivity
	})
	return v
}

// CurveRequest is the complete user input of one computation.
// Either Pair or Chain selects the nuclides; either TargetDate/TargetTime or
// Elapsed selects the query time.
type CurveRequest struct {
	Pair              string       `json:"pair,omitempty" validate:"required_without=Chain"`
	Chain             NuclideChain `json:"chain,omitempty" validate:"omitempty,min=1,dive,required"`
	InitialActivities []float64    `json:"initial_activities" validate:"required,min=1,dive,activity"`
	ActivityUnit      ActivityUnit `json:"activity_unit" validate:"required,activityunit"`
	TimeUnit          TimeUnit     `json:"time_unit" validate:"required,timeunit"`
	MeasuredDate      time.Time    `json:"measured_date"`
	MeasuredTime      string       `json:"measured_time" validate:"required"`
	TargetDate        *time.Time   `json:"target_date,omitempty"`
	TargetTime        string       `json:"target_time,omitempty" validate:"required_with=TargetDate"`
	Elapsed           *float64     `json:"elapsed,omitempty" validate:"omitempty,gte=0"`
}

// Validate checks field bounds and the either/or rules.
// Bounds that depend on the catalog (elapsed ≤ max span, activities per
// chain member) are checked when the request is computed.
func (r *CurveRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	if r.MeasuredDate.IsZero() {
		return fmt.Errorf("%w: measured_date is required", ErrInvalidRequest)
	}
	if r.TargetDate == nil && r.Elapsed == nil {
		return fmt.Errorf("%w: either a target date and time or an elapsed time is required", ErrInvalidRequest)
	}
	if r.TargetDate != nil && r.Elapsed != nil {
		return fmt.Errorf("%w: give either a target date and time or an elapsed time, not both", ErrInvalidRequest)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := toSnakeCase(e.Field())

	switch e.Tag() {
	case "required", "required_without", "required_with":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "timeunit":
		return fmt.Sprintf("%s must be one of: d h m s", field)
	case "activity":
		return fmt.Sprintf("%s must be between 0 and %v", field, MaxInitialActivity)
	case "activityunit":
		return fmt.Sprintf("%s must be one of: µCi mCi Ci Bq kBq MBq", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
