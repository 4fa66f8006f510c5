// Package validate provides field validators for alarm records.
package validate

import (
	"fmt"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/parser"
)

// Clock validates a time of day in strict 24-hour HH:MM form. When the
// input can be normalised the returned error suggests the canonical form.
func Clock(value string) error {
	if parser.IsClock(value) {
		return nil
	}

	suggestion := "Use 24-hour HH:MM format, e.g. '07:30' or '23:59'."
	if fixed := parser.SuggestClock(value); fixed != "" {
		suggestion = fmt.Sprintf("Did you mean '%s'?", fixed)
	}

	if value == "" {
		return &errors.UserError{
			Message:    "Time cannot be empty",
			Suggestion: suggestion,
			Field:      "time",
			Err:        errors.ErrInvalidTime,
		}
	}
	return &errors.UserError{
		Message:    "Invalid time format",
		Suggestion: suggestion,
		Field:      "time",
		Value:      value,
		Err:        errors.ErrInvalidTime,
	}
}

// Alarm validates a record before it is written. Days and description
// are free text; only the time is checked.
func Alarm(a *model.Alarm) error {
	return Clock(a.Time)
}
