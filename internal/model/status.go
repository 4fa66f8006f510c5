package model

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/alarmbook/internal/errors"
)

// StatusFilter restricts a listing by the is_active column.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusActive
	StatusInactive
)

// StatusFilters returns the filters in display order.
func StatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusActive, StatusInactive}
}

// String returns the display label.
func (s StatusFilter) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	default:
		return "All"
	}
}

// Param returns the lower-case name accepted by ParseStatusFilter.
func (s StatusFilter) Param() string {
	return strings.ToLower(s.String())
}

// Next cycles All -> Active -> Inactive -> All.
func (s StatusFilter) Next() StatusFilter {
	return (s + 1) % 3
}

// Active returns the is_active value the filter matches, or nil for All.
func (s StatusFilter) Active() *bool {
	var v bool
	switch s {
	case StatusActive:
		v = true
	case StatusInactive:
		v = false
	default:
		return nil
	}
	return &v
}

// ParseStatusFilter parses "all", "active" or "inactive" (case-insensitive).
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "active", "on":
		return StatusActive, nil
	case "inactive", "off":
		return StatusInactive, nil
	}
	return StatusAll, fmt.Errorf("%w: %q", errors.ErrInvalidStatus, s)
}

// Set implements pflag.Value.
func (s *StatusFilter) Set(v string) error {
	parsed, err := ParseStatusFilter(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *StatusFilter) Type() string {
	return "status"
}
