package model

import "fmt"

// Default field values for a freshly created alarm.
const (
	DefaultTime = "08:00"
	DefaultDays = "Daily"
)

// Alarm mirrors one row of the alarms table.
//
// An ID of zero means the alarm has not been saved yet; the store assigns
// the ID on first save and it never changes afterwards. Time is expected
// to be HH:MM but is only validated before a write from the UI or CLI.
type Alarm struct {
	ID          int64  `json:"id"`
	Time        string `json:"time"`
	Days        string `json:"days"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// NewAlarm creates an unsaved alarm with default field values.
func NewAlarm() *Alarm {
	return &Alarm{
		Time:     DefaultTime,
		Days:     DefaultDays,
		IsActive: true,
	}
}

// IsNew returns true if the alarm has never been saved.
func (a *Alarm) IsNew() bool {
	return a.ID == 0
}

// Clone returns an independent copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	c := *a
	return &c
}

// StatusLabel returns "Yes" or "No" for the active column.
func (a *Alarm) StatusLabel() string {
	if a.IsActive {
		return "Yes"
	}
	return "No"
}

// String returns a short single-line description for logs and prompts.
func (a *Alarm) String() string {
	if a.Description == "" {
		return fmt.Sprintf("#%d %s (%s)", a.ID, a.Time, a.Days)
	}
	return fmt.Sprintf("#%d %s (%s) %s", a.ID, a.Time, a.Days, a.Description)
}
