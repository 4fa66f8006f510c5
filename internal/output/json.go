package output

import (
	"time"

	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// AlarmOutput represents an alarm in JSON output.
type AlarmOutput struct {
	ID          int64  `json:"id"`
	Time        string `json:"time"`
	Days        string `json:"days"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// NewAlarmOutput creates an AlarmOutput from an Alarm.
func NewAlarmOutput(a *model.Alarm) *AlarmOutput {
	return &AlarmOutput{
		ID:          a.ID,
		Time:        a.Time,
		Days:        a.Days,
		Description: a.Description,
		IsActive:    a.IsActive,
	}
}

// AlarmsResponse represents the list output in JSON.
type AlarmsResponse struct {
	Alarms []*AlarmOutput `json:"alarms"`
	Count  int            `json:"count"`
	Search string         `json:"search,omitempty"`
	Status string         `json:"status"`
}

// NewAlarmsResponse creates an AlarmsResponse for a query result.
func NewAlarmsResponse(alarms []*model.Alarm, search string, status model.StatusFilter) *AlarmsResponse {
	outputs := make([]*AlarmOutput, len(alarms))
	for i, a := range alarms {
		outputs[i] = NewAlarmOutput(a)
	}
	return &AlarmsResponse{
		Alarms: outputs,
		Count:  len(alarms),
		Search: search,
		Status: status.Param(),
	}
}

// AlarmResponse represents the output of a single-record mutation.
type AlarmResponse struct {
	Status string       `json:"status"`
	Alarm  *AlarmOutput `json:"alarm"`
}

// HealthResponse represents the doctor output in JSON.
type HealthResponse struct {
	Status     string   `json:"status"`
	Database   string   `json:"database"`
	AlarmCount int      `json:"alarm_count"`
	Table      bool     `json:"table_present"`
	CheckedAt  string   `json:"checked_at"`
	Problems   []string `json:"problems,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintAlarms outputs a query result in JSON format.
func (j *JSONFormatter) PrintAlarms(alarms []*model.Alarm, search string, status model.StatusFilter) error {
	return j.JSON(NewAlarmsResponse(alarms, search, status))
}

// PrintAlarm outputs a mutated alarm; status is "created", "updated" or "deleted".
func (j *JSONFormatter) PrintAlarm(status string, a *model.Alarm) error {
	return j.JSON(AlarmResponse{Status: status, Alarm: NewAlarmOutput(a)})
}

// PrintHealth outputs an integrity report in JSON format.
func (j *JSONFormatter) PrintHealth(report *storage.HealthReport) error {
	resp := HealthResponse{
		Status:     "ok",
		Database:   report.Path,
		AlarmCount: report.AlarmCount,
		Table:      report.TablePresent,
		CheckedAt:  report.CheckedAt.Format(time.RFC3339),
		Problems:   report.Problems,
	}
	if !report.Healthy {
		resp.Status = "corrupted"
	}
	return j.JSON(resp)
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}
