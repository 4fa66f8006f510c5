package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrInvalidTime:   "Use 24-hour HH:MM format, e.g. '07:30' or '23:59'.",
	ErrNoSelection:   "Move the cursor onto an alarm first.",
	ErrAlarmNotFound: "Use 'alarmbook list' to see existing alarm IDs.",
	ErrInvalidStatus: "Use one of: all, active, inactive.",

	// System errors
	ErrDatabaseCorrupted: "Run 'alarmbook doctor' to check the database file.",
	ErrLockHeld:          "Another alarmbook instance is running. Close it and try again.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/alarmbook/).",
	ErrNoTerminal:        "Run alarmbook from an interactive terminal, or use the list/add/edit/delete subcommands.",
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError carrying its own suggestion wins over the sentinel table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
