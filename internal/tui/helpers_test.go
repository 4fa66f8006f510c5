package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

// key builds the key message bubbletea would deliver for s.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func setupRepo(t *testing.T) *storage.AlarmRepo {
	t.Helper()
	db, err := storage.Open(storage.Options{Path: filepath.Join(t.TempDir(), storage.DatabaseFile)})
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	t.Cleanup(func() { db.Close() })
	return storage.NewAlarmRepo(db)
}

func fixtures() []*model.Alarm {
	return []*model.Alarm{
		{Time: "07:30", Days: "Daily", Description: "Wake up", IsActive: true},
		{Time: "06:00", Days: "Mon,Wed,Fri", Description: "Gym", IsActive: true},
		{Time: "22:15", Days: "Sun", Description: "Take out bins", IsActive: false},
		{Time: "12:00", Days: "Weekdays", Description: "", IsActive: false},
	}
}

func seed(t *testing.T, repo *storage.AlarmRepo, alarms ...*model.Alarm) []*model.Alarm {
	t.Helper()
	for _, a := range alarms {
		require.NoError(t, repo.Save(context.Background(), a))
	}
	return alarms
}

func descriptions(alarms []*model.Alarm) []string {
	out := make([]string, len(alarms))
	for i, a := range alarms {
		out[i] = a.Description
	}
	return out
}
