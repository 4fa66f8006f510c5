package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/validate"
)

// FormState is the lifecycle state of the edit form.
type FormState int

const (
	FormOpen FormState = iota
	FormValidating
	FormSaved
	FormCancelled
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormValidating:
		return "validating"
	case FormSaved:
		return "saved"
	case FormCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Closed reports whether the form has reached a terminal state.
func (s FormState) Closed() bool {
	return s == FormSaved || s == FormCancelled
}

// AlarmSaver persists a record on confirm.
type AlarmSaver interface {
	Save(ctx context.Context, a *model.Alarm) error
}

// Focus positions inside the form.
const (
	focusTime = iota
	focusDays
	focusDescription
	focusStatus
	focusSave
	focusCount
)

// FormModel is the modal add/edit dialog.
type FormModel struct {
	store  AlarmSaver
	alarm  *model.Alarm
	inputs []textinput.Model
	active bool
	focus  int
	state  FormState

	// message is the last validation failure shown under the fields.
	message string
	// err is a storage failure; it ends the UI.
	err error
}

// NewForm opens a form for a. A nil alarm starts a new record with the
// default values. The caller's record is never modified; the saved copy
// is available from Alarm.
func NewForm(store AlarmSaver, a *model.Alarm) *FormModel {
	if a == nil {
		a = model.NewAlarm()
	} else {
		a = a.Clone()
	}

	m := &FormModel{
		store:  store,
		alarm:  a,
		inputs: make([]textinput.Model, 3),
		active: a.IsActive,
		state:  FormOpen,
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Prompt = ""
		switch i {
		case focusTime:
			t.Placeholder = model.DefaultTime
			t.SetValue(orDefault(a.Time, model.DefaultTime))
			t.Focus()
		case focusDays:
			t.Placeholder = "Mon,Wed,Fri"
			t.SetValue(orDefault(a.Days, model.DefaultDays))
		case focusDescription:
			t.Placeholder = "optional"
			t.SetValue(a.Description)
		}
		m.inputs[i] = t
	}

	return m
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// State returns the form state.
func (m *FormModel) State() FormState { return m.state }

// Alarm returns the working record. After FormSaved it carries the stored id.
func (m *FormModel) Alarm() *model.Alarm { return m.alarm }

// Message returns the current validation message, if any.
func (m *FormModel) Message() string { return m.message }

// Err returns the storage error that aborted the save, if any.
func (m *FormModel) Err() error { return m.err }

// Init starts the cursor blink.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message while the form is open.
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if m.state.Closed() {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		m.state = FormCancelled
		return m, nil

	case "ctrl+s":
		m.confirm()
		return m, nil

	case "tab", "down":
		return m, m.setFocus(m.focus + 1)

	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)

	case "enter":
		if m.focus == focusSave {
			m.confirm()
			return m, nil
		}
		return m, m.setFocus(m.focus + 1)

	case " ", "left", "right":
		if m.focus == focusStatus {
			m.active = !m.active
			return m, nil
		}
	}

	return m, m.updateInputs(msg)
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = (i + focusCount) % focusCount

	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

// updateInputs forwards msg to the text inputs. Only the focused input
// responds.
func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// confirm validates the fields and, when they are valid, saves the record.
func (m *FormModel) confirm() {
	m.state = FormValidating

	candidate := &model.Alarm{
		ID:          m.alarm.ID,
		Time:        m.inputs[focusTime].Value(),
		Days:        m.inputs[focusDays].Value(),
		Description: m.inputs[focusDescription].Value(),
		IsActive:    m.active,
	}

	if err := validate.Alarm(candidate); err != nil {
		m.message = validationMessage(err)
		m.state = FormOpen
		if ue, ok := errors.AsUserError(err); ok && ue.Field == "time" {
			m.setFocus(focusTime)
		}
		return
	}

	m.alarm.Time = candidate.Time
	m.alarm.Days = candidate.Days
	m.alarm.Description = candidate.Description
	m.alarm.IsActive = candidate.IsActive

	ctx := logging.NewOperationContext(context.Background())
	if err := m.store.Save(ctx, m.alarm); err != nil {
		logging.LoggerFromContext(ctx).Error("save failed", logging.KeyError, err)
		m.err = err
		return
	}

	m.message = ""
	m.state = FormSaved
}

func validationMessage(err error) string {
	msg := err.Error()
	if s := errors.GetSuggestion(err); s != "" {
		msg += ". " + s
	}
	return msg
}

func (m *FormModel) title() string {
	if m.alarm.IsNew() {
		return "Add Alarm"
	}
	return fmt.Sprintf("Edit Alarm #%d", m.alarm.ID)
}

// View renders the form.
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title()))
	b.WriteString("\n\n")

	labels := []string{"Time (HH:MM)", "Days", "Description"}
	for i, label := range labels {
		b.WriteString(m.label(i, label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	status := StyleInactive.Render("( ) Inactive")
	if m.active {
		status = StyleActive.Render("(•) Active")
	}
	b.WriteString(m.label(focusStatus, "Status"))
	b.WriteString(status)
	b.WriteString("\n\n")

	button := StyleButton.Render("[ Save ]")
	if m.focus == focusSave {
		button = StyleFocusedButton.Render("[ Save ]")
	}
	b.WriteString(button)

	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(StyleError.Render(m.message))
	}

	body := StyleDialogBox.Render(b.String())
	help := HelpBar(
		helpKey{"tab", "next field"},
		helpKey{"space", "toggle status"},
		helpKey{"ctrl+s", "save"},
		helpKey{"esc", "cancel"},
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m *FormModel) label(i int, text string) string {
	if m.focus == i {
		return StyleFocusedLabel.Render(text)
	}
	return StyleLabel.Render(text)
}
