package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/output"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

// AlarmStore is the repository surface the main view drives.
type AlarmStore interface {
	AlarmSaver
	FetchAll(ctx context.Context) ([]*model.Alarm, error)
	Search(ctx context.Context, text string) ([]*model.Alarm, error)
	FilterByStatus(ctx context.Context, active bool) ([]*model.Alarm, error)
	List(ctx context.Context, q storage.AlarmQuery) ([]*model.Alarm, error)
	Get(ctx context.Context, id int64) (*model.Alarm, error)
	Delete(ctx context.Context, a *model.Alarm) error
	Count(ctx context.Context) (int, error)
}

// ViewStateStore persists the search text and status filter between runs.
type ViewStateStore interface {
	Get() (*model.ViewState, error)
	Save(state *model.ViewState) error
}

// ViewConfig holds the dependencies of the main view.
type ViewConfig struct {
	Store      AlarmStore
	ViewStates ViewStateStore // optional
}

const (
	// chromeHeight is the number of lines around the table.
	chromeHeight = 9
	minTableRows = 3
)

// ViewModel is the main window: a table bound to the latest query result,
// a live search box and a status filter.
type ViewModel struct {
	store      AlarmStore
	viewStates ViewStateStore

	// alarms is the latest query result, replaced wholesale on every reload.
	alarms []*model.Alarm
	total  int

	table     table.Model
	search    textinput.Model
	searching bool
	status    model.StatusFilter

	form    *FormModel
	confirm *model.Alarm
	notice  string

	width  int
	height int

	// err is a storage failure; it ends the program.
	err      error
	quitting bool
}

// NewViewModel restores the saved view state and runs the first query.
func NewViewModel(cfg ViewConfig) (*ViewModel, error) {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search time, days or description"
	search.CharLimit = 128

	t := table.New(
		table.WithColumns(alarmColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(TableStyles())

	m := &ViewModel{
		store:      cfg.Store,
		viewStates: cfg.ViewStates,
		table:      t,
		search:     search,
	}

	if m.viewStates != nil {
		vs, err := m.viewStates.Get()
		if err != nil {
			logging.Warn("view state unavailable", logging.KeyError, err)
		} else {
			m.search.SetValue(vs.Search)
			m.status = vs.Status
		}
	}

	if err := m.reload(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

func alarmColumns(width int) []table.Column {
	desc := width - 4 - 7 - 20 - 8 - 10
	if desc < 12 {
		desc = 12
	}
	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Time", Width: 7},
		{Title: "Days", Width: 20},
		{Title: "Description", Width: desc},
		{Title: "Active", Width: 8},
	}
}

// Alarms returns the rows currently displayed.
func (m *ViewModel) Alarms() []*model.Alarm { return m.alarms }

// Status returns the current status filter.
func (m *ViewModel) Status() model.StatusFilter { return m.status }

// SearchText returns the current search text.
func (m *ViewModel) SearchText() string { return m.search.Value() }

// Form returns the open form, or nil.
func (m *ViewModel) Form() *FormModel { return m.form }

// Notice returns the dismissible notice text, if any.
func (m *ViewModel) Notice() string { return m.notice }

// Err returns the storage error that ended the program, if any.
func (m *ViewModel) Err() error { return m.err }

// Init starts the search cursor blink.
func (m *ViewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m *ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(alarmColumns(msg.Width))
		m.table.SetHeight(max(msg.Height-chromeHeight, minTableRows))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.form != nil:
			return m.updateForm(msg)
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.notice != "":
			m.notice = ""
			return m, nil
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.handleKeyPress(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input on the table.
func (m *ViewModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "a":
		m.form = NewForm(m.store, nil)
		return m, m.form.Init()

	case "e", "enter":
		return m.openEdit()

	case "d":
		selected := m.selected()
		if selected == nil {
			m.notice = selectionNotice()
			return m, nil
		}
		m.confirm = selected
		return m, nil

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "f":
		m.status = m.status.Next()
		return m, m.reloadOrFail()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ViewModel) openEdit() (tea.Model, tea.Cmd) {
	selected := m.selected()
	if selected == nil {
		m.notice = selectionNotice()
		return m, nil
	}

	ctx := logging.NewOperationContext(context.Background())
	a, err := m.store.Get(ctx, selected.ID)
	if errors.Is(err, errors.ErrAlarmNotFound) {
		// Removed behind our back: refresh and let the user pick again.
		return m, m.reloadOrFail()
	}
	if err != nil {
		return m.fail(err)
	}

	m.form = NewForm(m.store, a)
	return m, m.form.Init()
}

func (m *ViewModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	m.form = form

	if err := form.Err(); err != nil {
		return m.fail(err)
	}

	switch form.State() {
	case FormSaved:
		m.form = nil
		return m, m.reloadOrFail()
	case FormCancelled:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *ViewModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := m.confirm
		m.confirm = nil

		ctx := logging.NewOperationContext(context.Background())
		if err := m.store.Delete(ctx, target); err != nil {
			return m.fail(err)
		}
		return m, m.reloadOrFail()

	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m *ViewModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		if reloadCmd := m.reloadOrFail(); reloadCmd != nil {
			return m, reloadCmd
		}
	}
	return m, cmd
}

// selected returns the record under the table cursor, or nil.
func (m *ViewModel) selected() *model.Alarm {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.alarms) {
		return nil
	}
	return m.alarms[i]
}

func selectionNotice() string {
	return "Selection Error: " + errors.GetSuggestion(errors.ErrNoSelection)
}

// query runs the query matching the current search text and status filter.
func (m *ViewModel) query(ctx context.Context) ([]*model.Alarm, error) {
	text := m.search.Value()
	active := m.status.Active()

	switch {
	case text == "" && active == nil:
		return m.store.FetchAll(ctx)
	case active == nil:
		return m.store.Search(ctx, text)
	case text == "":
		return m.store.FilterByStatus(ctx, *active)
	default:
		return m.store.List(ctx, storage.AlarmQuery{Text: text, Active: active})
	}
}

// reload re-runs the current query and replaces the displayed rows.
func (m *ViewModel) reload(ctx context.Context) error {
	ctx = logging.NewOperationContext(ctx)

	alarms, err := m.query(ctx)
	if err != nil {
		return err
	}
	total, err := m.store.Count(ctx)
	if err != nil {
		return err
	}

	m.alarms = alarms
	m.total = total

	rows := make([]table.Row, len(alarms))
	for i, a := range alarms {
		rows[i] = table.Row(output.AlarmColumns(a))
	}
	m.table.SetRows(rows)
	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}

	logging.LoggerFromContext(ctx).Debug("reloaded",
		logging.KeySearch, m.search.Value(),
		logging.KeyStatus, m.status.Param(),
		logging.KeyCount, len(alarms))
	return nil
}

func (m *ViewModel) reloadOrFail() tea.Cmd {
	if err := m.reload(context.Background()); err != nil {
		_, cmd := m.fail(err)
		return cmd
	}
	return nil
}

// fail records a storage error and ends the program.
func (m *ViewModel) fail(err error) (tea.Model, tea.Cmd) {
	logging.Error("storage failure", logging.KeyError, err)
	m.err = err
	m.form = nil
	m.confirm = nil
	m.quitting = true
	return m, tea.Quit
}

// quit persists the view state and ends the program.
func (m *ViewModel) quit() (tea.Model, tea.Cmd) {
	if m.viewStates != nil {
		vs := &model.ViewState{Search: m.search.Value(), Status: m.status}
		if err := m.viewStates.Save(vs); err != nil {
			logging.Warn("failed to save view state", logging.KeyError, err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the main window, or the form when one is open.
func (m *ViewModel) View() string {
	if m.err != nil {
		return StyleError.Render(errors.FormatByCategory(m.err)) + "\n"
	}
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	var sections []string

	header := StyleTitle.Render("Alarmbook") + "  " +
		StyleSubtitle.Render(fmt.Sprintf("%d of %d alarms  •  filter: %s", len(m.alarms), m.total, m.status))
	sections = append(sections, header, m.search.View(), m.table.View())

	switch {
	case m.confirm != nil:
		sections = append(sections, StyleWarning.Render(
			fmt.Sprintf("Delete alarm %s? (y/n)", m.confirm)))
	case m.notice != "":
		sections = append(sections, StyleNoticeBox.Render(m.notice+"\n"+StyleSubtitle.Render("press any key")))
	case len(m.alarms) == 0:
		sections = append(sections, StyleSubtitle.Render(emptyMessage(m.search.Value(), m.status)))
	}

	if m.searching {
		sections = append(sections, HelpBar(
			helpKey{"enter", "done"},
			helpKey{"esc", "back to table"},
		))
	} else {
		sections = append(sections, HelpBar(
			helpKey{"a", "add"},
			helpKey{"e", "edit"},
			helpKey{"d", "delete"},
			helpKey{"/", "search"},
			helpKey{"f", "filter"},
			helpKey{"q", "quit"},
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func emptyMessage(search string, status model.StatusFilter) string {
	if search == "" && status == model.StatusAll {
		return "No alarms yet. Press 'a' to add one."
	}
	var parts []string
	if search != "" {
		parts = append(parts, fmt.Sprintf("search %q", search))
	}
	if status != model.StatusAll {
		parts = append(parts, "filter "+strings.ToLower(status.String()))
	}
	return "No alarms match " + strings.Join(parts, " and ") + "."
}
