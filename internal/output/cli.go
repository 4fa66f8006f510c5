package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleTime = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleInactive = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// AlarmHeaders are the column headers of the alarm table.
var AlarmHeaders = []string{"ID", "TIME", "DAYS", "DESCRIPTION", "ACTIVE"}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// AlarmColumns returns the table cells for an alarm.
func AlarmColumns(a *model.Alarm) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.Time,
		a.Days,
		a.Description,
		a.StatusLabel(),
	}
}

// PrintAlarms prints a query result as a table, or as tab-separated lines
// in plain mode.
func (c *CLIFormatter) PrintAlarms(alarms []*model.Alarm) {
	if c.Format == FormatPlain {
		for _, a := range alarms {
			c.Println(strings.Join(AlarmColumns(a), "\t"))
		}
		return
	}

	if len(alarms) == 0 {
		c.Muted("No alarms found.")
		c.Muted("Use 'alarmbook add --time HH:MM' to create one.")
		return
	}

	rows := make([]TableRow, len(alarms))
	for i, a := range alarms {
		rows[i] = TableRow{Columns: AlarmColumns(a), Dim: !a.IsActive}
	}
	c.PrintTable(AlarmHeaders, rows)
	c.Println()
	c.Muted(pluralize(len(alarms), "alarm"))
}

// PrintAlarm prints a single alarm after a mutation.
func (c *CLIFormatter) PrintAlarm(verb string, a *model.Alarm) {
	if c.Format == FormatPlain {
		c.Println(strings.Join(AlarmColumns(a), "\t"))
		return
	}

	c.Success(fmt.Sprintf("%s alarm #%d", verb, a.ID))
	c.Printf("  Time: %s\n", c.render(styleTime, a.Time))
	c.Printf("  Days: %s\n", a.Days)
	if a.Description != "" {
		c.Printf("  Description: %s\n", a.Description)
	}
	c.Printf("  Active: %s\n", a.StatusLabel())
}

// PrintHealth prints an integrity report.
func (c *CLIFormatter) PrintHealth(report *storage.HealthReport) {
	c.Title("Database")
	c.Printf("  Path: %s\n", report.Path)
	if report.Healthy {
		if report.TablePresent {
			c.Printf("  Alarms: %d\n", report.AlarmCount)
		} else {
			c.Printf("  Alarms: none (table not created yet)\n")
		}
		c.Success("Integrity check passed")
		return
	}
	c.Error("Integrity check failed")
	for _, p := range report.Problems {
		c.Printf("  - %s\n", p)
	}
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
	Dim     bool
}

// PrintTable prints a simple aligned table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	line := func(cols []string) string {
		var sb strings.Builder
		for i, col := range cols {
			if i >= len(widths) {
				break
			}
			sb.WriteString(col)
			sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(col)+2))
		}
		return strings.TrimRight(sb.String(), " ")
	}

	c.Println(c.render(styleBold, line(headers)))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	c.Println(strings.Join(sep, "  "))

	for _, row := range rows {
		text := line(row.Columns)
		if row.Dim {
			text = c.render(styleInactive, text)
		}
		c.Println(text)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
