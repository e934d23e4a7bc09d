package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/tempo/internal/model"
	"github.com/existflow/tempo/internal/timesheet"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.view {
	case ViewBoard:
		content = m.renderBoard()
	case ViewWeek:
		content = m.renderWeek()
	}

	if m.mode == ModeEditCell {
		modal := m.renderEditModal()
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderBoard() string {
	proj := m.currentProject()
	if proj == nil {
		return HelpStyle.Render("\n  No projects available.")
	}

	header := HeaderStyle.Render(fmt.Sprintf("%s · Board", proj.Name))

	colWidth := (m.width - 12) / len(model.Statuses)
	if colWidth < 16 {
		colWidth = 16
	}

	columns := make([]string, 0, len(model.Statuses))
	for ci, status := range model.Statuses {
		bucket := m.cols.Bucket(status)

		title := lipgloss.NewStyle().Bold(true).Foreground(StatusColor(status)).
			Render(fmt.Sprintf("%s (%d)", status.Label(), len(bucket)))

		var body string
		body += title + "\n"
		body += lipgloss.NewStyle().Foreground(Border).Render(rule(colWidth-4)) + "\n"

		if len(bucket) == 0 {
			body += HelpStyle.Render("empty")
		}

		for ri, t := range bucket {
			cursor := "  "
			style := TaskItemStyle
			if ci == m.colCursor && ri == m.rowCursor {
				cursor = "❯ "
				style = TaskItemSelectedStyle
			}

			line := fmt.Sprintf("%s%s %s", cursor, FormatPriority(t.Priority), truncate(t.Title, colWidth-10))
			if t.IsOverdue() {
				line += WarningStyle.Render(" !")
			}
			body += style.Render(line) + "\n"
		}

		colStyle := ColumnStyle
		if ci == m.colCursor {
			colStyle = ColumnFocusedStyle
		}
		columns = append(columns, colStyle.Width(colWidth).Height(m.height-7).Render(body))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	footer := ""
	if n := len(m.cols.Unplaced); n > 0 {
		footer = "\n" + WarningStyle.Render(
			fmt.Sprintf("  %d task(s) with unrecognized status not shown", n))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, board+footer)
}

func (m Model) renderWeek() string {
	proj := m.currentProject()
	if proj == nil {
		return HelpStyle.Render("\n  No projects available.")
	}

	grid := m.grid()
	days := m.week.Days()

	header := HeaderStyle.Render(fmt.Sprintf("%s · Timesheet  %s", proj.Name, m.week.Label()))

	const nameW = 14
	const cellW = 7

	// Day header row
	row := fmt.Sprintf("%-*s", nameW, "")
	for _, d := range days {
		label := d.Format("Mon 02")
		if model.SameDay(d, time.Now()) {
			label = TotalStyle.Render(label)
		}
		row += fmt.Sprintf("%*s", cellW, label)
	}
	row += fmt.Sprintf("%*s", cellW+2, "Total")
	out := row + "\n"
	out += lipgloss.NewStyle().Foreground(Border).Render(rule(nameW+8*cellW+2)) + "\n"

	// One row per project
	for pi, p := range m.projects {
		row = fmt.Sprintf("%-*s", nameW, truncate(p.Name, nameW-1))
		for di, d := range days {
			cell := timesheet.FormatHours(grid.HoursAt(p.ID, d))
			style := CellStyle
			if pi == m.gridRow && di == m.dayCursor {
				style = CellSelectedStyle
			}
			row += style.Render(fmt.Sprintf("%*s", cellW-2, cell))
		}
		row += TotalStyle.Render(fmt.Sprintf("%*s", cellW+2, timesheet.FormatHours(grid.ProjectTotal(p.ID))))
		out += row + "\n"
	}

	// Totals row
	out += lipgloss.NewStyle().Foreground(Border).Render(rule(nameW+8*cellW+2)) + "\n"
	row = fmt.Sprintf("%-*s", nameW, "Total")
	for _, d := range days {
		row += TotalStyle.Render(fmt.Sprintf("%*s", cellW, timesheet.FormatHours(grid.DailyTotal(d))))
	}
	row += TotalStyle.Render(fmt.Sprintf("%*s", cellW+2, timesheet.FormatHours(grid.WeekTotal())))
	out += row + "\n"

	return lipgloss.JoinVertical(lipgloss.Left, header, out)
}

func (m Model) renderEditModal() string {
	proj := m.projects[m.gridRow]
	day := m.week.Days()[m.dayCursor]

	title := HeaderStyle.Render(fmt.Sprintf("%s  %s", proj.Name, day.Format("Mon Jan 2")))
	hint := HelpStyle.Render("enter save · esc cancel · 0 clears")
	return ModalStyle.Render(title + "\n\n" + m.input.View() + "\n\n" + hint)
}

func (m Model) renderHelp() string {
	lines := []string{
		HeaderStyle.Render("Tempo · Keys"),
		"",
		"  tab        switch board / timesheet",
		"  ↑↓←→ hjkl  move cursor",
		"  p          next project",
		"  [ ] t      previous / next / current week",
		"  enter      edit grid cell",
		"  H L        move task to adjacent column",
		"  1-4        move task to column",
		"  r          refresh from server",
		"  q          quit",
		"",
		HelpStyle.Render("  press any key to close"),
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		if m.view == ViewBoard {
			left = fmt.Sprintf("%d tasks", m.cols.Placed())
		} else {
			left = fmt.Sprintf("%d entries", m.entries.Len())
		}
	}
	right := "? help · q quit"
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(m.width).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}
