package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/locvowork/employee_directory/internal/controller"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/query"
	"github.com/locvowork/employee_directory/internal/validation"
)

// Column widths of the employee table.
var columnWidths = []int{4, 12, 12, 30, 12, 10}

var columnTitles = []string{"ID", "First Name", "Last Name", "Email", "Department", "Role"}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Employee Directory"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render(m.help.ShortHelpView(m.keys.formHelp())))
		return b.String()
	case modeConfirm:
		b.WriteString(m.listView())
		b.WriteString("\n")
		prompt := fmt.Sprintf("%s\n%s", controller.DeletePrompt, m.styles.faint.Render("(y/n)"))
		b.WriteString(m.styles.box.Render(prompt))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.listView())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.accent.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.ShortHelpView(m.keys.listHelp())))
	return b.String()
}

func (m Model) listView() string {
	view := m.ctrl.View(m.ctx)
	p := view.Params
	var b strings.Builder

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(m.styles.faint.Render("Search: " + orDash(p.Search)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.faint.Render(querySummary(p)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.header.Render(formatRow(columnTitles)))
	b.WriteString("\n")

	if view.Result.Empty() {
		b.WriteString(m.styles.faint.Render(controller.EmptyResultMessage))
		b.WriteString("\n")
		return b.String()
	}

	for i, e := range view.Result.Items {
		line := formatRow(employeeCells(e))
		if i == m.cursor && m.mode != modeSearch {
			b.WriteString(m.styles.selected.Render(line))
		} else {
			b.WriteString(m.styles.row.Render(line))
		}
		b.WriteString("\n")
	}

	from, to := view.Result.Window()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Showing %d to %d of %d employees", from, to, view.Result.TotalMatching))
	b.WriteString("  ")
	b.WriteString(m.pager(view))
	b.WriteString("\n")
	return b.String()
}

func (m Model) pager(view controller.ListView) string {
	parts := make([]string, 0, len(view.PageLinks))
	for _, n := range view.PageLinks {
		label := strconv.Itoa(n)
		if n == view.Result.Page {
			parts = append(parts, m.styles.accent.Render("["+label+"]"))
			continue
		}
		parts = append(parts, m.styles.faint.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m Model) formView() string {
	fv, ok := m.ctrl.Form()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(fv.Title))
	b.WriteString("\n\n")

	for i, field := range validation.Fields {
		label := fmt.Sprintf("%-11s", fieldLabels[field])
		if i == m.focus {
			label = m.styles.accent.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		if i < len(m.inputs) {
			b.WriteString(m.inputs[i].View())
		}
		b.WriteString("\n")
		if msg, bad := fv.Errors[field]; bad {
			b.WriteString(strings.Repeat(" ", 12))
			b.WriteString(m.styles.err.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if fv.Submitting {
		b.WriteString(m.styles.pending.Render(fv.SubmitLabel))
	} else {
		b.WriteString(m.styles.accent.Render("[ " + fv.SubmitLabel + " ]"))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.err.Render(m.status))
	}
	return m.styles.box.Render(b.String())
}

func querySummary(p query.Params) string {
	sort := "none"
	if p.SortKey != query.SortNone {
		sort = p.SortKey.String() + " " + p.SortOrder.String()
	}
	return fmt.Sprintf("Department: %s  Role: %s  Sort: %s  Per page: %d",
		orAll(p.Filters.Department), orAll(p.Filters.Role), sort, p.PageSize)
}

func employeeCells(e domain.Employee) []string {
	return []string{
		strconv.Itoa(e.ID),
		e.FirstName,
		e.LastName,
		e.Email,
		string(e.Department),
		string(e.Role),
	}
}

func formatRow(cells []string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		w := columnWidths[i]
		if lipgloss.Width(c) > w {
			c = truncate(c, w)
		}
		if pad := w - lipgloss.Width(c); pad > 0 {
			c += strings.Repeat(" ", pad)
		}
		parts[i] = c
	}
	return strings.Join(parts, " ")
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
