package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/types"
)

var variantColors = map[board.Variant]lipgloss.Color{
	board.VariantWarning:   lipgloss.Color("214"),
	board.VariantSecondary: lipgloss.Color("245"),
	board.VariantDefault:   lipgloss.Color("39"),
	board.VariantOutline:   lipgloss.Color("252"),
	board.VariantSuccess:   lipgloss.Color("42"),
}

type renderer struct {
	r       *lipgloss.Renderer
	heading lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		r:       r,
		heading: r.NewStyle().Bold(true).MarginTop(1),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (rd *renderer) badge(v board.Variant, text string) string {
	return rd.r.NewStyle().Foreground(variantColors[v]).Render(text)
}

func (rd *renderer) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(rd.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return rd.header
			}
			return rd.cell
		}).
		String()
}

func (rd *renderer) board(v types.BoardView) string {
	var b strings.Builder
	columns := []struct {
		title   string
		records []board.Record
	}{
		{"Shortlisted", v.Shortlisted},
		{"Assigned", v.Assigned},
		{"Completed", v.Completed},
	}
	for _, col := range columns {
		b.WriteString(rd.heading.Render(fmt.Sprintf("%s (%d)", col.title, len(col.records))))
		b.WriteString("\n")
		if len(col.records) == 0 {
			continue
		}
		rows := make([][]string, 0, len(col.records))
		for _, r := range col.records {
			rows = append(rows, []string{
				r.PlayerName,
				r.Club,
				strings.Join(r.Positions, "/"),
				r.AssignedTo,
				rd.badge(r.Variant, r.Label),
				string(r.Priority),
			})
		}
		b.WriteString(rd.table([]string{"Player", "Club", "Pos", "Assigned To", "Status", "Priority"}, rows))
		b.WriteString("\n")
	}
	if v.Dropped > 0 || v.UnresolvedScouts > 0 {
		fmt.Fprintf(&b, "\n%d records dropped, %d with unknown scouts\n", v.Dropped, v.UnresolvedScouts)
	}
	return b.String()
}

func (rd *renderer) performance(v types.PerformanceView) string {
	rows := make([][]string, 0, len(v.Scouts))
	for _, p := range v.Scouts {
		rows = append(rows, []string{
			p.DisplayName,
			fmt.Sprint(p.Assignments),
			fmt.Sprint(p.Completed),
			fmt.Sprint(p.InProgress),
			fmt.Sprint(p.Pending),
			fmt.Sprint(p.ReportsSubmitted),
			fmt.Sprintf("%.0f%%", p.CompletionRate*100),
			fmt.Sprintf("%.1f", p.AvgCompletionHours),
		})
	}
	return rd.heading.Render(fmt.Sprintf("Scouts (%d)", len(rows))) + "\n" +
		rd.table([]string{"Scout", "Assignments", "Completed", "In Progress", "Pending", "Reports", "Rate", "Avg Hours"}, rows) + "\n"
}
