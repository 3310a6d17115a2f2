package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Mavwarf/flavoricons/internal/eventlog"
	"github.com/Mavwarf/flavoricons/internal/flavor"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func renderSummary(rep flavor.Report) string {
	s := summaryOf(rep)
	parts := []string{
		okStyle.Render(fmt.Sprintf("%d tinted", s.Tinted)),
		okStyle.Render(fmt.Sprintf("%d copied", s.Copied)),
	}
	if s.Skipped > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	if s.Failed > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d failed", s.Failed)))
	}
	head := "Done! Icons generated for both stage and prod flavors."
	if s.Failed > 0 {
		head = "Finished with errors."
	}
	return head + "\n" + strings.Join(parts, dimStyle.Render(", "))
}

func actionStyle(a eventlog.Action) lipgloss.Style {
	switch a {
	case eventlog.ActionFailed:
		return failStyle
	case eventlog.ActionSkipped:
		return warnStyle
	default:
		return okStyle
	}
}

func renderHistory(entries []eventlog.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "FLAVOR", "DENSITY", "ACTION", "OUTPUT", "SHA256").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			s := lipgloss.NewStyle().Padding(0, 1)
			if col == 3 && row >= 0 && row < len(entries) {
				s = actionStyle(entries[row].Action).Padding(0, 1)
			}
			return s
		})

	for _, e := range entries {
		out := e.Output
		if e.Action == eventlog.ActionSkipped {
			out = e.Source
		}
		sum := e.SHA256
		if len(sum) > 12 {
			sum = sum[:12]
		}
		if e.Error != "" {
			sum = e.Error
		}
		fl := e.Flavor
		if fl == "" {
			fl = "-"
		}
		t.Row(e.Time.Local().Format("2006-01-02 15:04:05"), fl, e.Density, string(e.Action), out, sum)
	}
	return t.Render()
}
