package cli

import (
	"fmt"
	"io"
	"strings"

	"gotips/internal/analysis"

	"github.com/charmbracelet/lipgloss"
)

// RenderReport writes the headline metrics, insights and top tips of s.
func RenderReport(w io.Writer, s *analysis.Snapshot) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Tip Behaviour Analysis"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("days: %s  times: %s", joinDays(s), joinTimes(s))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Records", fmt.Sprintf("%d", s.Metrics.Count)),
		metric("Total billing", s.Metrics.TotalBill.Format("$%.2f")),
		metric("Average tip", s.Metrics.MeanTip.Format("$%.2f")),
		metric("Average tip %", s.Metrics.MeanTipPercentage.Format("%.1f%%")),
	))
	b.WriteString("\n\n")

	section(&b, "Highlights", s.Insights.Highlights)
	section(&b, "Key findings", s.Insights.Summary)
	section(&b, "Business recommendations", s.Insights.Recommendations)

	if s.Top != nil && len(s.Top.Rows) > 0 {
		b.WriteString(HeaderStyle.Render("Most generous tips"))
		b.WriteString("\n")
		header := make([]string, 0, len(s.Top.Columns)+1)
		header = append(header, "id")
		for _, c := range s.Top.Columns {
			header = append(header, string(c))
		}
		b.WriteString(SubtleStyle.Render(row(header)))
		b.WriteString("\n")
		for _, r := range s.Top.Rows {
			cells := []string{fmt.Sprintf("%d", r.ID)}
			for _, v := range r.Values {
				cells = append(cells, formatCell(v))
			}
			b.WriteString(row(cells))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func metric(label, value string) string {
	return MetricStyle.Render(SubtleStyle.Render(label) + "\n" + InfoStyle.Render(value))
}

func section(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString("  • ")
		b.WriteString(plain(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// plain drops markdown emphasis markers
func plain(md string) string {
	return strings.ReplaceAll(md, "**", "")
}

func row(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf("%-14s", c)
	}
	return strings.TrimRight(strings.Join(padded, " "), " ")
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "n/a"
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}

func joinDays(s *analysis.Snapshot) string {
	out := make([]string, 0, len(s.Selection.Days))
	for _, d := range s.Selection.Days {
		out = append(out, string(d))
	}
	return orNone(strings.Join(out, ","))
}

func joinTimes(s *analysis.Snapshot) string {
	out := make([]string, 0, len(s.Selection.Times))
	for _, t := range s.Selection.Times {
		out = append(out, string(t))
	}
	return orNone(strings.Join(out, ","))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
