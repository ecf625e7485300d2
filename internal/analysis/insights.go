package analysis

import (
	"fmt"
	"strings"

	"gotips/domain/tips"
)

// Insights are markdown fragments derived from a snapshot.
type Insights struct {
	Highlights      []string `json:"highlights"`
	Summary         []string `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Recommendations are the fixed business recommendations shown under the
// executive summary.
var Recommendations = []string{
	"**Focus on weekend dinners**: highest volume and tips",
	"**Large parties**: tend to tip similar percentages",
	"**Optimize staffing hours**: Friday and Saturday nights are critical",
	"**Monitor consistency**: tip percentage varies noticeably between days",
	"**Smoker experience**: smokers tip a higher percentage on average",
}

// BuildInsights writes the insight sentences for s. Sentences whose inputs are
// undefined are left out of Highlights; the summary always has six lines with
// "n/a" placeholders.
func BuildInsights(s *Snapshot) Insights {
	in := Insights{
		Highlights:      []string{},
		Recommendations: append([]string(nil), Recommendations...),
	}
	add := func(format string, args ...interface{}) {
		in.Highlights = append(in.Highlights, fmt.Sprintf(format, args...))
	}

	if share, sex, ok := dominantShare(s.SexCounts, s.Metrics.Count); ok {
		add("**Insight:** %s accounts for %.1f%% of customers", sex, share)
	}
	if s.BusiestDay != "" {
		add("**Insight:** %s on %s is the busiest service", s.BusiestTime, DayLabel(tips.Day(s.BusiestDay)))
	}
	if s.BillTip.R.Defined {
		line := fmt.Sprintf("**Correlation:** %.3f, a %s relation between bill and tip", s.BillTip.R.Value, Strength(s.BillTip.R))
		if s.BillTip.PValue.Defined {
			line += fmt.Sprintf(" (p = %s, n = %d)", formatPValue(s.BillTip.PValue.Value), s.BillTip.N)
		}
		add("%s", line)
	}
	if s.HeatmapMin.Defined {
		add("**Tip percentage range:** %.1f%% to %.1f%%", s.HeatmapMin.Value, s.HeatmapMax.Value)
	}
	if s.SmokerDiff.Defined && s.SmokerDiff.Value > 0 {
		add("**Insight:** smokers tip %.1f%% more on average", s.SmokerDiff.Value)
	}
	if s.Outliers.Defined {
		add("**Outliers detected:** %d records with an atypical tip percentage", s.Outliers.Len())
	}
	if len(s.TipBySize) > 1 && s.SizeTip.R.Defined {
		add("**Size/tip correlation:** %.3f", s.SizeTip.R.Value)
	}

	in.Summary = []string{
		fmt.Sprintf("**Average bill:** %s", money(s.MeanBill)),
		fmt.Sprintf("**Average tip:** %s (%s)", money(s.Metrics.MeanTip), percent(s.Metrics.MeanTipPercentage)),
		fmt.Sprintf("**Most popular day:** %s", orNA(s.ModeDay)),
		fmt.Sprintf("**Busiest time:** %s", orNA(s.ModeTime)),
		fmt.Sprintf("**Average party size:** %s", people(s.MeanSize)),
		fmt.Sprintf("**Bill/tip correlation:** %s", s.BillTip.R.Format("%.3f")),
	}
	return in
}

// Markdown renders the insights as one markdown document.
func (in Insights) Markdown() string {
	var b strings.Builder
	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&b, "### %s\n\n", title)
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}
	section("Highlights", in.Highlights)
	section("Key findings", in.Summary)
	section("Business recommendations", in.Recommendations)
	return b.String()
}

func dominantShare(counts []CategoryCount, total int) (float64, string, bool) {
	if len(counts) == 0 || total == 0 {
		return 0, "", false
	}
	return float64(counts[0].Count) / float64(total) * 100, counts[0].Category, true
}

func formatPValue(p float64) string {
	if p < 0.001 {
		return "< 0.001"
	}
	return fmt.Sprintf("%.3f", p)
}

func money(m Metric) string {
	if !m.Defined {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", m.Value)
}

func percent(m Metric) string {
	if !m.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", m.Value)
}

func people(m Metric) string {
	if !m.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.1f people", m.Value)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

// DayLabel is the long name used in chart captions.
func DayLabel(d tips.Day) string {
	switch d {
	case tips.Thu:
		return "Thursday"
	case tips.Fri:
		return "Friday"
	case tips.Sat:
		return "Saturday"
	case tips.Sun:
		return "Sunday"
	}
	return string(d)
}
