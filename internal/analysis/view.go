// Package analysis is the filter and aggregation pipeline behind the
// dashboard. Every function is pure: it reads an immutable table and returns
// fresh values, so views can be built concurrently by independent sessions.
package analysis

import (
	"gotips/domain/tips"

	"github.com/montanaflynn/stats"
)

// View is the subset of table rows matching a selection, in source order.
type View struct {
	selection tips.Selection
	rows      []tips.Record
}

// Filter keeps rows whose day is in days and whose time is in times.
// Empty days or times give an empty view.
func Filter(table *tips.Table, days []tips.Day, times []tips.MealTime) *View {
	return FilterSelection(table, tips.Selection{Days: days, Times: times})
}

// FilterSelection is Filter over a parsed selection.
func FilterSelection(table *tips.Table, sel tips.Selection) *View {
	v := &View{selection: sel}
	for _, r := range table.Records() {
		if sel.Matches(r) {
			v.rows = append(v.rows, r)
		}
	}
	return v
}

// Selection returns the filter that produced the view.
func (v *View) Selection() tips.Selection {
	return v.selection
}

// Count returns the number of rows in the view.
func (v *View) Count() int {
	return len(v.rows)
}

// IsEmpty reports an empty view.
func (v *View) IsEmpty() bool {
	return len(v.rows) == 0
}

// Rows returns a copy of the view's rows.
func (v *View) Rows() []tips.Record {
	out := make([]tips.Record, len(v.rows))
	copy(out, v.rows)
	return out
}

// Values returns the defined values of a numeric column; rows with an
// undefined value (zero-bill tip percentages) are skipped.
func (v *View) Values(col tips.Column) []float64 {
	out := make([]float64, 0, len(v.rows))
	for _, r := range v.rows {
		if x, ok := r.Numeric(col); ok {
			out = append(out, x)
		}
	}
	return out
}

// Sum totals a numeric column; Undefined on an empty view.
func (v *View) Sum(col tips.Column) Metric {
	values := v.Values(col)
	if len(values) == 0 {
		return Undefined
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return Undefined
	}
	return Defined(sum)
}

// Mean averages the defined values of a numeric column.
func (v *View) Mean(col tips.Column) Metric {
	mean, err := stats.Mean(v.Values(col))
	if err != nil {
		return Undefined
	}
	return Defined(mean)
}

func (v *View) SumTotalBill() Metric {
	return v.Sum(tips.ColTotalBill)
}

func (v *View) MeanTip() Metric {
	return v.Mean(tips.ColTip)
}

// MeanTipPercentage excludes rows whose percentage is undefined.
func (v *View) MeanTipPercentage() Metric {
	return v.Mean(tips.ColTipPercentage)
}
