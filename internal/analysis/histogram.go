package analysis

import (
	"fmt"
	"math"
	"sort"

	"gotips/domain/core"
	"gotips/domain/tips"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram holds equal-width bin counts of one numeric column, split by an
// optional hue column. Edges has len(bins)+1 entries.
type Histogram struct {
	Column    tips.Column       `json:"column"`
	HueColumn tips.Column       `json:"hue_column,omitempty"`
	Edges     []float64         `json:"edges"`
	Series    []HistogramSeries `json:"series"`
}

// HistogramSeries is the bin counts of one hue category. Without a hue
// column there is a single series named "all".
type HistogramSeries struct {
	Category string `json:"category"`
	Counts   []int  `json:"counts"`
}

// Histogram bins the defined values of col into bins equal-width bins over the
// view's [min, max]. A degenerate range is widened by 0.5 on each side. An
// empty view gives no edges and no series.
func (v *View) Histogram(col tips.Column, bins int, hueCol tips.Column) (*Histogram, error) {
	if !col.IsNumeric() || (hueCol != "" && !hueCol.IsCategorical()) {
		return nil, core.ErrUnknownColumn
	}
	if bins <= 0 {
		return nil, fmt.Errorf("%w: %d histogram bins", core.ErrInvalidArgument, bins)
	}

	h := &Histogram{Column: col, HueColumn: hueCol, Edges: []float64{}, Series: []HistogramSeries{}}
	values := v.Values(col)
	if len(values) == 0 {
		return h, nil
	}
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	h.Edges = floats.Span(make([]float64, bins+1), lo, hi)
	h.Edges[bins] = hi

	// stat.Histogram bins are half-open, so the last divider sits just above
	// the maximum to keep it in the last bin.
	dividers := append([]float64(nil), h.Edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	byCategory := map[string][]float64{}
	for _, r := range v.rows {
		x, ok := r.Numeric(col)
		if !ok {
			continue
		}
		category := "all"
		if hueCol != "" {
			if category, ok = r.Category(hueCol); !ok {
				continue
			}
		}
		byCategory[category] = append(byCategory[category], x)
	}

	for _, c := range sortedCategories(hueCol, byCategory) {
		xs := byCategory[c]
		sort.Float64s(xs)
		h.Series = append(h.Series, HistogramSeries{
			Category: c,
			Counts:   binCounts(stat.Histogram(nil, dividers, xs, nil)),
		})
	}
	return h, nil
}

func binCounts(weights []float64) []int {
	counts := make([]int, len(weights))
	for i, w := range weights {
		counts[i] = int(w)
	}
	return counts
}
