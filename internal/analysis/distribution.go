package analysis

import (
	"fmt"
	"math"
	"sort"

	"gotips/domain/core"
	"gotips/domain/tips"

	"github.com/montanaflynn/stats"
)

// MinQuantileRows is the smallest number of values for which quartiles are
// considered stable enough to flag outliers.
const MinQuantileRows = 4

// OutlierSet is the result of the interquartile-range rule. When Defined is
// false the view had too few values and every other field is zero.
type OutlierSet struct {
	Defined bool    `json:"defined"`
	Column  string  `json:"column"`
	Q1      float64 `json:"q1"`
	Q3      float64 `json:"q3"`
	IQR     float64 `json:"iqr"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	RowIDs  []int   `json:"row_ids"`
}

// Len returns the number of flagged rows.
func (o OutlierSet) Len() int {
	return len(o.RowIDs)
}

// Contains reports whether a row id was flagged.
func (o OutlierSet) Contains(id int) bool {
	i := sort.SearchInts(o.RowIDs, id)
	return i < len(o.RowIDs) && o.RowIDs[i] == id
}

// QuantileOutliers flags rows whose value lies below Q(lowQ) - k*IQR or above
// Q(highQ) + k*IQR. Rows with an undefined value are never flagged.
func (v *View) QuantileOutliers(col tips.Column, lowQ, highQ, k float64) (OutlierSet, error) {
	if !col.IsNumeric() {
		return OutlierSet{}, core.ErrUnknownColumn
	}
	if lowQ < 0 || highQ > 1 || lowQ > highQ || k < 0 {
		return OutlierSet{}, fmt.Errorf("%w: quantiles [%g, %g], k=%g", core.ErrInvalidArgument, lowQ, highQ, k)
	}

	values := v.Values(col)
	if len(values) < MinQuantileRows {
		return OutlierSet{Column: string(col)}, nil
	}
	sorted := sortedCopy(values)
	q1 := quantileSorted(sorted, lowQ)
	q3 := quantileSorted(sorted, highQ)
	iqr := q3 - q1

	set := OutlierSet{
		Defined: true,
		Column:  string(col),
		Q1:      q1,
		Q3:      q3,
		IQR:     iqr,
		Lower:   q1 - k*iqr,
		Upper:   q3 + k*iqr,
		RowIDs:  []int{},
	}
	for _, r := range v.rows {
		x, ok := r.Numeric(col)
		if ok && (x < set.Lower || x > set.Upper) {
			set.RowIDs = append(set.RowIDs, r.ID)
		}
	}
	return set, nil
}

// Quantile returns the q-th quantile of a numeric column using linear
// interpolation between closest ranks.
func (v *View) Quantile(col tips.Column, q float64) Metric {
	values := v.Values(col)
	if len(values) == 0 || q < 0 || q > 1 {
		return Undefined
	}
	return Defined(quantileSorted(sortedCopy(values), q))
}

// quantileSorted interpolates at position q*(n-1) of an ascending slice.
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// ColumnDescription is one column of the describe table.
type ColumnDescription struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Metric `json:"mean"`
	Std    Metric `json:"std"`
	Min    Metric `json:"min"`
	Q25    Metric `json:"25%"`
	Median Metric `json:"50%"`
	Q75    Metric `json:"75%"`
	Max    Metric `json:"max"`
}

// DescribedColumns are the numeric columns summarized by Describe.
var DescribedColumns = []tips.Column{tips.ColTotalBill, tips.ColTip, tips.ColSize, tips.ColTipPercentage}

// Describe summarizes each described column. Std is the sample standard
// deviation and is Undefined below two values.
func (v *View) Describe() []ColumnDescription {
	out := make([]ColumnDescription, 0, len(DescribedColumns))
	for _, col := range DescribedColumns {
		out = append(out, describeValues(string(col), v.Values(col)))
	}
	return out
}

func describeValues(name string, values []float64) ColumnDescription {
	d := ColumnDescription{Column: name, Count: len(values)}
	if len(values) == 0 {
		return d
	}
	sorted := sortedCopy(values)

	if mean, err := stats.Mean(values); err == nil {
		d.Mean = Defined(mean)
	}
	if len(values) > 1 {
		if std, err := stats.StandardDeviationSample(values); err == nil {
			d.Std = Defined(std)
		}
	}
	if min, err := stats.Min(values); err == nil {
		d.Min = Defined(min)
	}
	if max, err := stats.Max(values); err == nil {
		d.Max = Defined(max)
	}
	d.Q25 = Defined(quantileSorted(sorted, 0.25))
	d.Median = Defined(quantileSorted(sorted, 0.5))
	d.Q75 = Defined(quantileSorted(sorted, 0.75))
	return d
}

// BoxGroup is one box of a box plot.
type BoxGroup struct {
	X          string    `json:"x"`
	Hue        string    `json:"hue,omitempty"`
	Count      int       `json:"count"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	LowerFence float64   `json:"lower_whisker"`
	UpperFence float64   `json:"upper_whisker"`
	Fliers     []float64 `json:"fliers"`
}

// BoxStats computes box plot statistics of valueCol per (xCol, hueCol) group.
// hueCol may be empty. Whiskers reach the most extreme values within 1.5 IQR
// of the box; values beyond are fliers.
func (v *View) BoxStats(valueCol, xCol, hueCol tips.Column) ([]BoxGroup, error) {
	cols := []tips.Column{xCol}
	if hueCol != "" {
		cols = append(cols, hueCol)
	}
	groups, err := v.groupValues(cols, valueCol)
	if err != nil {
		return nil, err
	}

	out := make([]BoxGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.values) == 0 {
			continue
		}
		box := boxOf(g.values)
		box.X = g.key[0]
		if len(g.key) > 1 {
			box.Hue = g.key[1]
		}
		out = append(out, box)
	}
	return out, nil
}

func boxOf(values []float64) BoxGroup {
	sorted := sortedCopy(values)
	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	box := BoxGroup{
		Count:      len(sorted),
		Q1:         q1,
		Median:     quantileSorted(sorted, 0.5),
		Q3:         q3,
		LowerFence: q1,
		UpperFence: q3,
		Fliers:     []float64{},
	}
	for _, x := range sorted {
		if x < lo || x > hi {
			box.Fliers = append(box.Fliers, x)
			continue
		}
		if x < box.LowerFence {
			box.LowerFence = x
		}
		if x > box.UpperFence {
			box.UpperFence = x
		}
	}
	return box
}

type valueGroup struct {
	key    []string
	values []float64
	rows   int
}

// groupValues collects defined values of valueCol per key tuple in display order.
func (v *View) groupValues(cols []tips.Column, valueCol tips.Column) ([]valueGroup, error) {
	if !valueCol.IsNumeric() {
		return nil, core.ErrUnknownColumn
	}
	for _, c := range cols {
		if !c.IsCategorical() {
			return nil, core.ErrUnknownColumn
		}
	}

	byKey := map[string]*valueGroup{}
	for _, r := range v.rows {
		key, ok := groupKey(r, cols)
		if !ok {
			continue
		}
		id := joinKey(key)
		g, exists := byKey[id]
		if !exists {
			g = &valueGroup{key: key}
			byKey[id] = g
		}
		g.rows++
		if x, ok := r.Numeric(valueCol); ok {
			g.values = append(g.values, x)
		}
	}

	out := make([]valueGroup, 0, len(byKey))
	for _, g := range byKey {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return keyLess(cols, out[i].key, out[j].key)
	})
	return out, nil
}
