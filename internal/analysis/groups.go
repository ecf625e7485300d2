package analysis

import (
	"gotips/domain/core"
	"gotips/domain/tips"

	"github.com/montanaflynn/stats"
)

// GroupMean is the mean of a value column within one group-key tuple.
type GroupMean struct {
	Key   []string `json:"key"`
	Mean  Metric   `json:"mean"`
	Count int      `json:"count"`
}

// GroupMean groups rows by the categories of groupCols and averages the
// defined values of valueCol in each group. Groups appear in display order of
// their key tuple; a group whose values are all undefined has an Undefined mean.
func (v *View) GroupMean(groupCols []tips.Column, valueCol tips.Column) ([]GroupMean, error) {
	if len(groupCols) == 0 {
		return nil, core.ErrUnknownColumn
	}
	groups, err := v.groupValues(groupCols, valueCol)
	if err != nil {
		return nil, err
	}

	out := make([]GroupMean, 0, len(groups))
	for _, g := range groups {
		gm := GroupMean{Key: g.key, Count: g.rows}
		if mean, err := stats.Mean(g.values); err == nil {
			gm.Mean = Defined(mean)
		}
		out = append(out, gm)
	}
	return out, nil
}

// MeanOf finds the mean of one single-column group, Undefined when absent.
func MeanOf(groups []GroupMean, category string) Metric {
	for _, g := range groups {
		if len(g.Key) == 1 && g.Key[0] == category {
			return g.Mean
		}
	}
	return Undefined
}

func groupKey(r tips.Record, cols []tips.Column) ([]string, bool) {
	key := make([]string, len(cols))
	for i, c := range cols {
		v, ok := r.Category(c)
		if !ok {
			return nil, false
		}
		key[i] = v
	}
	return key, true
}

func joinKey(key []string) string {
	id := ""
	for _, k := range key {
		id += k + "\x00"
	}
	return id
}

func keyLess(cols []tips.Column, a, b []string) bool {
	for i, c := range cols {
		ra, rb := tips.CategoryRank(c, a[i]), tips.CategoryRank(c, b[i])
		if ra != rb {
			return ra < rb
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// MeanMatrix pivots a two-column group mean into a grid for the heatmap.
// Cells without rows are Undefined.
type MeanMatrix struct {
	RowColumn   tips.Column `json:"row_column"`
	ColColumn   tips.Column `json:"col_column"`
	ValueColumn tips.Column `json:"value_column"`
	Rows        []string    `json:"rows"`
	Cols        []string    `json:"cols"`
	Cells       [][]Metric  `json:"cells"`
}

// MeanMatrix computes GroupMean over (rowCol, colCol) and unstacks it.
func (v *View) MeanMatrix(rowCol, colCol, valueCol tips.Column) (*MeanMatrix, error) {
	groups, err := v.GroupMean([]tips.Column{rowCol, colCol}, valueCol)
	if err != nil {
		return nil, err
	}

	rowSet := map[string]bool{}
	colSet := map[string]bool{}
	means := map[[2]string]Metric{}
	for _, g := range groups {
		rowSet[g.Key[0]] = true
		colSet[g.Key[1]] = true
		means[[2]string{g.Key[0], g.Key[1]}] = g.Mean
	}

	m := &MeanMatrix{
		RowColumn:   rowCol,
		ColColumn:   colCol,
		ValueColumn: valueCol,
		Rows:        sortedCategories(rowCol, rowSet),
		Cols:        sortedCategories(colCol, colSet),
	}
	m.Cells = make([][]Metric, len(m.Rows))
	for i, r := range m.Rows {
		m.Cells[i] = make([]Metric, len(m.Cols))
		for j, c := range m.Cols {
			m.Cells[i][j] = means[[2]string{r, c}]
		}
	}
	return m, nil
}

// Range returns the smallest and largest defined cells.
func (m *MeanMatrix) Range() (lo, hi Metric) {
	for _, row := range m.Cells {
		for _, c := range row {
			if !c.Defined {
				continue
			}
			if !lo.Defined || c.Value < lo.Value {
				lo = c
			}
			if !hi.Defined || c.Value > hi.Value {
				hi = c
			}
		}
	}
	return lo, hi
}
