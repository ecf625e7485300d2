package analysis

import (
	"sort"

	"gotips/domain/core"
	"gotips/domain/tips"
)

// CategoryCount is one bar or pie slice.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ValueCounts counts each category of col, most frequent first; ties follow
// the column's display order. Rows without a category (unlabeled bill
// segments) are not counted.
func (v *View) ValueCounts(col tips.Column) ([]CategoryCount, error) {
	counts, err := v.categoryCounts(col)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return tips.CategoryRank(col, counts[i].Category) < tips.CategoryRank(col, counts[j].Category)
	})
	return counts, nil
}

// CountsByCategory counts each category of col in display order, as used by
// the party size distribution.
func (v *View) CountsByCategory(col tips.Column) ([]CategoryCount, error) {
	return v.categoryCounts(col)
}

// Mode returns the most frequent category, ties broken by display order.
// ok is false on an empty view.
func (v *View) Mode(col tips.Column) (string, bool) {
	counts, err := v.ValueCounts(col)
	if err != nil || len(counts) == 0 {
		return "", false
	}
	return counts[0].Category, true
}

func (v *View) categoryCounts(col tips.Column) ([]CategoryCount, error) {
	if !col.IsCategorical() {
		return nil, core.ErrUnknownColumn
	}
	byCategory := map[string]int{}
	for _, r := range v.rows {
		if c, ok := r.Category(col); ok {
			byCategory[c]++
		}
	}
	counts := make([]CategoryCount, 0, len(byCategory))
	for _, c := range sortedCategories(col, byCategory) {
		counts = append(counts, CategoryCount{Category: c, Count: byCategory[c]})
	}
	return counts, nil
}

func sortedCategories[T any](col tips.Column, present map[string]T) []string {
	out := make([]string, 0, len(present))
	for c := range present {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := tips.CategoryRank(col, out[i]), tips.CategoryRank(col, out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// CountMatrix is a cross-tabulation; Counts[i][j] is the number of rows with
// row category Rows[i] and column category Cols[j].
type CountMatrix struct {
	RowColumn tips.Column `json:"row_column"`
	ColColumn tips.Column `json:"col_column"`
	Rows      []string    `json:"rows"`
	Cols      []string    `json:"cols"`
	Counts    [][]int     `json:"counts"`
}

// Crosstab counts co-occurrences of two categorical columns. Only categories
// present in the view appear, in display order.
func (v *View) Crosstab(rowCol, colCol tips.Column) (*CountMatrix, error) {
	if !rowCol.IsCategorical() || !colCol.IsCategorical() {
		return nil, core.ErrUnknownColumn
	}

	type cell struct{ row, col string }
	cells := map[cell]int{}
	rowSet := map[string]bool{}
	colSet := map[string]bool{}
	for _, r := range v.rows {
		rc, ok1 := r.Category(rowCol)
		cc, ok2 := r.Category(colCol)
		if !ok1 || !ok2 {
			continue
		}
		cells[cell{rc, cc}]++
		rowSet[rc] = true
		colSet[cc] = true
	}

	m := &CountMatrix{
		RowColumn: rowCol,
		ColColumn: colCol,
		Rows:      sortedCategories(rowCol, rowSet),
		Cols:      sortedCategories(colCol, colSet),
	}
	m.Counts = make([][]int, len(m.Rows))
	for i, rc := range m.Rows {
		m.Counts[i] = make([]int, len(m.Cols))
		for j, cc := range m.Cols {
			m.Counts[i][j] = cells[cell{rc, cc}]
		}
	}
	return m, nil
}

// Total sums every cell.
func (m *CountMatrix) Total() int {
	total := 0
	for _, row := range m.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Get returns the count for a pair of categories, 0 when absent.
func (m *CountMatrix) Get(row, col string) int {
	for i, r := range m.Rows {
		if r != row {
			continue
		}
		for j, c := range m.Cols {
			if c == col {
				return m.Counts[i][j]
			}
		}
	}
	return 0
}

// Max returns the largest cell scanning rows then columns in display order,
// so the first maximum wins. ok is false for an empty matrix.
func (m *CountMatrix) Max() (row, col string, count int, ok bool) {
	for i, r := range m.Rows {
		for j, c := range m.Cols {
			if !ok || m.Counts[i][j] > count {
				row, col, count, ok = r, c, m.Counts[i][j], true
			}
		}
	}
	return row, col, count, ok
}
