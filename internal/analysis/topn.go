package analysis

import (
	"sort"

	"gotips/domain/core"
	"gotips/domain/tips"
)

// ProjectedRow is a row reduced to a list of columns.
type ProjectedRow struct {
	ID     int           `json:"id"`
	Values []interface{} `json:"values"`
}

// Projection is a table of projected rows sharing one column list.
type Projection struct {
	Columns []tips.Column  `json:"columns"`
	Rows    []ProjectedRow `json:"rows"`
}

// TopColumns is the projection used by the top tips table.
var TopColumns = []tips.Column{
	tips.ColTotalBill, tips.ColTip, tips.ColTipPercentage, tips.ColSex, tips.ColDay, tips.ColTime,
}

// TopN returns up to n rows sorted by col descending. Equal values keep source
// order and rows with an undefined value sort last.
func (v *View) TopN(col tips.Column, n int, columns []tips.Column) (*Projection, error) {
	if !col.IsNumeric() {
		return nil, core.ErrUnknownColumn
	}
	if n < 0 {
		n = 0
	}

	rows := v.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		a, okA := rows[i].Numeric(col)
		b, okB := rows[j].Numeric(col)
		if okA != okB {
			return okA
		}
		return okA && a > b
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return project(rows, columns)
}

// Project returns every row of the view reduced to columns, in source order.
func (v *View) Project(columns []tips.Column) (*Projection, error) {
	return project(v.rows, columns)
}

func project(rows []tips.Record, columns []tips.Column) (*Projection, error) {
	if len(columns) == 0 {
		columns = tips.AllColumns
	}
	for _, c := range columns {
		if _, err := tips.ParseColumn(string(c)); err != nil {
			return nil, err
		}
	}

	p := &Projection{Columns: columns, Rows: make([]ProjectedRow, 0, len(rows))}
	for _, r := range rows {
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			values[i] = r.Value(c)
		}
		p.Rows = append(p.Rows, ProjectedRow{ID: r.ID, Values: values})
	}
	return p, nil
}

// ScatterPoint is one dot of the bill/tip scatter plot.
type ScatterPoint struct {
	ID        int     `json:"id"`
	TotalBill float64 `json:"total_bill"`
	Tip       float64 `json:"tip"`
	Segment   string  `json:"bill_segment"`
	Size      int     `json:"size"`
	Outlier   bool    `json:"outlier"`
}

// ScatterPoints lists every row as a scatter point, flagging members of
// outliers.
func (v *View) ScatterPoints(outliers OutlierSet) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(v.rows))
	for _, r := range v.rows {
		out = append(out, ScatterPoint{
			ID:        r.ID,
			TotalBill: r.TotalBill,
			Tip:       r.Tip,
			Segment:   string(r.BillSegment),
			Size:      r.Size,
			Outlier:   outliers.Contains(r.ID),
		})
	}
	return out
}
