// Package export turns a filtered view into spreadsheet sheets.
package export

import (
	"fmt"
	"io"

	"gotips/adapters/excel"
	"gotips/domain/tips"
	"gotips/internal/analysis"
)

// Sheet names of the exported workbook
const (
	SheetData     = "data"
	SheetDescribe = "describe"
	SheetTop      = "top"
)

// Sheets builds the data, describe and top sheets for a view.
func Sheets(v *analysis.View, topN int) ([]excel.Sheet, error) {
	data, err := v.Project(tips.AllColumns)
	if err != nil {
		return nil, fmt.Errorf("project rows: %w", err)
	}
	top, err := v.TopN(tips.ColTipPercentage, topN, analysis.TopColumns)
	if err != nil {
		return nil, fmt.Errorf("top rows: %w", err)
	}

	return []excel.Sheet{
		projectionSheet(SheetData, data),
		describeSheet(v.Describe()),
		projectionSheet(SheetTop, top),
	}, nil
}

// WriteXLSX writes the view's workbook to w.
func WriteXLSX(w io.Writer, v *analysis.View, topN int) error {
	sheets, err := Sheets(v, topN)
	if err != nil {
		return err
	}
	return excel.WriteWorkbook(w, sheets)
}

func projectionSheet(name string, p *analysis.Projection) excel.Sheet {
	headers := make([]string, 0, len(p.Columns)+1)
	headers = append(headers, "id")
	for _, c := range p.Columns {
		headers = append(headers, string(c))
	}

	rows := make([][]interface{}, 0, len(p.Rows))
	for _, r := range p.Rows {
		row := make([]interface{}, 0, len(r.Values)+1)
		row = append(row, r.ID)
		row = append(row, r.Values...)
		rows = append(rows, row)
	}
	return excel.Sheet{Name: name, Headers: headers, Rows: rows}
}

func describeSheet(desc []analysis.ColumnDescription) excel.Sheet {
	sheet := excel.Sheet{
		Name:    SheetDescribe,
		Headers: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
	}
	for _, d := range desc {
		sheet.Rows = append(sheet.Rows, []interface{}{
			d.Column, d.Count, cell(d.Mean), cell(d.Std), cell(d.Min),
			cell(d.Q25), cell(d.Median), cell(d.Q75), cell(d.Max),
		})
	}
	return sheet
}

// cell leaves undefined metrics blank
func cell(m analysis.Metric) interface{} {
	if !m.Defined {
		return nil
	}
	return m.Value
}
