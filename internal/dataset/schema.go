package dataset

import (
	"math"
	"strconv"

	"gotips/domain/core"
	"gotips/domain/tips"
	"gotips/ports"
)

// SchemaReport summarizes a successful load for the startup log and the /api/schema endpoint.
type SchemaReport struct {
	Source                  string   `json:"source"`
	Rows                    int      `json:"rows"`
	Columns                 []string `json:"columns"`
	ExtraColumns            []string `json:"extra_columns,omitempty"`
	UndefinedPercentageRows int      `json:"undefined_percentage_rows"`
}

// ValidateHeaders reports every base column the source lacks.
func ValidateHeaders(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, c := range tips.BaseColumns {
		if !present[string(c)] {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return core.NewMissingColumnsError(missing)
	}
	return nil
}

// ParseRecords types every raw row, stopping at the first bad cell.
// Row numbers in errors are 1-based data rows.
func ParseRecords(raw *ports.RawDataset) ([]tips.Record, error) {
	if err := ValidateHeaders(raw.Headers); err != nil {
		return nil, err
	}

	records := make([]tips.Record, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		rec, err := parseRecord(i+1, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(rowNum int, row ports.RawRow) (tips.Record, error) {
	var rec tips.Record
	var err error

	if rec.TotalBill, err = parseAmount(rowNum, tips.ColTotalBill, row); err != nil {
		return rec, err
	}
	if rec.Tip, err = parseAmount(rowNum, tips.ColTip, row); err != nil {
		return rec, err
	}
	if rec.Sex, err = tips.ParseSex(row[string(tips.ColSex)]); err != nil {
		return rec, cellError(rowNum, tips.ColSex, row, "sex")
	}
	if rec.Smoker, err = tips.ParseSmoker(row[string(tips.ColSmoker)]); err != nil {
		return rec, cellError(rowNum, tips.ColSmoker, row, "smoker flag")
	}
	if rec.Day, err = tips.ParseDay(row[string(tips.ColDay)]); err != nil {
		return rec, cellError(rowNum, tips.ColDay, row, "day")
	}
	if rec.Time, err = tips.ParseMealTime(row[string(tips.ColTime)]); err != nil {
		return rec, cellError(rowNum, tips.ColTime, row, "meal time")
	}
	if rec.Size, err = parseSize(rowNum, row); err != nil {
		return rec, err
	}
	return rec, nil
}

// parseAmount accepts zero bills; their tip percentage is left undefined.
func parseAmount(rowNum int, col tips.Column, row ports.RawRow) (float64, error) {
	v, err := strconv.ParseFloat(row[string(col)], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, cellError(rowNum, col, row, "non-negative amount")
	}
	return v, nil
}

func parseSize(rowNum int, row ports.RawRow) (int, error) {
	s := row[string(tips.ColSize)]
	n, err := strconv.Atoi(s)
	if err != nil {
		// spreadsheets may hand back "2.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, cellError(rowNum, tips.ColSize, row, "party size")
		}
		n = int(f)
	}
	if n <= 0 {
		return 0, cellError(rowNum, tips.ColSize, row, "party size")
	}
	return n, nil
}

func cellError(rowNum int, col tips.Column, row ports.RawRow, want string) error {
	return core.NewCellTypeError(rowNum, string(col), row[string(col)], want)
}

func buildReport(raw *ports.RawDataset, table *tips.Table) *SchemaReport {
	base := make(map[string]bool, len(tips.BaseColumns))
	for _, c := range tips.BaseColumns {
		base[string(c)] = true
	}
	var extra []string
	for _, h := range raw.Headers {
		if !base[h] {
			extra = append(extra, h)
		}
	}
	columns := make([]string, len(tips.AllColumns))
	for i, c := range tips.AllColumns {
		columns[i] = string(c)
	}
	return &SchemaReport{
		Source:                  raw.Name,
		Rows:                    table.Len(),
		Columns:                 columns,
		ExtraColumns:            extra,
		UndefinedPercentageRows: table.UndefinedPercentageRows(),
	}
}
