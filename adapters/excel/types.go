package excel

import "gotips/ports"

// ExcelData represents a complete sheet read from a CSV or xlsx source
type ExcelData = ports.RawDataset

// Sheet is one worksheet written by WriteWorkbook
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}
