package ports

import "context"

// RawRow is one source row keyed by trimmed header name
type RawRow map[string]string

// RawDataset is an untyped table as read from a source, before schema validation
type RawDataset struct {
	Name    string
	Headers []string
	Rows    []RawRow
}

// DatasetSource provides the fixed tips record set. Implementations return
// raw strings; typing and enrichment belong to the preparer.
type DatasetSource interface {
	Name() string
	Load(ctx context.Context) (*RawDataset, error)
}
