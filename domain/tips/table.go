package tips

// Table is the enriched dataset. It is never mutated after NewTable returns,
// so one instance can be shared by every request.
type Table struct {
	records []Record
}

// NewTable enriches and copies records, assigning row identifiers by position.
func NewTable(records []Record) *Table {
	enriched := make([]Record, len(records))
	for i, r := range records {
		r.ID = i
		enriched[i] = Enrich(r)
	}
	return &Table{records: enriched}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Record {
	return t.records[i]
}

// Records returns a copy of every row in source order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// UndefinedPercentageRows counts rows excluded from percentage aggregates.
func (t *Table) UndefinedPercentageRows() int {
	n := 0
	for _, r := range t.records {
		if !r.HasTipPercentage() {
			n++
		}
	}
	return n
}
