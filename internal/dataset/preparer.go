// Package dataset loads the fixed tips record set, validates its schema and
// memoizes the enriched table for the lifetime of the process.
package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gotips/domain/core"
	"gotips/domain/tips"
	"gotips/internal"
	"gotips/internal/errors"
	"gotips/ports"

	"golang.org/x/sync/singleflight"
)

// Preparer produces the enriched table once. Concurrent first callers share
// a single load; a failed load is not cached.
type Preparer struct {
	source ports.DatasetSource
	logger *internal.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	table  *tips.Table
	report *SchemaReport
}

// NewPreparer creates a preparer over source. A nil logger uses the default logger.
func NewPreparer(source ports.DatasetSource, logger *internal.Logger) *Preparer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Preparer{source: source, logger: logger}
}

// Prepare returns the enriched table, loading it on first use.
// Failures carry DATA_UNAVAILABLE or SCHEMA_MISMATCH codes and are fatal to callers.
func (p *Preparer) Prepare(ctx context.Context) (*tips.Table, error) {
	if table := p.cached(); table != nil {
		return table, nil
	}

	v, err, _ := p.group.Do("tips", func() (interface{}, error) {
		if table := p.cached(); table != nil {
			return table, nil
		}
		table, report, err := p.load(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.table = table
		p.report = report
		p.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*tips.Table), nil
}

// Report returns the schema report of the cached table, nil before the first successful load.
func (p *Preparer) Report() *SchemaReport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.report
}

func (p *Preparer) cached() *tips.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

func (p *Preparer) load(ctx context.Context) (*tips.Table, *SchemaReport, error) {
	start := time.Now()
	p.logger.Info("[Preparer] Loading dataset from %s", p.source.Name())

	raw, err := p.source.Load(ctx)
	if err != nil {
		p.logger.Error("[Preparer] Source %s failed: %v", p.source.Name(), err)
		return nil, nil, errors.DataUnavailable(fmt.Errorf("%w: %s: %v", core.ErrDataUnavailable, p.source.Name(), err))
	}
	if raw == nil {
		return nil, nil, errors.DataUnavailable(fmt.Errorf("%w: %s returned no data", core.ErrDataUnavailable, p.source.Name()))
	}

	records, err := ParseRecords(raw)
	if err != nil {
		p.logger.Error("[Preparer] Schema validation failed: %v", err)
		return nil, nil, errors.SchemaMismatch(err)
	}

	table := tips.NewTable(records)
	report := buildReport(raw, table)
	if len(report.ExtraColumns) > 0 {
		p.logger.Warn("[Preparer] Ignoring unexpected columns %v", report.ExtraColumns)
	}
	if report.UndefinedPercentageRows > 0 {
		p.logger.Warn("[Preparer] %d rows have a zero bill and no tip percentage", report.UndefinedPercentageRows)
	}
	p.logger.Info("[Preparer] Dataset ready: %d rows in %.2fms", report.Rows, float64(time.Since(start).Nanoseconds())/1e6)

	return table, report, nil
}
