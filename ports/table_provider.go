package ports

import (
	"context"

	"gotips/domain/tips"
)

// TableProvider hands out the prepared, read-only tips table
type TableProvider interface {
	Prepare(ctx context.Context) (*tips.Table, error)
}
