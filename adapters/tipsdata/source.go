// Package tipsdata bundles the restaurant tips dataset with the binary.
package tipsdata

import (
	"context"
	_ "embed"

	"gotips/adapters/excel"
	"gotips/ports"
)

//go:embed tips.csv
var tipsCSV []byte

const fileName = "tips.csv"

// EmbeddedSource serves the bundled tips.csv.
type EmbeddedSource struct{}

var _ ports.DatasetSource = EmbeddedSource{}

func NewEmbeddedSource() EmbeddedSource {
	return EmbeddedSource{}
}

func (EmbeddedSource) Name() string { return fileName }

func (EmbeddedSource) Load(ctx context.Context) (*ports.RawDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return excel.NewDataReader(fileName).ReadBytes(tipsCSV)
}
