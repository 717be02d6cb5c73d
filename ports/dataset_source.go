package ports

import (
	"context"

	"mancova/domain/dataset"
)

// DatasetSourcePort loads the analysis dataset. Implementations alias the
// source's grouping header to dataset.IVColumn and reject files missing any
// required column.
type DatasetSourcePort interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}
