package interfaces

import (
	"context"

	"github.com/m-mizutani/mtgdump/pkg/domain/model"
)

// PullUseCase defines the download-and-extract operation
type PullUseCase interface {
	// Pull streams the source archive and extracts its entries to disk
	Pull(ctx context.Context) (*model.ExtractResult, error)
}

// StatsUseCase defines operations over an extracted dump directory
type StatsUseCase interface {
	// Stats scans the dump directory and summarizes its contents
	Stats(ctx context.Context) (*model.DumpStats, error)
}
