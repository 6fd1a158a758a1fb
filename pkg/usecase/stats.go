package usecase

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

type statsUseCase struct {
	dir string
}

// NewStats creates a new instance of StatsUseCase over a dump directory
func NewStats(dir string) interfaces.StatsUseCase {
	return &statsUseCase{dir: dir}
}

// Stats walks the dump directory and summarizes its contents. A receipt
// file left by the pull command is attached when present.
func (uc *statsUseCase) Stats(ctx context.Context) (*model.DumpStats, error) {
	stats := &model.DumpStats{}

	err := filepath.WalkDir(uc.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == model.ReceiptFileName {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		stats.FileCount++
		stats.TotalBytes += info.Size()
		if info.ModTime().After(stats.NewestFile) {
			stats.NewestFile = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan dump directory",
			goerr.T(types.ErrTagIO),
			goerr.V("dir", uc.dir),
		)
	}

	stats.TotalHuman = humanize.Bytes(uint64(stats.TotalBytes))

	receipt, err := loadReceipt(filepath.Join(uc.dir, model.ReceiptFileName))
	if err != nil {
		// A broken receipt should not take the stats endpoint down
		ctxlog.From(ctx).Warn("Failed to load receipt", "dir", uc.dir, "error", err)
	}
	stats.Receipt = receipt

	return stats, nil
}

// loadReceipt reads a receipt file; a missing file is not an error
func loadReceipt(path string) (*model.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read receipt", goerr.V("path", path))
	}

	var receipt model.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, goerr.Wrap(err, "failed to parse receipt", goerr.V("path", path))
	}

	return &receipt, nil
}
