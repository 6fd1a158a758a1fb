package usecase

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/archive"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/schollz/progressbar/v3"
)

type pullUseCase struct {
	source      interfaces.Source
	extractor   *archive.Extractor
	progress    bool
	receiptPath string
}

// PullOption is a functional option for pull configuration
type PullOption func(*pullUseCase)

// WithProgress renders a download progress bar on stderr
func WithProgress() PullOption {
	return func(uc *pullUseCase) {
		uc.progress = true
	}
}

// WithReceipt writes a JSON manifest of the run to the given path
func WithReceipt(path string) PullOption {
	return func(uc *pullUseCase) {
		uc.receiptPath = path
	}
}

// NewPull creates a new instance of PullUseCase
func NewPull(source interfaces.Source, extractor *archive.Extractor, opts ...PullOption) interfaces.PullUseCase {
	uc := &pullUseCase{
		source:    source,
		extractor: extractor,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Pull streams the source archive into the extractor and reports a summary
func (uc *pullUseCase) Pull(ctx context.Context) (*model.ExtractResult, error) {
	logger := ctxlog.From(ctx)
	started := time.Now()

	body, info, err := uc.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	logger.Info("Source opened",
		"url", info.URL,
		"status_code", info.StatusCode,
		"content_length", info.ContentLength,
		"dest", uc.extractor.Dest(),
	)

	var stream io.Reader = body
	if uc.progress {
		bar := progressbar.NewOptions64(
			info.ContentLength,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("downloading "+uc.source.Name()),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		stream = io.TeeReader(body, bar)
	}

	result, err := uc.extractor.Extract(ctx, stream, uc.source.Name())
	if err != nil {
		return nil, err
	}

	logger.Info("Extraction complete",
		"dest", result.Dest,
		"entry_count", len(result.Entries),
		"total_size", humanize.Bytes(uint64(result.TotalBytes)),
		"duration_ms", result.Duration.Milliseconds(),
	)

	if uc.receiptPath != "" {
		receipt := &model.Receipt{
			RunID:      uuid.NewString(),
			Source:     info.URL,
			Version:    types.Version,
			Dest:       result.Dest,
			StartedAt:  started,
			FinishedAt: time.Now(),
			Entries:    result.Entries,
			TotalBytes: result.TotalBytes,
		}
		if err := writeReceipt(uc.receiptPath, receipt); err != nil {
			return nil, err
		}
		logger.Info("Wrote receipt", "path", uc.receiptPath, "run_id", receipt.RunID)
	}

	return result, nil
}

// writeReceipt marshals the receipt and writes it atomically enough for a
// single-writer tool (create-or-truncate, same as output files)
func writeReceipt(path string, receipt *model.Receipt) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal receipt",
			goerr.T(types.ErrTagIO),
			goerr.V("path", path),
		)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write receipt",
			goerr.T(types.ErrTagIO),
			goerr.V("path", path),
		)
	}

	return nil
}
