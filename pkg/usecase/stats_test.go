package usecase_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/usecase"
)

func TestStatsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("counts files and bytes", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "LEA.json"), []byte(`{"code":"LEA"}`), 0644))
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "LEB.json"), []byte(`{"code":"LEB"}`), 0644))

		uc := usecase.NewStats(dir)
		stats, err := uc.Stats(ctx)
		gt.NoError(t, err)

		gt.Number(t, stats.FileCount).Equal(2)
		gt.Number(t, stats.TotalBytes).Equal(int64(2 * len(`{"code":"LEA"}`)))
		gt.Value(t, stats.TotalHuman).NotEqual("")
		gt.True(t, !stats.NewestFile.IsZero())
		gt.Value(t, stats.Receipt).Nil()
	})

	t.Run("attaches receipt when present", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "LEA.json"), []byte(`{}`), 0644))

		receipt := &model.Receipt{
			RunID:  "run-123",
			Source: "https://mtgjson.com/files/AllSets.json.tar.gz",
		}
		raw, err := json.Marshal(receipt)
		gt.NoError(t, err)
		gt.NoError(t, os.WriteFile(filepath.Join(dir, model.ReceiptFileName), raw, 0644))

		uc := usecase.NewStats(dir)
		stats, err := uc.Stats(ctx)
		gt.NoError(t, err)

		// The receipt file itself is not counted as dump content
		gt.Number(t, stats.FileCount).Equal(1)
		gt.NotNil(t, stats.Receipt)
		gt.String(t, stats.Receipt.RunID).Equal("run-123")
	})

	t.Run("broken receipt does not fail stats", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, model.ReceiptFileName), []byte("{broken"), 0644))

		uc := usecase.NewStats(dir)
		stats, err := uc.Stats(ctx)
		gt.NoError(t, err)
		gt.Value(t, stats.Receipt).Nil()
	})

	t.Run("missing directory", func(t *testing.T) {
		uc := usecase.NewStats(filepath.Join(t.TempDir(), "no-such-dir"))
		_, err := uc.Stats(ctx)
		gt.Error(t, err)
	})
}
