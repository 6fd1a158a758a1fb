package archive_test

import (
	"archive/tar"
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/mtgdump/pkg/archive"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

func TestList_TarEntries(t *testing.T) {
	ctx := context.Background()

	data := buildTarGz(t, []tarEntry{
		{name: "dir/", typeflag: tar.TypeDir},
		{name: "dir/b.txt", body: "bravo"},
		{name: "a.txt", body: "alpha"},
	})

	entries, err := archive.List(ctx, bytes.NewReader(data), "dump.tar.gz")
	gt.NoError(t, err)
	gt.Number(t, len(entries)).Equal(3)

	gt.Value(t, entries[0].Type).Equal(model.EntryTypeDir)
	gt.Value(t, entries[1].Path).Equal("dir/b.txt")
	gt.Value(t, entries[1].Name).Equal("b.txt")
	gt.Number(t, entries[1].Size).Equal(int64(5))
	gt.Value(t, entries[2].Type).Equal(model.EntryTypeFile)
}

func TestList_PlainGzipPayload(t *testing.T) {
	ctx := context.Background()

	data := buildGz(t, "AllSets.json", []byte(`{"LEA":{}}`))

	entries, err := archive.List(ctx, bytes.NewReader(data), "AllSets.json.gz")
	gt.NoError(t, err)
	gt.Number(t, len(entries)).Equal(1)
	gt.Value(t, entries[0].Name).Equal("AllSets.json")
	gt.Number(t, entries[0].Size).Equal(int64(len(`{"LEA":{}}`)))
}

func TestList_CorruptedGzip(t *testing.T) {
	ctx := context.Background()

	_, err := archive.List(ctx, bytes.NewReader([]byte("garbage")), "dump.tar.gz")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagDecompress))
}
