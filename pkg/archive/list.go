package archive

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

// List walks a gzip (optionally tar) stream and returns its entries
// without writing anything to disk
func List(ctx context.Context, r io.Reader, sourceName string) ([]model.EntryInfo, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gzip stream",
			goerr.T(types.ErrTagDecompress),
			goerr.V("source", sourceName),
		)
	}
	defer gz.Close()

	br := bufio.NewReader(gz)
	isTar, err := looksLikeTar(br)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read decompressed stream",
			goerr.T(types.ErrTagDecompress),
			goerr.V("source", sourceName),
		)
	}

	if !isTar {
		name, err := payloadName(gz.Header.Name, sourceName)
		if err != nil {
			return nil, err
		}
		size, err := io.Copy(io.Discard, br)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read payload",
				goerr.T(types.ErrTagDecompress),
				goerr.V("source", sourceName),
			)
		}
		return []model.EntryInfo{{
			Name: name,
			Path: gz.Header.Name,
			Size: size,
			Type: model.EntryTypeFile,
		}}, nil
	}

	var entries []model.EntryInfo

	tr := tar.NewReader(br)
	for {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "listing cancelled")
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read tar header",
				goerr.T(types.ErrTagArchive),
				goerr.V("source", sourceName),
			)
		}

		entries = append(entries, model.EntryInfo{
			Name: hdr.FileInfo().Name(),
			Path: hdr.Name,
			Size: hdr.Size,
			Type: entryType(hdr.Typeflag),
		})
	}

	return entries, nil
}

func entryType(typeflag byte) model.EntryType {
	switch typeflag {
	case tar.TypeReg:
		return model.EntryTypeFile
	case tar.TypeDir:
		return model.EntryTypeDir
	default:
		return model.EntryTypeOther
	}
}
