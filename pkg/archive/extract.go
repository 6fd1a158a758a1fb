package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

// tarMagic is the "ustar" marker at offset 257 of a tar header, used to
// tell gzip-wrapped tar archives apart from plain gzip payloads.
var tarMagic = []byte("ustar")

const tarMagicOffset = 257

// Extractor streams a gzip (optionally tar) archive to a local directory.
// Entries are processed strictly in stream order and the whole archive is
// never buffered in memory.
type Extractor struct {
	dest         string
	keepPaths    bool
	maxFileSize  int64 // 0 means unlimited
	maxTotalSize int64 // 0 means unlimited
}

// Option is a functional option for Extractor configuration
type Option func(*Extractor)

// WithDest sets the output directory (default: current working directory)
func WithDest(dir string) Option {
	return func(x *Extractor) {
		x.dest = dir
	}
}

// WithKeepPaths preserves the archive's relative layout instead of
// flattening entries to their final path component
func WithKeepPaths() Option {
	return func(x *Extractor) {
		x.keepPaths = true
	}
}

// WithMaxFileSize limits the size of a single extracted entry
func WithMaxFileSize(n int64) Option {
	return func(x *Extractor) {
		x.maxFileSize = n
	}
}

// WithMaxTotalSize limits the total bytes written across all entries
func WithMaxTotalSize(n int64) Option {
	return func(x *Extractor) {
		x.maxTotalSize = n
	}
}

// New creates a new Extractor
func New(opts ...Option) *Extractor {
	x := &Extractor{
		dest: ".",
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Dest returns the configured output directory
func (x *Extractor) Dest() string {
	return x.dest
}

// Extract decompresses r and writes its entries under the destination
// directory. sourceName names the output file when the payload is plain
// gzip rather than a tar archive. The first error aborts the run; entries
// already written stay on disk.
func (x *Extractor) Extract(ctx context.Context, r io.Reader, sourceName string) (*model.ExtractResult, error) {
	logger := ctxlog.From(ctx)
	started := time.Now()

	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open gzip stream",
			goerr.T(types.ErrTagDecompress),
			goerr.V("source", sourceName),
		)
	}
	defer gz.Close()

	result := &model.ExtractResult{
		Dest: x.dest,
	}

	br := bufio.NewReader(gz)
	isTar, err := looksLikeTar(br)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read decompressed stream",
			goerr.T(types.ErrTagDecompress),
			goerr.V("source", sourceName),
		)
	}

	if !isTar {
		// Plain gzip payload (e.g. AllSets.json.gz): write it as a
		// single file named from the gzip header or the source name.
		entry, err := x.writePayload(ctx, br, gz.Header.Name, sourceName)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, *entry)
		result.TotalBytes = entry.Size
		result.Duration = time.Since(started)
		return result, nil
	}

	tr := tar.NewReader(br)
	for {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "extraction cancelled",
				goerr.T(types.ErrTagIO),
			)
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

		switch hdr.Typeflag {
		case tar.TypeReg:
			entry, err := x.writeEntry(ctx, tr, hdr, result.TotalBytes)
			if err != nil {
				return nil, err
			}
			result.Entries = append(result.Entries, *entry)
			result.TotalBytes += entry.Size

		case tar.TypeDir:
			if !x.keepPaths {
				continue
			}
			target, err := safeRelPath(x.dest, hdr.Name)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, goerr.Wrap(err, "failed to create directory",
					goerr.T(types.ErrTagIO),
					goerr.V("target", target),
				)
			}

		default:
			logger.Debug("Skipping unsupported entry type",
				"entry_path", hdr.Name,
				"typeflag", hdr.Typeflag,
			)
		}
	}

	result.Duration = time.Since(started)
	return result, nil
}

// writeEntry writes one regular tar entry to disk according to the naming
// policy and size limits
func (x *Extractor) writeEntry(ctx context.Context, tr *tar.Reader, hdr *tar.Header, writtenSoFar int64) (*model.EntryInfo, error) {
	logger := ctxlog.From(ctx)

	var target string
	if x.keepPaths {
		t, err := safeRelPath(x.dest, hdr.Name)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(t), 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create parent directories",
				goerr.T(types.ErrTagIO),
				goerr.V("target", t),
			)
		}
		target = t
	} else {
		name, err := flattenName(hdr.Name)
		if err != nil {
			return nil, err
		}
		if name != hdr.Name {
			logger.Debug("Remapped entry path",
				"entry_path", hdr.Name,
				"output_name", name,
			)
		}
		target = filepath.Join(x.dest, name)
	}

	if x.maxFileSize > 0 && hdr.Size > x.maxFileSize {
		return nil, goerr.New("entry exceeds max file size",
			goerr.T(types.ErrTagArchive),
			goerr.V("entry_path", hdr.Name),
			goerr.V("size", hdr.Size),
			goerr.V("limit", x.maxFileSize),
		)
	}
	if x.maxTotalSize > 0 && writtenSoFar+hdr.Size > x.maxTotalSize {
		return nil, goerr.New("archive exceeds max total size",
			goerr.T(types.ErrTagArchive),
			goerr.V("entry_path", hdr.Name),
			goerr.V("written", writtenSoFar),
			goerr.V("limit", x.maxTotalSize),
		)
	}

	written, err := writeFile(target, tr)
	if err != nil {
		return nil, err
	}

	return &model.EntryInfo{
		Name: filepath.Base(target),
		Path: hdr.Name,
		Size: written,
		Type: model.EntryTypeFile,
	}, nil
}

// writePayload writes a plain gzip payload as a single output file
func (x *Extractor) writePayload(ctx context.Context, r io.Reader, headerName, sourceName string) (*model.EntryInfo, error) {
	name, err := payloadName(headerName, sourceName)
	if err != nil {
		return nil, err
	}

	var src io.Reader = r
	if x.maxFileSize > 0 {
		src = io.LimitReader(r, x.maxFileSize+1)
	}

	target := filepath.Join(x.dest, name)
	written, err := writeFile(target, src)
	if err != nil {
		return nil, err
	}

	if x.maxFileSize > 0 && written > x.maxFileSize {
		return nil, goerr.New("payload exceeds max file size",
			goerr.T(types.ErrTagArchive),
			goerr.V("output_name", name),
			goerr.V("limit", x.maxFileSize),
		)
	}

	ctxlog.From(ctx).Debug("Wrote plain gzip payload",
		"output_name", name,
		"size_bytes", written,
	)

	return &model.EntryInfo{
		Name: name,
		Path: headerName,
		Size: written,
		Type: model.EntryTypeFile,
	}, nil
}

// writeFile creates or truncates target and copies src into it
func writeFile(target string, src io.Reader) (int64, error) {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create output file",
			goerr.T(types.ErrTagIO),
			goerr.V("target", target),
		)
	}

	written, err := io.Copy(f, src)
	if err != nil {
		_ = f.Close()
		return written, goerr.Wrap(err, "failed to write output file",
			goerr.T(types.ErrTagIO),
			goerr.V("target", target),
		)
	}

	if err := f.Close(); err != nil {
		return written, goerr.Wrap(err, "failed to close output file",
			goerr.T(types.ErrTagIO),
			goerr.V("target", target),
		)
	}

	return written, nil
}

// looksLikeTar peeks at the decompressed stream for the ustar magic
// without consuming it
func looksLikeTar(br *bufio.Reader) (bool, error) {
	head, err := br.Peek(tarMagicOffset + len(tarMagic))
	if err != nil {
		if err == io.EOF {
			// Shorter than one tar header: cannot be a tar archive
			return false, nil
		}
		return false, err
	}

	return bytes.Equal(head[tarMagicOffset:tarMagicOffset+len(tarMagic)], tarMagic), nil
}
