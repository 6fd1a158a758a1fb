package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/mtgdump/pkg/domain/model"
)

// Source provides a readable archive stream. Implementations must return the
// body as a stream and never buffer the whole payload.
type Source interface {
	// Open resolves the source and returns its content stream. The caller
	// owns the returned ReadCloser and must close it on every path.
	Open(ctx context.Context) (io.ReadCloser, *model.FetchInfo, error)

	// Name returns the final path component of the source, used to name
	// the output of plain (non-tar) gzip payloads.
	Name() string
}
