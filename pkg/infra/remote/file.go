package remote

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
	"github.com/m-mizutani/mtgdump/pkg/domain/model"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

type fileSource struct {
	path string
}

// NewFileSource creates a source backed by a local archive file, so the
// extract and ls commands share the same pipeline as pull
func NewFileSource(path string) interfaces.Source {
	return &fileSource{path: path}
}

// Name returns the final path component of the file path
func (s *fileSource) Name() string {
	return filepath.Base(s.path)
}

// Open opens the local file for streaming
func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, *model.FetchInfo, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open archive file",
			goerr.T(types.ErrTagIO),
			goerr.V("path", s.path),
		)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, goerr.Wrap(err, "failed to stat archive file",
			goerr.T(types.ErrTagIO),
			goerr.V("path", s.path),
		)
	}

	info := &model.FetchInfo{
		URL:           s.path,
		StatusCode:    http.StatusOK,
		ContentLength: stat.Size(),
	}

	return f, info, nil
}
