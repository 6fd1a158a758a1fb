package archive

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
)

// flattenName derives an output file name from an archive entry path by
// taking its final component. Entries whose path cannot yield a usable
// name (empty, root, dot or parent references) are rejected.
func flattenName(entryPath string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(entryPath, "\\", "/"))
	name := path.Base(cleaned)

	switch name {
	case "", ".", "..", "/":
		return "", goerr.New("entry path has no usable final component",
			goerr.T(types.ErrTagPath),
			goerr.V("entry_path", entryPath),
		)
	}

	return name, nil
}

// safeRelPath validates an archive entry path for keep-paths extraction and
// returns the target path joined under dest. Absolute paths, parent
// references, and any path escaping dest are rejected.
func safeRelPath(dest, entryPath string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(entryPath, "\\", "/"))

	if cleaned == "" || cleaned == "." {
		return "", goerr.New("entry path is empty",
			goerr.T(types.ErrTagPath),
			goerr.V("entry_path", entryPath),
		)
	}
	if path.IsAbs(cleaned) {
		return "", goerr.New("absolute path in archive",
			goerr.T(types.ErrTagPath),
			goerr.V("entry_path", entryPath),
		)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", goerr.New("path traversal in archive",
			goerr.T(types.ErrTagPath),
			goerr.V("entry_path", entryPath),
		)
	}

	target := filepath.Join(dest, filepath.FromSlash(cleaned))
	rel, err := filepath.Rel(filepath.Clean(dest), target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", goerr.New("entry path escapes destination",
			goerr.T(types.ErrTagPath),
			goerr.V("entry_path", entryPath),
			goerr.V("dest", dest),
		)
	}

	return target, nil
}

// payloadName names the single output file of a plain (non-tar) gzip
// payload: the gzip header name when present, otherwise the source name
// with its .gz suffix stripped.
func payloadName(headerName, sourceName string) (string, error) {
	if headerName != "" {
		return flattenName(headerName)
	}

	name := strings.TrimSuffix(path.Base(sourceName), ".gz")
	return flattenName(name)
}
