package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures by the pipeline stage that produced them.
// Callers branch with goerr.HasTag instead of matching error strings.
var (
	// ErrTagNetwork marks connection failures, timeouts and unexpected HTTP statuses
	ErrTagNetwork = goerr.NewTag("network")

	// ErrTagDecompress marks invalid or truncated gzip streams
	ErrTagDecompress = goerr.NewTag("decompress")

	// ErrTagArchive marks malformed tar structures and extraction limit breaches
	ErrTagArchive = goerr.NewTag("archive")

	// ErrTagPath marks archive entry paths that cannot yield a safe output name
	ErrTagPath = goerr.NewTag("path")

	// ErrTagIO marks local filesystem failures while writing output
	ErrTagIO = goerr.NewTag("io")
)
