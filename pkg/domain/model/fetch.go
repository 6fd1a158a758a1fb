package model

// FetchInfo describes a resolved remote (or local) archive source
type FetchInfo struct {
	URL           string // Final URL after redirects, or local path
	StatusCode    int    // HTTP status code; http.StatusOK for local files
	ContentLength int64  // Reported length in bytes; -1 when unknown
}

// Success reports whether the response status is in the 2xx range
func (x *FetchInfo) Success() bool {
	return x.StatusCode >= 200 && x.StatusCode < 300
}
