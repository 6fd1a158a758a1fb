package model

import "time"

// EntryType classifies a tar entry for listing and receipts
type EntryType string

const (
	EntryTypeFile  EntryType = "file"
	EntryTypeDir   EntryType = "dir"
	EntryTypeOther EntryType = "other"
)

// EntryInfo describes one archive entry
type EntryInfo struct {
	Name string    `json:"name"`           // Output file name after naming policy
	Path string    `json:"path,omitempty"` // Original path inside the archive
	Size int64     `json:"size"`
	Type EntryType `json:"type"`
}

// ExtractResult summarizes a completed extraction run
type ExtractResult struct {
	Dest       string        // Directory the entries were written into
	Entries    []EntryInfo   // Written entries, in stream order
	TotalBytes int64         // Sum of written entry sizes
	Duration   time.Duration // Wall time of the extraction loop
}
