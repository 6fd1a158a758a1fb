package model

import "time"

// DumpStats describes an extracted dump directory for the dashboard API
type DumpStats struct {
	FileCount  int       `json:"file_count"`
	TotalBytes int64     `json:"total_bytes"`
	TotalHuman string    `json:"total_human"`
	NewestFile time.Time `json:"newest_file,omitzero"`
	Receipt    *Receipt  `json:"receipt,omitempty"`
}
