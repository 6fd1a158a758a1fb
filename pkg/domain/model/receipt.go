package model

import "time"

// ReceiptFileName is where the serve command looks for a receipt inside a dump directory
const ReceiptFileName = "mtgdump-receipt.json"

// Receipt is a JSON manifest of one extraction run
type Receipt struct {
	RunID      string      `json:"run_id"`
	Source     string      `json:"source"`
	Version    string      `json:"version"`
	Dest       string      `json:"dest"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Entries    []EntryInfo `json:"entries"`
	TotalBytes int64       `json:"total_bytes"`
}
