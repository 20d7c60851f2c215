package model

import "time"

// RunReport tracks one pipeline invocation (an adapter run or an
// aggregation run) end to end.
type RunReport struct {
	RunID      string    `json:"run_id"`
	Dataset    string    `json:"dataset"`
	Status     string    `json:"status"` // pending, running, completed, failed
	RowsIn     int       `json:"rows_in"`
	RowsOut    int       `json:"rows_out"`
	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
