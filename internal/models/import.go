package models

import "time"

// ImportRow is one spreadsheet row as parsed: header cell -> cell value,
// keys exactly as they appear in the file.
type ImportRow map[string]string

// ImportMode selects which reconciliation branch runs for every row of an
// import session. The set is closed; "rerouted" rows are a variant handled
// inside ModeGateIn, not a mode of their own.
type ImportMode string

const (
	ModeShipments ImportMode = "shipments"
	ModeGateIn    ImportMode = "gate_in"
	ModeGateOut   ImportMode = "gate_out"
	ModeWaiting   ImportMode = "waiting"
)

func (m ImportMode) Valid() bool {
	switch m {
	case ModeShipments, ModeGateIn, ModeGateOut, ModeWaiting:
		return true
	}
	return false
}

// Import session statuses.
const (
	ImportStatusUploaded   = "uploaded"
	ImportStatusQueued     = "queued"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
	ImportStatusCanceled   = "canceled"
)

type ImportSession struct {
	ID           int       `db:"id" json:"id"`
	SessionCode  string    `db:"session_code" json:"session_code"`
	UserID       int       `db:"user_id" json:"user_id"`
	Filename     string    `db:"filename" json:"filename"`
	FilePath     string    `db:"file_path" json:"file_path"`
	Mode         string    `db:"mode" json:"mode"`
	TotalRows    int       `db:"total_rows" json:"total_rows"`
	CreatedRows  int       `db:"created_rows" json:"created_rows"`
	UpdatedRows  int       `db:"updated_rows" json:"updated_rows"`
	ErrorRows    int       `db:"error_rows" json:"error_rows"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ImportRowRecord is one parsed row persisted between upload and the
// background run, ordered by RowIndex.
type ImportRowRecord struct {
	ID          int64     `db:"id" json:"id"`
	SessionCode string    `db:"session_code" json:"session_code"`
	RowIndex    int       `db:"row_index" json:"row_index"`
	Data        string    `db:"data" json:"data"` // ImportRow as JSON
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ImportLogLine is one tagged line of a run's log, e.g. "[U] LOG-2025-0001 updated".
type ImportLogLine struct {
	ID          int64     `db:"id" json:"id"`
	SessionCode string    `db:"session_code" json:"session_code"`
	LineNo      int       `db:"line_no" json:"line_no"`
	Tag         string    `db:"tag" json:"tag"`
	Message     string    `db:"message" json:"message"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ImportResult is the accumulator for one run. Created+Updated+Errors may be
// less than Total: some modes skip rows without counting them.
type ImportResult struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  int      `json:"errors"`
	Log     []string `json:"log"`
}
