package repository

import (
	"github.com/jmoiron/sqlx"

	"logistics-web/internal/models"
)

type ImportRepository struct {
	db *sqlx.DB
}

func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// Import sessions
func (r *ImportRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions (session_code, user_id, filename, file_path, mode,
	          total_rows, status) VALUES (:session_code, :user_id, :filename, :file_path, :mode,
	          :total_rows, :status)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	err := r.db.Get(&session, query, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) GetSessionByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1"
	err := r.db.Get(&session, query, code)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) GetSessions(limit, offset int, userID int) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	whereClause := ""
	args := []interface{}{}

	if userID > 0 {
		whereClause = "WHERE user_id = ?"
		args = append(args, userID)
	}

	countQuery := "SELECT COUNT(*) FROM import_sessions " + whereClause
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM import_sessions " + whereClause + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	err = r.db.Select(&sessions, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportRepository) UpdateSession(session *models.ImportSession) error {
	query := `UPDATE import_sessions SET total_rows = :total_rows, created_rows = :created_rows,
	          updated_rows = :updated_rows, error_rows = :error_rows, status = :status,
	          error_message = :error_message WHERE id = :id`
	_, err := r.db.NamedExec(query, session)
	return err
}

func (r *ImportRepository) UpdateSessionStatus(id int, status string) error {
	query := "UPDATE import_sessions SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

// Parsed rows, kept between upload and the background run.
func (r *ImportRepository) BulkInsertRows(rows []models.ImportRowRecord) error {
	if len(rows) == 0 {
		return nil
	}
	query := `INSERT INTO import_rows (session_code, row_index, data)
	          VALUES (:session_code, :row_index, :data)`
	_, err := r.db.NamedExec(query, rows)
	return err
}

// GetRows returns a session's rows in strict upload order.
func (r *ImportRepository) GetRows(sessionCode string) ([]models.ImportRowRecord, error) {
	var rows []models.ImportRowRecord
	query := "SELECT * FROM import_rows WHERE session_code = ? ORDER BY row_index ASC"
	err := r.db.Select(&rows, query, sessionCode)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Run log
func (r *ImportRepository) BulkInsertLogLines(lines []models.ImportLogLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO import_logs (session_code, line_no, tag, message)
	          VALUES (:session_code, :line_no, :tag, :message)`
	_, err := r.db.NamedExec(query, lines)
	return err
}

func (r *ImportRepository) GetLogLines(sessionCode string) ([]models.ImportLogLine, error) {
	var lines []models.ImportLogLine
	query := "SELECT * FROM import_logs WHERE session_code = ? ORDER BY line_no ASC"
	err := r.db.Select(&lines, query, sessionCode)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *ImportRepository) DeleteSession(id int) error {
	session, err := r.GetSessionByID(id)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec("DELETE FROM import_rows WHERE session_code = ?", session.SessionCode); err != nil {
		return err
	}
	if _, err := r.db.Exec("DELETE FROM import_logs WHERE session_code = ?", session.SessionCode); err != nil {
		return err
	}
	_, err = r.db.Exec("DELETE FROM import_sessions WHERE id = ?", id)
	return err
}
