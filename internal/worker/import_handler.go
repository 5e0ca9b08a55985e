package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"logistics-web/internal/config"
	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/service"
	"logistics-web/internal/utils"
)

// TaskImportProcess runs one queued import session.
const TaskImportProcess = "import:process"

type ImportTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

type ImportTaskHandler struct {
	db         *sqlx.DB
	redis      *redis.Client
	cfg        *config.Config
	engine     *service.ImportEngine
	importRepo *repository.ImportRepository
}

func NewImportTaskHandler(db *sqlx.DB, redis *redis.Client, cfg *config.Config) *ImportTaskHandler {
	shipmentRepo := repository.NewShipmentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	importRepo := repository.NewImportRepository(db)

	engine := service.NewImportEngine(shipmentRepo, customerRepo, utils.GetLogger())
	engine.SetProgressInterval(cfg.ProgressEvery)

	return &ImportTaskHandler{
		db:         db,
		redis:      redis,
		cfg:        cfg,
		engine:     engine,
		importRepo: importRepo,
	}
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Printf("Starting import for session %s (ID: %d)", payload.SessionCode, payload.SessionID)

	// Get session
	session, err := h.importRepo.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	// Check if session has been canceled
	if session.Status == models.ImportStatusCanceled {
		log.Printf("Session %s has been canceled, skipping", payload.SessionCode)
		return nil // Don't return error, just skip
	}

	// Check if session is already finished
	if session.Status == models.ImportStatusCompleted || session.Status == models.ImportStatusFailed {
		log.Printf("Session %s is already %s, skipping", payload.SessionCode, session.Status)
		return nil
	}

	if err := h.importRepo.UpdateSessionStatus(session.ID, models.ImportStatusProcessing); err != nil {
		return fmt.Errorf("failed to mark session processing: %w", err)
	}

	// Load the parsed rows in upload order
	records, err := h.importRepo.GetRows(session.SessionCode)
	if err != nil {
		h.failSession(session, fmt.Sprintf("failed to load rows: %v", err))
		return fmt.Errorf("failed to load rows: %w", err)
	}

	rows := make([]models.ImportRow, len(records))
	for i, record := range records {
		var row models.ImportRow
		if err := json.Unmarshal([]byte(record.Data), &row); err != nil {
			// A corrupt row payload becomes an empty row; each mode then
			// handles it by its own missing-key policy.
			row = models.ImportRow{}
		}
		rows[i] = row
	}

	progressKey := fmt.Sprintf("import:progress:%s", session.SessionCode)
	progress := func(percent float64) {
		h.redis.Set(ctx, progressKey, fmt.Sprintf("%.2f", percent), 0)
		log.Printf("Session %s: %.2f%%", session.SessionCode, percent)
	}

	result, runErr := h.engine.Run(ctx, models.ImportMode(session.Mode), rows, progress)
	if result != nil {
		h.saveResult(session, result)
	}
	if runErr != nil {
		if ctx.Err() != nil {
			// Worker shutdown or session cancellation between rows.
			h.importRepo.UpdateSessionStatus(session.ID, models.ImportStatusCanceled)
			log.Printf("Session %s canceled mid-run", session.SessionCode)
			return nil
		}
		h.failSession(session, runErr.Error())
		return fmt.Errorf("import run failed: %w", runErr)
	}

	session.Status = models.ImportStatusCompleted
	if err := h.importRepo.UpdateSession(session); err != nil {
		log.Printf("Failed to update session status: %v", err)
	}

	log.Printf("Import completed for session %s. Created: %d, Updated: %d, Errors: %d",
		session.SessionCode, result.Created, result.Updated, result.Errors)

	return nil
}

// saveResult persists counters and the full ordered log, even for partial
// runs; a run with errors still produces a complete log.
func (h *ImportTaskHandler) saveResult(session *models.ImportSession, result *models.ImportResult) {
	session.CreatedRows = result.Created
	session.UpdatedRows = result.Updated
	session.ErrorRows = result.Errors
	if err := h.importRepo.UpdateSession(session); err != nil {
		log.Printf("Failed to save session counters: %v", err)
	}

	lines := make([]models.ImportLogLine, len(result.Log))
	for i, line := range result.Log {
		tag, message := splitLogLine(line)
		lines[i] = models.ImportLogLine{
			SessionCode: session.SessionCode,
			LineNo:      i + 1,
			Tag:         tag,
			Message:     message,
		}
	}
	if err := h.importRepo.BulkInsertLogLines(lines); err != nil {
		log.Printf("Failed to save import log: %v", err)
	}
}

func (h *ImportTaskHandler) failSession(session *models.ImportSession, message string) {
	session.Status = models.ImportStatusFailed
	session.ErrorMessage = message
	if err := h.importRepo.UpdateSession(session); err != nil {
		log.Printf("Failed to mark session failed: %v", err)
	}
}

// splitLogLine separates the "[TAG]" prefix from the message.
func splitLogLine(line string) (tag, message string) {
	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "] "); end > 0 {
			return line[1:end], line[end+2:]
		}
	}
	return "", line
}
