package handler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"logistics-web/internal/config"
	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/service"
	"logistics-web/internal/utils"
	"logistics-web/internal/worker"
)

type ImportHandler struct {
	importRepo   *repository.ImportRepository
	excelService *service.ExcelService
	asynqClient  *asynq.Client
	redis        *redis.Client
	cfg          *config.Config
}

func NewImportHandler(
	importRepo *repository.ImportRepository,
	excelService *service.ExcelService,
	asynqClient *asynq.Client,
	redis *redis.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importRepo:   importRepo,
		excelService: excelService,
		asynqClient:  asynqClient,
		redis:        redis,
		cfg:          cfg,
	}
}

// UploadFile accepts a tracking workbook plus a mode field, parses it fully,
// persists the rows and queues the background run.
func (h *ImportHandler) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	mode := models.ImportMode(c.FormValue("mode"))
	if !mode.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid import mode", nil)
	}

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	// Validate file type
	ext := filepath.Ext(file.Filename)
	if ext != ".xlsx" && ext != ".xls" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx, .xls) are allowed", nil)
	}

	// Validate file size
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	// Generate session code
	sessionCode := fmt.Sprintf("IMP-%s", uuid.New().String()[:8])

	// Save file
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	// Parse the workbook; a parse failure fails the whole run before any
	// row is touched.
	rows, err := h.excelService.ParseTrackingFile(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse Excel file", err)
	}

	// Create import session
	session := &models.ImportSession{
		SessionCode: sessionCode,
		UserID:      userID,
		Filename:    file.Filename,
		FilePath:    filePath,
		Mode:        string(mode),
		TotalRows:   len(rows),
		Status:      models.ImportStatusUploaded,
	}

	if err := h.importRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	// Persist rows in upload order
	records := make([]models.ImportRowRecord, len(rows))
	for i, row := range rows {
		data, _ := json.Marshal(row)
		records[i] = models.ImportRowRecord{
			SessionCode: sessionCode,
			RowIndex:    i,
			Data:        string(data),
		}
	}
	if err := h.importRepo.BulkInsertRows(records); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store rows", err)
	}

	// Queue the background run
	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	payload, _ := json.Marshal(worker.ImportTaskPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
	})
	task := asynq.NewTask(worker.TaskImportProcess, payload)
	if _, err := h.asynqClient.Enqueue(task); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import", err)
	}

	if err := h.importRepo.UpdateSessionStatus(session.ID, models.ImportStatusQueued); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update session status", err)
	}
	session.Status = models.ImportStatusQueued

	return utils.SuccessResponse(c, "File uploaded successfully", fiber.Map{
		"session":    session,
		"total_rows": len(rows),
	})
}

func (h *ImportHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("role").(string)

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	// Admin can see all sessions, user can only see their own
	filterUserID := 0
	if role != "admin" {
		filterUserID = userID
	}

	sessions, total, err := h.importRepo.GetSessions(params.Limit, offset, filterUserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.PaginatedResponseBuilder(c, "Sessions retrieved successfully", fiber.Map{
		"sessions": sessions,
	}, pagination)
}

func (h *ImportHandler) GetSessionDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.importRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

// GetLog returns the full ordered run log for a session.
func (h *ImportHandler) GetLog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.importRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	lines, err := h.importRepo.GetLogLines(session.SessionCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve log", err)
	}

	return utils.SuccessResponse(c, "Log retrieved successfully", fiber.Map{
		"session": session,
		"log":     lines,
	})
}

// GetProgress reads the worker's progress key from Redis.
func (h *ImportHandler) GetProgress(c *fiber.Ctx) error {
	sessionCode := c.Params("session_code")

	session, err := h.importRepo.GetSessionByCode(sessionCode)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	progress := "0"
	if h.redis != nil {
		if value, err := h.redis.Get(c.Context(), fmt.Sprintf("import:progress:%s", sessionCode)).Result(); err == nil && value != "" {
			progress = value
		}
	}

	return utils.SuccessResponse(c, "Progress retrieved successfully", fiber.Map{
		"status":   session.Status,
		"progress": progress,
	})
}

func (h *ImportHandler) CancelSession(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.importRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	if session.Status == models.ImportStatusCompleted {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Session is already completed", nil)
	}

	if err := h.importRepo.UpdateSessionStatus(id, models.ImportStatusCanceled); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to cancel session", err)
	}

	return utils.SuccessResponse(c, "Session canceled", nil)
}

func (h *ImportHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	if err := h.importRepo.DeleteSession(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete session", err)
	}

	return utils.SuccessResponse(c, "Session deleted", nil)
}

func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	filePath := filepath.Join(h.cfg.UploadPath, "tracking_template.xlsx")
	if err := h.excelService.GenerateTrackingTemplate(filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}
	return c.Download(filePath, "tracking_template.xlsx")
}
