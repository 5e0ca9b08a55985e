package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/service"
	"logistics-web/internal/utils"
)

type AdvanceHandler struct {
	advanceRepo  *repository.AdvanceRepository
	payrollRepo  *repository.PayrollRepository
	employeeRepo *repository.EmployeeRepository
	rollup       *service.RollupService
}

func NewAdvanceHandler(
	advanceRepo *repository.AdvanceRepository,
	payrollRepo *repository.PayrollRepository,
	employeeRepo *repository.EmployeeRepository,
	rollup *service.RollupService,
) *AdvanceHandler {
	return &AdvanceHandler{
		advanceRepo:  advanceRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		rollup:       rollup,
	}
}

func (h *AdvanceHandler) GetAdvances(c *fiber.Ctx) error {
	advances, err := h.advanceRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve advances", err)
	}
	return utils.SuccessResponse(c, "Advances retrieved successfully", advances)
}

func (h *AdvanceHandler) CreateAdvance(c *fiber.Ctx) error {
	var req models.AdvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.EmployeeID == 0 || req.Amount <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Employee and a positive amount are required", nil)
	}

	status := req.Status
	switch status {
	case "":
		status = models.AdvanceStatusPending
	case models.AdvanceStatusApproved, models.AdvanceStatusPending, models.AdvanceStatusRejected:
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid advance status", nil)
	}

	date := time.Now()
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = parsed
		}
	}

	advance := &models.AdvanceRecord{
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Date:       date,
		Status:     status,
		Note:       req.Note,
	}

	if err := h.advanceRepo.Create(advance); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create advance", err)
	}

	return utils.SuccessResponse(c, "Advance created successfully", advance)
}

func (h *AdvanceHandler) DeleteAdvance(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid advance ID", err)
	}

	if err := h.advanceRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete advance", err)
	}

	return utils.SuccessResponse(c, "Advance deleted successfully", nil)
}

// GetSummary recomputes every employee's advance position from scratch.
func (h *AdvanceHandler) GetSummary(c *fiber.Ctx) error {
	employees, err := h.employeeRepo.FindAllActive()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve employees", err)
	}

	advances, err := h.advanceRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve advances", err)
	}

	payrolls, err := h.payrollRepo.FindAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve payrolls", err)
	}

	summaries := h.rollup.BuildAdvanceSummaries(employees, advances, payrolls)
	return utils.SuccessResponse(c, "Advance summary retrieved successfully", summaries)
}
