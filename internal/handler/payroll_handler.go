package handler

import (
	"github.com/gofiber/fiber/v2"

	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/utils"
)

type PayrollHandler struct {
	payrollRepo  *repository.PayrollRepository
	employeeRepo *repository.EmployeeRepository
}

func NewPayrollHandler(payrollRepo *repository.PayrollRepository, employeeRepo *repository.EmployeeRepository) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

func (h *PayrollHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeRepo.FindAllActive()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve employees", err)
	}
	return utils.SuccessResponse(c, "Employees retrieved successfully", employees)
}

func (h *PayrollHandler) GetPayrolls(c *fiber.Ctx) error {
	period := c.Query("period")

	var payrolls []models.PayrollRecord
	var err error
	if period != "" {
		payrolls, err = h.payrollRepo.FindByPeriod(period)
	} else {
		payrolls, err = h.payrollRepo.FindAll()
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve payrolls", err)
	}

	return utils.SuccessResponse(c, "Payrolls retrieved successfully", payrolls)
}

func (h *PayrollHandler) CreatePayroll(c *fiber.Ctx) error {
	var req models.PayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.EmployeeID == 0 || req.Period == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Employee and period are required", nil)
	}

	// One payroll record per employee per period
	existing, err := h.payrollRepo.FindByPeriod(req.Period)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check period", err)
	}
	for _, p := range existing {
		if p.EmployeeID == req.EmployeeID {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Payroll already recorded for this employee and period", nil)
		}
	}

	payroll := &models.PayrollRecord{
		EmployeeID:       req.EmployeeID,
		Period:           req.Period,
		GrossSalary:      req.GrossSalary,
		AdvanceDeduction: req.AdvanceDeduction,
		NetPaid:          req.GrossSalary - req.AdvanceDeduction,
		Currency:         req.Currency,
	}

	if err := h.payrollRepo.Create(payroll); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create payroll record", err)
	}

	return utils.SuccessResponse(c, "Payroll recorded successfully", payroll)
}
