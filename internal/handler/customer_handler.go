package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/utils"
)

type CustomerHandler struct {
	customerRepo *repository.CustomerRepository
}

func NewCustomerHandler(customerRepo *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	customers, total, err := h.customerRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve customers", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.PaginatedResponseBuilder(c, "Customers retrieved successfully", fiber.Map{
		"customers": customers,
	}, pagination)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", err)
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", err)
	}

	return utils.SuccessResponse(c, "Customer retrieved successfully", customer)
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req models.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Customer name is required", nil)
	}

	normalized := utils.NormalizeName(req.Name)
	existing, err := h.customerRepo.FindByNormalizedName(normalized)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check customer name", err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Customer already exists", nil)
	}

	customer := &models.Customer{
		Name:           req.Name,
		NameNormalized: normalized,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		TaxNo:          req.TaxNo,
	}

	if err := h.customerRepo.Create(customer); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create customer", err)
	}

	return utils.SuccessResponse(c, "Customer created successfully", customer)
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", err)
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", err)
	}

	var req models.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.Name != "" {
		customer.Name = req.Name
		customer.NameNormalized = utils.NormalizeName(req.Name)
	}
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.TaxNo = req.TaxNo

	if err := h.customerRepo.Update(customer); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update customer", err)
	}

	return utils.SuccessResponse(c, "Customer updated successfully", customer)
}

func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", err)
	}

	if err := h.customerRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete customer", err)
	}

	return utils.SuccessResponse(c, "Customer deleted successfully", nil)
}
