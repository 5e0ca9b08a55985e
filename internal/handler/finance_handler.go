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

type FinanceHandler struct {
	ledgerRepo *repository.LedgerRepository
	rollup     *service.RollupService
}

func NewFinanceHandler(ledgerRepo *repository.LedgerRepository, rollup *service.RollupService) *FinanceHandler {
	return &FinanceHandler{
		ledgerRepo: ledgerRepo,
		rollup:     rollup,
	}
}

func (h *FinanceHandler) GetEntries(c *fiber.Ctx) error {
	source := c.Query("source")
	if source != "" && source != models.LedgerSourceOffice && source != models.LedgerSourceShipmentFile {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ledger source", nil)
	}

	entries, err := h.ledgerRepo.FindAll(source)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve ledger entries", err)
	}

	return utils.SuccessResponse(c, "Ledger entries retrieved successfully", entries)
}

func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	var req models.LedgerEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Type != models.LedgerTypeIncome && req.Type != models.LedgerTypeExpense {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Type must be income or expense", nil)
	}
	if req.Amount <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount must be positive", nil)
	}

	source := req.Source
	if source == "" {
		source = models.LedgerSourceOffice
	}

	entryDate := time.Now()
	if req.EntryDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.EntryDate); err == nil {
			entryDate = parsed
		}
	}

	entry := &models.CurrencyLedgerEntry{
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Source:      source,
		Description: req.Description,
		EntryDate:   entryDate,
	}

	if err := h.ledgerRepo.Create(entry); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create ledger entry", err)
	}

	return utils.SuccessResponse(c, "Ledger entry created successfully", entry)
}

func (h *FinanceHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entry ID", err)
	}

	if err := h.ledgerRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete ledger entry", err)
	}

	return utils.SuccessResponse(c, "Ledger entry deleted successfully", nil)
}

// GetRollup returns per-currency nets. With ?estimate=1 it also includes the
// approximate base-currency total; the two are never mixed.
func (h *FinanceHandler) GetRollup(c *fiber.Ctx) error {
	source := c.Query("source")

	entries, err := h.ledgerRepo.FindAll(source)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve ledger entries", err)
	}

	rollup := h.rollup.RollupLedger(entries)

	data := fiber.Map{"rollup": rollup}
	if c.Query("estimate") == "1" {
		data["estimate"] = h.rollup.EstimateInBase(rollup)
	}

	return utils.SuccessResponse(c, "Rollup computed successfully", data)
}
