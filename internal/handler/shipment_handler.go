package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"logistics-web/internal/models"
	"logistics-web/internal/repository"
	"logistics-web/internal/utils"
)

type ShipmentHandler struct {
	shipmentRepo *repository.ShipmentRepository
}

func NewShipmentHandler(shipmentRepo *repository.ShipmentRepository) *ShipmentHandler {
	return &ShipmentHandler{shipmentRepo: shipmentRepo}
}

func (h *ShipmentHandler) GetShipments(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	shipments, total, err := h.shipmentRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve shipments", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.PaginatedResponseBuilder(c, "Shipments retrieved successfully", fiber.Map{
		"shipments": shipments,
	}, pagination)
}

func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shipment ID", err)
	}

	shipment, err := h.shipmentRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Shipment not found", err)
	}

	events, err := h.shipmentRepo.GetEvents(shipment.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve events", err)
	}

	return utils.SuccessResponse(c, "Shipment retrieved successfully", models.TrackingView{
		Shipment: *shipment,
		Events:   events,
	})
}

func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var req models.ShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.ReferenceNo == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Reference number is required", nil)
	}

	existing, err := h.shipmentRepo.FindByReference(req.ReferenceNo)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check reference", err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Reference number already exists", nil)
	}

	shipment := shipmentFromRequest(req)
	if shipment.Status == "" {
		shipment.Status = models.ShipmentStatusInTransit
	}

	if err := h.shipmentRepo.Create(shipment); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create shipment", err)
	}

	return utils.SuccessResponse(c, "Shipment created successfully", shipment)
}

func (h *ShipmentHandler) UpdateShipment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shipment ID", err)
	}

	shipment, err := h.shipmentRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Shipment not found", err)
	}

	var req models.ShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updated := shipmentFromRequest(req)
	updated.ID = shipment.ID
	updated.ReferenceNo = shipment.ReferenceNo // reference is immutable
	if updated.Status == "" {
		updated.Status = shipment.Status
	}

	if err := h.shipmentRepo.Update(updated); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update shipment", err)
	}

	return utils.SuccessResponse(c, "Shipment updated successfully", updated)
}

func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shipment ID", err)
	}

	if err := h.shipmentRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete shipment", err)
	}

	return utils.SuccessResponse(c, "Shipment deleted successfully", nil)
}

// Track serves the public tracking lookup; no auth.
func (h *ShipmentHandler) Track(c *fiber.Ctx) error {
	reference := c.Params("reference")

	shipment, err := h.shipmentRepo.FindByReference(reference)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to look up shipment", err)
	}
	if shipment == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Shipment not found", nil)
	}

	events, err := h.shipmentRepo.GetEvents(shipment.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve events", err)
	}

	return utils.SuccessResponse(c, "Shipment retrieved successfully", models.TrackingView{
		Shipment: *shipment,
		Events:   events,
	})
}

func shipmentFromRequest(req models.ShipmentRequest) *models.Shipment {
	shipment := &models.Shipment{
		ReferenceNo: req.ReferenceNo,
		ContainerNo: req.ContainerNo,
		CustomerID:  req.CustomerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		CarrierName: req.CarrierName,
		VesselName:  req.VesselName,
		BookingNo:   req.BookingNo,
		Status:      req.Status,
		Description: req.Description,
	}
	if req.ETA != "" {
		if eta, err := time.Parse("2006-01-02", req.ETA); err == nil {
			shipment.ETA = &eta
		}
	}
	return shipment
}
