package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	trackingapp "github.com/parceldesk/backend/internal/application/tracking"
)

// ShipmentHandler handles shipment-related API endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *trackingapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *trackingapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

// CreateShipmentRequest represents a request to register a shipment
type CreateShipmentRequest struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	TrackingNumber string    `json:"tracking_number" binding:"required,min=1,max=100"`
	Carrier        string    `json:"carrier" binding:"max=100"`
}

// Create registers a new shipment for a customer
func (h *ShipmentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shipmentService.Create(c.Request.Context(), tenantID, trackingapp.CreateShipmentRequest{
		CustomerID:     req.CustomerID,
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Dispatch marks a pending shipment as in transit
func (h *ShipmentHandler) Dispatch(c *gin.Context) {
	h.transition(c, h.shipmentService.Dispatch)
}

// MarkDelivered closes a shipment as delivered
func (h *ShipmentHandler) MarkDelivered(c *gin.Context) {
	h.transition(c, h.shipmentService.MarkDelivered)
}

// MarkReturned closes a shipment as returned
func (h *ShipmentHandler) MarkReturned(c *gin.Context) {
	h.transition(c, h.shipmentService.MarkReturned)
}

// Cancel closes a shipment as cancelled
func (h *ShipmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.shipmentService.Cancel)
}

func (h *ShipmentHandler) transition(c *gin.Context, apply func(ctx context.Context, tenantID, shipmentID uuid.UUID) (*trackingapp.ShipmentResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	resp, err := apply(c.Request.Context(), tenantID, shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get retrieves a shipment by ID
func (h *ShipmentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	resp, err := h.shipmentService.GetByID(c.Request.Context(), tenantID, shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List retrieves shipments for the tenant with pagination
func (h *ShipmentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter trackingapp.ShipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shipmentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers all shipment routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/shipments")
	{
		shipments.GET("", h.List)
		shipments.GET("/:id", h.Get)
		shipments.POST("", h.Create)
		shipments.POST("/:id/dispatch", h.Dispatch)
		shipments.POST("/:id/deliver", h.MarkDelivered)
		shipments.POST("/:id/return", h.MarkReturned)
		shipments.POST("/:id/cancel", h.Cancel)
	}
}
