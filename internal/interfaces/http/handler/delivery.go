package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/newsagent/backend/internal/application/billing"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/interfaces/http/dto"
)

// DeliveryHandler handles delivery ledger API endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *billingapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *billingapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// GenerateDeliveriesRequest represents a request to generate the
// delivery ledger for one calendar date
type GenerateDeliveriesRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// RecordDeliveryRequest represents a request to record a single delivery
type RecordDeliveryRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
}

// SetStatusRequest represents a request to overwrite a delivery status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DELIVERED NOT_DELIVERED HOLIDAY"`
}

// SetStatusForDateRequest represents a bulk status overwrite for a date
type SetStatusForDateRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Status string `json:"status" binding:"required,oneof=DELIVERED NOT_DELIVERED HOLIDAY"`
}

// Generate creates delivery rows for every active subscription on the
// given date. Running it twice is safe; existing rows are left alone.
func (h *DeliveryHandler) Generate(c *gin.Context) {
	var req GenerateDeliveriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, _ := shared.ParseDate(req.Date)

	result, err := h.deliveryService.GenerateForDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Record creates a single delivery for a customer and date
func (h *DeliveryHandler) Record(c *gin.Context) {
	var req RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, _ := uuid.Parse(req.CustomerID)
	date, _ := shared.ParseDate(req.Date)

	delivery, created, err := h.deliveryService.RecordDelivery(c.Request.Context(), customerID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if created {
		h.Created(c, delivery)
		return
	}
	h.Success(c, delivery)
}

// SetStatus overwrites the status of one delivery
func (h *DeliveryHandler) SetStatus(c *gin.Context) {
	deliveryID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	delivery, err := h.deliveryService.SetStatus(c.Request.Context(), deliveryID, billing.DeliveryStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, delivery)
}

// SetStatusForDate overwrites the status of every delivery on a date,
// used for holiday marking
func (h *DeliveryHandler) SetStatusForDate(c *gin.Context) {
	var req SetStatusForDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, _ := shared.ParseDate(req.Date)

	updated, err := h.deliveryService.SetStatusForDate(c.Request.Context(), date, billing.DeliveryStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"date": req.Date, "updated": updated})
}

// List retrieves the delivery ledger for a date with customer search
func (h *DeliveryHandler) List(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		h.BadRequest(c, "Query parameter 'date' must be a YYYY-MM-DD date")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.deliveryService.ListForDate(c.Request.Context(), date, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RegisterRoutes registers all delivery routes
func (h *DeliveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deliveries := rg.Group("/deliveries")
	{
		deliveries.GET("", h.List)
		deliveries.POST("", h.Record)
		deliveries.POST("/generate", h.Generate)
		deliveries.PATCH("/status", h.SetStatusForDate)
		deliveries.PATCH("/:id/status", h.SetStatus)
	}
}
