package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subscriberapp "github.com/newsagent/backend/internal/application/subscriber"
	"github.com/newsagent/backend/internal/domain/shared"
)

// SubscriptionHandler handles subscription API endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *subscriberapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *subscriberapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// CreateSubscriptionRequest represents a request to subscribe a customer
// to a newspaper. Dates are calendar dates in YYYY-MM-DD.
type CreateSubscriptionRequest struct {
	CustomerID  string  `json:"customer_id" binding:"required,uuid"`
	NewsPaperID string  `json:"newspaper_id" binding:"required,uuid"`
	StartDate   string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// EndSubscriptionRequest represents a request to end a subscription
type EndSubscriptionRequest struct {
	EndDate string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// Create subscribes a customer to a newspaper
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, _ := uuid.Parse(req.CustomerID)
	paperID, _ := uuid.Parse(req.NewsPaperID)
	startDate, _ := shared.ParseDate(req.StartDate)

	var endDate *time.Time
	if req.EndDate != nil {
		d, _ := shared.ParseDate(*req.EndDate)
		endDate = &d
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), subscriberapp.CreateSubscriptionRequest{
		CustomerID:  customerID,
		NewsPaperID: paperID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sub)
}

// End closes a subscription as of the given date
func (h *SubscriptionHandler) End(c *gin.Context) {
	subscriptionID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID format")
		return
	}

	var req EndSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	endDate, _ := shared.ParseDate(req.EndDate)

	sub, err := h.subscriptionService.EndSubscription(c.Request.Context(), subscriptionID, endDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// GetByID retrieves a subscription by ID
func (h *SubscriptionHandler) GetByID(c *gin.Context) {
	subscriptionID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID format")
		return
	}

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), subscriptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// ListByCustomer retrieves all subscriptions of a customer
func (h *SubscriptionHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	subs, err := h.subscriptionService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, subs)
}

// RegisterRoutes registers all subscription routes
func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.Create)
		subscriptions.GET("/:id", h.GetByID)
		subscriptions.POST("/:id/end", h.End)
	}

	rg.GET("/customers/:id/subscriptions", h.ListByCustomer)
}
