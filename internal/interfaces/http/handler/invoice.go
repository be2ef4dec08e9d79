package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/newsagent/backend/internal/application/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// GenerateInvoiceRequest represents a request to bill a customer up to
// and including to_date
type GenerateInvoiceRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	ToDate     string `json:"to_date" binding:"required,datetime=2006-01-02"`
}

// BillingPeriodResponse previews the next billing period start for a customer
type BillingPeriodResponse struct {
	CustomerID string `json:"customer_id"`
	FromDate   string `json:"from_date"`
}

// Generate creates an invoice covering every delivered, unbilled day up
// to to_date
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	customerID, _ := uuid.Parse(req.CustomerID)
	toDate, _ := shared.ParseDate(req.ToDate)

	invoice, err := h.invoiceService.Generate(c.Request.Context(), customerID, toDate, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetDetail retrieves an invoice with line items, payments and balance
func (h *InvoiceHandler) GetDetail(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	detail, err := h.invoiceService.GetDetail(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// List retrieves invoices newest first with customer name/phone search
func (h *InvoiceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByCustomer retrieves a customer's invoices
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, err := h.invoiceService.ListByCustomer(c.Request.Context(), customerID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}

// NextBillingPeriod previews where the next invoice for a customer
// would start, without creating anything
func (h *InvoiceHandler) NextBillingPeriod(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	fromDate, err := h.invoiceService.ResolveFromDate(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, BillingPeriodResponse{
		CustomerID: customerID.String(),
		FromDate:   shared.FormatDate(fromDate),
	})
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Generate)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetDetail)
	}

	rg.GET("/customers/:id/invoices", h.ListByCustomer)
	rg.GET("/customers/:id/billing-period", h.NextBillingPeriod)
}
