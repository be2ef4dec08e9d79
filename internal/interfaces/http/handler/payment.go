package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	billingapp "github.com/newsagent/backend/internal/application/billing"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// PaymentHandler handles payment ledger API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RecordPaymentRequest represents a request to record a payment against
// an invoice. Amounts travel as decimal strings; payment_date defaults
// to today when omitted.
type RecordPaymentRequest struct {
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Mode        string `json:"mode" binding:"required,oneof=CASH UPI CHEQUE TRANSFER"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// PaymentListResponse pairs an invoice's payments with its balance
type PaymentListResponse struct {
	Payments []billing.Payment       `json:"payments"`
	Balance  *billing.InvoiceBalance `json:"balance"`
}

// Record appends a payment to an invoice
func (h *PaymentHandler) Record(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount format")
		return
	}

	paymentDate := shared.DateOf(time.Now())
	if req.PaymentDate != "" {
		paymentDate, _ = shared.ParseDate(req.PaymentDate)
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), billingapp.RecordPaymentRequest{
		InvoiceID:   invoiceID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Mode:        billing.PaymentMode(req.Mode),
		Notes:       req.Notes,
		Actor:       actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListForInvoice retrieves an invoice's payments and current balance
func (h *PaymentHandler) ListForInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, balance, err := h.paymentService.ListForInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PaymentListResponse{
		Payments: payments,
		Balance:  balance,
	})
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices/:id/payments", h.Record)
	rg.GET("/invoices/:id/payments", h.ListForInvoice)
}
