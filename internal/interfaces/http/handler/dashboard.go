package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/newsagent/backend/internal/application/billing"
)

// DashboardHandler handles dashboard and balance API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *billingapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *billingapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary retrieves the agent dashboard: today's delivery snapshot,
// month-to-date invoice health, global pending and top pending customers
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// CustomerBalance retrieves the billed/paid/pending totals for one customer
func (h *DashboardHandler) CustomerBalance(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	balance, err := h.dashboardService.CustomerBalance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// RegisterRoutes registers all dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Summary)
	rg.GET("/customers/:id/balance", h.CustomerBalance)
}
