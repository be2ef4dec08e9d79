package handler

import (
	"github.com/gin-gonic/gin"

	subscriberapp "github.com/newsagent/backend/internal/application/subscriber"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/interfaces/http/dto"
)

// NewsPaperHandler handles newspaper catalog API endpoints
type NewsPaperHandler struct {
	BaseHandler
	paperService *subscriberapp.NewsPaperService
}

// NewNewsPaperHandler creates a new NewsPaperHandler
func NewNewsPaperHandler(paperService *subscriberapp.NewsPaperService) *NewsPaperHandler {
	return &NewsPaperHandler{
		paperService: paperService,
	}
}

// CreateNewsPaperRequest represents a request to add a newspaper.
// Prices travel as decimal strings to avoid float rounding on the wire.
type CreateNewsPaperRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	PricePerDay string `json:"price_per_day" binding:"required"`
}

// ChangePriceRequest represents a request to change a newspaper's daily price
type ChangePriceRequest struct {
	PricePerDay string `json:"price_per_day" binding:"required"`
}

// Create adds a newspaper to the catalog
func (h *NewsPaperHandler) Create(c *gin.Context) {
	var req CreateNewsPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	price, err := valueobject.NewMoneyFromString(req.PricePerDay)
	if err != nil {
		h.BadRequest(c, "Invalid price format")
		return
	}

	paper, err := h.paperService.CreateNewsPaper(c.Request.Context(), req.Name, price)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, paper)
}

// ChangePrice updates a newspaper's daily price. Already recorded
// deliveries keep the price they were created with.
func (h *NewsPaperHandler) ChangePrice(c *gin.Context) {
	paperID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid newspaper ID format")
		return
	}

	var req ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	price, err := valueobject.NewMoneyFromString(req.PricePerDay)
	if err != nil {
		h.BadRequest(c, "Invalid price format")
		return
	}

	paper, err := h.paperService.ChangePrice(c.Request.Context(), paperID, price)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, paper)
}

// GetByID retrieves a newspaper by ID
func (h *NewsPaperHandler) GetByID(c *gin.Context) {
	paperID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid newspaper ID format")
		return
	}

	paper, err := h.paperService.GetNewsPaper(c.Request.Context(), paperID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, paper)
}

// List retrieves the newspaper catalog
func (h *NewsPaperHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	papers, err := h.paperService.ListNewsPapers(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, papers)
}

// RegisterRoutes registers all newspaper routes
func (h *NewsPaperHandler) RegisterRoutes(rg *gin.RouterGroup) {
	papers := rg.Group("/newspapers")
	{
		papers.POST("", h.Create)
		papers.GET("", h.List)
		papers.GET("/:id", h.GetByID)
		papers.PUT("/:id/price", h.ChangePrice)
	}
}
