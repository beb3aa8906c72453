package loss

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/losses
// --------------------------------------------------
func (h *Handler) Register(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// --------------------------------------------------
// GET /api/losses
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)

	losses, total, err := h.service.List(c.Request.Context(), companyID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch losses"})
		return
	}
	if losses == nil {
		losses = []*Loss{}
	}

	c.JSON(http.StatusOK, pagination.Envelope(losses, pagination.NewInfo(params, total)))
}
