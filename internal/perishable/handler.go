package perishable

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khp/internal/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/perishables
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")

	lots, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch perishables"})
		return
	}
	if lots == nil {
		lots = []*Perishable{}
	}

	c.JSON(http.StatusOK, gin.H{"data": lots})
}

// --------------------------------------------------
// POST /api/perishables
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// --------------------------------------------------
// POST /api/perishables/:id/read
// --------------------------------------------------
func (h *Handler) MarkRead(c *gin.Context) {
	companyID := c.GetString("companyID")

	p, err := h.service.MarkRead(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
