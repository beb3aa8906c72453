package preparation

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
// GET /api/preparations
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)

	preps, total, err := h.service.List(c.Request.Context(), companyID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch preparations"})
		return
	}
	if preps == nil {
		preps = []*Preparation{}
	}

	c.JSON(http.StatusOK, pagination.Envelope(preps, pagination.NewInfo(params, total)))
}

// --------------------------------------------------
// GET /api/preparations/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	prep, err := h.service.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prep)
}

// --------------------------------------------------
// POST /api/preparations
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prep, err := h.service.Create(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prep)
}

// --------------------------------------------------
// PUT /api/preparations/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prep, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prep)
}

// --------------------------------------------------
// DELETE /api/preparations/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "preparation deleted"})
}

type quantityRequest struct {
	LocationID string  `json:"location_id"`
	Quantity   float64 `json:"quantity"`
}

// --------------------------------------------------
// POST /api/preparations/:id/add-quantity
// --------------------------------------------------
func (h *Handler) AddQuantity(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.AddQuantity(c.Request.Context(), companyID, c.Param("id"), req.LocationID, req.Quantity)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// POST /api/preparations/:id/remove-quantity
// --------------------------------------------------
func (h *Handler) RemoveQuantity(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.RemoveQuantity(c.Request.Context(), companyID, c.Param("id"), req.LocationID, req.Quantity)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// POST /api/preparations/:id/move-quantity
// --------------------------------------------------
func (h *Handler) MoveQuantity(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		SourceLocationID      string  `json:"source_location_id"`
		DestinationLocationID string  `json:"destination_location_id"`
		Quantity              float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.MoveQuantity(
		c.Request.Context(),
		companyID,
		c.Param("id"),
		req.SourceLocationID,
		req.DestinationLocationID,
		req.Quantity,
	)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// GET /api/preparations/:id/move-candidates
// --------------------------------------------------
func (h *Handler) MoveCandidates(c *gin.Context) {
	companyID := c.GetString("companyID")

	candidates, err := h.service.MoveCandidates(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": candidates})
}
