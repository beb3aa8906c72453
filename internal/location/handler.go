package location

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
// GET /api/locations
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)

	locations, total, err := h.service.List(c.Request.Context(), companyID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations"})
		return
	}
	if locations == nil {
		locations = []*Location{}
	}

	c.JSON(http.StatusOK, pagination.Envelope(locations, pagination.NewInfo(params, total)))
}

// --------------------------------------------------
// POST /api/location
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name           string  `json:"name"`
		LocationTypeID *string `json:"location_type_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	loc, err := h.service.Create(c.Request.Context(), companyID, req.Name, req.LocationTypeID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// --------------------------------------------------
// PUT /api/location/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name           string  `json:"name"`
		LocationTypeID *string `json:"location_type_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	loc, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), req.Name, req.LocationTypeID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

// --------------------------------------------------
// DELETE /api/location/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location deleted"})
}

// --------------------------------------------------
// GET /api/location-types
// --------------------------------------------------
func (h *Handler) ListTypes(c *gin.Context) {
	companyID := c.GetString("companyID")

	types, err := h.service.ListTypes(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location types"})
		return
	}
	if types == nil {
		types = []*LocationType{}
	}

	c.JSON(http.StatusOK, gin.H{"data": types})
}

// --------------------------------------------------
// POST /api/location-types
// --------------------------------------------------
func (h *Handler) CreateType(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lt, err := h.service.CreateType(c.Request.Context(), companyID, req.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lt)
}

// --------------------------------------------------
// PUT /api/location-types/:id
// --------------------------------------------------
func (h *Handler) UpdateType(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lt, err := h.service.UpdateType(c.Request.Context(), companyID, c.Param("id"), req.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lt)
}

// --------------------------------------------------
// DELETE /api/location-types/:id
// --------------------------------------------------
func (h *Handler) DeleteType(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.DeleteType(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location type deleted"})
}
