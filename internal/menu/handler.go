package menu

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"khp/internal/httpx"
	"khp/internal/pagination"
	"khp/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func splitIDs(raw string) []string {
	ids := []string{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// --------------------------------------------------
// GET /api/menus
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)
	filter := Filter{
		CategoryIDs: splitIDs(c.Query("category_ids")),
		TypeIDs:     splitIDs(c.Query("type_ids")),
	}

	menus, total, err := h.service.List(c.Request.Context(), companyID, params, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menus"})
		return
	}
	if menus == nil {
		menus = []*Menu{}
	}

	c.JSON(http.StatusOK, pagination.Envelope(menus, pagination.NewInfo(params, total)))
}

// --------------------------------------------------
// GET /menus/public/:key (no auth)
// --------------------------------------------------
func (h *Handler) ListPublic(c *gin.Context) {
	menus, err := h.service.ListPublic(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menus"})
		return
	}
	if menus == nil {
		menus = []*Menu{}
	}

	c.JSON(http.StatusOK, gin.H{"data": menus})
}

// --------------------------------------------------
// GET /api/menus/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	m, err := h.service.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// POST /api/menus
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.Create(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// --------------------------------------------------
// PUT /api/menus/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// DELETE /api/menus/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

// --------------------------------------------------
// POST /api/menus/:id/image
// --------------------------------------------------
func (h *Handler) UploadImage(c *gin.Context) {
	companyID := c.GetString("companyID")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	if err := storage.ValidateImageFile(header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.service.UploadImage(c.Request.Context(), companyID, c.Param("id"), file, header.Filename)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
