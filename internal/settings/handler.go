package settings

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

// --- menu categories -------------------------------------------------------

// GET /api/menu-categories
func (h *Handler) ListCategories(c *gin.Context) {
	companyID := c.GetString("companyID")

	cats, err := h.service.ListCategories(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

// POST /api/menu-categories
func (h *Handler) CreateCategory(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cat, err := h.service.CreateCategory(c.Request.Context(), companyID, body.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// PUT /api/menu-categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body MenuCategory
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	body.ID = c.Param("id")
	cat, err := h.service.UpdateCategory(c.Request.Context(), companyID, body)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DELETE /api/menu-categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.DeleteCategory(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu category deleted"})
}

// --- menu types ------------------------------------------------------------

// GET /api/menu-types
func (h *Handler) ListTypes(c *gin.Context) {
	companyID := c.GetString("companyID")

	types, err := h.service.ListTypes(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}

// POST /api/menu-types
func (h *Handler) CreateType(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t, err := h.service.CreateType(c.Request.Context(), companyID, body.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/menu-types/:id
func (h *Handler) UpdateType(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body MenuType
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	body.ID = c.Param("id")
	t, err := h.service.UpdateType(c.Request.Context(), companyID, body)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PUT /api/menu-types/order
func (h *Handler) ReorderTypes(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Types []MenuType `json:"types"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	types, err := h.service.ReorderTypes(c.Request.Context(), companyID, body.Types)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}

// DELETE /api/menu-types/:id
func (h *Handler) DeleteType(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.DeleteType(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu type deleted"})
}

// --- quick accesses --------------------------------------------------------

// GET /api/quick-access
func (h *Handler) ListQuickAccesses(c *gin.Context) {
	companyID := c.GetString("companyID")

	list, err := h.service.ListQuickAccesses(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// POST /api/quick-access
func (h *Handler) CreateQuickAccess(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body QuickAccess
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	q, err := h.service.CreateQuickAccess(c.Request.Context(), companyID, body)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// PUT /api/quick-access/:id
func (h *Handler) UpdateQuickAccess(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body QuickAccess
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	body.ID = c.Param("id")
	q, err := h.service.UpdateQuickAccess(c.Request.Context(), companyID, body)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// DELETE /api/quick-access/:id
func (h *Handler) DeleteQuickAccess(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.DeleteQuickAccess(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quick access deleted"})
}

// POST /api/quick-access/reset
func (h *Handler) ResetQuickAccesses(c *gin.Context) {
	companyID := c.GetString("companyID")

	list, err := h.service.ResetQuickAccesses(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
