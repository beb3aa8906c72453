package company

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khp/internal/httpx"
	"khp/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/company
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	company, err := h.service.Get(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":         company,
		"public_menu_url": h.service.PublicMenuURL(company),
	})
}

// --------------------------------------------------
// PUT /api/company
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	company, err := h.service.UpdateName(c.Request.Context(), companyID, req.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// --------------------------------------------------
// POST /api/company/logo
// --------------------------------------------------
func (h *Handler) UploadLogo(c *gin.Context) {
	companyID := c.GetString("companyID")

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo is required"})
		return
	}
	defer file.Close()

	if err := storage.ValidateImageFile(header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.service.UploadLogo(c.Request.Context(), companyID, file, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
