package ingredient

import (
	"net/http"
	"strconv"
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

func filterFromQuery(c *gin.Context) Filter {
	var f Filter
	if raw := c.Query("category_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.CategoryIDs = append(f.CategoryIDs, id)
			}
		}
	}
	if f.CategoryIDs == nil {
		f.CategoryIDs = []string{}
	}
	return f
}

// --------------------------------------------------
// GET /api/ingredients
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)

	ingredients, total, err := h.service.List(c.Request.Context(), companyID, params, filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}
	if ingredients == nil {
		ingredients = []*Ingredient{}
	}

	c.JSON(http.StatusOK, pagination.Envelope(ingredients, pagination.NewInfo(params, total)))
}

// --------------------------------------------------
// GET /api/ingredients/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	ing, err := h.service.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// POST /api/ingredients
// --------------------------------------------------
// Accepts JSON, or multipart form data when an image accompanies the
// creation. A multipart body carrying _method=PUT is routed to update
// semantics by UpdateWithImage, not here.
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.createMultipart(c, companyID)
		return
	}

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Create(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func inputFromForm(c *gin.Context) Input {
	var in Input
	in.Name = c.PostForm("name")
	in.Unit = c.PostForm("unit")
	in.BaseQuantity, _ = strconv.ParseFloat(c.DefaultPostForm("base_quantity", "1"), 64)
	in.BaseUnit = c.PostForm("base_unit")
	if v := c.PostForm("category_id"); v != "" {
		in.CategoryID = &v
	}
	if raw := c.PostForm("allergens"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				in.Allergens = append(in.Allergens, a)
			}
		}
	}
	return in
}

func (h *Handler) createMultipart(c *gin.Context, companyID string) {
	in := inputFromForm(c)

	ing, err := h.service.Create(c.Request.Context(), companyID, in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	if file, header, ferr := c.Request.FormFile("image"); ferr == nil {
		defer file.Close()

		if err := storage.ValidateImageFile(header); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := h.service.UploadImage(c.Request.Context(), companyID, ing.ID, file, header.Filename); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ing, _ = h.service.Get(c.Request.Context(), companyID, ing.ID)
	}

	c.JSON(http.StatusCreated, ing)
}

// --------------------------------------------------
// PUT /api/ingredients/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// POST /api/ingredients/:id (multipart, _method=PUT)
// --------------------------------------------------
// Update-with-file: browsers cannot send multipart bodies on PUT, so the
// form carries a _method override field instead.
func (h *Handler) UpdateWithImage(c *gin.Context) {
	companyID := c.GetString("companyID")

	if c.PostForm("_method") != "PUT" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "_method=PUT is required"})
		return
	}

	in := inputFromForm(c)
	ing, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), in)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	if file, header, ferr := c.Request.FormFile("image"); ferr == nil {
		defer file.Close()

		if err := storage.ValidateImageFile(header); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := h.service.UploadImage(c.Request.Context(), companyID, ing.ID, file, header.Filename); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ing, _ = h.service.Get(c.Request.Context(), companyID, ing.ID)
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// DELETE /api/ingredients/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}

// --------------------------------------------------
// PUT /api/ingredients/:id/stock
// --------------------------------------------------
func (h *Handler) SetStock(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		LocationID string  `json:"location_id"`
		Quantity   float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.SetStock(c.Request.Context(), companyID, c.Param("id"), req.LocationID, req.Quantity)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// GET /api/ingredient-categories
// --------------------------------------------------
func (h *Handler) ListCategories(c *gin.Context) {
	companyID := c.GetString("companyID")

	categories, err := h.service.ListCategories(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []*Category{}
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// --------------------------------------------------
// POST /api/ingredient-categories
// --------------------------------------------------
func (h *Handler) CreateCategory(c *gin.Context) {
	companyID := c.GetString("companyID")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), companyID, req.Name)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// --------------------------------------------------
// GET /api/stock/summary
// --------------------------------------------------
func (h *Handler) StockSummary(c *gin.Context) {
	companyID := c.GetString("companyID")

	summary, err := h.service.StockSummary(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stock summary"})
		return
	}
	if summary == nil {
		summary = []*StockSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}
