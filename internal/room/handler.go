package room

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

// GET /api/rooms
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")

	rooms, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GET /api/rooms/:id
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	rm, err := h.service.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rm)
}

// POST /api/rooms
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rm, err := h.service.Create(c.Request.Context(), companyID, body.Name, body.Code)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rm)
}

// PUT /api/rooms/:id
func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rm, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), body.Name, body.Code)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rm)
}

// DELETE /api/rooms/:id
func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

// POST /api/tables
func (h *Handler) CreateTable(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		RoomID string `json:"room_id"`
		Label  string `json:"label"`
		Seats  int    `json:"seats"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t, err := h.service.CreateTable(c.Request.Context(), companyID, body.RoomID, body.Label, body.Seats)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/tables/:id
func (h *Handler) UpdateTable(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Label string `json:"label"`
		Seats int    `json:"seats"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t, err := h.service.UpdateTable(c.Request.Context(), companyID, c.Param("id"), body.Label, body.Seats)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/tables/:id
func (h *Handler) DeleteTable(c *gin.Context) {
	companyID := c.GetString("companyID")

	if err := h.service.DeleteTable(c.Request.Context(), companyID, c.Param("id")); err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "table deleted"})
}
