package order

import (
	"net/http"
	"strings"

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

type stepMenuBody struct {
	MenuID      string `json:"menu_id"`
	Quantity    int    `json:"quantity"`
	ServiceType string `json:"service_type"`
}

func toInputs(body []stepMenuBody) []StepMenuInput {
	out := make([]StepMenuInput, 0, len(body))
	for _, m := range body {
		out = append(out, StepMenuInput{MenuID: m.MenuID, Quantity: m.Quantity, ServiceType: m.ServiceType})
	}
	return out
}

// GET /api/orders?statuses=PENDING,SERVED&table_id=...
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("companyID")
	params := pagination.FromQuery(c)

	var f Filter
	if raw := c.Query("statuses"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Statuses = append(f.Statuses, strings.ToUpper(s))
			}
		}
	}
	f.TableID = c.Query("table_id")

	orders, info, err := h.service.List(c.Request.Context(), companyID, f, params)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Envelope(orders, info))
}

// GET /api/orders/:id
func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("companyID")

	o, err := h.service.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /api/orders
func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		TableID *string        `json:"table_id"`
		Menus   []stepMenuBody `json:"menus"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.service.Create(c.Request.Context(), companyID, body.TableID, toInputs(body.Menus))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// POST /api/orders/:id/step
func (h *Handler) AppendStep(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Menus []stepMenuBody `json:"menus"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	step, err := h.service.AppendStep(c.Request.Context(), companyID, c.Param("id"), toInputs(body.Menus))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

// POST /api/step-menus/:id/status
func (h *Handler) AdvanceStepMenu(c *gin.Context) {
	companyID := c.GetString("companyID")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sm, err := h.service.AdvanceStepMenu(c.Request.Context(), companyID, c.Param("id"), strings.ToUpper(body.Status))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sm)
}

// POST /api/orders/:id/served
func (h *Handler) MarkServed(c *gin.Context) {
	companyID := c.GetString("companyID")

	o, err := h.service.MarkServed(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /api/orders/:id/payed
func (h *Handler) MarkPayed(c *gin.Context) {
	companyID := c.GetString("companyID")

	o, err := h.service.MarkPayed(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /api/orders/queue
func (h *Handler) Queue(c *gin.Context) {
	companyID := c.GetString("companyID")

	summary, err := h.service.Queue(c.Request.Context(), companyID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
