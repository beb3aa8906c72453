package auth

import (
	"errors"
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
// POST /api/login
// --------------------------------------------------
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		KeepSignedIn bool   `json:"keep_signed_in"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ttl := SessionTTL
	if req.KeepSignedIn {
		ttl = KeepSignedInTTL
	}

	token, err := GenerateToken(user.ID, user.CompanyID, user.Role, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// --------------------------------------------------
// POST /api/logout
// --------------------------------------------------
// Tokens are stateless; logout exists so clients have a single call that
// confirms the session is over before they drop the token.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// --------------------------------------------------
// POST /api/register
// --------------------------------------------------
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		CompanyID   string `json:"company_id"`
		CompanyName string `json:"company_name"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.CompanyID, req.CompanyName, req.Name, req.Email, req.Password, RoleUser)
	if err != nil {
		var ve *httpx.ValidationError
		if errors.As(err, &ve) {
			httpx.RespondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// --------------------------------------------------
// GET /api/user
// --------------------------------------------------
func (h *Handler) GetUser(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// --------------------------------------------------
// PUT /api/user
// --------------------------------------------------
func (h *Handler) UpdateUser(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// --------------------------------------------------
// PUT /api/user/password
// --------------------------------------------------
func (h *Handler) UpdatePassword(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
