package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service)

	r := gin.New()
	r.POST("/api/login", handler.Login)
	r.POST("/api/register", handler.Register)
	r.POST("/api/logout", handler.Logout)
	return r
}

func TestLoginRouteReturnsToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	repo := newFakeUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &User{CompanyID: "c1", Name: "Test User", Email: "test@example.com", Password: string(hash), Role: RoleUser}
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := newTestRouter(NewService(repo, nil))

	body := `{"email":"test@example.com","password":"Password@123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token"`) {
		t.Errorf("response should contain a token, got %s", w.Body.String())
	}
}

func TestLoginRouteRejectsBadPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	repo := newFakeUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &User{CompanyID: "c1", Email: "test@example.com", Password: string(hash), Role: RoleUser}
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := newTestRouter(NewService(repo, nil))

	body := `{"email":"test@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLogoutRoute(t *testing.T) {
	r := newTestRouter(NewService(newFakeUserRepository(), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "logged out") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestRegisterRouteCreatesUser(t *testing.T) {
	repo := newFakeUserRepository()
	r := newTestRouter(NewService(repo, nil))

	body := `{"company_id":"c1","name":"Test User","email":"test@example.com","password":"Password@123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if repo.users["test@example.com"] == nil {
		t.Errorf("user should be persisted")
	}
}
