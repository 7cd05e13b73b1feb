package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(t *testing.T, api *API, username, password string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := api.db.Create(&db.User{Username: username, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func TestAdminLoginAndGate(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.POST("/admin/login", api.Login)
	auth := r.Group("/admin/api")
	auth.Use(AuthRequired())
	auth.GET("/galleries", api.ListGalleries)

	seedAdminUser(t, api, "studio", "correct-horse")

	// 未登录访问后台
	req := httptest.NewRequest(http.MethodGet, "/admin/api/galleries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}

	// 密码错误
	if w := postJSON(t, r, "/admin/login", gin.H{"username": "studio", "password": "wrong"}, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	// 登录成功
	login := postJSON(t, r, "/admin/login", gin.H{"username": "studio", "password": "correct-horse"}, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d (%s)", login.Code, login.Body.String())
	}
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected admin session cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/galleries", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}
}

func TestAdminLogoutClearsSession(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.POST("/admin/login", api.Login)
	r.POST("/admin/logout", api.Logout)
	auth := r.Group("/admin/api")
	auth.Use(AuthRequired())
	auth.GET("/galleries", api.ListGalleries)

	seedAdminUser(t, api, "studio", "correct-horse")

	login := postJSON(t, r, "/admin/login", gin.H{"username": "studio", "password": "correct-horse"}, nil)
	cookies := login.Result().Cookies()

	logout := postJSON(t, r, "/admin/logout", gin.H{}, cookies)
	if logout.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", logout.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/galleries", nil)
	for _, c := range logout.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}
