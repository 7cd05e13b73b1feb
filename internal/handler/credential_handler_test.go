package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

func TestCreateCredentialEndpoint(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.POST("/admin/api/credentials", api.CreateCredential)

	gallery, err := api.galleries.Create(service.GalleryInput{Name: "Creds"})
	if err != nil {
		t.Fatalf("failed to seed gallery: %v", err)
	}

	// 集合不存在
	if w := postJSON(t, r, "/admin/api/credentials", gin.H{"galleryId": 99999}, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown gallery, got %d", w.Code)
	}

	// 过期时间格式错误
	if w := postJSON(t, r, "/admin/api/credentials", gin.H{
		"galleryId": gallery.ID,
		"expiresAt": "昨天",
	}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed expiry, got %d", w.Code)
	}

	// 显式访问码
	w := postJSON(t, r, "/admin/api/credentials", gin.H{
		"galleryId": gallery.ID,
		"code":      "SPRING2026",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		OK   bool   `json:"ok"`
		ID   uint   `json:"id"`
		Code string `json:"code"`
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "SPRING2026" {
		t.Fatalf("expected plaintext code in creation response, got %q", resp.Code)
	}
	if resp.Hint != "2026" {
		t.Fatalf("expected hint 2026, got %q", resp.Hint)
	}

	// 省略访问码时由系统生成
	w = postJSON(t, r, "/admin/api/credentials", gin.H{"galleryId": gallery.ID}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for generated code, got %d", w.Code)
	}
	var generated struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &generated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(generated.Code) < 8 {
		t.Fatalf("expected generated code, got %q", generated.Code)
	}
}

func TestRevokeCredentialEndpointIdempotent(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.DELETE("/admin/api/credentials/:id", api.RevokeCredential)

	gallery, err := api.galleries.Create(service.GalleryInput{Name: "Revoke"})
	if err != nil {
		t.Fatalf("failed to seed gallery: %v", err)
	}
	issued, err := api.credentials.Issue(service.CredentialInput{GalleryID: gallery.ID, Code: "REVOKE123"})
	if err != nil {
		t.Fatalf("failed to issue credential: %v", err)
	}

	path := fmt.Sprintf("/admin/api/credentials/%d", issued.ID)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("revoke attempt %d: expected 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/credentials/99999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown credential, got %d", w.Code)
	}
}

func TestListGalleryCredentialsHidesSecrets(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.GET("/admin/api/galleries/:id/credentials", api.ListGalleryCredentials)

	gallery, err := api.galleries.Create(service.GalleryInput{Name: "Listing"})
	if err != nil {
		t.Fatalf("failed to seed gallery: %v", err)
	}
	if _, err := api.credentials.Issue(service.CredentialInput{GalleryID: gallery.ID, Code: "LISTING99"}); err != nil {
		t.Fatalf("failed to issue credential: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/api/galleries/%d/credentials", gallery.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	if _, exists := resp.Items[0]["hint"]; !exists {
		t.Fatalf("expected hint in listing")
	}
	for _, forbidden := range []string{"CodeHash", "codeHash", "Salt", "salt", "code"} {
		if _, exists := resp.Items[0][forbidden]; exists {
			t.Fatalf("credential listing must not expose %s", forbidden)
		}
	}
}
