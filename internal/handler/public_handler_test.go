package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumenfolio/internal/service"
)

func TestGetPublicPageRendersMarkdown(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.GET("/api/pages/:slug", api.GetPublicPage)

	if _, err := api.pages.Save(0, service.PageInput{
		Title:     "Services",
		Content:   "# 婚礼跟拍\n\n**全天**服务",
		Published: true,
	}); err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pages/services", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		OK   bool   `json:"ok"`
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.HTML, "<strong>") {
		t.Fatalf("expected rendered markdown, got %q", resp.HTML)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown page, got %d", w.Code)
	}
}

func TestListPublishedGalleriesSignsCovers(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.GET("/api/galleries", api.ListPublishedGalleries)

	if _, err := api.galleries.Create(service.GalleryInput{
		Name:      "Weddings",
		Published: true,
		CoverKey:  "portfolio/weddings/hero.jpg",
	}); err != nil {
		t.Fatalf("failed to seed gallery: %v", err)
	}
	if _, err := api.galleries.Create(service.GalleryInput{Name: "Hidden"}); err != nil {
		t.Fatalf("failed to seed hidden gallery: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/galleries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []struct {
			Slug     string `json:"slug"`
			CoverURL string `json:"coverUrl"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected only published galleries, got %d", len(resp.Items))
	}
	if !strings.Contains(resp.Items[0].CoverURL, "X-Amz-Signature") {
		t.Fatalf("expected signed cover URL, got %q", resp.Items[0].CoverURL)
	}
}
