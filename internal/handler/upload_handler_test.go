package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/config"
	"github.com/lumenfolio/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSignUploadEndpoint(t *testing.T) {
	api, r, cleanup := setupTestAPI(t)
	defer cleanup()

	r.POST("/admin/api/uploads/sign", api.SignUpload)

	// 缺少文件类型
	if w := postJSON(t, r, "/admin/api/uploads/sign", gin.H{
		"category": "gallery",
		"entityId": "42",
		"filename": "img1.jpg",
	}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without content type, got %d", w.Code)
	}

	// key 与构造参数都缺失
	if w := postJSON(t, r, "/admin/api/uploads/sign", gin.H{
		"contentType": "image/jpeg",
	}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without key, got %d", w.Code)
	}

	// 服务端构造 key，私享时效被收紧
	w := postJSON(t, r, "/admin/api/uploads/sign", gin.H{
		"category":    "gallery",
		"entityId":    "42",
		"filename":    "img1.jpg",
		"contentType": "image/jpeg",
		"expiresIn":   999999,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		OK        bool   `json:"ok"`
		URL       string `json:"url"`
		Key       string `json:"key"`
		ExpiresIn int    `json:"expiresIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Key, "client-galleries/gallery/42/") {
		t.Fatalf("expected key under private prefix, got %q", resp.Key)
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Fatalf("expected expiry clamped to 900s, got %d", resp.ExpiresIn)
	}
	if !strings.Contains(resp.URL, "X-Amz-Signature") {
		t.Fatalf("expected a signed URL, got %q", resp.URL)
	}

	// 显式 key + 公开素材
	w = postJSON(t, r, "/admin/api/uploads/sign", gin.H{
		"key":         "portfolio/weddings/hero.jpg",
		"contentType": "image/jpeg",
		"visibility":  "public",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for public upload, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestSignUploadFailsClosedWithoutStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:nostorage-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	defer func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	// 存储配置为空：签名接口必须直接失败，而不是返回未签名地址
	cfg := &config.AppConfig{SessionSecret: "test-secret"}
	api := NewAPI(gdb, cfg)

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.SessionsMany([]string{AdminSessionName, ClientSessionName}, store))
	r.POST("/admin/api/uploads/sign", api.SignUpload)

	w := postJSON(t, r, "/admin/api/uploads/sign", gin.H{
		"key":         "portfolio/hero.jpg",
		"contentType": "image/jpeg",
	}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when storage unconfigured, got %d", w.Code)
	}
}
