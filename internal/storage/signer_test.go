package storage

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/lumenfolio/internal/config"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:  "minio.test:9000",
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Bucket:    "lumenfolio-media",
		Region:    "us-east-1",
		UseSSL:    false,
	}
}

func TestNewSignerFailsClosedWithoutConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.StorageConfig)
	}{
		{name: "missing endpoint", mutate: func(c *config.StorageConfig) { c.Endpoint = "" }},
		{name: "missing access key", mutate: func(c *config.StorageConfig) { c.AccessKey = "" }},
		{name: "missing secret key", mutate: func(c *config.StorageConfig) { c.SecretKey = "" }},
		{name: "missing bucket", mutate: func(c *config.StorageConfig) { c.Bucket = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testStorageConfig()
			tc.mutate(&cfg)
			if _, err := NewSigner(cfg, PublicProfile); !errors.Is(err, ErrNotConfigured) {
				t.Fatalf("expected ErrNotConfigured, got %v", err)
			}
		})
	}
}

func TestSignUploadRequiresContentType(t *testing.T) {
	signer, err := NewSigner(testStorageConfig(), PublicProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	if _, err := signer.SignUpload(context.Background(), "gallery/g1/img1.jpg", "", 0); !errors.Is(err, ErrContentTypeMissing) {
		t.Fatalf("expected ErrContentTypeMissing, got %v", err)
	}
	if _, err := signer.SignUpload(context.Background(), "", "image/jpeg", 0); !errors.Is(err, ErrKeyMissing) {
		t.Fatalf("expected ErrKeyMissing, got %v", err)
	}
	if _, err := signer.SignUpload(context.Background(), "gallery/../secrets", "image/jpeg", 0); !errors.Is(err, ErrKeyInvalid) {
		t.Fatalf("expected ErrKeyInvalid, got %v", err)
	}
}

func TestPrivateSignerEnforcesKeyPrefix(t *testing.T) {
	signer, err := NewSigner(testStorageConfig(), PrivateProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	if _, err := signer.SignDownload(context.Background(), "gallery/g1/img1.jpg", 0); !errors.Is(err, ErrKeyOutsidePrefix) {
		t.Fatalf("expected ErrKeyOutsidePrefix, got %v", err)
	}

	signed, err := signer.SignDownload(context.Background(), "client-galleries/gallery/1/img1.jpg", 0)
	if err != nil {
		t.Fatalf("failed to sign download inside prefix: %v", err)
	}

	parsed, err := url.Parse(signed.URL)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}
	if got := parsed.Query().Get("response-cache-control"); got != "no-store" {
		t.Fatalf("expected no-store cache control, got %q", got)
	}
}

func TestSignExpiryClamping(t *testing.T) {
	signer, err := NewSigner(testStorageConfig(), PrivateProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	// 请求 2 小时，私享策略上限 15 分钟，必须被收紧
	signed, err := signer.SignUpload(context.Background(), "client-galleries/gallery/1/img1.jpg", "image/jpeg", 2*time.Hour)
	if err != nil {
		t.Fatalf("failed to sign upload: %v", err)
	}
	if signed.ExpiresIn != PrivateProfile.MaxExpiry {
		t.Fatalf("expected expiry clamped to %v, got %v", PrivateProfile.MaxExpiry, signed.ExpiresIn)
	}

	parsed, err := url.Parse(signed.URL)
	if err != nil {
		t.Fatalf("signed URL does not parse: %v", err)
	}
	expires, err := strconv.Atoi(parsed.Query().Get("X-Amz-Expires"))
	if err != nil {
		t.Fatalf("X-Amz-Expires missing from signed URL: %v", err)
	}
	if time.Duration(expires)*time.Second != PrivateProfile.MaxExpiry {
		t.Fatalf("expected signed expiry %v, got %ds", PrivateProfile.MaxExpiry, expires)
	}

	// 未指定时落到默认时效
	fallback, err := signer.SignDownload(context.Background(), "client-galleries/gallery/1/img1.jpg", 0)
	if err != nil {
		t.Fatalf("failed to sign download: %v", err)
	}
	if fallback.ExpiresIn != PrivateProfile.DefaultExpiry {
		t.Fatalf("expected default expiry %v, got %v", PrivateProfile.DefaultExpiry, fallback.ExpiresIn)
	}
}

func TestSignedURLsAreScopedPerKey(t *testing.T) {
	signer, err := NewSigner(testStorageConfig(), PublicProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	first, err := signer.SignUpload(context.Background(), "gallery/g1/img1.jpg", "image/jpeg", time.Minute)
	if err != nil {
		t.Fatalf("failed to sign first key: %v", err)
	}
	second, err := signer.SignUpload(context.Background(), "gallery/g1/img2.jpg", "image/jpeg", time.Minute)
	if err != nil {
		t.Fatalf("failed to sign second key: %v", err)
	}

	firstURL, err := url.Parse(first.URL)
	if err != nil {
		t.Fatalf("first URL does not parse: %v", err)
	}
	secondURL, err := url.Parse(second.URL)
	if err != nil {
		t.Fatalf("second URL does not parse: %v", err)
	}

	if !strings.HasSuffix(firstURL.Path, "/gallery/g1/img1.jpg") {
		t.Fatalf("first URL path %q does not target its key", firstURL.Path)
	}
	if !strings.HasSuffix(secondURL.Path, "/gallery/g1/img2.jpg") {
		t.Fatalf("second URL path %q does not target its key", secondURL.Path)
	}

	// key 参与签名：两个 key 的签名互不可用
	if firstURL.Query().Get("X-Amz-Signature") == secondURL.Query().Get("X-Amz-Signature") {
		t.Fatalf("expected distinct signatures for distinct keys")
	}
}

func TestObjectKeyLayout(t *testing.T) {
	private, err := NewSigner(testStorageConfig(), PrivateProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	key := private.ObjectKey("gallery", "42", "Chen Wedding 001.JPG")
	if !strings.HasPrefix(key, "client-galleries/gallery/42/") {
		t.Fatalf("expected key under private prefix, got %q", key)
	}
	if strings.ContainsAny(key, " ") {
		t.Fatalf("expected sanitized filename, got %q", key)
	}
	if err := private.checkKey(key); err != nil {
		t.Fatalf("generated key should pass validation: %v", err)
	}

	// 同名文件并发上传不得冲突
	other := private.ObjectKey("gallery", "42", "Chen Wedding 001.JPG")
	if key == other {
		t.Fatalf("expected unique keys for identical filenames")
	}

	public, err := NewSigner(testStorageConfig(), PublicProfile)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}
	if k := public.ObjectKey("portfolio", "weddings", "hero.jpg"); strings.HasPrefix(k, "client-galleries/") {
		t.Fatalf("public keys must not live under the private prefix, got %q", k)
	}
}
