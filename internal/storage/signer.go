// Package storage 基于 S3 兼容对象存储签发限时 URL。
// 服务端从不代理媒体字节：上传与下载都通过预签名 URL 直达存储。
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenfolio/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrNotConfigured      = errors.New("storage is not configured")
	ErrKeyMissing         = errors.New("object key is required")
	ErrKeyInvalid         = errors.New("object key is invalid")
	ErrKeyOutsidePrefix   = errors.New("object key is outside the signer prefix")
	ErrContentTypeMissing = errors.New("content type is required for uploads")
)

// Profile 描述一类素材的签名策略：营销素材缓存长、布局可预测；
// 客片素材短时效、no-store，且 key 必须位于集合前缀之下。
type Profile struct {
	Name          string
	DefaultExpiry time.Duration
	MaxExpiry     time.Duration
	CacheControl  string
	KeyPrefix     string
}

var (
	// PublicProfile 用于对外营销素材。
	PublicProfile = Profile{
		Name:          "public",
		DefaultExpiry: time.Hour,
		MaxExpiry:     24 * time.Hour,
		CacheControl:  "public, max-age=31536000, immutable",
	}

	// PrivateProfile 用于客片私享素材。
	PrivateProfile = Profile{
		Name:          "private",
		DefaultExpiry: 10 * time.Minute,
		MaxExpiry:     15 * time.Minute,
		CacheControl:  "no-store",
		KeyPrefix:     "client-galleries/",
	}
)

// SignedURL 是签名结果，ExpiresIn 为实际授予的时长（可能被收紧）。
type SignedURL struct {
	URL       string
	ExpiresIn time.Duration
}

// Signer issues time-limited signed URLs scoped to a single key and operation.
type Signer struct {
	client  *minio.Client
	bucket  string
	profile Profile
}

// NewSigner 构造签名器。存储配置不完整时直接报错，绝不退化为未签名 URL。
func NewSigner(cfg config.StorageConfig, profile Profile) (*Signer, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("%w: endpoint, access key, secret key and bucket are all required", ErrNotConfigured)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	return &Signer{client: client, bucket: cfg.Bucket, profile: profile}, nil
}

// Profile returns the signing profile this signer was built with.
func (s *Signer) Profile() Profile {
	return s.profile
}

// SignUpload 为 PUT 操作签发限时 URL，Content-Type 参与签名。
func (s *Signer) SignUpload(ctx context.Context, key, contentType string, requested time.Duration) (*SignedURL, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	if strings.TrimSpace(contentType) == "" {
		return nil, ErrContentTypeMissing
	}

	expiry := s.clampExpiry(requested)
	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	signed, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return nil, err
	}
	return &SignedURL{URL: signed.String(), ExpiresIn: expiry}, nil
}

// SignDownload 为 GET 操作签发限时 URL，响应缓存策略随 Profile 下发。
func (s *Signer) SignDownload(ctx context.Context, key string, requested time.Duration) (*SignedURL, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}

	expiry := s.clampExpiry(requested)
	params := url.Values{}
	if s.profile.CacheControl != "" {
		params.Set("response-cache-control", s.profile.CacheControl)
	}

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, params)
	if err != nil {
		return nil, err
	}
	return &SignedURL{URL: signed.String(), ExpiresIn: expiry}, nil
}

// ObjectKey 按「类别/实体/时间戳-uuid-文件名」构造存储 key。
// 时间戳加 uuid 保证并发上传不冲突，按前缀列举即可还原一个实体的全部媒体。
func (s *Signer) ObjectKey(category, entityID, filename string) string {
	base := sanitizeFilename(filename)
	stamp := time.Now().UTC().Format("20060102T150405")
	key := path.Join(category, entityID, fmt.Sprintf("%s-%s-%s", stamp, uuid.New().String(), base))
	if s.profile.KeyPrefix != "" {
		key = s.profile.KeyPrefix + key
	}
	return key
}

func (s *Signer) checkKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyMissing
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrKeyInvalid
	}
	if s.profile.KeyPrefix != "" && !strings.HasPrefix(key, s.profile.KeyPrefix) {
		return ErrKeyOutsidePrefix
	}
	return nil
}

func (s *Signer) clampExpiry(requested time.Duration) time.Duration {
	if requested <= 0 {
		return s.profile.DefaultExpiry
	}
	if requested > s.profile.MaxExpiry {
		return s.profile.MaxExpiry
	}
	return requested
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	cleaned := strings.Trim(b.String(), "-.")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
