package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/lumenfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCredentialNotFound = errors.New("access credential not found")
	ErrCodeMissing        = errors.New("access code is required")
	ErrCodeInvalid        = errors.New("access code is invalid")
	ErrCodeExpired        = errors.New("access code is expired")
	ErrCodeTooShort       = errors.New("access code is too short")
	ErrExpiryInPast       = errors.New("credential expiry is in the past")
)

const (
	// accessCodeAlphabet 去掉了易混淆的 I、O、0、1，共 32 个字符，便于口头/打印传达。
	accessCodeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	generatedCodeLength = 12
	minCodeLength       = 8
	saltLength          = 16
	hintLength          = 4
)

// CredentialService 负责访问码的签发、校验与吊销。
type CredentialService struct {
	db  *gorm.DB
	now func() time.Time
}

// CredentialInput represents fields accepted when issuing an access credential.
type CredentialInput struct {
	GalleryID uint
	Code      string
	ExpiresAt *time.Time
}

// IssuedCredential carries the creation result. Code holds the plaintext and
// is only ever populated here, never readable again afterwards.
type IssuedCredential struct {
	ID        uint
	GalleryID uint
	Code      string
	Hint      string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// VerifiedAccess identifies the gallery a valid access code is bound to.
type VerifiedAccess struct {
	CredentialID uint
	GalleryID    uint
	GallerySlug  string
}

// NewCredentialService creates a CredentialService instance.
func NewCredentialService(gdb *gorm.DB) *CredentialService {
	return &CredentialService{db: gdb, now: time.Now}
}

// Issue 为指定集合签发访问码。未提供明文时由系统生成。
// 返回值中包含明文访问码，仅此一次可见。
func (s *CredentialService) Issue(input CredentialInput) (*IssuedCredential, error) {
	var gallery db.Gallery
	if err := s.db.First(&gallery, input.GalleryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		generated, err := GenerateAccessCode()
		if err != nil {
			return nil, err
		}
		code = generated
	}
	if len(code) < minCodeLength {
		return nil, ErrCodeTooShort
	}

	if input.ExpiresAt != nil && input.ExpiresAt.Before(s.now()) {
		return nil, ErrExpiryInPast
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	record := db.AccessCredential{
		GalleryID: gallery.ID,
		CodeHash:  hashAccessCode(salt, code),
		Salt:      hex.EncodeToString(salt),
		Hint:      codeHint(code),
		ExpiresAt: input.ExpiresAt,
		Active:    true,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &IssuedCredential{
		ID:        record.ID,
		GalleryID: record.GalleryID,
		Code:      code,
		Hint:      record.Hint,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Verify 校验明文访问码。盐使得哈希无法按值索引，因此需要遍历全部
// 启用中的凭证逐条重算比对；比对使用常量时间比较避免时序侧信道。
// 命中但已过期的凭证返回 ErrCodeExpired，其余未命中一律 ErrCodeInvalid。
func (s *CredentialService) Verify(code string) (*VerifiedAccess, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeMissing
	}

	var candidates []db.AccessCredential
	if err := s.db.Where("active = ?", true).Find(&candidates).Error; err != nil {
		return nil, err
	}

	var matched *db.AccessCredential
	for i := range candidates {
		salt, err := hex.DecodeString(candidates[i].Salt)
		if err != nil {
			continue
		}
		computed := hashAccessCode(salt, code)
		if subtle.ConstantTimeCompare([]byte(computed), []byte(candidates[i].CodeHash)) == 1 {
			matched = &candidates[i]
		}
	}

	if matched == nil {
		return nil, ErrCodeInvalid
	}
	if matched.ExpiresAt != nil && matched.ExpiresAt.Before(s.now()) {
		return nil, ErrCodeExpired
	}

	var gallery db.Gallery
	if err := s.db.First(&gallery, matched.GalleryID).Error; err != nil {
		return nil, err
	}

	return &VerifiedAccess{
		CredentialID: matched.ID,
		GalleryID:    gallery.ID,
		GallerySlug:  gallery.Slug,
	}, nil
}

// Revoke 吊销凭证（置为停用）。重复吊销视为成功，不提供恢复操作。
func (s *CredentialService) Revoke(id uint) error {
	var record db.AccessCredential
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCredentialNotFound
		}
		return err
	}

	if !record.Active {
		return nil
	}

	return s.db.Model(&record).Update("active", false).Error
}

// ListForGallery 返回集合下全部凭证供后台展示，仅含提示信息，不含哈希与盐。
func (s *CredentialService) ListForGallery(galleryID uint) ([]db.AccessCredential, error) {
	var records []db.AccessCredential
	if err := s.db.Where("gallery_id = ?", galleryID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GenerateAccessCode 生成一个 12 位随机访问码，字符取自无歧义字母表。
// 字母表长度为 32，逐字节取模不引入偏差。
func GenerateAccessCode() (string, error) {
	raw := make([]byte, generatedCodeLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	out := make([]byte, generatedCodeLength)
	for i, b := range raw {
		out[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(out), nil
}

func hashAccessCode(salt []byte, code string) string {
	sum := sha256.Sum256(append(append([]byte{}, salt...), code...))
	return hex.EncodeToString(sum[:])
}

func codeHint(code string) string {
	if len(code) <= hintLength {
		return code
	}
	return code[len(code)-hintLength:]
}
