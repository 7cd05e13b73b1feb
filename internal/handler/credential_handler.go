package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/db"
	"github.com/lumenfolio/internal/service"
)

type credentialPayload struct {
	GalleryID uint   `json:"galleryId"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expiresAt"` // RFC 3339，可选
}

type credentialView struct {
	ID        uint       `json:"id"`
	GalleryID uint       `json:"galleryId"`
	Hint      string     `json:"hint"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toCredentialView(record db.AccessCredential) credentialView {
	return credentialView{
		ID:        record.ID,
		GalleryID: record.GalleryID,
		Hint:      record.Hint,
		Active:    record.Active,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}
}

// CreateCredential 为集合签发访问码。明文只出现在本次响应中。
func (a *API) CreateCredential(c *gin.Context) {
	var payload credentialPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	var expiresAt *time.Time
	if payload.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, payload.ExpiresAt)
		if err != nil {
			respondError(c, http.StatusBadRequest, "过期时间格式不正确")
			return
		}
		expiresAt = &parsed
	}

	issued, err := a.credentials.Issue(service.CredentialInput{
		GalleryID: payload.GalleryID,
		Code:      payload.Code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "集合不存在")
		case errors.Is(err, service.ErrCodeTooShort):
			respondError(c, http.StatusBadRequest, "访问码长度不足")
		case errors.Is(err, service.ErrExpiryInPast):
			respondError(c, http.StatusBadRequest, "过期时间不能早于当前时间")
		default:
			respondError(c, http.StatusInternalServerError, "签发访问码失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"id":        issued.ID,
		"galleryId": issued.GalleryID,
		"code":      issued.Code,
		"hint":      issued.Hint,
		"expiresAt": issued.ExpiresAt,
	})
}

// RevokeCredential 吊销访问码，重复吊销同样返回成功。
func (a *API) RevokeCredential(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的凭证ID")
		return
	}

	if err := a.credentials.Revoke(id); err != nil {
		if errors.Is(err, service.ErrCredentialNotFound) {
			respondError(c, http.StatusNotFound, "凭证不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "吊销访问码失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListGalleryCredentials 列出集合下的全部凭证（仅提示信息，不含哈希）。
func (a *API) ListGalleryCredentials(c *gin.Context) {
	galleryID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	records, err := a.credentials.ListForGallery(galleryID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取访问码列表失败")
		return
	}

	views := make([]credentialView, 0, len(records))
	for _, record := range records {
		views = append(views, toCredentialView(record))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": views})
}
