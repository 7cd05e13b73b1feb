package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/storage"
)

type signUploadPayload struct {
	// 二选一：直接给 key，或给 category/entityId/filename 由服务端构造。
	Key         string `json:"key"`
	Category    string `json:"category"`
	EntityID    string `json:"entityId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	ExpiresIn   int    `json:"expiresIn"` // 秒，可选，超过上限会被收紧
	Visibility  string `json:"visibility"`
}

func (a *API) signerFor(visibility string) *storage.Signer {
	if strings.ToLower(strings.TrimSpace(visibility)) == "public" {
		return a.publicSigner
	}
	return a.privateSigner
}

// SignUpload 为后台上传签发限时 PUT URL。
// 存储配置缺失时直接失败，绝不返回未签名地址。
func (a *API) SignUpload(c *gin.Context) {
	var payload signUploadPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	signer := a.signerFor(payload.Visibility)
	if signer == nil {
		respondError(c, http.StatusInternalServerError, "存储服务未配置: "+a.signerErr.Error())
		return
	}

	key := strings.TrimSpace(payload.Key)
	if key == "" {
		if payload.Category == "" || payload.EntityID == "" || payload.Filename == "" {
			respondError(c, http.StatusBadRequest, "请提供 key 或 category/entityId/filename")
			return
		}
		key = signer.ObjectKey(payload.Category, payload.EntityID, payload.Filename)
	}

	signed, err := signer.SignUpload(c.Request.Context(), key, payload.ContentType,
		time.Duration(payload.ExpiresIn)*time.Second)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrContentTypeMissing):
			respondError(c, http.StatusBadRequest, "请提供文件类型")
		case errors.Is(err, storage.ErrKeyMissing), errors.Is(err, storage.ErrKeyInvalid),
			errors.Is(err, storage.ErrKeyOutsidePrefix):
			respondError(c, http.StatusBadRequest, "存储 key 不合法")
		default:
			respondError(c, http.StatusInternalServerError, "签发上传地址失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"url":       signed.URL,
		"key":       key,
		"expiresIn": int(signed.ExpiresIn.Seconds()),
	})
}

// SignDownload 为后台预览签发限时 GET URL。
func (a *API) SignDownload(c *gin.Context) {
	signer := a.signerFor(c.Query("visibility"))
	if signer == nil {
		respondError(c, http.StatusInternalServerError, "存储服务未配置: "+a.signerErr.Error())
		return
	}

	key := strings.TrimSpace(c.Query("key"))
	expiresIn := 0
	if raw := strings.TrimSpace(c.Query("expiresIn")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "expiresIn 不合法")
			return
		}
		expiresIn = parsed
	}

	signed, err := signer.SignDownload(c.Request.Context(), key, time.Duration(expiresIn)*time.Second)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrKeyMissing), errors.Is(err, storage.ErrKeyInvalid),
			errors.Is(err, storage.ErrKeyOutsidePrefix):
			respondError(c, http.StatusBadRequest, "存储 key 不合法")
		default:
			respondError(c, http.StatusInternalServerError, "签发下载地址失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"url":       signed.URL,
		"expiresIn": int(signed.ExpiresIn.Seconds()),
	})
}
