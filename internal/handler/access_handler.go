package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type verifyPayload struct {
	Code string `json:"code"`
}

// VerifyAccess 校验客片访问码并建立客户端会话。
// 过期与无效刻意返回不同状态码（410 / 401），这是产品层面的取舍。
func (a *API) VerifyAccess(c *gin.Context) {
	var payload verifyPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	access, err := a.credentials.Verify(payload.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeMissing):
			respondError(c, http.StatusBadRequest, "请输入访问码")
		case errors.Is(err, service.ErrCodeExpired):
			respondError(c, http.StatusGone, "访问码已过期")
		case errors.Is(err, service.ErrCodeInvalid):
			respondError(c, http.StatusUnauthorized, "访问码无效")
		default:
			respondError(c, http.StatusInternalServerError, "访问码校验失败")
		}
		return
	}

	if err := issueClientSession(c, access); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "gallerySlug": access.GallerySlug})
}
