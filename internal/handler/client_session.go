package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

// ClientSessionName 是客片访问会话的 cookie 名称。
const ClientSessionName = "lumenfolio_client"

const (
	clientAccessKey    = "client_access"
	clientGalleryKey   = "client_gallery"
	clientAccessIDKey  = "client_access_id"
	clientIssuedAtKey  = "client_issued_at"
	clientSessionValid = 7 * 24 * time.Hour
)

// issueClientSession 在访问码校验通过后写入客片会话。
// 会话有自己固定的 7 天有效期，与凭证过期时间互相独立；
// 凭证被吊销不会作废已签发的会话，这是确认过的既有策略。
func issueClientSession(c *gin.Context, access *service.VerifiedAccess) error {
	session := sessions.DefaultMany(c, ClientSessionName)
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   clientSessionMaxAge,
		HttpOnly: true,
		Secure:   gin.Mode() == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	session.Set(clientAccessKey, true)
	session.Set(clientGalleryKey, access.GallerySlug)
	session.Set(clientAccessIDKey, access.CredentialID)
	session.Set(clientIssuedAtKey, time.Now().Unix())
	return session.Save()
}

// clientSessionGallery 返回会话绑定的集合 slug；会话无效时返回空串。
// 有效性规则集中在这里：授权标记存在、签发时间在固定窗口内。
func clientSessionGallery(c *gin.Context) string {
	session := sessions.DefaultMany(c, ClientSessionName)

	granted, _ := session.Get(clientAccessKey).(bool)
	if !granted {
		return ""
	}

	issuedAt, _ := session.Get(clientIssuedAtKey).(int64)
	if issuedAt <= 0 || time.Since(time.Unix(issuedAt, 0)) > clientSessionValid {
		return ""
	}

	slug, _ := session.Get(clientGalleryKey).(string)
	return slug
}

// ClientAccessRequired 保护客片路由：要求有效会话且绑定的集合与路由参数一致。
func ClientAccessRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := clientSessionGallery(c)
		if slug == "" {
			respondError(c, http.StatusUnauthorized, "请输入访问码")
			c.Abort()
			return
		}
		if param := c.Param("slug"); param != "" && param != slug {
			respondError(c, http.StatusForbidden, "无权访问该集合")
			c.Abort()
			return
		}
		c.Next()
	}
}
