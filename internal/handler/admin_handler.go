package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// AdminSessionName 是后台会话的 cookie 名称。
const AdminSessionName = "lumenfolio_admin"

const (
	adminAccessKey      = "admin_access"
	adminUserIDKey      = "user_id"
	adminUsernameKey    = "username"
	adminSessionMaxAge  = 8 * 60 * 60
	clientSessionMaxAge = 7 * 24 * 60 * 60
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 处理管理员登录，成功后写入 8 小时有效的后台会话。
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", payload.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	session := sessions.DefaultMany(c, AdminSessionName)
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   adminSessionMaxAge,
		HttpOnly: true,
		Secure:   gin.Mode() == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	session.Set(adminAccessKey, true)
	session.Set(adminUserIDKey, user.ID)
	session.Set(adminUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "username": user.Username})
}

// Logout 清除后台会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.DefaultMany(c, AdminSessionName)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AuthRequired 拦截未登录的后台请求。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.DefaultMany(c, AdminSessionName)
		granted, _ := session.Get(adminAccessKey).(bool)
		if !granted {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}
