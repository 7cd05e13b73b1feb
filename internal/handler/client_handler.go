package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type clientPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (p clientPayload) toInput() service.ClientInput {
	return service.ClientInput{
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Notes: p.Notes,
	}
}

// ListClients returns all studio clients.
func (a *API) ListClients(c *gin.Context) {
	clients, err := a.clients.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取客户列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": clients})
}

// CreateClient creates a new client.
func (a *API) CreateClient(c *gin.Context) {
	var payload clientPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	client, err := a.clients.Create(payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrClientNameMissing) {
			respondError(c, http.StatusBadRequest, "请填写客户姓名")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建客户失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": client})
}

// UpdateClient updates an existing client.
func (a *API) UpdateClient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的客户ID")
		return
	}

	var payload clientPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	client, err := a.clients.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			respondError(c, http.StatusNotFound, "客户不存在")
		case errors.Is(err, service.ErrClientNameMissing):
			respondError(c, http.StatusBadRequest, "请填写客户姓名")
		default:
			respondError(c, http.StatusInternalServerError, "更新客户失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": client})
}

// DeleteClient removes a client and detaches related galleries and projects.
func (a *API) DeleteClient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的客户ID")
		return
	}

	if err := a.clients.Delete(id); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			respondError(c, http.StatusNotFound, "客户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除客户失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
