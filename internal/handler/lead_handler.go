package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type leadPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateLead 接收公开联系表单提交。
func (a *API) CreateLead(c *gin.Context) {
	var payload leadPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	lead, err := a.leads.Create(service.LeadInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Message: payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNameMissing):
			respondError(c, http.StatusBadRequest, "请填写姓名")
		case errors.Is(err, service.ErrLeadEmailInvalid):
			respondError(c, http.StatusBadRequest, "请填写有效邮箱")
		default:
			respondError(c, http.StatusInternalServerError, "提交失败，请稍后再试")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": lead.ID})
}

// ListLeads returns leads for admin triage, filterable by status.
func (a *API) ListLeads(c *gin.Context) {
	result, err := a.leads.List(service.LeadFilter{
		Status:  c.Query("status"),
		Page:    parseIntQuery(c, "page", 1),
		PerPage: parseIntQuery(c, "perPage", 20),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取询单列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// UpdateLeadStatus 流转询单状态。
func (a *API) UpdateLeadStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的询单ID")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	lead, err := a.leads.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			respondError(c, http.StatusNotFound, "询单不存在")
		case errors.Is(err, service.ErrLeadStatusInvalid):
			respondError(c, http.StatusBadRequest, "询单状态无效")
		default:
			respondError(c, http.StatusInternalServerError, "更新询单失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": lead})
}

// UpdateLeadNotes 更新跟进备注。
func (a *API) UpdateLeadNotes(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的询单ID")
		return
	}

	var payload struct {
		Notes string `json:"notes"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	lead, err := a.leads.UpdateNotes(id, payload.Notes)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondError(c, http.StatusNotFound, "询单不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新询单失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": lead})
}

// DeleteLead removes a lead.
func (a *API) DeleteLead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的询单ID")
		return
	}

	if err := a.leads.Delete(id); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondError(c, http.StatusNotFound, "询单不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除询单失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
