package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type projectPayload struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ClientID    *uint  `json:"clientId"`
}

func (p projectPayload) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:       p.Title,
		Slug:        p.Slug,
		Category:    p.Category,
		Description: p.Description,
		ClientID:    p.ClientID,
	}
}

// ListProjects returns projects, optionally filtered by category.
func (a *API) ListProjects(c *gin.Context) {
	projects, err := a.projects.ListAll(c.Query("category"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取项目列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": projects})
}

// CreateProject creates a new shoot project.
func (a *API) CreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	project, err := a.projects.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectTitleMissing):
			respondError(c, http.StatusBadRequest, "请填写项目标题")
		case errors.Is(err, service.ErrProjectSlugTaken):
			respondError(c, http.StatusBadRequest, "该 slug 已被使用")
		default:
			respondError(c, http.StatusInternalServerError, "创建项目失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": project})
}

// UpdateProject updates an existing project.
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var payload projectPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	project, err := a.projects.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(c, http.StatusNotFound, "项目不存在")
		case errors.Is(err, service.ErrProjectTitleMissing):
			respondError(c, http.StatusBadRequest, "请填写项目标题")
		case errors.Is(err, service.ErrProjectSlugTaken):
			respondError(c, http.StatusBadRequest, "该 slug 已被使用")
		default:
			respondError(c, http.StatusInternalServerError, "更新项目失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": project})
}

// DeleteProject removes a project.
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "项目不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除项目失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
