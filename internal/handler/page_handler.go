package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type pagePayload struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// ListPages returns all pages for the admin console.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取页面列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": pages})
}

// SavePage creates or updates a marketing page.
func (a *API) SavePage(c *gin.Context) {
	var id uint
	if raw := c.Param("id"); raw != "" {
		parsed, err := parseUintParam(c, "id")
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的页面ID")
			return
		}
		id = parsed
	}

	var payload pagePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	page, err := a.pages.Save(id, service.PageInput{
		Title:     payload.Title,
		Slug:      payload.Slug,
		Summary:   payload.Summary,
		Content:   payload.Content,
		Published: payload.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "页面不存在")
		case errors.Is(err, service.ErrPageTitleMissing):
			respondError(c, http.StatusBadRequest, "请填写页面标题")
		case errors.Is(err, service.ErrPageSlugTaken):
			respondError(c, http.StatusBadRequest, "该 slug 已被使用")
		default:
			respondError(c, http.StatusInternalServerError, "保存页面失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": page})
}

// DeletePage removes a page.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面ID")
		return
	}

	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "页面不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除页面失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
