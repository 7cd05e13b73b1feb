package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type publicGalleryView struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

type clientImageView struct {
	ID        uint   `json:"id"`
	AltText   string `json:"altText"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// ListPublishedGalleries 返回公开作品集，封面通过公共签名器换取限时链接。
func (a *API) ListPublishedGalleries(c *gin.Context) {
	galleries, err := a.galleries.ListPublished()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取作品集失败")
		return
	}

	views := make([]publicGalleryView, 0, len(galleries))
	for _, gallery := range galleries {
		view := publicGalleryView{
			Name:        gallery.Name,
			Slug:        gallery.Slug,
			Description: gallery.Description,
		}
		if gallery.CoverKey != "" && a.publicSigner != nil {
			if signed, err := a.publicSigner.SignDownload(c.Request.Context(), gallery.CoverKey, 0); err == nil {
				view.CoverURL = signed.URL
			}
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": views})
}

// GetPublicPage 返回渲染后的营销页面。
func (a *API) GetPublicPage(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "页面不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取页面失败")
		return
	}

	rendered, err := service.RenderMarkdown(page.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "渲染页面失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"title":   page.Title,
		"slug":    page.Slug,
		"summary": page.Summary,
		"html":    rendered,
	})
}

// ClientGalleryView 返回私享集合及逐图限时链接，仅持有效会话可见。
// 每个链接只对自己的 key 有效，时效由私享签名策略收紧。
func (a *API) ClientGalleryView(c *gin.Context) {
	gallery, err := a.galleries.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "集合不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取集合失败")
		return
	}

	if a.privateSigner == nil {
		respondError(c, http.StatusInternalServerError, "存储服务未配置")
		return
	}

	images := make([]clientImageView, 0, len(gallery.Images))
	for _, image := range gallery.Images {
		signed, err := a.privateSigner.SignDownload(c.Request.Context(), image.ObjectKey, 0)
		if err != nil {
			continue
		}
		images = append(images, clientImageView{
			ID:        image.ID,
			AltText:   image.AltText,
			URL:       signed.URL,
			ExpiresIn: int(signed.ExpiresIn.Seconds()),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"name":        gallery.Name,
		"slug":        gallery.Slug,
		"description": gallery.Description,
		"images":      images,
	})
}
