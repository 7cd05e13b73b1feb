package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/service"
)

type galleryPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CoverKey    string `json:"coverKey"`
	Published   bool   `json:"published"`
	ClientID    *uint  `json:"clientId"`
	ProjectID   *uint  `json:"projectId"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CoverKey:    p.CoverKey,
		Published:   p.Published,
		ClientID:    p.ClientID,
		ProjectID:   p.ProjectID,
	}
}

type galleryImagePayload struct {
	ObjectKey string `json:"objectKey"`
	AltText   string `json:"altText"`
	SortOrder int    `json:"sortOrder"`
}

// ListGalleries returns all galleries for the admin console.
func (a *API) ListGalleries(c *gin.Context) {
	items, err := a.galleries.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取集合列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// GetGallery returns one gallery with its images.
func (a *API) GetGallery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	item, err := a.galleries.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "集合不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取集合失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// CreateGallery creates a new gallery.
func (a *API) CreateGallery(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.galleries.Create(payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNameMissing):
			respondError(c, http.StatusBadRequest, "请填写集合名称")
		case errors.Is(err, service.ErrGallerySlugTaken):
			respondError(c, http.StatusBadRequest, "该 slug 已被使用")
		default:
			respondError(c, http.StatusInternalServerError, "创建集合失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// UpdateGallery updates an existing gallery.
func (a *API) UpdateGallery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	var payload galleryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.galleries.Update(id, payload.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "集合不存在")
		case errors.Is(err, service.ErrGalleryNameMissing):
			respondError(c, http.StatusBadRequest, "请填写集合名称")
		case errors.Is(err, service.ErrGallerySlugTaken):
			respondError(c, http.StatusBadRequest, "该 slug 已被使用")
		default:
			respondError(c, http.StatusInternalServerError, "更新集合失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// DeleteGallery removes a gallery with its images and credentials.
func (a *API) DeleteGallery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	if err := a.galleries.Delete(id); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "集合不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除集合失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddGalleryImage attaches an uploaded object to a gallery.
func (a *API) AddGalleryImage(c *gin.Context) {
	galleryID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	var payload galleryImagePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	image, err := a.galleries.AddImage(galleryID, service.GalleryImageInput{
		ObjectKey: payload.ObjectKey,
		AltText:   payload.AltText,
		SortOrder: payload.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryNotFound):
			respondError(c, http.StatusNotFound, "集合不存在")
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "请提供图片存储 key")
		default:
			respondError(c, http.StatusInternalServerError, "添加图片失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": image})
}

// RemoveGalleryImage detaches an image from its gallery.
func (a *API) RemoveGalleryImage(c *gin.Context) {
	imageID, err := parseUintParam(c, "imageId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	if err := a.galleries.RemoveImage(imageID); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, "图片不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "移除图片失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReorderGalleryImages rewrites image order from the submitted id sequence.
func (a *API) ReorderGalleryImages(c *gin.Context) {
	galleryID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的集合ID")
		return
	}

	var payload struct {
		ImageIDs []uint `json:"imageIds"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if err := a.galleries.ReorderImages(galleryID, payload.ImageIDs); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, "图片不存在或不属于该集合")
			return
		}
		respondError(c, http.StatusInternalServerError, "调整顺序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
