package service

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/lumenfolio/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound     = errors.New("page not found")
	ErrPageTitleMissing = errors.New("page title is required")
	ErrPageSlugTaken    = errors.New("page slug already exists")
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	pageSanitizer = bluemonday.UGCPolicy()
)

// PageService manages standalone marketing pages.
type PageService struct {
	db *gorm.DB
}

// PageInput represents fields accepted when creating or updating a page.
type PageInput struct {
	Title     string
	Slug      string
	Summary   string
	Content   string
	Published bool
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// ListAll returns every page for the admin console.
func (s *PageService) ListAll() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("created_at asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// GetBySlug fetches a published page for the public site.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ? AND published = ?", strings.TrimSpace(slug), true).
		First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Get fetches a page by id regardless of publish state.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Save 新建或更新页面，slug 缺省时由标题生成。
func (s *PageService) Save(id uint, input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}

	var page db.Page
	if id != 0 {
		if err := s.db.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPageNotFound
			}
			return nil, err
		}
	}

	var count int64
	query := s.db.Model(&db.Page{}).Where("slug = ?", slug)
	if page.ID != 0 {
		query = query.Where("id <> ?", page.ID)
	}
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPageSlugTaken
	}

	page.Title = title
	page.Slug = slug
	page.Summary = strings.TrimSpace(input.Summary)
	page.Content = input.Content
	page.Published = input.Published

	if err := s.db.Save(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes a page.
func (s *PageService) Delete(id uint) error {
	page, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(page).Error
}

// RenderMarkdown 将页面 markdown 渲染为净化后的 HTML。
func RenderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(pageSanitizer.SanitizeBytes(buf.Bytes())), nil
}
