package service

import (
	"errors"
	"strings"
	"unicode"

	"github.com/lumenfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound     = errors.New("gallery not found")
	ErrGalleryNameMissing  = errors.New("gallery name is required")
	ErrGallerySlugTaken    = errors.New("gallery slug already exists")
	ErrGalleryImageMissing = errors.New("gallery image key is required")
	ErrImageNotFound       = errors.New("gallery image not found")
)

// GalleryService handles gallery and gallery image CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating or updating a gallery.
type GalleryInput struct {
	Name        string
	Slug        string
	Description string
	CoverKey    string
	Published   bool
	ClientID    *uint
	ProjectID   *uint
}

// GalleryImageInput represents fields for attaching an image to a gallery.
type GalleryImageInput struct {
	ObjectKey string
	AltText   string
	SortOrder int
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// ListAll returns all galleries for the admin console, newest first.
func (s *GalleryService) ListAll() ([]db.Gallery, error) {
	var items []db.Gallery
	if err := s.db.Preload("Images", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order asc").Order("created_at asc")
	}).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPublished returns published galleries for the public site.
func (s *GalleryService) ListPublished() ([]db.Gallery, error) {
	var items []db.Gallery
	if err := s.db.Where("published = ?", true).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a gallery with its ordered images.
func (s *GalleryService) Get(id uint) (*db.Gallery, error) {
	var item db.Gallery
	if err := s.db.Preload("Images", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order asc").Order("created_at asc")
	}).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a gallery by slug with its ordered images.
func (s *GalleryService) GetBySlug(slug string) (*db.Gallery, error) {
	var item db.Gallery
	if err := s.db.Preload("Images", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order asc").Order("created_at asc")
	}).Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new gallery. Slug 缺省时由名称生成。
func (s *GalleryService) Create(input GalleryInput) (*db.Gallery, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGalleryNameMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if taken, err := s.slugTaken(slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrGallerySlugTaken
	}

	item := db.Gallery{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		CoverKey:    strings.TrimSpace(input.CoverKey),
		Published:   input.Published,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing gallery.
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.Gallery, error) {
	var item db.Gallery
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGalleryNameMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = item.Slug
	}
	if taken, err := s.slugTaken(slug, item.ID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrGallerySlugTaken
	}

	item.Name = name
	item.Slug = slug
	item.Description = strings.TrimSpace(input.Description)
	item.CoverKey = strings.TrimSpace(input.CoverKey)
	item.Published = input.Published
	item.ClientID = input.ClientID
	item.ProjectID = input.ProjectID

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a gallery together with its images and credentials.
func (s *GalleryService) Delete(id uint) error {
	var item db.Gallery
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", item.ID).Delete(&db.GalleryImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("gallery_id = ?", item.ID).Delete(&db.AccessCredential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// AddImage attaches an image to a gallery. 未指定顺序时排到末尾。
func (s *GalleryService) AddImage(galleryID uint, input GalleryImageInput) (*db.GalleryImage, error) {
	key := strings.TrimSpace(input.ObjectKey)
	if key == "" {
		return nil, ErrGalleryImageMissing
	}

	var gallery db.Gallery
	if err := s.db.First(&gallery, galleryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	sortOrder := input.SortOrder
	if sortOrder == 0 {
		order, err := s.nextSortOrder(gallery.ID)
		if err != nil {
			return nil, err
		}
		sortOrder = order
	}

	image := db.GalleryImage{
		GalleryID: gallery.ID,
		ObjectKey: key,
		AltText:   strings.TrimSpace(input.AltText),
		SortOrder: sortOrder,
	}
	if err := s.db.Create(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// RemoveImage detaches an image from its gallery.
func (s *GalleryService) RemoveImage(imageID uint) error {
	var image db.GalleryImage
	if err := s.db.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return s.db.Delete(&image).Error
}

// ReorderImages rewrites the sort order for a gallery based on the given id sequence.
func (s *GalleryService) ReorderImages(galleryID uint, imageIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for idx, imageID := range imageIDs {
			result := tx.Model(&db.GalleryImage{}).
				Where("id = ? AND gallery_id = ?", imageID, galleryID).
				Update("sort_order", idx+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrImageNotFound
			}
		}
		return nil
	})
}

func (s *GalleryService) slugTaken(slug string, selfID uint) (bool, error) {
	var count int64
	query := s.db.Model(&db.Gallery{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GalleryService) nextSortOrder(galleryID uint) (int, error) {
	var maxOrder int
	if err := s.db.Model(&db.GalleryImage{}).
		Where("gallery_id = ?", galleryID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// Slugify 将任意标题转换为 URL 友好的 slug。
func Slugify(input string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
