package service

import (
	"errors"
	"strings"

	"github.com/lumenfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectTitleMissing = errors.New("project title is required")
	ErrProjectSlugTaken    = errors.New("project slug already exists")
)

// ProjectService handles shoot project CRUD.
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Title       string
	Slug        string
	Category    string
	Description string
	ClientID    *uint
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// ListAll returns projects, optionally filtered by category.
func (s *ProjectService) ListAll(category string) ([]db.Project, error) {
	query := s.db.Order("created_at desc")
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}

	var projects []db.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project. Slug 缺省时由标题生成。
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProjectTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if taken, err := s.slugTaken(slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrProjectSlugTaken
	}

	project := db.Project{
		Title:       title,
		Slug:        slug,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Description: strings.TrimSpace(input.Description),
		ClientID:    input.ClientID,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update modifies an existing project.
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProjectTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = project.Slug
	}
	if taken, err := s.slugTaken(slug, project.ID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrProjectSlugTaken
	}

	project.Title = title
	project.Slug = slug
	project.Category = strings.ToLower(strings.TrimSpace(input.Category))
	project.Description = strings.TrimSpace(input.Description)
	project.ClientID = input.ClientID

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and detaches its galleries.
func (s *ProjectService) Delete(id uint) error {
	project, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Gallery{}).
			Where("project_id = ?", project.ID).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}

func (s *ProjectService) slugTaken(slug string, selfID uint) (bool, error) {
	var count int64
	query := s.db.Model(&db.Project{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
