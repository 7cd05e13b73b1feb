package service

import (
	"errors"
	"strings"

	"github.com/lumenfolio/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadNameMissing   = errors.New("lead name is required")
	ErrLeadEmailInvalid  = errors.New("lead email is invalid")
	ErrLeadStatusInvalid = errors.New("lead status is invalid")
)

// leadSanitizer 剥离询单自由文本中的所有 HTML，后台展示时按纯文本处理。
var leadSanitizer = bluemonday.StrictPolicy()

// LeadService handles contact form intake and admin triage.
type LeadService struct {
	db *gorm.DB
}

// LeadInput represents a public contact form submission.
type LeadInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// LeadFilter describes filters for listing leads.
type LeadFilter struct {
	Status  string
	Page    int
	PerPage int
}

// LeadListResult aggregates paginated lead results.
type LeadListResult struct {
	Items      []db.Lead
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewLeadService creates a LeadService instance.
func NewLeadService(gdb *gorm.DB) *LeadService {
	return &LeadService{db: gdb}
}

// Create 接收公开联系表单提交，任何人都可调用。
func (s *LeadService) Create(input LeadInput) (*db.Lead, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLeadNameMissing
	}

	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrLeadEmailInvalid
	}

	lead := db.Lead{
		Name:    leadSanitizer.Sanitize(name),
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Message: leadSanitizer.Sanitize(strings.TrimSpace(input.Message)),
		Status:  db.LeadStatusNew,
	}
	if err := s.db.Create(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads matching the filter, newest first.
func (s *LeadService) List(filter LeadFilter) (LeadListResult, error) {
	result := LeadListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	query := s.db.Model(&db.Lead{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Get fetches a lead by id.
func (s *LeadService) Get(id uint) (*db.Lead, error) {
	var lead db.Lead
	if err := s.db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// UpdateStatus 流转询单状态（new / contacted）。
func (s *LeadService) UpdateStatus(id uint, status string) (*db.Lead, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != db.LeadStatusNew && status != db.LeadStatusContacted {
		return nil, ErrLeadStatusInvalid
	}

	lead, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	if err := s.db.Save(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateNotes 更新后台跟进备注。
func (s *LeadService) UpdateNotes(id uint, notes string) (*db.Lead, error) {
	lead, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	lead.Notes = leadSanitizer.Sanitize(strings.TrimSpace(notes))
	if err := s.db.Save(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(id uint) error {
	lead, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(lead).Error
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
