package service

import (
	"errors"
	"strings"

	"github.com/lumenfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientNameMissing = errors.New("client name is required")
)

// ClientService handles studio client CRUD.
type ClientService struct {
	db *gorm.DB
}

// ClientInput represents fields accepted when creating or updating a client.
type ClientInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// NewClientService creates a ClientService instance.
func NewClientService(gdb *gorm.DB) *ClientService {
	return &ClientService{db: gdb}
}

// ListAll returns all clients ordered by name.
func (s *ClientService) ListAll() ([]db.Client, error) {
	var clients []db.Client
	if err := s.db.Order("name asc").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Get fetches a client by id.
func (s *ClientService) Get(id uint) (*db.Client, error) {
	var client db.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// Create inserts a new client.
func (s *ClientService) Create(input ClientInput) (*db.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClientNameMissing
	}

	client := db.Client{
		Name:  name,
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
		Notes: strings.TrimSpace(input.Notes),
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Update modifies an existing client.
func (s *ClientService) Update(id uint, input ClientInput) (*db.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClientNameMissing
	}

	client.Name = name
	client.Email = strings.TrimSpace(input.Email)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Notes = strings.TrimSpace(input.Notes)

	if err := s.db.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client. 关联的集合与项目保留，仅解除归属。
func (s *ClientService) Delete(id uint) error {
	client, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Gallery{}).
			Where("client_id = ?", client.ID).
			Update("client_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Project{}).
			Where("client_id = ?", client.ID).
			Update("client_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
}
