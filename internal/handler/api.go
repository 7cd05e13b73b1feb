package handler

import (
	"github.com/lumenfolio/internal/config"
	"github.com/lumenfolio/internal/service"
	"github.com/lumenfolio/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	cfg         *config.AppConfig
	galleries   *service.GalleryService
	credentials *service.CredentialService
	leads       *service.LeadService
	pages       *service.PageService
	clients     *service.ClientService
	projects    *service.ProjectService

	// 签名器可能因存储配置缺失而为 nil，相关接口此时直接失败。
	publicSigner  *storage.Signer
	privateSigner *storage.Signer
	signerErr     error
}

// NewAPI constructs a handler set with shared services.
// 存储配置不完整时签名接口失效，其余功能不受影响。
func NewAPI(gdb *gorm.DB, cfg *config.AppConfig) *API {
	api := &API{
		db:          gdb,
		cfg:         cfg,
		galleries:   service.NewGalleryService(gdb),
		credentials: service.NewCredentialService(gdb),
		leads:       service.NewLeadService(gdb),
		pages:       service.NewPageService(gdb),
		clients:     service.NewClientService(gdb),
		projects:    service.NewProjectService(gdb),
	}

	publicSigner, err := storage.NewSigner(cfg.Storage, storage.PublicProfile)
	if err != nil {
		api.signerErr = err
		return api
	}
	privateSigner, err := storage.NewSigner(cfg.Storage, storage.PrivateProfile)
	if err != nil {
		api.signerErr = err
		return api
	}

	api.publicSigner = publicSigner
	api.privateSigner = privateSigner
	return api
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
