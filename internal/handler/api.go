package handler

import (
	"github.com/driftpress/internal/config"
	"github.com/driftpress/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	cfg      config.AppConfig
	posts    *service.PostService
	projects *service.ProjectService
	catalog  *service.CatalogService
	slugs    *service.SlugService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:       gdb,
		cfg:      cfg,
		posts:    service.NewPostService(gdb),
		projects: service.NewProjectService(gdb),
		catalog:  service.NewCatalogService(gdb),
		slugs:    service.NewSlugService(gdb, cfg.SlugCheckMode),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
