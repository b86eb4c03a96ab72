package handler

import (
	"github.com/atelierhq/internal/service"
	"github.com/atelierhq/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	posts    *service.PostService
	projects *service.ProjectService
	admins   *service.AdminService
	confirms *service.DeleteConfirmer
	media    *storage.MediaStore
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, media *storage.MediaStore) *API {
	return &API{
		db:       db,
		posts:    service.NewPostService(db),
		projects: service.NewProjectService(db),
		admins:   service.NewAdminService(db),
		confirms: service.NewDeleteConfirmer(service.DefaultConfirmWindow),
		media:    media,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
