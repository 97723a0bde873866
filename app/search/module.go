package search

import (
	"gatherly/app/models"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *SearchService
	Controller *SearchController
}

// Init creates and initializes the Search module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewSearchService(deps.DB, deps.Logger)
	controller := NewSearchController(service)

	return &Module{
		DB:         deps.DB,
		Service:    service,
		Controller: controller,
	}
}

// Routes registers the module routes
func (m *Module) Routes(router *router.RouterGroup) {
	m.Controller.Routes(router)
}

func (m *Module) Init() error {
	return m.Migrate()
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&models.SearchQuery{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.SearchQuery{},
	}
}
