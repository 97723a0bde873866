package posts

import (
	"gatherly/app/models"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *PostService
	Controller *PostController
}

// Init creates and initializes the Post module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewPostService(deps.DB, deps.Emitter, deps.Logger)
	controller := NewPostController(service)

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
	return m.DB.AutoMigrate(&models.Post{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Post{},
	}
}
