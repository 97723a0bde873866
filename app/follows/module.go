package follows

import (
	"gatherly/app/models"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *FollowService
	Controller *FollowController
}

// Init creates and initializes the Follow module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewFollowService(deps.DB, deps.Emitter, deps.Logger)
	controller := NewFollowController(service)

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
	return m.DB.AutoMigrate(&models.Follow{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Follow{},
	}
}
