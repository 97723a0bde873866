package activities

import (
	"gatherly/app/models"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *ActivityService
	Controller *ActivityController
}

// Init creates and initializes the Activity module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewActivityService(deps.DB, deps.Emitter, deps.Logger)
	controller := NewActivityController(service)

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
	if err := m.Migrate(); err != nil {
		return err
	}

	m.Service.RegisterListeners()
	return nil
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&models.Activity{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Activity{},
	}
}
