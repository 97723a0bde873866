package users

import (
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *UserService
	Controller *UserController
}

// Init creates and initializes the User module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewUserService(deps.DB, deps.Emitter, deps.Storage, deps.Logger)
	controller := NewUserController(service, deps.Storage, deps.Logger)

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
	return nil
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&User{})
}
