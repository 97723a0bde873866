package authentication

import (
	"gatherly/core/app/users"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *AuthService
	Controller *AuthController
}

// Init creates and initializes the Authentication module
func Init(deps module.Dependencies) module.Module {
	userService := users.NewUserService(deps.DB, deps.Emitter, deps.Storage, deps.Logger)
	service := NewAuthService(deps.DB, userService, deps.Emitter, deps.Logger, deps.Config)
	controller := NewAuthController(service)

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
