package notifications

import (
	"gatherly/app/models"
	"gatherly/core/config"
	"gatherly/core/module"
	"gatherly/core/router"
	"gatherly/core/router/middleware"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Config     *config.Config
	Service    *NotificationService
	Controller *NotificationController
}

// Init creates and initializes the Notification module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewNotificationService(deps.DB, deps.Emitter, deps.WSHub, deps.Logger)
	controller := NewNotificationController(service)

	return &Module{
		DB:         deps.DB,
		Config:     deps.Config,
		Service:    service,
		Controller: controller,
	}
}

// Routes registers the module routes. Every notification route is
// user-scoped, so the whole group sits behind the auth middleware.
func (m *Module) Routes(router *router.RouterGroup) {
	group := router.Group("")
	group.Use(middleware.AuthMiddleware(m.Config.JWTSecret))
	m.Controller.Routes(group)
}

func (m *Module) Init() error {
	if err := m.Migrate(); err != nil {
		return err
	}

	m.Service.RegisterListeners()
	return nil
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&models.Notification{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Notification{},
	}
}
