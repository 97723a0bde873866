package meetings

import (
	"gatherly/app/models"
	"gatherly/core/module"
	"gatherly/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *MeetingService
	Controller *MeetingController
}

// Init creates and initializes the Meeting module with all dependencies
func Init(deps module.Dependencies) module.Module {
	service := NewMeetingService(deps.DB, deps.Emitter, deps.Storage, deps.Logger)
	controller := NewMeetingController(service)

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
	return m.DB.AutoMigrate(&models.Meeting{}, &models.Attendance{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Meeting{},
		&models.Attendance{},
	}
}
