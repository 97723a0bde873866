package module

import (
	"fmt"
	"sync"

	"gatherly/core/config"
	"gatherly/core/email"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/router"
	"gatherly/core/storage"
	"gatherly/core/websocket"

	"gorm.io/gorm"
)

// Module is the unit of application composition. Optional lifecycle hooks
// (Init, Migrate, Routes) are discovered by interface assertion.
type Module interface {
	Name() string
}

// Dependencies carries the shared infrastructure handed to every module.
type Dependencies struct {
	DB          *gorm.DB
	Router      *router.RouterGroup
	Logger      logger.Logger
	Emitter     *emitter.Emitter
	Storage     *storage.ActiveStorage
	EmailSender email.Sender
	WSHub       *websocket.Hub
	Config      *config.Config
}

// DefaultModule provides a no-op Name so modules can embed it and only
// override what they need.
type DefaultModule struct{}

func (DefaultModule) Name() string { return "" }

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Module)
)

// RegisterModule records a module under a unique name.
func RegisterModule(name string, mod Module) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("module already registered: %s", name)
	}
	registry[name] = mod
	return nil
}

// GetModule returns a registered module by name.
func GetModule(name string) (Module, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	mod, ok := registry[name]
	return mod, ok
}

// Initializer runs the module lifecycle: register, Init, Migrate, Routes.
type Initializer struct {
	logger logger.Logger
}

// NewInitializer creates an Initializer.
func NewInitializer(log logger.Logger) *Initializer {
	return &Initializer{logger: log}
}

// Initialize runs the full lifecycle for each module. Failures are logged
// and skip the module rather than aborting startup.
func (i *Initializer) Initialize(modules map[string]Module, deps Dependencies) []Module {
	var initialized []Module

	for name, mod := range modules {
		if err := RegisterModule(name, mod); err != nil {
			i.logger.Error("Failed to register module",
				logger.String("module", name),
				logger.String("error", err.Error()))
			continue
		}

		if initModule, ok := mod.(interface{ Init() error }); ok {
			if err := initModule.Init(); err != nil {
				i.logger.Error("Failed to initialize module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if migrator, ok := mod.(interface{ Migrate() error }); ok {
			if err := migrator.Migrate(); err != nil {
				i.logger.Error("Failed to migrate module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if routeModule, ok := mod.(interface{ Routes(*router.RouterGroup) }); ok {
			routeModule.Routes(deps.Router)
		}

		initialized = append(initialized, mod)
	}

	return initialized
}
