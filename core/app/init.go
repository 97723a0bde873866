package app

import (
	"gatherly/core/app/authentication"
	"gatherly/core/app/users"
	"gatherly/core/module"
)

// CoreModules implements module.CoreModuleProvider interface
type CoreModules struct{}

// NewCoreModules creates a new core modules provider
func NewCoreModules() *CoreModules {
	return &CoreModules{}
}

// GetCoreModules returns the list of core modules to initialize.
// This is the only function that needs updating when adding core modules.
func (cm *CoreModules) GetCoreModules(deps module.Dependencies) map[string]module.Module {
	modules := make(map[string]module.Module)

	modules["users"] = users.Init(deps)
	modules["authentication"] = authentication.Init(deps)

	return modules
}
