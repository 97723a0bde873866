package app

import (
	"gatherly/app/activities"
	"gatherly/app/comments"
	"gatherly/app/follows"
	"gatherly/app/meetings"
	"gatherly/app/notifications"
	"gatherly/app/posts"
	"gatherly/app/search"
	"gatherly/core/module"
)

// AppModules implements module.AppModuleProvider interface
type AppModules struct{}

// NewAppModules creates a new app modules provider
func NewAppModules() *AppModules {
	return &AppModules{}
}

// GetAppModules returns the list of app modules to initialize.
// This is the only function that needs updating when adding app modules.
func (am *AppModules) GetAppModules(deps module.Dependencies) map[string]module.Module {
	modules := make(map[string]module.Module)

	modules["meetings"] = meetings.Init(deps)
	modules["posts"] = posts.Init(deps)
	modules["comments"] = comments.Init(deps)
	modules["follows"] = follows.Init(deps)
	modules["search"] = search.Init(deps)
	modules["activities"] = activities.Init(deps)
	modules["notifications"] = notifications.Init(deps)

	return modules
}
