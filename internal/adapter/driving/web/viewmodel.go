package web

import (
	vm "github.com/ericfisherdev/affirm/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/platform"
)

// appNameFor prefers the boot-provided app name and falls back to AppInfo.
func appNameFor(env *platform.Env, info *application.AppInfo) string {
	if name := env.AppName(); name != "" {
		return name
	}
	return info.Name()
}

func toLayoutViewModel(title string, env *platform.Env, info *application.AppInfo) vm.LayoutViewModel {
	environment := ""
	if env != nil {
		environment = env.Environment
	}

	return vm.LayoutViewModel{
		Title:       title,
		AppName:     appNameFor(env, info),
		Version:     info.Version(),
		Environment: environment,
	}
}

func toHomeViewModel(env *platform.Env, info *application.AppInfo) vm.HomeViewModel {
	var keys []string
	if env != nil {
		keys = env.Provides.Keys()
	}
	if keys == nil {
		keys = []string{}
	}

	return vm.HomeViewModel{
		AppName:      appNameFor(env, info),
		Greeting:     info.Greeting(),
		Version:      info.Version(),
		ProvidedKeys: keys,
	}
}

// navLinks returns the site navigation with the entry for currentPath marked active.
func navLinks(currentPath string) []vm.NavLink {
	links := []vm.NavLink{
		{Label: "Home", Path: "/"},
		{Label: "About", Path: "/about"},
	}
	for i := range links {
		links[i].Active = links[i].Path == currentPath
	}
	return links
}
