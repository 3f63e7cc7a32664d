package application

import "context"

// ProvideAppName is the key under which AppInitPlugin registers the app name.
const ProvideAppName = "appName"

// AppInitPlugin makes the application's display name available to every
// request handler via Provides.
type AppInitPlugin struct {
	AppName string
}

// Name implements Plugin.
func (AppInitPlugin) Name() string { return "app-init" }

// Setup implements Plugin.
func (p AppInitPlugin) Setup(_ context.Context, provider *Provider) error {
	name := p.AppName
	if name == "" {
		name = DefaultAppName
	}
	return provider.Provide(ProvideAppName, name)
}
