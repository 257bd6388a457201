// Package bootstrap runs the HealthVerse process lifecycle: config defaults
// and validation, logger setup, component start in registration order,
// configure callbacks, a startup summary, signal wait and graceful stop.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error { ... })
//	err = app.Run(ctx)
package bootstrap
