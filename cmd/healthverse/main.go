// Command healthverse serves the HealthVerse consultation form and API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/healthverse/bootstrap"
	"github.com/kbukum/healthverse/component"
	"github.com/kbukum/healthverse/config"
	"github.com/kbukum/healthverse/observability"
	"github.com/kbukum/healthverse/server"
	"github.com/kbukum/healthverse/storage"
	_ "github.com/kbukum/healthverse/storage/local"
	"github.com/kbukum/healthverse/version"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, credentialBindings()...); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg, bootstrap.WithGracefulTimeout(cfg.GracefulTimeout()))
	if err != nil {
		return err
	}

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(shutdownTelemetry)

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	store := storage.NewComponent(cfg.Storage, app.Logger)
	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)

	// Start order matters: routes are mounted by the pipeline before the
	// server starts listening.
	for _, c := range []component.Component{
		store,
		newPipeline(&cfg, store, srv, metrics, app.Logger),
		server.NewComponent(srv),
	} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}
	return app.Run(ctx)
}
