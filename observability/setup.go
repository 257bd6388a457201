package observability

import (
	"context"
	stderrors "errors"
)

// Setup initializes tracing and metrics when cfg.Enabled and returns a
// shutdown function that flushes both. Disabled configs return a no-op.
func Setup(ctx context.Context, cfg Config, res Resource) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
