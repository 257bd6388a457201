package synthesis

import (
	"context"

	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/observability"
	"github.com/kbukum/healthverse/provider"
)

// NewChain wraps primary and fallback so that the fallback runs once, and
// only after the primary failed. Both backends get logging and tracing
// middleware; each switch to the fallback is logged and counted.
func NewChain(primary, fallback Provider, metrics *observability.Metrics, log *logger.Logger) Provider {
	log = log.WithComponent("synthesis")
	wrap := provider.Chain[Request, *Audio](
		provider.WithLogging[Request, *Audio](log),
		provider.WithTracing[Request, *Audio]("synthesis"),
	)

	return provider.WithFallback(wrap(primary), wrap(fallback),
		provider.OnFallback(func(ctx context.Context, from, to string, err error) {
			log.WithContext(ctx).Warn("primary synthesis failed, using fallback", logger.Fields(
				"from", from,
				"to", to,
				logger.FieldError, err.Error(),
			))
			metrics.RecordFallback(ctx, from, to)
		}),
	)
}
