// Package provider defines the generic contracts every HealthVerse backend
// implements: a named Provider that can report availability, and the
// RequestResponse[I, O] interaction used by transcription, vision and
// synthesis adapters.
//
// Cross-cutting behavior is added with Middleware and composed with Chain:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("synthesis"),
//	)(raw)
//
// WithFallback pairs a primary with exactly one fallback. Registry maps
// config names to factories so backends are selected at startup.
package provider
