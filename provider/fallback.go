package provider

import (
	"context"
	"fmt"
)

// FallbackError reports that both the primary and the fallback failed.
type FallbackError struct {
	Primary     string
	PrimaryErr  error
	Fallback    string
	FallbackErr error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s: %v | %s fallback: %v", e.Primary, e.PrimaryErr, e.Fallback, e.FallbackErr)
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *FallbackError) Unwrap() []error {
	return []error{e.PrimaryErr, e.FallbackErr}
}

// FallbackOption configures WithFallback.
type FallbackOption func(*fallbackOptions)

type fallbackOptions struct {
	onFallback func(ctx context.Context, primary, fallback string, err error)
}

// OnFallback registers a hook called once, after the primary failed and
// before the fallback runs.
func OnFallback(fn func(ctx context.Context, primary, fallback string, err error)) FallbackOption {
	return func(o *fallbackOptions) { o.onFallback = fn }
}

// WithFallback returns a provider that runs primary and, only if it fails,
// runs fallback exactly once. Calls are strictly sequential. There are no
// retries: a failing fallback yields a *FallbackError carrying both causes.
//
// Primaries that lack configuration are expected to fail fast from Execute
// without network I/O, so their typed error is what FallbackError records.
func WithFallback[I, O any](primary, fallback RequestResponse[I, O], opts ...FallbackOption) RequestResponse[I, O] {
	var o fallbackOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &fallbackRR[I, O]{primary: primary, fallback: fallback, opts: o}
}

type fallbackRR[I, O any] struct {
	primary  RequestResponse[I, O]
	fallback RequestResponse[I, O]
	opts     fallbackOptions
}

func (f *fallbackRR[I, O]) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}

func (f *fallbackRR[I, O]) IsAvailable(ctx context.Context) bool {
	return f.primary.IsAvailable(ctx) || f.fallback.IsAvailable(ctx)
}

func (f *fallbackRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	out, err := f.primary.Execute(ctx, input)
	if err == nil {
		return out, nil
	}

	if f.opts.onFallback != nil {
		f.opts.onFallback(ctx, f.primary.Name(), f.fallback.Name(), err)
	}

	out, fbErr := f.fallback.Execute(ctx, input)
	if fbErr != nil {
		var zero O
		return zero, &FallbackError{
			Primary:     f.primary.Name(),
			PrimaryErr:  err,
			Fallback:    f.fallback.Name(),
			FallbackErr: fbErr,
		}
	}
	return out, nil
}
