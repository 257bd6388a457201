package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/provider"
)

func TestChain_Empty(t *testing.T) {
	p := &echoProvider{name: "test"}
	wrapped := provider.Chain[string, string]()(p)
	if wrapped.Name() != "test" {
		t.Fatalf("expected 'test', got %q", wrapped.Name())
	}
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return &orderTracker{inner: inner, tag: tag, order: &order}
		}
	}

	p := &echoProvider{name: "test"}
	wrapped := provider.Chain(mw("A"), mw("B"), mw("C"))(p)

	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "C:before", "C:after", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

type orderTracker struct {
	inner provider.RequestResponse[string, string]
	tag   string
	order *[]string
}

func (o *orderTracker) Name() string                         { return o.inner.Name() }
func (o *orderTracker) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker) Execute(ctx context.Context, input string) (string, error) {
	*o.order = append(*o.order, o.tag+":before")
	out, err := o.inner.Execute(ctx, input)
	*o.order = append(*o.order, o.tag+":after")
	return out, err
}

func TestWithLogging_PassesThroughError(t *testing.T) {
	p := &scriptedProvider{name: "broken", err: errBoom}
	wrapped := provider.WithLogging[string, string](logger.NewNop())(p)

	_, err := wrapped.Execute(context.Background(), "x")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if wrapped.Name() != "broken" {
		t.Errorf("name = %q", wrapped.Name())
	}
}

func TestWithTracing_PassesThrough(t *testing.T) {
	p := &echoProvider{name: "tts"}
	wrapped := provider.WithTracing[string, string]("synthesis")(p)
	got, err := wrapped.Execute(context.Background(), "hi")
	if err != nil || got != "echo:hi" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestAdapt_MapInErrorSkipsBackend(t *testing.T) {
	backend := &scriptedProvider{name: "backend", out: "x", available: true}
	adapted := provider.Adapt[int, string, string, string](
		backend, "adapted",
		func(_ context.Context, in int) (string, error) {
			if in < 0 {
				return "", errBoom
			}
			return "n", nil
		},
		func(out string) (string, error) { return "<" + out + ">", nil },
	)

	if _, err := adapted.Execute(context.Background(), -1); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("backend should not be called, got %d calls", backend.calls)
	}

	got, err := adapted.Execute(context.Background(), 1)
	if err != nil || got != "<x:N>" {
		t.Fatalf("got %q, %v", got, err)
	}
	if adapted.Name() != "adapted" {
		t.Errorf("name = %q", adapted.Name())
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	reg := provider.NewRegistry[provider.RequestResponse[string, string]]()
	reg.RegisterFactory("echo", func(map[string]any) (provider.RequestResponse[string, string], error) {
		return &echoProvider{name: "echo"}, nil
	})

	p, err := reg.Create("echo", nil)
	if err != nil || p.Name() != "echo" {
		t.Fatalf("Create(echo) = %v, %v", p, err)
	}
	if _, err := reg.Create("missing", nil); err == nil {
		t.Fatal("expected error for unknown factory")
	}
	if names := reg.List(); len(names) != 1 || names[0] != "echo" {
		t.Errorf("List() = %v", names)
	}
}
