package component

import (
	"context"
	"errors"
	"testing"
)

// fakeComponent implements Component for testing.
type fakeComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (f *fakeComponent) Name() string { return f.name }
func (f *fakeComponent) Start(context.Context) error {
	if f.startOrder != nil {
		*f.startOrder = append(*f.startOrder, f.name)
	}
	return f.startErr
}
func (f *fakeComponent) Stop(context.Context) error {
	if f.stopOrder != nil {
		*f.stopOrder = append(*f.stopOrder, f.name)
	}
	return f.stopErr
}
func (f *fakeComponent) Health(context.Context) Health { return f.health }

func TestRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "storage"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "storage"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if got := r.Get("storage"); got == nil || got.Name() != "storage" {
		t.Errorf("Get(storage) = %v", got)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
	if n := len(r.All()); n != 1 {
		t.Errorf("All() len = %d, want 1", n)
	}
}

func TestStartStopOrder(t *testing.T) {
	r := NewRegistry()
	var started, stopped []string
	for _, name := range []string{"storage", "providers", "http-server"} {
		_ = r.Register(&fakeComponent{name: name, startOrder: &started, stopOrder: &stopped})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	wantStart := []string{"storage", "providers", "http-server"}
	wantStop := []string{"http-server", "providers", "storage"}
	for i := range wantStart {
		if started[i] != wantStart[i] {
			t.Errorf("start order = %v, want %v", started, wantStart)
			break
		}
	}
	for i := range wantStop {
		if stopped[i] != wantStop[i] {
			t.Errorf("stop order = %v, want %v", stopped, wantStop)
			break
		}
	}
}

func TestStartAllError(t *testing.T) {
	r := NewRegistry()
	var stopped []string
	_ = r.Register(&fakeComponent{name: "storage", stopOrder: &stopped})
	_ = r.Register(&fakeComponent{name: "http-server", startErr: errors.New("address in use")})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	// Only the component that started is stopped.
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if len(stopped) != 1 || stopped[0] != "storage" {
		t.Errorf("stopped = %v, want [storage]", stopped)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	var stopped []string
	_ = r.Register(&fakeComponent{name: "storage", stopOrder: &stopped})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if len(stopped) != 0 {
		t.Errorf("expected 0 stops, got %d", len(stopped))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry()
	errStop := errors.New("flush failed")
	_ = r.Register(&fakeComponent{name: "storage", stopErr: errStop})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, errStop) {
		t.Errorf("StopAll() = %v, want wrapped %v", err, errStop)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "storage", health: Health{Name: "storage", Status: StatusHealthy}})
	_ = r.Register(&fakeComponent{name: "http-server", health: Health{Name: "http-server", Status: StatusUnhealthy, Message: "not started"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusUnhealthy {
		t.Errorf("results = %+v", results)
	}
}
