package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/healthverse/component"
)

// Summary is the startup report printed once the app is ready.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []component.Description
	routes          []component.Route
	health          []component.Health
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Collect reads descriptions, routes and live health from the registry.
func (s *Summary) Collect(ctx context.Context, reg *component.Registry) {
	for _, c := range reg.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			s.infrastructure = append(s.infrastructure, desc)
		}
		if rp, ok := c.(component.RouteProvider); ok {
			s.routes = append(s.routes, rp.Routes()...)
		}
	}
	s.health = reg.HealthAll(ctx)
}

// Write prints the summary as a tree.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "\nComponents\n")
		for i, d := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s [%s] %s\n", branch(i, len(s.infrastructure)), d.Name, d.Type, d.Details)
		}
	}
	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s -> %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}
	if len(s.health) > 0 {
		fmt.Fprintf(w, "\nHealth\n")
		for i, h := range s.health {
			line := fmt.Sprintf("%s: %s", h.Name, h.Status)
			if h.Message != "" {
				line += " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s\n", branch(i, len(s.health)), line)
		}
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}
