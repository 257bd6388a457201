package server

import (
	"context"
	"sort"
	"strings"

	"github.com/kbukum/healthverse/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// systemPaths are listed after application routes in the startup summary.
var systemPaths = map[string]bool{"/health": true, "/info": true}

// Component adapts a Server to the component lifecycle.
type Component struct {
	server  *Server
	started bool
}

// NewComponent returns a component backed by s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

func (sc *Component) Name() string { return componentName }

func (sc *Component) Start(ctx context.Context) error {
	if err := sc.server.Start(ctx); err != nil {
		return err
	}
	sc.started = true
	return nil
}

func (sc *Component) Stop(ctx context.Context) error {
	if !sc.started {
		return nil
	}
	sc.started = false
	return sc.server.Stop(ctx)
}

func (sc *Component) Health(_ context.Context) component.Health {
	if !sc.started {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe reports the listen address for the startup summary.
func (sc *Component) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
		Port:    sc.server.config.Port,
	}
}

// Routes lists registered routes: application routes first, sorted by path
// then method.
func (sc *Component) Routes() []component.Route {
	gr := sc.server.engine.Routes()
	sort.Slice(gr, func(i, j int) bool {
		si, sj := systemPaths[gr[i].Path], systemPaths[gr[j].Path]
		if si != sj {
			return !si
		}
		if gr[i].Path != gr[j].Path {
			return gr[i].Path < gr[j].Path
		}
		return gr[i].Method < gr[j].Method
	})

	routes := make([]component.Route, 0, len(gr))
	for _, r := range gr {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handlerName(r.Handler),
		})
	}
	return routes
}

// handlerName shortens gin's handler names:
// "github.com/x/healthverse/web.(*Handler).Consult-fm" becomes
// "Handler.Consult"; ".../endpoint.Health.func1" becomes "endpoint.Health".
func handlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 2 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
