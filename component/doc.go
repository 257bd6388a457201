// Package component defines lifecycle-managed services: anything the
// application starts at boot, health-checks while running and stops on
// shutdown (the HTTP server, the media workspace).
//
// Components are started in registration order and stopped in reverse.
// Components that implement Describable or RouteProvider also report
// themselves in the startup summary.
package component
