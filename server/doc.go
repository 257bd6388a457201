// Package server runs the HealthVerse HTTP server: a gin engine served over
// HTTP/1.1 and cleartext HTTP/2, registered with the application as a
// lifecycle component.
//
// Middleware lives in server/middleware (recovery, request id, CORS, body
// size limit, request logging). Operational endpoints live in
// server/endpoint (/health, /info).
package server
