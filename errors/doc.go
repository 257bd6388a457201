// Package errors provides the structured error type shared by every
// HealthVerse package. Errors carry a machine-readable code, an HTTP status
// hint and a retryable flag, and render to an RFC 7807 style envelope.
package errors
