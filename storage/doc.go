// Package storage is the request-scoped media workspace. Uploaded audio and
// images, and synthesized replies, are stored under keys of the form
// "<requestID>/<name>" so concurrent requests never share a file.
//
// # Backends
//
//   - storage/local: filesystem directory, one subdirectory per request
//
// # Configuration
//
//	storage:
//	  provider: "local"
//	  base_path: "/var/lib/healthverse/media"
//	  max_file_size: 26214400
package storage
