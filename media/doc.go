// Package media turns stored uploads into the inline forms remote models
// accept. Images become base64 payloads with a sniffed MIME type.
package media
