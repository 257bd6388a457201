// Package web serves the consultation form and its JSON API on the shared
// gin engine.
//
//	GET  /                        the HTML form
//	POST /consultations           multipart "audio" and "image", both optional
//	GET  /media/:request/:file    synthesized reply audio
package web
