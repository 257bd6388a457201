// Package synthesis turns reply text into speech. Backends write the
// audio into the request's storage workspace and return where it landed.
//
// # Backends
//
//   - synthesis/elevenlabs: ElevenLabs text-to-speech, stored as WAV
//   - synthesis/gtts: Google Translate speech endpoint, stored as MP3
//
// NewChain runs the primary and falls back to the secondary once.
package synthesis
