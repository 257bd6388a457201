// Package transcription defines the speech-to-text provider interface and
// the request/response types shared by its backends.
//
// # Backends
//
//   - transcription/groq: Groq's hosted Whisper (OpenAI-compatible API)
//   - transcription/whisper: self-hosted faster-whisper HTTP sidecar
//   - transcription/googlespeech: Google Cloud Speech-to-Text
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(groq.ProviderName, groq.Factory())
//	p, err := reg.Create("groq", settings)
//	resp, err := p.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: path})
package transcription
