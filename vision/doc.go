// Package vision asks multimodal models about an image. A Provider takes a
// text prompt plus an inline image and returns the model's text reply.
//
// The default backend, LLMProvider, speaks the OpenAI-compatible chat
// completions format through the llm package; vision/anthropic uses the
// Anthropic Messages API.
package vision
