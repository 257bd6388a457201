// Package llm is a config-driven chat completion client. A Dialect maps the
// universal CompletionRequest onto one vendor's wire format, and Adapter
// sends it through httpclient/rest.
//
// Messages may carry multimodal Parts (text and image_url), which is how
// the vision stage sends a prompt together with an inline image.
//
//	import _ "github.com/kbukum/healthverse/llm/openai"
//
//	a, _ := llm.New(llm.Config{Dialect: "openai", BaseURL: groqURL, APIKey: key, Model: m})
//	resp, err := a.Execute(ctx, llm.CompletionRequest{Messages: msgs})
package llm
