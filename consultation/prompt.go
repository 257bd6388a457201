package consultation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptSeparator joins the instruction template and the transcript.
const PromptSeparator = "\n\n"

// DefaultPrompt instructs the model to answer as a doctor would speak.
// The reply is read aloud, so the rules keep it free of digits, symbols
// and markdown.
const DefaultPrompt = `You are a highly skilled, compassionate doctor. Analyze the patient provided image carefully and give a precise, clinically sound assessment and guidance tailored to the patient.

Opening voice
Begin your first sentence exactly with: With what I see, I think you have ...
State the single most likely condition in clear patient friendly terms.

Explain why
Describe the key visible findings that support your impression and what they mean for the patient.

Differential
Name other plausible conditions and briefly note how they differ.

Care plan now
Offer practical steps the patient can take at home and safe over the counter options when appropriate. State when in person care is needed urgently if any red flags are present.

Definitive care after confirmation
Suggest sensible next tests or evaluations to confirm the diagnosis. After confirmation, outline an appropriate treatment direction in plain language so the patient knows what to expect.

If uncertain or image is not suitable
If the image quality or content prevents a safe conclusion, say so clearly, explain what is missing, and guide safer next steps rather than guessing.

Tone and formatting rules
Do not use digits or special symbols anywhere in your response.
Do not use markdown.
Do not say you are an AI model.
Do not begin with the phrase In the image I see.
Write in short paragraphs rather than lists, using warm professional bedside language.
Keep the message concise, precise, and focused on patient safety.`

// BuildPrompt appends the transcript to the template. An empty transcript
// yields the template unchanged.
func BuildPrompt(template, transcript string) string {
	if transcript == "" {
		return template
	}
	return template + PromptSeparator + transcript
}

// PromptFile is the on-disk form of a custom prompt.
//
//	name: dermatology
//	prompt: |
//	  You are a dermatologist...
type PromptFile struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`
}

// LoadPrompt reads a YAML prompt file. An empty path returns DefaultPrompt.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return DefaultPrompt, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("consultation: read prompt file: %w", err)
	}
	var pf PromptFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return "", fmt.Errorf("consultation: parse prompt file %s: %w", path, err)
	}
	prompt := strings.TrimSpace(pf.Prompt)
	if prompt == "" {
		return "", fmt.Errorf("consultation: prompt file %s has an empty prompt", path)
	}
	return prompt, nil
}
