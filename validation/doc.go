// Package validation checks configuration structs against their
// `validate` tags and reports failures as a single AppError, with field
// names written as config keys ("vision.groq.temperature").
package validation
