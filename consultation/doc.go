// Package consultation runs one patient consultation end to end:
// transcribe the voice note, ask a vision model about the image with the
// doctor prompt, and speak the answer back.
//
// Consult never fails. Every stage downgrades its failure to text in the
// result, so callers always get a transcript, a diagnosis and, when speech
// synthesis worked, an audio reply.
package consultation
