package gtts

import "strings"

// MaxChunkLen is the longest text the endpoint accepts per request.
const MaxChunkLen = 200

// Chunk splits text into pieces of at most max runes, breaking on
// whitespace. Words longer than max are split mid-word.
func Chunk(text string, max int) []string {
	var (
		chunks []string
		cur    []rune
	)
	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}
		if len(w) == 0 {
			continue
		}
		need := len(w)
		if len(cur) > 0 {
			need++
		}
		if len(cur)+need > max {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()
	return chunks
}
