package normalizer

import (
	"strings"
	"unicode/utf8"
)

// isSentenceTerminator reports whether r ends a sentence. Full-width
// variants cover Japanese and Chinese punctuation.
func isSentenceTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// wrapLine splits a line longer than MaxLineLength into sentence-sized
// chunks bounded by SentenceChunkLength. A single sentence longer than the
// chunk bound stays whole; sentences are never broken mid-way.
func (n *Normalizer) wrapLine(line string) []string {
	if n.cfg.MaxLineLength <= 0 || utf8.RuneCountInString(line) <= n.cfg.MaxLineLength {
		return []string{line}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, sentence := range splitSentences(line) {
		sentenceLen := utf8.RuneCountInString(sentence)
		if currentLen > 0 && currentLen+sentenceLen > n.cfg.SentenceChunkLength {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentLen = 0
		}
		current.WriteString(sentence)
		currentLen += sentenceLen
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		chunks = append(chunks, tail)
	}

	if len(chunks) == 0 {
		return []string{line}
	}
	return chunks
}

// splitSentences cuts a line after each sentence terminator, keeping the
// terminator with its sentence.
func splitSentences(line string) []string {
	var sentences []string
	start := 0
	for i, r := range line {
		if isSentenceTerminator(r) {
			end := i + utf8.RuneLen(r)
			sentences = append(sentences, line[start:end])
			start = end
		}
	}
	if start < len(line) {
		sentences = append(sentences, line[start:])
	}
	return sentences
}
