package gtts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxChunkRunes is the largest text segment the endpoint accepts.
const maxChunkRunes = 100

// splitText breaks text into segments of at most limit runes, preferring
// sentence punctuation, then whitespace, and hard splitting only single words
// longer than limit.
func splitText(text string, limit int) []string {
	if limit <= 0 {
		limit = maxChunkRunes
	}
	chunks := make([]string, 0)
	for _, sentence := range splitSentences(text) {
		chunks = append(chunks, packWords(sentence, limit)...)
	}
	return chunks
}

func splitSentences(text string) []string {
	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" && hasSpeakable(s) {
			out = append(out, s)
		}
		current.Reset()
	}
	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', ';', ':', '\n', '।', '|':
			flush()
		}
	}
	flush()
	return out
}

func packWords(sentence string, limit int) []string {
	var (
		out     []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
			size = 0
		}
	}
	for _, word := range strings.Fields(sentence) {
		wordLen := utf8.RuneCountInString(word)
		for wordLen > limit {
			flush()
			runes := []rune(word)
			out = append(out, string(runes[:limit]))
			word = string(runes[limit:])
			wordLen -= limit
		}
		if wordLen == 0 {
			continue
		}
		needed := wordLen
		if size > 0 {
			needed++
		}
		if size+needed > limit {
			flush()
			needed = wordLen
		}
		if size > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
		size += needed
	}
	flush()
	return out
}

func hasSpeakable(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
