package news

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Topics returns the capitalized words of title in order, each with
// surrounding punctuation removed.
func Topics(title string) []string {
	topics := make([]string, 0)
	for _, token := range strings.Fields(title) {
		if !isCapitalized(token) {
			continue
		}
		topic := strings.TrimFunc(token, unicode.IsPunct)
		if topic == "" {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

// isCapitalized reports whether token is title-cased: every run of cased
// letters starts with an upper-case rune followed only by lower-case ones,
// and at least one cased letter exists.
func isCapitalized(token string) bool {
	if !utf8.ValidString(token) {
		return false
	}
	cased, prevCased := false, false
	for _, r := range token {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// NewArticle builds a record from raw extracted fields, applying placeholders
// and deriving topics from the final title.
func NewArticle(title, summary, link string) ArticleRecord {
	title = collapseSpace(title)
	summary = collapseSpace(summary)
	link = strings.TrimSpace(link)
	if title == "" {
		title = PlaceholderTitle
	}
	if summary == "" {
		summary = PlaceholderSummary
	}
	if link == "" {
		link = PlaceholderLink
	}
	return ArticleRecord{
		Title:   title,
		Summary: summary,
		Link:    link,
		Topics:  Topics(title),
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
