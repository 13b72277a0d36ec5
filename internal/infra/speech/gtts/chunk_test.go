package gtts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestSplitTextKeepsShortSentences(t *testing.T) {
	chunks := splitText("Total articles analyzed: 3.\nKey topics covered: .\n\n", 100)
	require.Equal(t, []string{"Total articles analyzed:", "3.", "Key topics covered:"}, chunks)
}

func TestSplitTextRespectsLimit(t *testing.T) {
	text := strings.Repeat("समाचार विश्लेषण ", 40) + "।"
	chunks := splitText(text, 100)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		require.LessOrEqual(t, utf8.RuneCountInString(c), 100)
	}
	require.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(chunks, " "))
}

func TestSplitTextHardSplitsLongWords(t *testing.T) {
	word := strings.Repeat("x", 250)
	chunks := splitText(word, 100)
	require.Equal(t, []string{word[:100], word[100:200], word[200:]}, chunks)
}

func TestSplitTextDropsPunctuationOnly(t *testing.T) {
	require.Empty(t, splitText(" ... !! ", 100))
}
