package news

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *LexiconClassifier {
	t.Helper()
	c, err := NewLexiconClassifier("")
	require.NoError(t, err)
	return c
}

func TestClassifyScenarios(t *testing.T) {
	c := newTestClassifier(t)
	require.Equal(t, SentimentPositive, c.Classify("The company's outlook remains strong and promising."))
	require.Equal(t, SentimentNegative, c.Classify("Losses mounted amid declining demand."))
	require.Equal(t, SentimentNeutral, c.Classify("The meeting is scheduled for Tuesday."))
	require.Equal(t, SentimentNeutral, c.Classify(""))
	require.Equal(t, SentimentNeutral, c.Classify("   "))
}

func TestClassifyNewsSentences(t *testing.T) {
	c := newTestClassifier(t)
	cases := []struct {
		text string
		want Sentiment
	}{
		{text: "Two workers were killed in a factory explosion.", want: SentimentNegative},
		{text: "Investors are worried about the merger.", want: SentimentNegative},
		{text: "Customers trust the brand more than ever.", want: SentimentPositive},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			require.Equal(t, tc.want, c.Classify(tc.text))
		})
	}
}

func TestCompoundIsBoundedAndDeterministic(t *testing.T) {
	c := newTestClassifier(t)
	text := strings.Repeat("great excellent amazing success ", 50) + "!!!!!!"
	score := c.Compound(text)
	require.LessOrEqual(t, score, 1.0)
	require.Greater(t, score, 0.9)
	require.Equal(t, score, c.Compound(text))

	neg := c.Compound(strings.Repeat("terrible disaster crisis ", 50))
	require.GreaterOrEqual(t, neg, -1.0)
	require.Less(t, neg, -0.9)
}

func TestNegationFlipsPolarity(t *testing.T) {
	c := newTestClassifier(t)
	require.Equal(t, SentimentPositive, c.Classify("results were good"))
	require.Equal(t, SentimentNegative, c.Classify("results were not good"))
}

func TestBoosterAndEmphasisIncreaseMagnitude(t *testing.T) {
	c := newTestClassifier(t)
	plain := c.Compound("profits are good")
	require.Greater(t, c.Compound("profits are very good"), plain)
	require.Greater(t, c.Compound("profits are GOOD"), plain)
	require.Greater(t, c.Compound("profits are good!!"), plain)
	require.Less(t, c.Compound("profits are slightly good"), plain)
}

func TestContrastWeightsClauseAfterBut(t *testing.T) {
	c := newTestClassifier(t)
	require.Equal(t, SentimentNegative, c.Classify("Revenue was good but the outlook is weak"))
	require.Equal(t, SentimentPositive, c.Classify("Revenue was weak but the outlook is good"))
}

func TestCustomLexiconOverridesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vader.txt")
	require.NoError(t, os.WriteFile(path, []byte("# custom\nmoon\t3.0\t0.5\t[3, 3]\ngood\t-2.0\n"), 0o600))

	base := newTestClassifier(t)
	require.Equal(t, SentimentNeutral, base.Classify("shares to the moon"))

	c, err := NewLexiconClassifier(path)
	require.NoError(t, err)
	require.Equal(t, SentimentPositive, c.Classify("shares to the moon"))
	require.Equal(t, SentimentNegative, c.Classify("results were good"))
	require.Equal(t, SentimentNegative, c.Classify("Investors are worried about the merger."))
}

func TestParseLexiconRejectsMalformedLines(t *testing.T) {
	_, err := ParseLexicon(strings.NewReader("good\tnot-a-number\n"))
	require.Error(t, err)

	_, err = ParseLexicon(strings.NewReader("lonely\n"))
	require.Error(t, err)

	_, err = ParseLexicon(strings.NewReader("\n# only comments\n"))
	require.Error(t, err)

	_, err = NewLexiconClassifier(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
