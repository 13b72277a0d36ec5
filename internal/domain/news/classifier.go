package news

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonreiter/govader"
)

// Classifier maps free text to a sentiment category.
type Classifier interface {
	Classify(text string) Sentiment
}

// LexiconClassifier scores text with the VADER rule set and lexicon. The
// analyzer is read-only after construction, so it is safe for concurrent use.
type LexiconClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewLexiconClassifier builds a VADER analyzer. When path is set, the entries
// it holds are merged over the bundled lexicon.
func NewLexiconClassifier(path string) (*LexiconClassifier, error) {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	if strings.TrimSpace(path) != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open lexicon: %w", err)
		}
		defer f.Close()

		extra, err := ParseLexicon(f)
		if err != nil {
			return nil, err
		}
		for token, score := range extra {
			analyzer.Lexicon[token] = score
		}
	}
	return &LexiconClassifier{analyzer: analyzer}, nil
}

// ParseLexicon reads tab separated `token<TAB>mean[<TAB>...]` lines.
func ParseLexicon(r io.Reader) (map[string]float64, error) {
	lexicon := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("lexicon line %d: expected token and score", line)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lexicon[strings.ToLower(strings.TrimSpace(fields[0]))] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lexicon, nil
}

// Classify returns Positive for a compound score above zero, Negative below
// zero and Neutral otherwise.
func (c *LexiconClassifier) Classify(text string) Sentiment {
	score := c.Compound(text)
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Compound returns the normalized polarity of text in [-1, 1].
func (c *LexiconClassifier) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return c.analyzer.PolarityScores(text).Compound
}
