package commented

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EvidenceRatioClassifier scores text by the weighted density of code-like
// lexical features: structural words, hard punctuation (";{}:") and soft
// punctuation (operators, parentheses, quotes).
type EvidenceRatioClassifier struct {
	words     *regexp.Regexp
	hardChars string
	softChars string

	wordWeight float64
	hardWeight float64
	softWeight float64
	minRatio   float64
	maxRatio   float64
}

// NewEvidenceRatioClassifier creates an evidence ratio classifier
func NewEvidenceRatioClassifier(opts Options) (*EvidenceRatioClassifier, error) {
	words, err := compileWords(opts.Words)
	if err != nil {
		return nil, err
	}

	return &EvidenceRatioClassifier{
		words:      words,
		hardChars:  opts.HardChars,
		softChars:  opts.SoftChars,
		wordWeight: opts.WordWeight,
		hardWeight: opts.HardWeight,
		softWeight: opts.SoftWeight,
		minRatio:   opts.MinRatio,
		maxRatio:   opts.MaxRatio,
	}, nil
}

// compileWords builds one alternation. Entries made of word characters only
// must match as whole words; operator entries such as "::" match anywhere.
func compileWords(words []string) (*regexp.Regexp, error) {
	if len(words) == 0 {
		return nil, nil
	}

	wordChars := regexp.MustCompile(`^\w+$`)
	alternatives := make([]string, 0, len(words))
	for _, w := range words {
		quoted := regexp.QuoteMeta(w)
		if wordChars.MatchString(w) {
			quoted = `\b` + quoted + `\b`
		}
		alternatives = append(alternatives, quoted)
	}

	re, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid word vocabulary: %w", err)
	}
	return re, nil
}

func (c *EvidenceRatioClassifier) Name() string {
	return string(StrategyEvidenceRatio)
}

func (c *EvidenceRatioClassifier) Classify(ctx context.Context, text string) Verdict {
	normalized := Normalize(text)
	length := utf8.RuneCountInString(normalized)
	if length == 0 {
		return Verdict{}
	}

	verdict := Verdict{
		WordEvidence: c.countWords(normalized),
		HardEvidence: countChars(normalized, c.hardChars),
		SoftEvidence: countChars(normalized, c.softChars),
	}

	weighted := float64(verdict.WordEvidence)*c.wordWeight +
		float64(verdict.HardEvidence)*c.hardWeight +
		float64(verdict.SoftEvidence)*c.softWeight
	verdict.Ratio = weighted / float64(length)
	verdict.IsCode = verdict.Ratio >= c.minRatio && verdict.Ratio <= c.maxRatio

	return verdict
}

func (c *EvidenceRatioClassifier) countWords(text string) int {
	if c.words == nil {
		return 0
	}
	return len(c.words.FindAllStringIndex(text, -1))
}

func countChars(text, set string) int {
	if set == "" {
		return 0
	}
	n := 0
	for _, r := range text {
		if strings.ContainsRune(set, r) {
			n++
		}
	}
	return n
}
