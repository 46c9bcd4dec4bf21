package commented

import (
	"context"
	"fmt"
	"strings"

	"cppsniff/internal/model/syntax"
)

// Classifier decides whether a block of comment text is source code.
// Implementations are pure and safe for concurrent use.
type Classifier interface {
	// Name returns the strategy name
	Name() string

	// Classify returns the verdict for a comment block's text
	Classify(ctx context.Context, text string) Verdict
}

// Verdict is the outcome of classifying one block. Only IsCode is part of
// the contract; the remaining fields explain how it was reached.
type Verdict struct {
	IsCode bool `json:"is_code"`

	// Evidence ratio strategy
	Ratio        float64 `json:"ratio,omitempty"`
	WordEvidence int     `json:"word_evidence,omitempty"`
	HardEvidence int     `json:"hard_evidence,omitempty"`
	SoftEvidence int     `json:"soft_evidence,omitempty"`

	// Synthetic parse strategy
	TreeSize  int `json:"tree_size,omitempty"`
	TreeDepth int `json:"tree_depth,omitempty"`
}

// NewClassifier builds the classifier selected by opts.Strategy. parser is
// only required by the synthetic parse strategy.
func NewClassifier(opts Options, parser syntax.Parser) (Classifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch opts.Strategy {
	case StrategyEvidenceRatio:
		c, err := NewEvidenceRatioClassifier(opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	case StrategySyntheticParse:
		if parser == nil {
			return nil, fmt.Errorf("strategy %s requires a fragment parser", opts.Strategy)
		}
		return NewSyntheticParseClassifier(opts, parser), nil
	default:
		return nil, fmt.Errorf("unknown classifier strategy: %q", opts.Strategy)
	}
}

// Normalize collapses runs of whitespace into single spaces and trims the ends
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
