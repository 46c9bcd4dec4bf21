package commented

import "fmt"

// Commented code detection defaults. The ratios were tuned by hand on real
// C/C++ code and are meant to be recalibrated through Options.
const (
	// Evidence weights
	DefaultWordWeight = 3.0
	DefaultHardWeight = 2.0
	DefaultSoftWeight = 1.0

	// Accepted evidence ratio band. The upper bound rejects strings made
	// almost entirely of punctuation such as "..." or "/////".
	DefaultMinRatio = 0.22
	DefaultMaxRatio = 0.99

	// Synthetic parse thresholds
	DefaultMinCodeDepth = 4
	DefaultMinCodeSize  = 6

	// Lines with more than this share of '/', '*' and '-' are decoration
	DefaultSeparatorRatio = 0.9

	DefaultHardChars      = ";{}:"
	DefaultSoftChars      = `-+,*/%<>()".=`
	DefaultSeparatorChars = "/*-"
)

// DefaultWords is the vocabulary of language-structural words counted as word evidence
var DefaultWords = []string{"::", "void", "for", "while", "if", "int", "double", "bool", "std", "return"}

// Strategy selects the code-likelihood classifier
type Strategy string

const (
	StrategyEvidenceRatio  Strategy = "evidence_ratio"
	StrategySyntheticParse Strategy = "synthetic_parse"
)

// Options configures comment aggregation and classification
type Options struct {
	Strategy Strategy `yaml:"strategy" json:"strategy"`

	WordWeight float64 `yaml:"word_weight" json:"word_weight"`
	HardWeight float64 `yaml:"hard_weight" json:"hard_weight"`
	SoftWeight float64 `yaml:"soft_weight" json:"soft_weight"`
	MinRatio   float64 `yaml:"min_ratio" json:"min_ratio"`
	MaxRatio   float64 `yaml:"max_ratio" json:"max_ratio"`

	MinCodeDepth int `yaml:"min_code_depth" json:"min_code_depth"`
	MinCodeSize  int `yaml:"min_code_size" json:"min_code_size"`

	SeparatorRatio float64 `yaml:"separator_ratio" json:"separator_ratio"`

	Words     []string `yaml:"words" json:"words"`
	HardChars string   `yaml:"hard_chars" json:"hard_chars"`
	SoftChars string   `yaml:"soft_chars" json:"soft_chars"`
}

// DefaultOptions returns the reference configuration
func DefaultOptions() Options {
	return Options{
		Strategy:       StrategyEvidenceRatio,
		WordWeight:     DefaultWordWeight,
		HardWeight:     DefaultHardWeight,
		SoftWeight:     DefaultSoftWeight,
		MinRatio:       DefaultMinRatio,
		MaxRatio:       DefaultMaxRatio,
		MinCodeDepth:   DefaultMinCodeDepth,
		MinCodeSize:    DefaultMinCodeSize,
		SeparatorRatio: DefaultSeparatorRatio,
		Words:          append([]string(nil), DefaultWords...),
		HardChars:      DefaultHardChars,
		SoftChars:      DefaultSoftChars,
	}
}

// Validate checks that the options describe a usable classifier
func (o Options) Validate() error {
	switch o.Strategy {
	case StrategyEvidenceRatio, StrategySyntheticParse:
	default:
		return fmt.Errorf("unknown classifier strategy: %q", o.Strategy)
	}
	if o.WordWeight < 0 || o.HardWeight < 0 || o.SoftWeight < 0 {
		return fmt.Errorf("evidence weights must not be negative")
	}
	if o.MinRatio > o.MaxRatio {
		return fmt.Errorf("min_ratio (%.2f) is greater than max_ratio (%.2f)", o.MinRatio, o.MaxRatio)
	}
	if o.MinCodeDepth < 0 || o.MinCodeSize < 0 {
		return fmt.Errorf("synthetic parse thresholds must not be negative")
	}
	if o.SeparatorRatio <= 0 || o.SeparatorRatio > 1 {
		return fmt.Errorf("separator_ratio must be in (0, 1], got %.2f", o.SeparatorRatio)
	}
	for _, w := range o.Words {
		if w == "" {
			return fmt.Errorf("word vocabulary contains an empty entry")
		}
	}
	return nil
}
