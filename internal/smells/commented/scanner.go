package commented

import (
	"context"
	"strings"

	"cppsniff/internal/model/token"
	"cppsniff/internal/smells"

	"go.uber.org/zap"
)

// ScannerName identifies the commented code scanner in the registry
const ScannerName = "commented_code_scanner"

// Scanner groups runs of adjacent comment tokens into blocks and reports
// each block its classifier judges to be code. A block is opened by the
// first comment carrying non-decorative content and closed by the next
// non-comment token or by Finalize.
type Scanner struct {
	classifier     Classifier
	separatorRatio float64
	logger         *zap.Logger

	open   bool
	anchor token.Location
	lines  []string
	found  []smells.Smell
}

// NewScanner creates a scanner for a single file
func NewScanner(classifier Classifier, separatorRatio float64, logger *zap.Logger) *Scanner {
	return &Scanner{
		classifier:     classifier,
		separatorRatio: separatorRatio,
		logger:         logger,
	}
}

// NewScannerFactory returns a factory producing one scanner per file. The
// classifier is shared between scanners and must be reentrant.
func NewScannerFactory(classifier Classifier, opts Options, logger *zap.Logger) smells.ScannerFactory {
	return func() smells.Scanner {
		return NewScanner(classifier, opts.SeparatorRatio, logger)
	}
}

func (s *Scanner) Name() string {
	return ScannerName
}

func (s *Scanner) SmellType() smells.SmellType {
	return smells.SmellTypeCommentedCode
}

func (s *Scanner) Visit(ctx context.Context, tok token.Token) {
	if !tok.IsComment() {
		s.closeBlock(ctx)
		return
	}

	stripped := stripComment(tok.Text)
	kept := make([]string, 0, len(stripped))
	for _, line := range stripped {
		if !IsSeparator(line, s.separatorRatio) {
			kept = append(kept, line)
		}
	}

	if !s.open {
		// A purely decorative comment does not start a block
		if len(stripped) > 0 && len(kept) == 0 {
			return
		}
		s.open = true
		s.anchor = tok.Location
	}
	s.lines = append(s.lines, kept...)
}

func (s *Scanner) Finalize(ctx context.Context) []smells.Smell {
	s.closeBlock(ctx)
	found := s.found
	s.found = nil
	return found
}

func (s *Scanner) closeBlock(ctx context.Context) {
	if !s.open {
		return
	}

	text := Normalize(strings.Join(s.lines, " "))
	verdict := s.classifier.Classify(ctx, text)

	if ce := s.logger.Check(zap.DebugLevel, "Classified comment block"); ce != nil {
		ce.Write(
			zap.String("location", s.anchor.String()),
			zap.String("strategy", s.classifier.Name()),
			zap.Bool("is_code", verdict.IsCode),
			zap.Float64("ratio", verdict.Ratio),
			zap.Int("tree_size", verdict.TreeSize),
			zap.Int("tree_depth", verdict.TreeDepth))
	}

	if verdict.IsCode {
		s.found = append(s.found, smells.Smell{
			Type:        smells.SmellTypeCommentedCode,
			Description: smells.DescriptionCommentedCode,
			Location:    s.anchor,
			Text:        text,
		})
	}

	s.open = false
	s.anchor = token.Location{}
	s.lines = s.lines[:0]
}
