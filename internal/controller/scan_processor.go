package controller

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cppsniff/internal/config"
	"cppsniff/internal/model/token"
	"cppsniff/internal/service/tokenizer"
	"cppsniff/internal/smells"
	"cppsniff/internal/smells/commented"
	"cppsniff/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FindingStore persists scan results
type FindingStore interface {
	SaveReport(ctx context.Context, report *smells.Report) error
	ListFindings(ctx context.Context, runID string) ([]smells.Smell, error)
	LatestRunID(ctx context.Context) (string, error)
}

// ScanProcessor walks source trees and runs the registered smell scanners
// over every C/C++ file. Each file is scanned by its own scanner instances,
// so files can be processed in parallel without shared state.
type ScanProcessor struct {
	config     *config.Config
	tokenizers *tokenizer.Registry
	classifier commented.Classifier
	scanners   *smells.ScannerRegistry
	store      FindingStore
	logger     *zap.Logger
}

// NewScanProcessor creates a processor. store may be nil.
func NewScanProcessor(
	cfg *config.Config,
	tokenizers *tokenizer.Registry,
	classifier commented.Classifier,
	store FindingStore,
	logger *zap.Logger,
) *ScanProcessor {
	scanners := smells.NewScannerRegistry(logger)
	scanners.Register(commented.NewScannerFactory(classifier, cfg.Classifier, logger))

	return &ScanProcessor{
		config:     cfg,
		tokenizers: tokenizers,
		classifier: classifier,
		scanners:   scanners,
		store:      store,
		logger:     logger,
	}
}

// Strategy returns the name of the active classification strategy
func (sp *ScanProcessor) Strategy() string {
	return sp.classifier.Name()
}

// Classify runs the active classifier on a piece of comment text
func (sp *ScanProcessor) Classify(ctx context.Context, text string) commented.Verdict {
	return sp.classifier.Classify(ctx, text)
}

// Store returns the finding store, or nil when persistence is disabled
func (sp *ScanProcessor) Store() FindingStore {
	return sp.store
}

// ScanDirectory scans every matching file below root. Per-file failures are
// recorded in the report; only a missing root or cancellation is an error.
func (sp *ScanProcessor) ScanDirectory(ctx context.Context, root string) (*smells.Report, error) {
	sp.logger.Info("Scanning directory", zap.String("root", root), zap.String("strategy", sp.Strategy()))

	files, err := sp.collectFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	results := make([]smells.FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sp.config.App.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = sp.ScanFile(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan of %s interrupted: %w", root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan of %s interrupted: %w", root, err)
	}

	report := smells.NewReport(uuid.NewString(), root, sp.Strategy())
	report.Add(results...)

	sp.logger.Info("Completed directory scan",
		zap.String("root", root),
		zap.String("run_id", report.RunID),
		zap.Int("files", len(files)),
		zap.Int("smells", len(report.Smells())),
		zap.Int("errors", len(report.Errors())))

	if sp.store != nil {
		if err := sp.store.SaveReport(ctx, report); err != nil {
			sp.logger.Error("Failed to store scan results", zap.String("run_id", report.RunID), zap.Error(err))
		}
	}

	return report, nil
}

// ScanFile reads and scans a single file
func (sp *ScanProcessor) ScanFile(ctx context.Context, path string) smells.FileReport {
	source, err := os.ReadFile(path)
	if err != nil {
		sp.logger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
		return smells.FileReport{Path: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	return sp.ScanSource(ctx, path, source)
}

// ScanSource scans an in-memory file. path selects the tokenizer and
// stamps smell locations.
func (sp *ScanProcessor) ScanSource(ctx context.Context, path string, source []byte) smells.FileReport {
	tok, ok := sp.tokenizers.ForPath(path)
	if !ok {
		return smells.FileReport{Path: path, Err: fmt.Errorf("no tokenizer for %s", filepath.Ext(path))}
	}

	tokens, err := tok.Tokenize(ctx, path, source)
	if err != nil {
		sp.logger.Error("Failed to tokenize file", zap.String("path", path), zap.Error(err))
		return smells.FileReport{Path: path, Err: fmt.Errorf("tokenization failed: %w", err)}
	}

	found := smells.ScanStream(ctx, token.NewSliceStream(tokens), sp.scanners.NewAll())

	sp.logger.Debug("Scanned file",
		zap.String("path", path),
		zap.Int("tokens", len(tokens)),
		zap.Int("smells", len(found)))

	return smells.FileReport{Path: path, Smells: found}
}

// collectFiles lists the files below root that have a registered tokenizer
func (sp *ScanProcessor) collectFiles(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}

	var gitInfo *util.GitInfo
	if sp.config.Scan.OnlyModified {
		dir := root
		if !info.IsDir() {
			dir = filepath.Dir(root)
		}
		gitInfo, err = util.GetGitInfo(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read git state: %w", err)
		}
		if !gitInfo.IsGitRepo {
			sp.logger.Warn("only_modified is set but the scan root is not in a git repository, scanning everything",
				zap.String("root", root))
		}
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	excluded := make(map[string]bool, len(sp.config.Scan.ExcludeDirs))
	for _, dir := range sp.config.Scan.ExcludeDirs {
		excluded[dir] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			sp.logger.Error("Error accessing file", zap.String("path", path), zap.Error(err))
			return nil // Continue processing other files
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := sp.tokenizers.ForPath(path); !ok {
			return nil
		}
		if gitInfo != nil && !util.IsFileModified(gitInfo, path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
