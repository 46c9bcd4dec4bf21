package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cppsniff/internal/config"
	"cppsniff/internal/controller"
	"cppsniff/internal/report"
	"cppsniff/internal/service/tokenizer"
	"cppsniff/internal/smells/commented"
	"cppsniff/internal/store"

	"go.uber.org/zap"
)

// Exit statuses
const (
	exitClean  = 0
	exitSmells = 1
	exitError  = 2
)

type options struct {
	configPath   string
	format       string
	strategy     string
	workers      int
	storePath    string
	logLevel     string
	onlyModified bool
	serve        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	flag.StringVar(&opts.format, "format", "", "Output format: text, json or github")
	flag.StringVar(&opts.strategy, "strategy", "", "Classifier strategy: evidence_ratio or synthetic_parse")
	flag.IntVar(&opts.workers, "workers", 0, "Number of files scanned in parallel")
	flag.StringVar(&opts.storePath, "store", "", "Kuzu database path for scan history (:memory: for in-memory)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.BoolVar(&opts.onlyModified, "only-modified", false, "Only scan files changed against git HEAD")
	flag.BoolVar(&opts.serve, "serve", false, "Start the HTTP API and MCP server instead of scanning")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [dir]\n\nReports comments that contain commented-out C/C++ code.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, opts, flag.Args()))
}

func run(ctx context.Context, opts options, args []string) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return exitError
	}

	logger, err := newLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	logger.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", zap.Error(err))
		return exitError
	}
	defer app.Close()

	if opts.serve {
		if err := app.Serve(ctx); err != nil {
			logger.Error("Server failed", zap.Error(err))
			return exitError
		}
		return exitClean
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if len(args) > 1 {
		logger.Warn("Only the first directory is scanned", zap.Strings("ignored", args[1:]))
	}

	rep, err := app.processor.ScanDirectory(ctx, root)
	if err != nil {
		logger.Error("Scan failed", zap.String("root", root), zap.Error(err))
		return exitError
	}

	if err := report.Write(os.Stdout, report.Format(cfg.App.Format), rep); err != nil {
		logger.Error("Failed to write report", zap.Error(err))
		return exitError
	}

	switch {
	case len(rep.Errors()) > 0:
		return exitError
	case len(rep.Smells()) > 0:
		return exitSmells
	default:
		return exitClean
	}
}

// loadConfig reads the configuration file and applies flag overrides
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.format != "" {
		format, err := report.ParseFormat(opts.format)
		if err != nil {
			return nil, err
		}
		cfg.App.Format = string(format)
	}
	if opts.strategy != "" {
		cfg.Classifier.Strategy = commented.Strategy(opts.strategy)
	}
	if opts.workers != 0 {
		cfg.App.Workers = opts.workers
	}
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	if opts.onlyModified {
		cfg.Scan.OnlyModified = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfgZap := zap.NewProductionConfig()
	if level != "" {
		atomicLevel, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfgZap.Level = atomicLevel
	}
	// stdout carries the report
	cfgZap.OutputPaths = []string{"stderr"}
	return cfgZap.Build()
}

// application owns the long-lived components of one process
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	tokenizer *tokenizer.CppTokenizer
	parser    *tokenizer.CppFragmentParser
	store     *store.KuzuStore
	processor *controller.ScanProcessor
}

func newApplication(cfg *config.Config, logger *zap.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	cppTokenizer, err := tokenizer.NewCppTokenizer(cfg.App.Workers)
	if err != nil {
		return nil, err
	}
	app.tokenizer = cppTokenizer

	registry := tokenizer.NewRegistry()
	registry.Register(cppTokenizer, cfg.Scan.Extensions)

	var parser *tokenizer.CppFragmentParser
	if cfg.Classifier.Strategy == commented.StrategySyntheticParse {
		parser, err = tokenizer.NewCppFragmentParser(cfg.App.Workers)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.parser = parser
	}

	var classifier commented.Classifier
	if parser != nil {
		classifier, err = commented.NewClassifier(cfg.Classifier, parser)
	} else {
		classifier, err = commented.NewClassifier(cfg.Classifier, nil)
	}
	if err != nil {
		app.Close()
		return nil, err
	}

	var findingStore controller.FindingStore
	if cfg.Store.Enabled() {
		app.store, err = store.Open(cfg.Store.Path, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		findingStore = app.store
	}

	app.processor = controller.NewScanProcessor(cfg, registry, classifier, findingStore, logger)
	return app, nil
}

func (app *application) Close() {
	if app.store != nil {
		app.store.Close()
	}
	if app.parser != nil {
		app.parser.Close()
	}
	if app.tokenizer != nil {
		app.tokenizer.Close()
	}
}
