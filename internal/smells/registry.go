package smells

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ScannerFactory creates a fresh scanner for one file
type ScannerFactory func() Scanner

// ScannerRegistry manages all smell scanners
type ScannerRegistry struct {
	factories map[string]ScannerFactory
	logger    *zap.Logger
	mu        sync.RWMutex
}

// NewScannerRegistry creates a new scanner registry
func NewScannerRegistry(logger *zap.Logger) *ScannerRegistry {
	return &ScannerRegistry{
		factories: make(map[string]ScannerFactory),
		logger:    logger,
	}
}

// Register adds a scanner factory to the registry
func (r *ScannerRegistry) Register(factory ScannerFactory) {
	probe := factory()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[probe.Name()] = factory
	r.logger.Info("Registered smell scanner",
		zap.String("scanner", probe.Name()),
		zap.String("smell_type", string(probe.SmellType())))
}

// New creates a fresh instance of the named scanner
func (r *ScannerRegistry) New(name string) (Scanner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("scanner not found: %s", name)
	}
	return factory(), nil
}

// NewAll creates one fresh instance of every registered scanner, ordered by name
func (r *ScannerRegistry) NewAll() []Scanner {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	scanners := make([]Scanner, 0, len(names))
	for _, name := range names {
		scanners = append(scanners, r.factories[name]())
	}
	return scanners
}

// Names returns the registered scanner names, sorted
func (r *ScannerRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortByLocation(found []Smell) {
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Location.Before(found[j].Location)
	})
}
