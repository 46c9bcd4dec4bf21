package smells

import (
	"sort"
	"time"

	"cppsniff/internal/model/token"
)

// SmellType represents the type of code smell
type SmellType string

const (
	SmellTypeCommentedCode SmellType = "commented_code"
)

// DescriptionCommentedCode is the description attached to commented-code smells
const DescriptionCommentedCode = "Commented code"

// Smell records one finding. It is built from a fully classified block only.
type Smell struct {
	Type        SmellType      `json:"type"`
	Description string         `json:"description"`
	Location    token.Location `json:"location"`
	Text        string         `json:"text,omitempty"` // Normalized block text, for diagnostics
}

// FileReport holds the outcome of scanning a single file
type FileReport struct {
	Path   string  `json:"path"`
	Smells []Smell `json:"smells"`
	Err    error   `json:"-"`
}

// FileError describes a file that could not be scanned
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report merges file reports from one scan
type Report struct {
	RunID     string       `json:"run_id"`
	Root      string       `json:"root"`
	Strategy  string       `json:"strategy"`
	StartedAt time.Time    `json:"started_at"`
	Files     []FileReport `json:"-"`
}

// NewReport creates an empty report
func NewReport(runID, root, strategy string) *Report {
	return &Report{
		RunID:     runID,
		Root:      root,
		Strategy:  strategy,
		StartedAt: time.Now(),
	}
}

// Add merges per-file results. Files are kept sorted by path so the merge
// is deterministic no matter which worker finished first.
func (r *Report) Add(files ...FileReport) {
	r.Files = append(r.Files, files...)
	sort.SliceStable(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
}

// Smells returns every smell, ordered by file then by source position
func (r *Report) Smells() []Smell {
	var all []Smell
	for _, f := range r.Files {
		all = append(all, f.Smells...)
	}
	return all
}

// Errors lists the files that failed to scan
func (r *Report) Errors() []FileError {
	var errs []FileError
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, FileError{Path: f.Path, Error: f.Err.Error()})
		}
	}
	return errs
}

// FilesScanned counts files that were scanned without error
func (r *Report) FilesScanned() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}
