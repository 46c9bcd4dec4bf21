package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cppsniff/internal/smells"
	"cppsniff/internal/util"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatGitHub Format = "github"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatGitHub:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", name)
	}
}

// Finding is a smell with its file path relative to the scan root
type Finding struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Text        string `json:"text,omitempty"`
}

// Document is the serialized form of a scan report
type Document struct {
	RunID        string             `json:"run_id"`
	Root         string             `json:"root"`
	Strategy     string             `json:"strategy"`
	FilesScanned int                `json:"files_scanned"`
	Smells       []Finding          `json:"smells"`
	Errors       []smells.FileError `json:"errors"`
}

// Build converts a report into its serialized form
func Build(r *smells.Report) Document {
	doc := Document{
		RunID:        r.RunID,
		Root:         r.Root,
		Strategy:     r.Strategy,
		FilesScanned: r.FilesScanned(),
		Smells:       []Finding{},
		Errors:       []smells.FileError{},
	}

	for _, s := range r.Smells() {
		doc.Smells = append(doc.Smells, Finding{
			File:        util.ToRelativePath(r.Root, s.Location.File),
			Line:        s.Location.Line,
			Column:      s.Location.Column,
			Type:        string(s.Type),
			Description: s.Description,
			Text:        s.Text,
		})
	}
	for _, e := range r.Errors() {
		doc.Errors = append(doc.Errors, smells.FileError{
			Path:  util.ToRelativePath(r.Root, e.Path),
			Error: e.Error,
		})
	}

	return doc
}

// Write renders the report to w
func Write(w io.Writer, format Format, r *smells.Report) error {
	doc := Build(r)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatGitHub:
		for _, f := range doc.Smells {
			if _, err := fmt.Fprintf(w, "::warning file=%s,line=%d,col=%d::%s\n", escapeProperty(f.File), f.Line, f.Column, escapeAnnotation(f.Description)); err != nil {
				return err
			}
		}
		for _, e := range doc.Errors {
			if _, err := fmt.Fprintf(w, "::error file=%s::%s\n", escapeProperty(e.Path), escapeAnnotation(e.Error)); err != nil {
				return err
			}
		}
		return nil
	case FormatText:
		for _, f := range doc.Smells {
			if _, err := fmt.Fprintf(w, "%s: %s, line %d, column %d\n", f.Description, f.File, f.Line, f.Column); err != nil {
				return err
			}
		}
		for _, e := range doc.Errors {
			if _, err := fmt.Fprintf(w, "Error: %s: %s\n", e.Path, e.Error); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

var (
	annotationEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper   = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// escapeAnnotation encodes the characters GitHub workflow commands treat specially
func escapeAnnotation(s string) string {
	return annotationEscaper.Replace(s)
}

// escapeProperty encodes a command property value, where ':' and ','
// would otherwise end the value
func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
