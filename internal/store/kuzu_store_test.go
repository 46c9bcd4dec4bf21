package store

import (
	"context"
	"testing"
	"time"

	"cppsniff/internal/model/token"
	"cppsniff/internal/smells"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := Open(MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func codeSmell(file string, line, column int, text string) smells.Smell {
	return smells.Smell{
		Type:        smells.SmellTypeCommentedCode,
		Description: smells.DescriptionCommentedCode,
		Location:    token.Location{File: file, Line: line, Column: column},
		Text:        text,
	}
}

func TestKuzuStore_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := smells.NewReport("run-1", "/src", "evidence_ratio")
	report.Add(
		smells.FileReport{Path: "/src/b.cpp", Smells: []smells.Smell{
			codeSmell("/src/b.cpp", 10, 3, "return 0;"),
			codeSmell("/src/b.cpp", 2, 1, "int y = 20"),
		}},
		smells.FileReport{Path: "/src/a.c", Smells: []smells.Smell{codeSmell("/src/a.c", 7, 5, "y = 30;")}},
	)

	if err := s.SaveReport(ctx, report); err != nil {
		t.Fatalf("Failed to save report: %v", err)
	}

	got, err := s.ListFindings(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to list findings: %v", err)
	}

	want := []smells.Smell{
		codeSmell("/src/a.c", 7, 5, "y = 30;"),
		codeSmell("/src/b.cpp", 2, 1, "int y = 20"),
		codeSmell("/src/b.cpp", 10, 3, "return 0;"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unexpected findings (-want +got):\n%s", diff)
	}
}

func TestKuzuStore_LatestRunID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("Failed to query empty store: %v", err)
	}
	if id != "" {
		t.Fatalf("Expected no run in an empty store, got %q", id)
	}

	older := smells.NewReport("run-old", "/src", "evidence_ratio")
	older.StartedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := smells.NewReport("run-new", "/src", "evidence_ratio")
	newer.StartedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, r := range []*smells.Report{newer, older} {
		if err := s.SaveReport(ctx, r); err != nil {
			t.Fatalf("Failed to save report: %v", err)
		}
	}

	id, err = s.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("Failed to query latest run: %v", err)
	}
	if id != "run-new" {
		t.Fatalf("Expected run-new, got %q", id)
	}
}

func TestKuzuStore_RunsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := smells.NewReport("run-1", "/src", "evidence_ratio")
	first.Add(smells.FileReport{Path: "/src/a.c", Smells: []smells.Smell{codeSmell("/src/a.c", 1, 1, "return 0;")}})
	second := smells.NewReport("run-2", "/src", "evidence_ratio")

	for _, r := range []*smells.Report{first, second} {
		if err := s.SaveReport(ctx, r); err != nil {
			t.Fatalf("Failed to save report: %v", err)
		}
	}

	got, err := s.ListFindings(ctx, "run-2")
	if err != nil {
		t.Fatalf("Failed to list findings: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Expected no findings for run-2, got %+v", got)
	}

	got, err = s.ListFindings(ctx, "missing")
	if err != nil {
		t.Fatalf("Failed to list findings of an unknown run: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Expected no findings for an unknown run, got %+v", got)
	}
}

func TestKuzuStore_DuplicateRunRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := smells.NewReport("run-1", "/src", "evidence_ratio")
	if err := s.SaveReport(ctx, report); err != nil {
		t.Fatalf("Failed to save report: %v", err)
	}
	if err := s.SaveReport(ctx, report); err == nil {
		t.Fatalf("Expected an error when saving the same run twice")
	}

	// The store stays usable after a rolled back transaction
	if _, err := s.LatestRunID(ctx); err != nil {
		t.Fatalf("Store unusable after rollback: %v", err)
	}
}

func TestKuzuStore_Closed(t *testing.T) {
	s, err := Open(MemoryPath, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	s.Close()

	if _, err := s.LatestRunID(context.Background()); err == nil {
		t.Fatalf("Expected an error from a closed store")
	}
}
