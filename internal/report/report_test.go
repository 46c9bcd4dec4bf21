package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"cppsniff/internal/model/token"
	"cppsniff/internal/smells"

	"github.com/google/go-cmp/cmp"
)

func sampleReport() *smells.Report {
	root := filepath.Join("work", "project")
	r := smells.NewReport("run-1", root, "evidence_ratio")
	r.Add(
		smells.FileReport{
			Path: filepath.Join(root, "src", "main.cpp"),
			Smells: []smells.Smell{{
				Type:        smells.SmellTypeCommentedCode,
				Description: smells.DescriptionCommentedCode,
				Location:    token.Location{File: filepath.Join(root, "src", "main.cpp"), Line: 4, Column: 5},
				Text:        "return 0;",
			}},
		},
		smells.FileReport{Path: filepath.Join(root, "broken.c"), Err: errors.New("permission denied")},
		smells.FileReport{
			Path: filepath.Join(root, "a.c"),
			Smells: []smells.Smell{{
				Type:        smells.SmellTypeCommentedCode,
				Description: smells.DescriptionCommentedCode,
				Location:    token.Location{File: filepath.Join(root, "a.c"), Line: 1, Column: 1},
				Text:        "int y = 20",
			}},
		},
	)
	return r
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "Commented code: a.c, line 1, column 1\n" +
		"Commented code: src/main.cpp, line 4, column 5\n" +
		"Error: broken.c: permission denied\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Unexpected text output (-want +got):\n%s", diff)
	}
}

func TestWrite_GitHub(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatGitHub, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "::warning file=a.c,line=1,col=1::Commented code\n" +
		"::warning file=src/main.cpp,line=4,col=5::Commented code\n" +
		"::error file=broken.c::permission denied\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Unexpected github output (-want +got):\n%s", diff)
	}
}

func TestWrite_GitHubEscapesFileProperty(t *testing.T) {
	root := filepath.Join("work", "project")
	r := smells.NewReport("run-2", root, "evidence_ratio")
	r.Add(
		smells.FileReport{
			Path: filepath.Join(root, "a,b:c.cpp"),
			Smells: []smells.Smell{{
				Type:        smells.SmellTypeCommentedCode,
				Description: smells.DescriptionCommentedCode,
				Location:    token.Location{File: filepath.Join(root, "a,b:c.cpp"), Line: 2, Column: 3},
			}},
		},
		smells.FileReport{Path: filepath.Join(root, "100%.c"), Err: errors.New("bad\nread")},
	)

	var buf bytes.Buffer
	if err := Write(&buf, FormatGitHub, r); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "::warning file=a%2Cb%3Ac.cpp,line=2,col=3::Commented code\n" +
		"::error file=100%25.c::bad%0Aread\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Unexpected github output (-want +got):\n%s", diff)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got Document
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	want := Document{
		RunID:        "run-1",
		Root:         filepath.Join("work", "project"),
		Strategy:     "evidence_ratio",
		FilesScanned: 2,
		Smells: []Finding{
			{File: "a.c", Line: 1, Column: 1, Type: "commented_code", Description: "Commented code", Text: "int y = 20"},
			{File: "src/main.cpp", Line: 4, Column: 5, Type: "commented_code", Description: "Commented code", Text: "return 0;"},
		},
		Errors: []smells.FileError{{Path: "broken.c", Error: "permission denied"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unexpected json document (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptyReportHasEmptyLists(t *testing.T) {
	doc := Build(smells.NewReport("run-2", "root", "synthetic_parse"))
	if doc.Smells == nil || doc.Errors == nil {
		t.Fatalf("Expected empty, non-nil lists so JSON renders []")
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "JSON", "github"} {
		if _, err := ParseFormat(name); err != nil {
			t.Fatalf("Expected %q to be valid: %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("Expected error for an unknown format")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), sampleReport()); err == nil {
		t.Fatalf("Expected error for an unknown format")
	}
}
