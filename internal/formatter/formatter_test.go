package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
	tu "github.com/desertthunder/tubecli/internal/testing"
)

func exportVideo() *api.Video {
	return &api.Video{
		VideoID:     "v1",
		Title:       "Intro to Go",
		Description: "A gentle start",
		Category:    "education",
		Uploader:    "gopher",
		Views:       42,
		Likes:       []string{"u1", "u2"},
		Dislikes:    []string{"u3"},
		Comments: []api.Comment{
			{CommentID: "c1", UserID: "u1", Username: "gopher", Text: "first", Timestamp: "2026-01-02"},
			{CommentID: "c2", UserID: "u2", Username: "ferris", Text: "second, with, commas"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(exportVideo())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Author" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[2][2] != "second, with, commas" {
		t.Errorf("expected commas preserved, got %q", records[2][2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("With Description", func(t *testing.T) {
		data, err := ExportToMarkdown(exportVideo(), "")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		md := string(data)
		for _, want := range []string{"# Intro to Go", "**Channel**: gopher", "## Comments (2)", "**ferris**: second"} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})

	t.Run("With Thumbnail Reference", func(t *testing.T) {
		data, err := ExportToMarkdown(exportVideo(), "thumbnail.jpg")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(string(data), "![Thumbnail](thumbnail.jpg)") {
			t.Error("expected thumbnail image reference")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(exportVideo())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Video: Intro to Go") || !strings.Contains(text, "1. gopher: first") {
		t.Errorf("unexpected text export:\n%s", text)
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(exportVideo())
	if err != nil {
		t.Fatalf("metadata failed: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"videoId": "v1"`) {
		t.Errorf("metadata missing video id:\n%s", out)
	}
	if strings.Contains(out, `"comments"`) && strings.Contains(out, "first") {
		t.Error("metadata should not embed the comment bodies")
	}
}

func TestWriteCSVExport(t *testing.T) {
	dir := t.TempDir()

	res, err := WriteCSVExport(exportVideo(), filepath.Join(dir, "v1"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	tu.AssertFileExists(t, res.CommentsFile)
	tu.AssertFileExists(t, res.MetadataFile)
	if !strings.HasSuffix(res.CommentsFile, "_comments.csv") {
		t.Errorf("unexpected comments filename: %s", res.CommentsFile)
	}
}

func TestWriteMarkdownExport(t *testing.T) {
	dir := t.TempDir()

	video := exportVideo()
	video.ThumbnailURL = "" // no network fetch in tests
	res, err := WriteMarkdownExport(video, filepath.Join(dir, "v1"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if len(res.Files) != 1 {
		t.Fatalf("expected one file, got %v", res.Files)
	}
	content := tu.MustReadFile(t, res.Files[0])
	if !strings.Contains(content, "# Intro to Go") {
		t.Error("README missing title")
	}
}

func TestWriteTextExport(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTextExport(exportVideo(), filepath.Join(dir, "v1.txt"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	tu.AssertFileExists(t, path)
}

func TestWriteExportManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	if err := WriteExportManifest(map[string]int{"total": 3}, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	content := tu.MustReadFile(t, path)
	if !strings.Contains(content, `"total": 3`) {
		t.Errorf("unexpected manifest: %s", content)
	}
}
