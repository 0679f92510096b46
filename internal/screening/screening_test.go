package screening

import (
	"testing"

	"cvmatch/internal/resumeapi"
)

func file(name string, size int64) *resumeapi.ResumeFile {
	return &resumeapi.ResumeFile{Name: name, Size: size}
}

func TestExtensionFilter(t *testing.T) {
	t.Parallel()

	files := []*resumeapi.ResumeFile{
		file("r1.pdf", 10),
		file("r2.DOCX", 10),
		file("notes.txt", 10),
		file("photo.png", 10),
		file("archive.zip", 10),
	}

	kept, dropped, err := NewExtension().Apply(files)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(kept) != 3 {
		t.Fatalf("expected 3 kept files, got %d", len(kept))
	}
	if len(dropped) != 2 || dropped[0] != "photo.png" || dropped[1] != "archive.zip" {
		t.Fatalf("unexpected dropped list: %v", dropped)
	}
}

func TestMaxSizeFilter(t *testing.T) {
	t.Parallel()

	files := []*resumeapi.ResumeFile{
		file("small.pdf", 100),
		file("exact.pdf", MaxFileBytes),
		file("huge.pdf", MaxFileBytes+1),
	}

	kept, dropped, err := NewMaxSize(MaxFileBytes).Apply(files)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(kept) != 2 {
		t.Fatalf("expected 2 kept files, got %d", len(kept))
	}
	if len(dropped) != 1 || dropped[0] != "huge.pdf" {
		t.Fatalf("unexpected dropped list: %v", dropped)
	}
}

func TestDuplicateNameFilter(t *testing.T) {
	t.Parallel()

	files := []*resumeapi.ResumeFile{
		file("r1.pdf", 1),
		file("r2.pdf", 2),
		file("r1.pdf", 3),
	}

	kept, dropped, err := NewDuplicateName().Apply(files)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(kept) != 2 {
		t.Fatalf("expected 2 kept files, got %d", len(kept))
	}
	// The first occurrence wins.
	if kept[0].Size != 1 {
		t.Fatalf("expected the first duplicate to survive, got size %d", kept[0].Size)
	}
	if len(dropped) != 1 || dropped[0] != "r1.pdf" {
		t.Fatalf("unexpected dropped list: %v", dropped)
	}
}

func TestRunAppliesAllSteps(t *testing.T) {
	t.Parallel()

	files := []*resumeapi.ResumeFile{
		file("r1.pdf", 10),
		file("r1.pdf", 10),
		file("huge.docx", MaxFileBytes+1),
		file("image.png", 10),
	}

	kept, err := Run(files, DefaultSteps(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(kept) != 1 || kept[0].Name != "r1.pdf" {
		t.Fatalf("unexpected survivors: %+v", kept)
	}
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		expect bool
	}{
		{"resume.pdf", true},
		{"resume.docx", true},
		{"resume.txt", true},
		{"RESUME.PDF", true},
		{"resume.doc", false},
		{"resume", false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.name); got != tt.expect {
			t.Fatalf("Allowed(%q) = %v, expected %v", tt.name, got, tt.expect)
		}
	}
}
