package screening

import (
	"path/filepath"
	"strings"

	"cvmatch/internal/resumeapi"
)

// MaxFileBytes matches the backend's per-file upload cap.
const MaxFileBytes = 5 * 1024 * 1024

// AllowedExtensions lists the document formats the backend can extract text
// from.
var AllowedExtensions = []string{".pdf", ".docx", ".txt"}

// Allowed reports whether the file name carries a supported extension.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

type extensionFilter struct{}

// NewExtension creates a filter that removes files with unsupported extensions.
func NewExtension() Filter {
	return &extensionFilter{}
}

func (f *extensionFilter) Name() string { return "extension" }

func (f *extensionFilter) Apply(files []*resumeapi.ResumeFile) ([]*resumeapi.ResumeFile, []string, error) {
	kept := make([]*resumeapi.ResumeFile, 0, len(files))
	var dropped []string

	for _, file := range files {
		if !Allowed(file.Name) {
			dropped = append(dropped, file.Name)
			continue
		}
		kept = append(kept, file)
	}

	return kept, dropped, nil
}

type maxSizeFilter struct {
	limit int64
}

// NewMaxSize creates a filter that removes files above the byte limit.
func NewMaxSize(limit int64) Filter {
	return &maxSizeFilter{limit: limit}
}

func (f *maxSizeFilter) Name() string { return "max_size" }

func (f *maxSizeFilter) Apply(files []*resumeapi.ResumeFile) ([]*resumeapi.ResumeFile, []string, error) {
	kept := make([]*resumeapi.ResumeFile, 0, len(files))
	var dropped []string

	for _, file := range files {
		if file.Size > f.limit {
			dropped = append(dropped, file.Name)
			continue
		}
		kept = append(kept, file)
	}

	return kept, dropped, nil
}

type duplicateNameFilter struct{}

// NewDuplicateName creates a filter that keeps only the first file for each
// name. The backend keys its results by file name, so duplicates would shadow
// each other in the report.
func NewDuplicateName() Filter {
	return &duplicateNameFilter{}
}

func (f *duplicateNameFilter) Name() string { return "duplicate_name" }

func (f *duplicateNameFilter) Apply(files []*resumeapi.ResumeFile) ([]*resumeapi.ResumeFile, []string, error) {
	seen := make(map[string]bool, len(files))
	kept := make([]*resumeapi.ResumeFile, 0, len(files))
	var dropped []string

	for _, file := range files {
		if seen[file.Name] {
			dropped = append(dropped, file.Name)
			continue
		}
		seen[file.Name] = true
		kept = append(kept, file)
	}

	return kept, dropped, nil
}
