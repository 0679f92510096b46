// Package screening drops unsuitable resume files before a comparison is
// submitted, mirroring the limits the backend enforces server-side.
package screening

import (
	"fmt"

	"cvmatch/internal/resumeapi"

	"go.uber.org/zap"
)

// Filter represents a single screening step applied to candidate files.
type Filter interface {
	Name() string
	Apply(files []*resumeapi.ResumeFile) (kept []*resumeapi.ResumeFile, dropped []string, err error)
}

// Step describes the result of executing a screening step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the files that
// survived every step.
func Run(files []*resumeapi.ResumeFile, steps []Filter, logger *zap.Logger) ([]*resumeapi.ResumeFile, error) {
	for _, step := range steps {
		initial := len(files)

		kept, dropped, err := step.Apply(files)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		info := Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}
		if logger != nil && info.Dropped > 0 {
			logger.Info("screening step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
				zap.Strings("dropped_files", dropped),
			)
		}

		files = kept
	}

	return files, nil
}

// DefaultSteps returns the standard screening pipeline.
func DefaultSteps() []Filter {
	return []Filter{
		NewExtension(),
		NewMaxSize(MaxFileBytes),
		NewDuplicateName(),
	}
}
