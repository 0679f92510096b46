package advice

import (
	"context"

	"cvmatch/internal/resumeapi"
)

// Advisor turns a finished comparison into tailoring advice for the
// candidate.
type Advisor interface {
	Advise(ctx context.Context, jdText string, results []*resumeapi.ResumeMatch) (string, error)
}
