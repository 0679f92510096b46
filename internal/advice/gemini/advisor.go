package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"cvmatch/internal/logger"
	"cvmatch/internal/resumeapi"
	"cvmatch/internal/utils"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Advisor generates tailoring advice from comparison results via Gemini.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	model := ""
	if g, ok := generator.(*Generator); ok {
		model = g.Model()
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

// Advise builds a prompt from the job description and the unmatched keywords
// of each result, then asks Gemini for tailoring advice. Failed results are
// skipped: there is nothing to advise on without a keyword comparison.
func (a *Advisor) Advise(ctx context.Context, jdText string, results []*resumeapi.ResumeMatch) (string, error) {
	prompt, err := buildPrompt(jdText, results)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini advice request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini advice response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return raw, nil
}

func buildPrompt(jdText string, results []*resumeapi.ResumeMatch) (string, error) {
	jdText = strings.TrimSpace(jdText)
	if jdText == "" {
		return "", fmt.Errorf("job description text is required for advice; run the comparison with return_text enabled")
	}

	var b strings.Builder
	for _, m := range results {
		if m.Failed() {
			continue
		}

		fmt.Fprintf(&b, "- %s", m.FileName)
		if m.MatchPercentage != nil {
			fmt.Fprintf(&b, " (match %.0f%%)", *m.MatchPercentage)
		}
		b.WriteString("\n")

		if len(m.UnmatchedKeywords) == 0 {
			b.WriteString("  missing keywords: none\n")
			continue
		}
		fmt.Fprintf(&b, "  missing keywords: %s\n", strings.Join(m.UnmatchedKeywords, ", "))
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no successful comparison results to advise on")
	}

	return fmt.Sprintf(promptTemplate, jdText, b.String()), nil
}
