package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Summarizer asks Gemini for a recruiter note about a display model.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewSummarizer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Summarizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// analysisPayload is the part of a display model sent to the model. Random skill
// percentages stay out of it.
type analysisPayload struct {
	Candidate    string                       `json:"candidate"`
	Domain       string                       `json:"domain,omitempty"`
	Confidence   string                       `json:"confidence"`
	Primary      *render.RoleView             `json:"primary"`
	Alternatives []render.RoleView            `json:"alternatives"`
	Explanation  *render.ExplanationView      `json:"explanation,omitempty"`
	Features     []analysis.AggregatedFeature `json:"features"`
}

func (s *Summarizer) Summarize(ctx context.Context, m render.DisplayModel) (string, error) {
	if m.Empty || m.Primary == nil {
		return "", errors.New("analysis has no matching roles to summarize")
	}

	payload, err := json.MarshalIndent(analysisPayload{
		Candidate:    m.CandidateName,
		Domain:       m.Domain,
		Confidence:   m.Confidence,
		Primary:      m.Primary,
		Alternatives: m.Alternatives,
		Explanation:  m.Explanation,
		Features:     m.Features,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis payload: %w", err)
	}

	prompt := buildPrompt(string(payload))

	s.logger.Debug("gemini generate content request",
		zap.String("candidate", m.CandidateName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("gemini generate content response",
		zap.String("candidate", m.CandidateName),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	summary := cleanResponse(raw)
	if summary == "" {
		return "", errors.New("gemini returned an empty summary")
	}

	return summary, nil
}

func buildPrompt(analysisJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Analysis:\n{{ANALYSIS_JSON}}\n\nRecruiter note:"
	}
	return strings.ReplaceAll(template, "{{ANALYSIS_JSON}}", analysisJSON)
}

// cleanResponse drops markdown fences the model sometimes wraps plain text in.
func cleanResponse(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
