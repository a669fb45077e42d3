package scoring

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/ats"
	"github.com/jonathan/resume-insight/internal/llm"
	"github.com/jonathan/resume-insight/internal/logger"
	"github.com/jonathan/resume-insight/internal/schemas"
)

// Scorer orchestrates a full resume assessment: deterministic ATS analysis,
// one model call, and normalization of whatever comes back. A parse failure
// degrades to the heuristic fallback; only transport failures surface as
// errors.
type Scorer struct {
	client llm.Client
	log    *zap.Logger
}

// NewScorer creates a Scorer backed by the given model client.
func NewScorer(client llm.Client, log *zap.Logger) *Scorer {
	return &Scorer{
		client: client,
		log:    log,
	}
}

// Score assesses resumeText, optionally against a job description. The ATS
// fields of the result always come from the local rule engine, never from
// the model.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDescription string) (Assessment, error) {
	report := ats.Analyze(resumeText)
	s.log.Info("ats analysis complete",
		zap.Int("ats_score", report.Score),
		zap.Int("issue_count", len(report.Issues)))

	prompt := buildScoringPrompt(resumeText, jobDescription)

	content, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return Assessment{}, &GenerateError{Message: "model call failed", Cause: err}
	}

	raw, parsed := parsePayload(content)
	if !parsed {
		s.log.Warn("model returned unparsable content, falling back to heuristics",
			zap.String("content", logger.TruncateForLog(content, 200)))
		result := Fallback(resumeText)
		result.ATSScore = report.Score
		result.ATSIssues = nonNil(report.Issues)
		result.ATSRecommendations = nonNil(report.Recommendations)
		return result, nil
	}

	// The schema check observes drift in raw model output; normalization
	// below repairs it, so a failure here is informational only.
	if err := schemas.CheckAssessment(llm.CleanJSONBlock(content)); err != nil {
		s.log.Debug("model payload deviates from schema", zap.Error(err))
	}

	result := Normalize(raw, report)
	if jobDescription == "" {
		result.JobMatchScore = nil
		result.MissingKeywords = nil
	}

	s.log.Info("assessment complete",
		zap.Int("overall_score", result.OverallScore),
		zap.Bool("has_job_match", result.JobMatchScore != nil))

	return result, nil
}

// parsePayload attempts to decode model output as a JSON object. The boolean
// distinguishes the two outcomes explicitly; there is no error to propagate
// because unparsable output is an expected, recoverable state.
func parsePayload(content string) (map[string]any, bool) {
	clean := llm.CleanJSONBlock(content)

	var raw map[string]any
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
