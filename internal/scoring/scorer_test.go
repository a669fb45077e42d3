package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/llm"
)

// mockClient implements llm.Client with pluggable behavior per test.
type mockClient struct {
	generateJSONFunc func(ctx context.Context, prompt string) (string, error)
	converseFunc     func(ctx context.Context, history []llm.Message, input string) (string, error)
}

func (m *mockClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return m.generateJSONFunc(ctx, prompt)
}

func (m *mockClient) Converse(ctx context.Context, history []llm.Message, input string) (string, error) {
	return m.converseFunc(ctx, history, input)
}

func (m *mockClient) Close() error { return nil }

const validPayload = `{
  "overall_score": 82,
  "section_scores": {"skills": 85, "experience": 78, "clarity": 84, "keywords": 80},
  "strengths": ["Clear progression"],
  "weaknesses": ["No metrics"],
  "recommendations": ["Quantify impact"]
}`

func TestScorer_Score(t *testing.T) {
	var seenPrompt string
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return validPayload, nil
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	result, err := scorer.Score(context.Background(), "Experienced engineer with work history in Go.", "")
	require.NoError(t, err)

	assert.Equal(t, 82, result.OverallScore)
	assert.Equal(t, 78, result.SectionScores.Experience)
	assert.Equal(t, []string{"Clear progression"}, result.Strengths)
	assert.Contains(t, seenPrompt, "Experienced engineer with work history in Go.")
	assert.Contains(t, seenPrompt, "No job description was provided")
}

func TestScorer_ScoreWithJobDescription(t *testing.T) {
	payload := `{
	  "overall_score": 75,
	  "section_scores": {"skills": 70, "experience": 75, "clarity": 80, "keywords": 72},
	  "job_match_score": 68,
	  "missing_keywords": ["Kubernetes"],
	  "strengths": [], "weaknesses": [], "recommendations": []
	}`
	var seenPrompt string
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return payload, nil
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	result, err := scorer.Score(context.Background(), "resume text", "Senior Go engineer, Kubernetes required")
	require.NoError(t, err)

	assert.Contains(t, seenPrompt, "Senior Go engineer, Kubernetes required")
	assert.Contains(t, seenPrompt, "JOB MATCH ANALYSIS")
	require.NotNil(t, result.JobMatchScore)
	assert.Equal(t, 68, *result.JobMatchScore)
	require.NotNil(t, result.MissingKeywords)
	assert.Equal(t, []string{"Kubernetes"}, *result.MissingKeywords)
}

func TestScorer_StripsJobMatchWithoutJobDescription(t *testing.T) {
	// The model sometimes hallucinates match fields it was told to omit.
	payload := `{
	  "overall_score": 75,
	  "section_scores": {"skills": 70, "experience": 75, "clarity": 80, "keywords": 72},
	  "job_match_score": 90,
	  "missing_keywords": ["anything"],
	  "strengths": [], "weaknesses": [], "recommendations": []
	}`
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return payload, nil
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	result, err := scorer.Score(context.Background(), "resume text", "")
	require.NoError(t, err)

	assert.Nil(t, result.JobMatchScore)
	assert.Nil(t, result.MissingKeywords)
}

func TestScorer_FencedJSONAccepted(t *testing.T) {
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return "```json\n" + validPayload + "\n```", nil
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	result, err := scorer.Score(context.Background(), "resume text", "")
	require.NoError(t, err)
	assert.Equal(t, 82, result.OverallScore)
}

func TestScorer_UnparsableOutputFallsBack(t *testing.T) {
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return "I think this resume is quite good overall!", nil
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	text := strings.Repeat("accomplished engineer delivering measurable results ", 50) + "since 2015"
	result, err := scorer.Score(context.Background(), text, "")
	require.NoError(t, err, "parse failures degrade, they do not error")

	assert.Equal(t, 80, result.OverallScore, "base 60 plus length and digit bonuses")
	assert.Equal(t, 80, result.SectionScores.Keywords)
	assert.Equal(t, []string{"Resume content extracted successfully"}, result.Strengths)
}

func TestScorer_TransportErrorPropagates(t *testing.T) {
	cause := errors.New("connection reset")
	client := &mockClient{
		generateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return "", cause
		},
	}
	scorer := NewScorer(client, zap.NewNop())

	_, err := scorer.Score(context.Background(), "resume text", "")
	require.Error(t, err)

	var genErr *GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, cause)
}
