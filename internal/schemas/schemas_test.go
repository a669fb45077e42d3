package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conformingPayload = `{
  "overall_score": 86,
  "section_scores": {"skills": 90, "experience": 80, "clarity": 85, "keywords": 88},
  "job_match_score": 75,
  "missing_keywords": ["Kubernetes", "Terraform"],
  "strengths": ["Strong technical skills"],
  "weaknesses": ["Limited leadership examples"],
  "recommendations": ["Add metrics to describe impact"]
}`

func TestCheckAssessment_Conforming(t *testing.T) {
	assert.NoError(t, CheckAssessment(conformingPayload))
}

func TestCheckAssessment_WrongTypes(t *testing.T) {
	payload := `{
	  "overall_score": "high",
	  "section_scores": {"skills": 90, "experience": 80, "clarity": 85, "keywords": 88},
	  "strengths": [],
	  "weaknesses": [],
	  "recommendations": []
	}`

	err := CheckAssessment(payload)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "overall_score", validationErr.Errors[0].Field)
}

func TestCheckAssessment_MissingRequired(t *testing.T) {
	err := CheckAssessment(`{"overall_score": 50}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCheckAssessment_NotJSON(t *testing.T) {
	err := CheckAssessment("this is not json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestCheckAssessment_OutOfRange(t *testing.T) {
	payload := `{
	  "overall_score": 150,
	  "section_scores": {"skills": 90, "experience": 80, "clarity": 85, "keywords": 88},
	  "strengths": [],
	  "weaknesses": [],
	  "recommendations": []
	}`

	err := CheckAssessment(payload)
	require.Error(t, err)
}
