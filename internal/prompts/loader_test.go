package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"scoring.json", "score-resume", "SCORING RUBRIC"},
		{"scoring.json", "jd-context", "Job Description Context"},
		{"scoring.json", "job-match-instructions", "job_match_score"},
		{"scoring.json", "no-job-match-note", "No job description was provided"},
		{"scoring.json", "format-instructions", "overall_score"},
		{"chat.json", "framed-question", "User Question"},
		{"chat.json", "consultant-persona", "resume consultant"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("scoring.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, score {{.Score}}", map[string]string{
		"Name":  "Ada",
		"Score": "91",
	})
	assert.Equal(t, "Hello Ada, score 91", out)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	out := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", out)
}
