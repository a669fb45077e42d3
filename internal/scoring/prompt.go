package scoring

import "github.com/jonathan/resume-insight/internal/prompts"

// buildScoringPrompt assembles the scoring prompt. Job-match instructions are
// included only when a job description was supplied; otherwise the model is
// told to omit the match fields entirely.
func buildScoringPrompt(resumeText, jobDescription string) string {
	jobContext := ""
	matchInstructions := prompts.MustGet("scoring.json", "no-job-match-note")

	if jobDescription != "" {
		jobContext = prompts.Format(prompts.MustGet("scoring.json", "jd-context"), map[string]string{
			"JobDescription": jobDescription,
		})
		matchInstructions = prompts.MustGet("scoring.json", "job-match-instructions")
	}

	return prompts.Format(prompts.MustGet("scoring.json", "score-resume"), map[string]string{
		"JobContext":         jobContext,
		"MatchInstructions":  matchInstructions,
		"FormatInstructions": prompts.MustGet("scoring.json", "format-instructions"),
		"ResumeText":         resumeText,
	})
}
