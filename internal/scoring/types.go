// Package scoring produces resume assessments. It combines the deterministic
// ATS rule engine with model-generated qualitative feedback, normalizing
// whatever the model returns into a guaranteed-shape Assessment.
package scoring

// SectionScores holds the per-dimension scores of an assessment. Every field
// is always populated; missing or invalid model values inherit the overall
// score.
type SectionScores struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Clarity    int `json:"clarity"`
	Keywords   int `json:"keywords"`
}

// Assessment is the canonical result of scoring a resume. JobMatchScore and
// MissingKeywords are pointers so that an omitted field and an empty value
// serialize differently: both are nil (and absent from JSON) unless a job
// description was supplied and the model returned usable values.
type Assessment struct {
	OverallScore       int           `json:"overall_score"`
	SectionScores      SectionScores `json:"section_scores"`
	JobMatchScore      *int          `json:"job_match_score,omitempty"`
	MissingKeywords    *[]string     `json:"missing_keywords,omitempty"`
	ATSScore           int           `json:"ats_score"`
	ATSIssues          []string      `json:"ats_issues"`
	ATSRecommendations []string      `json:"ats_recommendations"`
	Strengths          []string      `json:"strengths"`
	Weaknesses         []string      `json:"weaknesses"`
	Recommendations    []string      `json:"recommendations"`
}
