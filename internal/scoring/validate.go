package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-insight/internal/ats"
)

// Limits applied to model-supplied lists during normalization.
const (
	maxStrengths       = 5
	maxWeaknesses      = 5
	maxRecommendations = 7
	maxMissingKeywords = 10

	defaultOverallScore = 50
)

// Normalize repairs a raw model payload into a well-formed Assessment. Every
// rule is a local default or truncation; normalization never fails and never
// calls back into the model. The ATS fields always come from the supplied
// report, regardless of anything the model claimed.
func Normalize(raw map[string]any, report ats.Report) Assessment {
	overall := defaultOverallScore
	if n, ok := scoreValue(raw["overall_score"]); ok {
		overall = n
	}

	sections := SectionScores{
		Skills:     overall,
		Experience: overall,
		Clarity:    overall,
		Keywords:   overall,
	}
	if m, ok := raw["section_scores"].(map[string]any); ok {
		if n, ok := scoreValue(m["skills"]); ok {
			sections.Skills = n
		}
		if n, ok := scoreValue(m["experience"]); ok {
			sections.Experience = n
		}
		if n, ok := scoreValue(m["clarity"]); ok {
			sections.Clarity = n
		}
		if n, ok := scoreValue(m["keywords"]); ok {
			sections.Keywords = n
		}
	}

	result := Assessment{
		OverallScore:       overall,
		SectionScores:      sections,
		ATSScore:           report.Score,
		ATSIssues:          nonNil(report.Issues),
		ATSRecommendations: nonNil(report.Recommendations),
		Strengths:          stringList(raw["strengths"], maxStrengths),
		Weaknesses:         stringList(raw["weaknesses"], maxWeaknesses),
		Recommendations:    stringList(raw["recommendations"], maxRecommendations),
	}

	if n, ok := scoreValue(raw["job_match_score"]); ok {
		result.JobMatchScore = &n
	}
	if items, ok := raw["missing_keywords"].([]any); ok {
		keywords := stringifyList(items, maxMissingKeywords)
		result.MissingKeywords = &keywords
	}

	return result
}

// scoreValue extracts an integral score in [0, 100]. JSON numbers decode as
// float64, so integral floats are accepted; fractional values are not.
func scoreValue(v any) (int, bool) {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		n = int(x)
	default:
		return 0, false
	}
	if n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

// stringList coerces a model-supplied value into a bounded string slice.
// Non-list values become an empty list; non-string elements are stringified
// rather than dropped.
func stringList(v any, limit int) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	return stringifyList(items, limit)
}

func stringifyList(items []any, limit int) []string {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
