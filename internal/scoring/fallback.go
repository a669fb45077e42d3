package scoring

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-insight/internal/ats"
)

// Fallback builds an assessment from local heuristics when the model's output
// cannot be parsed. Scores start from a neutral base and earn small bumps for
// substance signals; every section inherits the base score.
func Fallback(text string) Assessment {
	base := 60
	if len(strings.Fields(text)) > 200 {
		base += 10
	}
	if strings.ContainsFunc(text, unicode.IsDigit) {
		base += 10
	}

	report := safeAnalyze(text)

	return Assessment{
		OverallScore: base,
		SectionScores: SectionScores{
			Skills:     base,
			Experience: base,
			Clarity:    base,
			Keywords:   base,
		},
		ATSScore:           report.Score,
		ATSIssues:          nonNil(report.Issues),
		ATSRecommendations: nonNil(report.Recommendations),
		Strengths:          []string{"Resume content extracted successfully"},
		Weaknesses:         []string{"Detailed analysis unavailable - please try again"},
		Recommendations: []string{
			"Ensure resume includes clear section headers",
			"Add quantifiable achievements with metrics",
			"Use industry-standard terminology",
		},
	}
}

// safeAnalyze runs the ATS rule engine, substituting a neutral report if the
// engine panics. The fallback path must never fail.
func safeAnalyze(text string) (report ats.Report) {
	defer func() {
		if r := recover(); r != nil {
			report = ats.Report{
				Score:           70,
				Issues:          []string{},
				Recommendations: []string{},
			}
		}
	}()
	return ats.Analyze(text)
}
