package chat

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-insight/internal/scoring"
)

// listPreviewLimit caps how many items of each feedback list appear in the
// rendered context; the header still reports the full count.
const listPreviewLimit = 3

// renderContext flattens an assessment into the plain-text summary injected
// into every framed question. Rendered once per session, at creation.
func renderContext(a scoring.Assessment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Overall Score: %d/100\n", a.OverallScore)
	fmt.Fprintf(&sb, "ATS Score: %d/100\n", a.ATSScore)
	if a.JobMatchScore != nil {
		fmt.Fprintf(&sb, "Job Match Score: %d%%\n", *a.JobMatchScore)
	}

	sb.WriteString("\nSection Scores:\n")
	fmt.Fprintf(&sb, "  - Skills: %d/100\n", a.SectionScores.Skills)
	fmt.Fprintf(&sb, "  - Experience: %d/100\n", a.SectionScores.Experience)
	fmt.Fprintf(&sb, "  - Clarity: %d/100\n", a.SectionScores.Clarity)
	fmt.Fprintf(&sb, "  - Keywords: %d/100\n", a.SectionScores.Keywords)

	writeList(&sb, "Strengths", a.Strengths)
	writeList(&sb, "Weaknesses", a.Weaknesses)
	writeList(&sb, "Recommendations", a.Recommendations)

	return sb.String()
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s (%d):\n", label, len(items))

	shown := items
	if len(shown) > listPreviewLimit {
		shown = shown[:listPreviewLimit]
	}
	for _, item := range shown {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
}
