// Package ats analyzes resume text for applicant-tracking-system
// compatibility issues. Detection is rule-based: every check either deducts
// a fixed number of points and records an issue/recommendation pair, or adds
// a bonus with no issue entry.
package ats

import (
	"fmt"
	"regexp"
	"strings"
)

// standardSections are section headers ATS parsers commonly look for.
var standardSections = []string{
	"experience", "work experience", "employment", "professional experience",
	"education", "academic background",
	"skills", "technical skills", "core competencies",
	"summary", "professional summary", "objective",
	"certifications", "certificates",
	"projects", "portfolio",
}

// problematicChars are decorative glyphs that ATS parsers may mangle.
var problematicChars = []string{"★", "●", "◆", "■", "▪", "→", "►", "✓", "✔", "•"}

// actionVerbs indicate achievement-oriented writing.
var actionVerbs = []string{
	"led", "managed", "developed", "created", "implemented", "designed",
	"analyzed", "improved", "increased", "reduced", "built", "launched",
}

var (
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern     = regexp.MustCompile(`(\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4})`)
	wideSpacePattern = regexp.MustCompile(`\s{4,}`)
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Report is the result of a compatibility analysis. Issues and
// Recommendations are index-aligned: Recommendations[i] addresses Issues[i].
type Report struct {
	Score           int      `json:"ats_score"`
	Issues          []string `json:"ats_issues"`
	Recommendations []string `json:"ats_recommendations"`
}

// analyzer accumulates score deltas and issue entries across checks.
type analyzer struct {
	score           int
	issues          []string
	recommendations []string
}

// Analyze scores resume text for ATS compatibility. It is deterministic,
// performs no I/O, and accepts any string including the empty string.
// The returned score is clamped to [0, 100].
func Analyze(text string) Report {
	a := &analyzer{
		score:           100,
		issues:          []string{},
		recommendations: []string{},
	}

	a.checkLength(text)
	a.checkSpecialCharacters(text)
	a.checkSectionHeaders(text)
	a.checkContactInfo(text)
	a.checkFormattingIndicators(text)
	a.checkFileStructure(text)
	a.checkStandardSections(text)

	score := a.score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Report{
		Score:           score,
		Issues:          a.issues,
		Recommendations: a.recommendations,
	}
}

// deduct subtracts points and records the paired issue and recommendation.
func (a *analyzer) deduct(points int, issue, recommendation string) {
	a.score -= points
	a.issues = append(a.issues, issue)
	a.recommendations = append(a.recommendations, recommendation)
}

// bonus adds points without an issue entry.
func (a *analyzer) bonus(points int) {
	a.score += points
}

func (a *analyzer) checkLength(text string) {
	wordCount := len(strings.Fields(text))

	switch {
	case wordCount < 100:
		a.deduct(20,
			"Resume is too short (less than 100 words)",
			"Add more detail about your experience, skills, and achievements. Aim for 300-800 words.")
	case wordCount > 1500:
		a.deduct(5,
			"Resume is very long (over 1500 words)",
			"Consider condensing content. Most ATS and recruiters prefer resumes under 800 words.")
	}
}

func (a *analyzer) checkSpecialCharacters(text string) {
	var found []string
	for _, ch := range problematicChars {
		if strings.Contains(text, ch) {
			found = append(found, ch)
		}
	}

	if len(found) > 0 {
		a.deduct(5,
			fmt.Sprintf("Special characters detected: %s", strings.Join(found, ", ")),
			"Replace special bullet points and symbols with standard characters (-, *, •) or simple text.")
	}
}

func (a *analyzer) checkSectionHeaders(text string) {
	lower := strings.ToLower(text)

	hasExperience := strings.Contains(lower, "experience") ||
		strings.Contains(lower, "employment") ||
		strings.Contains(lower, "work history")
	hasEducation := strings.Contains(lower, "education")
	hasSkills := strings.Contains(lower, "skills")

	if !hasExperience {
		a.deduct(10,
			"Missing standard 'Experience' or 'Work History' section",
			"Add a clear 'Work Experience' or 'Professional Experience' section header.")
	}

	if !hasEducation {
		a.deduct(5,
			"Missing 'Education' section",
			"Add an 'Education' section even if it's brief. ATS often looks for this.")
	}

	if !hasSkills {
		a.deduct(10,
			"Missing 'Skills' section",
			"Add a dedicated 'Skills' or 'Technical Skills' section with relevant keywords.")
	}
}

func (a *analyzer) checkContactInfo(text string) {
	if !emailPattern.MatchString(text) {
		a.deduct(15,
			"No email address detected",
			"Include a professional email address at the top of your resume.")
	} else {
		a.bonus(5)
	}

	if !phonePattern.MatchString(text) {
		a.deduct(5,
			"No phone number detected",
			"Include a phone number in your contact information.")
	}
}

func (a *analyzer) checkFormattingIndicators(text string) {
	// Runs of 4+ whitespace characters usually mean tables or column layouts.
	if wideSpacePattern.MatchString(text) {
		a.deduct(10,
			"Detected potential tables or complex spacing",
			"Avoid tables and multi-column layouts. Use simple, single-column text with bullet points.")
	}

	lines := strings.Split(text, "\n")
	veryShort := 0
	for _, line := range lines {
		if n := len(strings.TrimSpace(line)); n > 0 && n < 20 {
			veryShort++
		}
	}

	if float64(veryShort) > float64(len(lines))*0.3 {
		a.deduct(5,
			"Many short lines detected (possible multi-column layout)",
			"Use a single-column format. Multi-column resumes are hard for ATS to parse correctly.")
	}
}

func (a *analyzer) checkFileStructure(text string) {
	if !yearPattern.MatchString(text) {
		a.deduct(5,
			"No dates found in resume",
			"Include dates for your work experience and education (e.g., 'Jan 2020 - Present').")
	}

	lower := strings.ToLower(text)
	foundVerbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			foundVerbs++
		}
	}

	if foundVerbs >= 3 {
		a.bonus(5)
	}
}

func (a *analyzer) checkStandardSections(text string) {
	lower := strings.ToLower(text)

	sectionsFound := 0
	for _, section := range standardSections {
		if strings.Contains(lower, section) {
			sectionsFound++
		}
	}

	switch {
	case sectionsFound >= 4:
		a.bonus(10)
	case sectionsFound >= 3:
		a.bonus(5)
	}

	if strings.ContainsAny(text, "•-*") {
		a.bonus(5)
	}
}
