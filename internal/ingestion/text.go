package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minContentLength is the smallest extraction considered analyzable. Shorter
// results usually mean an empty upload or an image-only document.
const minContentLength = 50

var blankRunPattern = regexp.MustCompile(`\n\n\n+`)

// ExtractText converts decoded file bytes into clean resume text. Only text
// encodings are supported; binary formats must be converted client-side.
func ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &InvalidInputError{Message: "file is not valid UTF-8 text"}
	}

	text := CleanText(string(data))
	if err := ValidateContent(text); err != nil {
		return "", err
	}
	return text, nil
}

// CleanText normalizes extracted text while preserving the layout signals the
// rule engine scores on. Intra-line spacing is kept intact: runs of spaces
// are a formatting indicator, not noise.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// ValidateContent rejects extractions too short to score meaningfully.
func ValidateContent(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minContentLength {
		return &InvalidInputError{
			Message: "extracted text is too short to analyze; the file may be empty or image-based",
		}
	}
	return nil
}
