package generation

import (
	"regexp"
	"strings"
)

var languageNames = []string{
	"spanish", "french", "german", "italian", "portuguese", "russian",
	"chinese", "japanese", "korean", "arabic", "hindi", "indonesian",
	"dutch", "polish", "turkish", "vietnamese", "thai", "swedish",
	"norwegian", "danish", "finnish", "greek", "hebrew", "czech",
	"romanian", "hungarian", "ukrainian",
}

var (
	translationPattern = regexp.MustCompile(
		`(from|to)\s+(english|` + strings.Join(languageNames, "|") + `)`)
	learningContextPattern = regexp.MustCompile(
		`\b(learn|learning|translation|translate|vocabulary|vocab)\b`)
)

// Topic joins a deck title and description into the prompt topic.
func Topic(title, description string) string {
	if strings.TrimSpace(description) == "" {
		return title
	}
	return title + " - Description: " + description
}

// IsLanguageLearningDeck reports whether a deck looks like language study.
// It is conservative: it needs either an explicit "from X"/"to X" pattern
// or a language name next to a learning word such as "vocab".
func IsLanguageLearningDeck(title, description string) bool {
	text := strings.ToLower(title + " " + description)

	if translationPattern.MatchString(text) {
		return true
	}

	hasLanguage := false
	for _, name := range languageNames {
		if strings.Contains(text, name) {
			hasLanguage = true
			break
		}
	}

	return hasLanguage && learningContextPattern.MatchString(text)
}
