package service

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const fallbackSlug = "post"

var (
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	slugDashes       = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug.
// Accented and non-latin characters are transliterated to ASCII first, so
// "Nutrición Avanzada" becomes "nutricion-avanzada".
func Slugify(text string) string {
	result := unidecode.Unidecode(text)
	result = strings.ToLower(strings.TrimSpace(result))
	result = slugWhitespace.ReplaceAllString(result, "-")
	result = slugInvalidChars.ReplaceAllString(result, "")
	result = slugDashes.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
