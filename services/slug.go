package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// Slugify turns free text into a URL slug: diacritics are stripped, the
// result is lower case ASCII with single hyphens between words.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = slugInvalidChars.ReplaceAllString(result, "")
	result = slugSeparators.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// resolveSlug keeps an explicit slug as given and derives one from fallback
// only when it is empty.
func resolveSlug(slug, fallback string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slug
	}
	return Slugify(fallback)
}
