package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// maxSuffix caps the collision suffix search so a pathological slug set
// cannot spin the loop forever.
const maxSuffix = 10000

// Generate turns free text into a URL-safe slug.
// Example: "Hello, World!" -> "hello-world". Returns "" when the text
// contains no usable characters.
func Generate(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether s is an acceptable slug: lowercase alphanumeric
// runs joined by single hyphens, at least two characters long.
func IsValid(s string) bool {
	if len(s) < 2 {
		return false
	}
	return slugPattern.MatchString(s)
}

// GenerateUnique derives a slug from text that does not collide with any
// slug in existing. When the derived slug equals currentSlug the record is
// being re-saved under its own slug, so it is returned unchanged. On
// collision a numeric suffix is appended: base-1, base-2, ... lowest wins.
func GenerateUnique(text string, existing []string, currentSlug string) string {
	base := Generate(text)
	if base == "" {
		return base
	}
	if base == currentSlug {
		return base
	}

	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base
	}

	for i := 1; i <= maxSuffix; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if candidate == currentSlug {
			return candidate
		}
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}

	// Suffix space exhausted; hand back the capped candidate rather than loop.
	return fmt.Sprintf("%s-%d", base, maxSuffix)
}
