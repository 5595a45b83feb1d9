// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// maxProbes bounds the suffix search; past this the operation fails rather
// than looping.
const maxProbes = 99

var (
	ErrEmpty     = errors.New("title contains no slug-safe characters")
	ErrExhausted = errors.New("could not derive a unique slug")
)

var (
	stripPattern     = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	separatorPattern = regexp.MustCompile(`[\s_-]+`)
	validPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Prober checks whether a slug is already taken by a post other than
// excludeID. excludeID may be empty for new posts.
type Prober interface {
	SlugExists(slug, excludeID string) (bool, error)
}

// Make normalizes a title into slug form: lowercase, slug-unsafe characters
// stripped, whitespace/underscore/hyphen runs collapsed to single hyphens,
// leading and trailing hyphens trimmed.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = stripPattern.ReplaceAllString(s, "")
	s = separatorPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether s is already in canonical slug form.
func IsValid(s string) bool {
	return validPattern.MatchString(s)
}

// Unique derives a slug from title and resolves collisions by appending -1,
// -2, ... until the prober reports a free candidate. Fails with ErrExhausted
// once the probe budget is spent.
func Unique(p Prober, title, excludeID string) (string, error) {
	base := Make(title)
	if base == "" {
		return "", ErrEmpty
	}

	candidate := base
	for i := 0; i <= maxProbes; i++ {
		exists, err := p.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i+1)
	}

	return "", ErrExhausted
}
