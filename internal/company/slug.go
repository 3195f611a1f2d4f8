package company

import (
	"regexp"
	"strings"
)

var (
	nonWordRe       = regexp.MustCompile(`[^\w\s-]`)
	separatorRunsRe = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives the canonical URL slug for a company name: lowercase,
// non-word characters stripped, runs of whitespace/underscores/hyphens
// collapsed to a single hyphen. "Acme & Co." becomes "acme-co".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWordRe.ReplaceAllString(s, "")
	s = separatorRunsRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
