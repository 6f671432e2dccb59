package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify builds a URL slug from a product name, prefixed with the first
// segment of the shop id so two shops can sell same-named products.
func Slugify(input string, shopID string) string {
	shopPrefix := strings.Split(shopID, "-")[0]

	slug := strings.ToLower(input)
	slug = strings.TrimSpace(slug)
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return shopPrefix + "-" + slug
}
