package common

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML tags from a body, leaving the text content in
// place. The PayPal patterns run against this flattened text.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// TextByClass returns the text of the first element carrying the given
// class, or "" when no such element exists. Used as a drift-tolerant
// fallback for memo elements whose attributes change between template
// revisions.
func TextByClass(html, class string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("." + class).First().Text())
}
