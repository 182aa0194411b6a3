// Package extract pulls structured fields out of fetched pages: visible
// text and its fingerprint, business metadata, technology signatures,
// commerce indicators and restricted-keyword hits. Extractors are pure
// functions over a parsed document; a failed extraction leaves the field
// absent and never fails the scan.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisibleText returns the whitespace-normalized visible text of a page.
// Script, style and template contents are excluded.
func VisibleText(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	clone := doc.Clone()
	clone.Find("script, style, noscript, template").Remove()
	return NormalizeText(clone.Find("body").Text())
}

// NormalizeText collapses all whitespace runs to single spaces and trims.
// Fingerprints are computed over this form so formatting-only edits don't
// register as content changes.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fingerprint returns the stable content hash of normalized text.
func Fingerprint(normalizedText string) string {
	sum := sha256.Sum256([]byte(normalizedText))
	return hex.EncodeToString(sum[:])
}
