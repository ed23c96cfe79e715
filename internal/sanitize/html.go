// Package sanitize cleans operator-supplied HTML before it is stored.
// Listing descriptions are written by staff but rendered to guests, so
// scripts, event handlers and javascript: URLs must never survive.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		descPolicy = bluemonday.NewPolicy()
		descPolicy.AllowStandardURLs()
		descPolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"h3", "h4", "blockquote",
		)
		descPolicy.AllowAttrs("href").OnElements("a")
		descPolicy.RequireNoFollowOnLinks(true)

		plainPolicy = bluemonday.StrictPolicy()
	})
}

// Description keeps basic formatting (paragraphs, emphasis, lists,
// links) and strips everything else.
func Description(s string) string {
	initPolicies()
	return descPolicy.Sanitize(s)
}

// Plain strips all HTML, for single-line fields like names and notes.
func Plain(s string) string {
	initPolicies()
	return plainPolicy.Sanitize(s)
}
