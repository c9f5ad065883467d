// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from user-generated content
// (post bodies, comments, group descriptions) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()

// Sanitize removes scripts, event handlers, and javascript: URLs while
// keeping common formatting tags and safe links.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}
