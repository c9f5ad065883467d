// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Name collapses internal whitespace runs and trims the ends. Used for
// group names and display strings before folding into *_ci fields.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Username trims and lowercases a login identifier. The folded form is what
// the unique index on users.username_ci sees.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Param trims a query or form parameter.
func Param(s string) string {
	return strings.TrimSpace(s)
}
