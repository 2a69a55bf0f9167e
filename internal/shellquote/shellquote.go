// Package shellquote provides minimal POSIX shell quoting for paths
// passed to editor commands.
package shellquote

import "strings"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings containing characters a shell would
// otherwise interpret. Add-on paths regularly carry spaces and brackets.
func QuoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " #[]()|!\"'&;<>*?$`") {
		return Quote(s)
	}
	return s
}
