package validators

import "strings"

// IsFieldPath accepts dot separated form field paths such as
// "attributes.hours". Empty segments and whitespace are rejected.
func IsFieldPath(path string) bool {
	if path == "" || len(path) > 255 {
		return false
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return false
		}
		if strings.ContainsAny(seg, " \t\r\n") {
			return false
		}
	}
	return true
}
