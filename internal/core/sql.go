// AngelaMos | 2026
// sql.go

package core

import "strings"

// EscapeLike neutralizes LIKE/ILIKE wildcards in user-supplied search
// terms so they match literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
