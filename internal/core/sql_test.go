// AngelaMos | 2026
// sql_test.go

package core

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "downtown", "downtown"},
		{"percent escaped", "100% venue", `100\% venue`},
		{"underscore escaped", "main_hall", `main\_hall`},
		{"backslash escaped first", `C:\venues`, `C:\\venues`},
		{"mixed wildcards", `_50%\`, `\_50\%\\`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeLike(tt.input); got != tt.want {
				t.Errorf("EscapeLike(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
