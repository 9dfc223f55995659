package service

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"accents", "Nutrición Avanzada", "nutricion-avanzada"},
		{"punctuation", "¡Ciencia, Pureza & Calidad!", "ciencia-pureza-calidad"},
		{"collapse dashes", "a -- b", "a-b"},
		{"trim dashes", "  -hola-  ", "hola"},
		{"underscores kept", "snake_case title", "snake_case-title"},
		{"tabs and newlines", "uno\tdos\ntres", "uno-dos-tres"},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
