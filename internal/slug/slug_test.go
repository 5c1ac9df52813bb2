package slug

import "testing"

// TestGenerate exercises the slug generator with typical category names,
// special characters, accents, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Living Area", want: "living-area"},
		{name: "already lowercase", input: "kitchen", want: "kitchen"},
		{name: "accented name folds", input: "Wall Décor", want: "wall-decor"},
		{name: "slash separated", input: "Facade / Exterior", want: "facade-exterior"},
		{name: "ampersand dropped", input: "Materials & Finishes", want: "materials-finishes"},
		{name: "punctuation", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "multiple spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "leading hyphens trimmed", input: "---hello world", want: "hello-world"},
		{name: "consecutive hyphens collapsed", input: "a -- b", want: "a-b"},
		{name: "empty string", input: "", want: ""},
		{name: "only symbols", input: "!@#$%", want: ""},
		{name: "numbers kept", input: "3D Wall Panels", want: "3d-wall-panels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
