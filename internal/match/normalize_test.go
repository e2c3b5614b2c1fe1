package match

import "testing"

func TestNormalize(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Bohemian Rhapsody",
			want:  "bohemian rhapsody",
		},
		{
			name:  "strips parenthetical group",
			input: "Hello (Live at Wembley)",
			want:  "hello",
		},
		{
			name:  "strips bracketed group",
			input: "One More Time [Radio Edit]",
			want:  "one more time",
		},
		{
			name:  "strips punctuation",
			input: "Don't Stop Me Now!",
			want:  "dont stop me now",
		},
		{
			name:  "collapses whitespace",
			input: "  So   Much \t Space  ",
			want:  "so much space",
		},
		{
			name:  "keeps diacritics",
			input: "À La Claire Fontaine",
			want:  "à la claire fontaine",
		},
		{
			name:  "keeps digits",
			input: "Track 29",
			want:  "track 29",
		},
		{
			name:  "stray closing paren dropped as punctuation",
			input: "weird) title",
			want:  "weird title",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "annotation only",
			input: "(Intro)",
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello (Live at Wembley)",
		"Don't Stop Me Now!",
		"  So   Much \t Space  ",
		"À La Claire Fontaine",
		"(feat. Someone) [Remastered 2011]",
		"plain",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
