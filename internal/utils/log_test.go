package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "disabled preview",
			input:  `{"status": "success"}`,
			limit:  0,
			expect: "",
		},
		{
			name:   "short error body is kept",
			input:  `{"error": "No resume text provided"}`,
			limit:  200,
			expect: `{"error": "No resume text provided"}`,
		},
		{
			name: "indented response becomes one line",
			input: `{
  "predicted_domain": "information-technology",
  "top_roles": []
}`,
			limit:  200,
			expect: `{ "predicted_domain": "information-technology", "top_roles": [] }`,
		},
		{
			name:   "long prompt is cut",
			input:  "You are assisting a recruiter.\n\nRules:\n- Write at most 4 sentences.",
			limit:  30,
			expect: "You are assisting a recruiter....",
		},
		{
			name:   "cuts on runes not bytes",
			input:  "  Résumé: développeur senior  ",
			limit:  6,
			expect: "Résumé...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
