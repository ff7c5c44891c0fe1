package analysis

import (
	"math/rand/v2"
	"testing"
)

func TestMatchLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  float64
		expect Level
	}{
		{score: 100, expect: LevelHigh},
		{score: 80, expect: LevelHigh},
		{score: 79.9, expect: LevelMedium},
		{score: 60, expect: LevelMedium},
		{score: 59.999, expect: LevelLow},
		{score: 0, expect: LevelLow},
		{score: -5, expect: LevelLow},
		{score: 250, expect: LevelHigh},
	}

	for _, tt := range tests {
		if got := MatchLevel(tt.score); got != tt.expect {
			t.Fatalf("MatchLevel(%v): expected %q, got %q", tt.score, tt.expect, got)
		}
	}
}

func TestConfidenceLabel(t *testing.T) {
	t.Parallel()

	if got := MatchLevel(85).ConfidenceLabel(); got != "High Confidence" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := MatchLevel(65).ConfidenceLabel(); got != "Medium Confidence" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := MatchLevel(10).ConfidenceLabel(); got != "Low Confidence" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestFormatDomainName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"data-science":    "Data Science",
		"HUMAN-resources": "Human Resources",
		"sales":           "Sales",
		"":                "Unknown",
		"o'neil-partners": "O'neil Partners",
		"r&d":             "R&d",
		"e.commerce":      "E.commerce",
		"ÉCOLE-design":    "École Design",
		"it--support":     "It  Support",
	}

	for input, expect := range tests {
		if got := FormatDomainName(input); got != expect {
			t.Fatalf("FormatDomainName(%q): expected %q, got %q", input, expect, got)
		}
	}
}

func TestCandidateName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"jane_doe.pdf":          "jane_doe",
		"/tmp/resumes/john.txt": "john",
		"archive.tar.gz":        "archive.tar",
		"":                      "Candidate",
	}

	for input, expect := range tests {
		if got := CandidateName(input); got != expect {
			t.Fatalf("CandidateName(%q): expected %q, got %q", input, expect, got)
		}
	}
}

func TestSkillMatchesRange(t *testing.T) {
	t.Parallel()

	keywords := []string{"go", "sql", "docker", "kubernetes"}
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 50; round++ {
		skills := SkillMatches(keywords, rng)
		if len(skills) != len(keywords) {
			t.Fatalf("expected %d skills, got %d", len(keywords), len(skills))
		}
		for i, skill := range skills {
			if skill.Name != keywords[i] {
				t.Fatalf("unexpected skill order: %q", skill.Name)
			}
			if skill.Match < 70 || skill.Match > 95 {
				t.Fatalf("skill match out of range: %v", skill.Match)
			}
		}
	}

	if got := SkillMatches(keywords, nil); len(got) != len(keywords) {
		t.Fatalf("expected skills with global source")
	}
}
