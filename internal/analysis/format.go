package analysis

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultCandidateName = "Candidate"
	unknownDomain        = "Unknown"

	skillMatchFloor   = 70
	skillMatchSpread  = 25
	skillMatchCeiling = 95
)

// FormatDomainName turns a domain slug such as "data-science" into "Data Science".
//
// Only the first letter of each dash-separated word is upper-cased and the rest is
// lower-cased, so punctuation inside a word never starts a new capital:
// "o'neil" stays "O'neil" and "r&d" becomes "R&d".
func FormatDomainName(domain string) string {
	if strings.TrimSpace(domain) == "" {
		return unknownDomain
	}

	upper := cases.Upper(language.English)
	lower := cases.Lower(language.English)

	words := strings.Split(domain, "-")
	for i, word := range words {
		_, size := utf8.DecodeRuneInString(word)
		words[i] = upper.String(word[:size]) + lower.String(word[size:])
	}

	return strings.Join(words, " ")
}

// CandidateName derives a display name from an uploaded file name.
func CandidateName(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return defaultCandidateName
	}

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return defaultCandidateName
	}

	return name
}

// SkillMatch is a per-skill display percentage.
type SkillMatch struct {
	Name  string  `json:"name" yaml:"name"`
	Match float64 `json:"match" yaml:"match"`
}

// SkillMatches assigns every keyword a placeholder match percentage in [70,95].
// The service returns no per-skill data, so the values are random on every call.
// A nil rng uses the global source.
func SkillMatches(keywords []string, rng *rand.Rand) []SkillMatch {
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}

	skills := make([]SkillMatch, 0, len(keywords))
	for _, keyword := range keywords {
		skills = append(skills, SkillMatch{
			Name:  keyword,
			Match: min(skillMatchCeiling, skillMatchFloor+draw()*skillMatchSpread),
		})
	}

	return skills
}
