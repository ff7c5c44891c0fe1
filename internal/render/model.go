// Package render turns analysis results into display models and view trees.
//
// Build and Render are pure: all business shaping happens in Build, all layout in
// Render, and writers only print the resulting tree.
package render

import (
	"math/rand/v2"
	"time"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/smarthire"
)

const (
	previewKeywords = 3
	summaryFeatures = 3
)

// Input is everything needed to build one display model.
type Input struct {
	Result        *smarthire.Result
	CandidateName string
	AnalyzedAt    time.Time
	// Rand drives the placeholder skill percentages; nil uses the global source.
	Rand    *rand.Rand
	Summary string
}

type DisplayModel struct {
	CandidateName string                       `json:"candidate_name" yaml:"candidate_name"`
	AnalyzedAt    time.Time                    `json:"analyzed_at" yaml:"analyzed_at"`
	Domain        string                       `json:"domain,omitempty" yaml:"domain,omitempty"`
	Empty         bool                         `json:"empty" yaml:"empty"`
	Confidence    string                       `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Primary       *RoleView                    `json:"primary,omitempty" yaml:"primary,omitempty"`
	Skills        []analysis.SkillMatch        `json:"skills" yaml:"skills"`
	Alternatives  []RoleView                   `json:"alternatives" yaml:"alternatives"`
	Explanation   *ExplanationView             `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Comparison    []RoleView                   `json:"comparison" yaml:"comparison"`
	Features      []analysis.AggregatedFeature `json:"features" yaml:"features"`
	Summary       string                       `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type RoleView struct {
	JobRole      string                   `json:"job_role" yaml:"job_role"`
	Domain       string                   `json:"domain" yaml:"domain"`
	MatchScore   float64                  `json:"match_score" yaml:"match_score"`
	Level        analysis.Level           `json:"level" yaml:"level"`
	KeywordCount int                      `json:"keyword_count" yaml:"keyword_count"`
	Keywords     []string                 `json:"keywords" yaml:"keywords"`
	MoreKeywords int                      `json:"more_keywords" yaml:"more_keywords"`
	TopFeatures  []analysis.FeatureImpact `json:"top_features,omitempty" yaml:"top_features,omitempty"`
}

type ExplanationView struct {
	Method  string                   `json:"method" yaml:"method"`
	Chart   []analysis.FeatureImpact `json:"chart" yaml:"chart"`
	Summary []analysis.FeatureImpact `json:"summary" yaml:"summary"`
}

// Build shapes a result for display. Roles without an explanation get one
// synthesized from their keywords before charts and aggregates are computed.
func Build(in Input) DisplayModel {
	m := DisplayModel{
		CandidateName: in.CandidateName,
		AnalyzedAt:    in.AnalyzedAt,
		Skills:        []analysis.SkillMatch{},
		Alternatives:  []RoleView{},
		Comparison:    []RoleView{},
		Features:      []analysis.AggregatedFeature{},
		Summary:       in.Summary,
	}

	if m.CandidateName == "" {
		m.CandidateName = analysis.CandidateName("")
	}

	if in.Result.Empty() {
		m.Empty = true
		return m
	}

	if in.Result.Domain != "" {
		m.Domain = analysis.FormatDomainName(in.Result.Domain)
	}

	roles := analysis.WithFallbackExplanations(in.Result.TopRoles)
	top := roles[0]

	primary := roleView(top)
	m.Primary = &primary
	m.Confidence = primary.Level.ConfidenceLabel()
	m.Skills = analysis.SkillMatches(top.MatchingKeywords, in.Rand)

	for _, role := range roles[1:] {
		m.Alternatives = append(m.Alternatives, roleView(role))
	}

	chart := analysis.TopFeatures(top.Explanation.Explanations)
	m.Explanation = &ExplanationView{
		Method:  top.Explanation.Method,
		Chart:   chart,
		Summary: chart[:min(summaryFeatures, len(chart))],
	}

	for _, role := range roles {
		view := roleView(role)
		features := analysis.TopFeatures(role.Explanation.Explanations)
		view.TopFeatures = features[:min(summaryFeatures, len(features))]
		m.Comparison = append(m.Comparison, view)
	}

	m.Features = analysis.AggregateFeatures(roles)

	return m
}

func roleView(role analysis.RoleMatch) RoleView {
	keywords := role.MatchingKeywords
	preview := keywords[:min(previewKeywords, len(keywords))]

	return RoleView{
		JobRole:      role.JobRole,
		Domain:       analysis.FormatDomainName(role.Domain),
		MatchScore:   role.MatchScore,
		Level:        analysis.MatchLevel(role.MatchScore),
		KeywordCount: len(keywords),
		Keywords:     append([]string{}, preview...),
		MoreKeywords: len(keywords) - len(preview),
	}
}
