package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/smart-hire/internal/analysis"
)

// Kind tells a writer how to draw a node.
type Kind string

const (
	KindDocument    Kind = "document"
	KindSection     Kind = "section"
	KindHeading     Kind = "heading"
	KindText        Kind = "text"
	KindBadge       Kind = "badge"
	KindBar         Kind = "bar"
	KindItem        Kind = "item"
	KindPlaceholder Kind = "placeholder"
)

// Node is one element of a view tree. Value is a percentage and only used by bars;
// it is kept as computed, writers clamp it when drawing.
type Node struct {
	Kind     Kind
	Text     string
	Label    string
	Value    float64
	Children []*Node
}

const (
	msgNoMatches  = "No matching roles found. Try adding more details about skills and experience."
	msgNoFeatures = "No feature analysis available"
	msgNoSkills   = "No specific skills identified"
	msgNoAlts     = "No alternative roles"
	msgNoFactors  = "No explanation factors available"
)

func document(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

func section(title string, children ...*Node) *Node {
	return &Node{Kind: KindSection, Text: title, Children: children}
}

func heading(text string) *Node {
	return &Node{Kind: KindHeading, Text: text}
}

func text(format string, args ...any) *Node {
	return &Node{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

func badge(label, value string) *Node {
	return &Node{Kind: KindBadge, Label: label, Text: value}
}

func bar(label string, percent float64, caption string) *Node {
	return &Node{Kind: KindBar, Label: label, Value: percent, Text: caption}
}

func item(label, value string, children ...*Node) *Node {
	return &Node{Kind: KindItem, Label: label, Text: value, Children: children}
}

func placeholder(msg string) *Node {
	return &Node{Kind: KindPlaceholder, Text: msg}
}

// Render lays out a display model as a view tree.
func Render(m DisplayModel) *Node {
	header := section(fmt.Sprintf("%s - Analysis Results", m.CandidateName),
		text("Analyzed %s", m.AnalyzedAt.Format("2006-01-02 15:04")),
	)

	if m.Empty {
		return document(header, placeholder(msgNoMatches))
	}

	header.Children = append(header.Children, badge("Confidence", m.Confidence))
	if m.Domain != "" {
		header.Children = append(header.Children, badge("Predicted domain", m.Domain))
	}

	doc := document(
		header,
		primarySection(m.Primary),
		skillsSection(m.Skills),
		alternativesSection(m.Alternatives),
		explanationSection(m.Explanation),
		comparisonSection(m.Comparison),
		featuresSection(m.Features),
	)

	if strings.TrimSpace(m.Summary) != "" {
		doc.Children = append(doc.Children, section("Recruiter Summary", text("%s", strings.TrimSpace(m.Summary))))
	}

	return doc
}

func primarySection(role *RoleView) *Node {
	return section("Primary Recommendation",
		heading(role.JobRole),
		badge("Domain", role.Domain),
		badge("Match", matchLabel(role.MatchScore)),
		text("Excellent match based on %d key skills alignment", role.KeywordCount),
	)
}

func skillsSection(skills []analysis.SkillMatch) *Node {
	s := section("Skills Breakdown")
	if len(skills) == 0 {
		s.Children = append(s.Children, placeholder(msgNoSkills))
		return s
	}

	for _, skill := range skills {
		s.Children = append(s.Children, bar(skill.Name, skill.Match, fmt.Sprintf("%.0f%%", skill.Match)))
	}

	return s
}

func alternativesSection(roles []RoleView) *Node {
	s := section("Alternative Recommendations")
	if len(roles) == 0 {
		s.Children = append(s.Children, placeholder(msgNoAlts))
		return s
	}

	for _, role := range roles {
		children := []*Node{
			badge("Domain", role.Domain),
			badge("Level", string(role.Level)),
		}
		if len(role.Keywords) > 0 {
			skills := strings.Join(role.Keywords, ", ")
			if role.MoreKeywords > 0 {
				skills += fmt.Sprintf(" +%d more", role.MoreKeywords)
			}
			children = append(children, text("Skills: %s", skills))
		}
		s.Children = append(s.Children, item(role.JobRole, matchLabel(role.MatchScore), children...))
	}

	return s
}

func explanationSection(exp *ExplanationView) *Node {
	s := section(fmt.Sprintf("%s Analysis", exp.Method))
	if len(exp.Chart) == 0 {
		s.Children = append(s.Children, placeholder(msgNoFactors))
		return s
	}

	for _, feature := range exp.Chart {
		s.Children = append(s.Children, impactBar(feature))
	}

	factors := make([]string, 0, len(exp.Summary))
	for _, feature := range exp.Summary {
		factors = append(factors, fmt.Sprintf("%s (%s)", feature.Feature, percent(feature.NormalizedImpact)))
	}
	s.Children = append(s.Children, text("Top influencing factors: %s", strings.Join(factors, ", ")))

	return s
}

func comparisonSection(roles []RoleView) *Node {
	s := section("Role Comparison")
	for _, role := range roles {
		r := item(role.JobRole, matchLabel(role.MatchScore))
		if len(role.TopFeatures) == 0 {
			r.Children = append(r.Children, placeholder(msgNoFactors))
		}
		for _, feature := range role.TopFeatures {
			r.Children = append(r.Children, impactBar(feature))
		}
		s.Children = append(s.Children, r)
	}

	return s
}

func featuresSection(features []analysis.AggregatedFeature) *Node {
	s := section("Key Features Across Roles")
	if len(features) == 0 {
		s.Children = append(s.Children, placeholder(msgNoFeatures))
		return s
	}

	for _, feature := range features {
		roles := "role"
		if feature.Count > 1 {
			roles = "roles"
		}
		s.Children = append(s.Children, item(feature.Feature, percent(feature.Impact),
			text("Influenced %d %s", feature.Count, roles),
			text("%s", feature.Method),
		))
	}

	return s
}

func impactBar(feature analysis.FeatureImpact) *Node {
	return bar(feature.Feature, feature.NormalizedImpact*100, percent(feature.NormalizedImpact))
}

func matchLabel(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "% Match"
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
