package analysis

import (
	"slices"
)

const (
	// KeywordMatchingMethod is reported for explanations synthesized from keywords.
	KeywordMatchingMethod = "Keyword Matching"
	// MaxChartFeatures is the number of features shown in a single chart.
	MaxChartFeatures = 6

	fallbackTotalImpact = 1.0
	fallbackDecay       = 0.1
)

// FallbackExplanation builds an explanation from the ordered matching keywords of a role.
//
// The i-th keyword gets (1/n)*(1-i*0.1) as both impact and normalized impact. The
// weights are not normalized and turn negative from the eleventh keyword on; total
// impact is always reported as 1.0.
func FallbackExplanation(keywords []string) Explanation {
	explanations := make([]FeatureImpact, 0, len(keywords))

	n := float64(len(keywords))
	for i, keyword := range keywords {
		impact := (1 / n) * (1 - float64(i)*fallbackDecay)
		explanations = append(explanations, FeatureImpact{
			Feature:          keyword,
			Impact:           impact,
			NormalizedImpact: impact,
		})
	}

	return Explanation{
		Method:       KeywordMatchingMethod,
		Explanations: explanations,
		TotalImpact:  fallbackTotalImpact,
	}
}

// WithFallbackExplanations returns a copy of roles in which every role without an
// explanation carries one synthesized from its matching keywords.
func WithFallbackExplanations(roles []RoleMatch) []RoleMatch {
	result := make([]RoleMatch, 0, len(roles))
	for _, role := range roles {
		if !role.HasExplanation() {
			explanation := FallbackExplanation(role.MatchingKeywords)
			role.Explanation = &explanation
		}
		result = append(result, role)
	}

	return result
}

// TopFeatures returns up to MaxChartFeatures impacts ordered by normalized impact,
// highest first. Ties keep their original order and the input is left untouched.
func TopFeatures(impacts []FeatureImpact) []FeatureImpact {
	sorted := slices.Clone(impacts)
	if sorted == nil {
		sorted = []FeatureImpact{}
	}

	slices.SortStableFunc(sorted, func(a, b FeatureImpact) int {
		return compareDesc(a.NormalizedImpact, b.NormalizedImpact)
	})

	if len(sorted) > MaxChartFeatures {
		sorted = sorted[:MaxChartFeatures]
	}

	return sorted
}

// AggregateFeatures combines feature impacts across all roles of one response.
//
// Impacts of the same feature name are summed, occurrences counted and the role names
// collected once each. The result is ordered by summed impact (stable) and cut to
// MaxChartFeatures. An empty result means no feature analysis is available.
func AggregateFeatures(roles []RoleMatch) []AggregatedFeature {
	index := make(map[string]int)
	features := make([]AggregatedFeature, 0)

	for _, role := range roles {
		if !role.HasExplanation() {
			continue
		}

		for _, exp := range role.Explanation.Explanations {
			idx, ok := index[exp.Feature]
			if !ok {
				index[exp.Feature] = len(features)
				features = append(features, AggregatedFeature{
					Feature: exp.Feature,
					Impact:  exp.NormalizedImpact,
					Count:   1,
					Roles:   []string{role.JobRole},
					Method:  role.Explanation.Method,
				})
				continue
			}

			existing := &features[idx]
			existing.Impact += exp.NormalizedImpact
			existing.Count++
			if !slices.Contains(existing.Roles, role.JobRole) {
				existing.Roles = append(existing.Roles, role.JobRole)
			}
		}
	}

	slices.SortStableFunc(features, func(a, b AggregatedFeature) int {
		return compareDesc(a.Impact, b.Impact)
	})

	if len(features) > MaxChartFeatures {
		features = features[:MaxChartFeatures]
	}

	return features
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
