package analysis

// RoleMatch is one job-role recommendation returned by the analysis service.
type RoleMatch struct {
	JobRole          string       `json:"job_role" yaml:"job_role" mapstructure:"job_role"`
	Domain           string       `json:"domain" yaml:"domain" mapstructure:"domain"`
	MatchScore       float64      `json:"match_score" yaml:"match_score" mapstructure:"match_score"`
	MatchingKeywords []string     `json:"matching_keywords" yaml:"matching_keywords" mapstructure:"matching_keywords"`
	Explanation      *Explanation `json:"explanation,omitempty" yaml:"explanation,omitempty" mapstructure:"explanation"`
}

// Explanation is the method and per-feature breakdown behind a match score.
type Explanation struct {
	Method       string          `json:"method" yaml:"method" mapstructure:"method"`
	Explanations []FeatureImpact `json:"explanations" yaml:"explanations" mapstructure:"explanations"`
	TotalImpact  float64         `json:"total_impact" yaml:"total_impact" mapstructure:"total_impact"`
}

// FeatureImpact is a single feature contribution to a match.
type FeatureImpact struct {
	Feature          string  `json:"feature" yaml:"feature" mapstructure:"feature"`
	Impact           float64 `json:"impact" yaml:"impact" mapstructure:"impact"`
	NormalizedImpact float64 `json:"normalized_impact" yaml:"normalized_impact" mapstructure:"normalized_impact"`
}

// AggregatedFeature is a feature combined across all roles of one analysis.
// It is built per render and never persisted.
type AggregatedFeature struct {
	Feature string   `json:"feature" yaml:"feature"`
	Impact  float64  `json:"impact" yaml:"impact"`
	Count   int      `json:"count" yaml:"count"`
	Roles   []string `json:"roles" yaml:"roles"`
	Method  string   `json:"method" yaml:"method"`
}

// HasExplanation reports whether the role carries an explanation from the service.
func (r RoleMatch) HasExplanation() bool {
	return r.Explanation != nil
}
