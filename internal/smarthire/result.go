package smarthire

import (
	"strings"

	"github.com/spigell/smart-hire/internal/analysis"
)

const statusSuccess = "success"

// Result is the profile-independent analysis response.
type Result struct {
	Profile  Profile              `json:"profile" yaml:"profile"`
	Domain   string               `json:"domain,omitempty" yaml:"domain,omitempty"`
	TopRoles []analysis.RoleMatch `json:"top_roles" yaml:"top_roles"`
	Filename string               `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// Empty reports a successful analysis without any matching role.
func (r *Result) Empty() bool {
	return r == nil || len(r.TopRoles) == 0
}

// Top returns the first role as ordered by the service.
func (r *Result) Top() *analysis.RoleMatch {
	if r.Empty() {
		return nil
	}
	return &r.TopRoles[0]
}

// Alternatives returns every role after the first one.
func (r *Result) Alternatives() []analysis.RoleMatch {
	if r.Empty() {
		return nil
	}
	return r.TopRoles[1:]
}

// predictResponse is the dashboard /predict payload.
type predictResponse struct {
	PredictedDomain string               `json:"predicted_domain"`
	TopRoles        []analysis.RoleMatch `json:"top_roles"`
	ResumeLength    int                  `json:"resume_length"`
	TopK            int                  `json:"top_k"`
}

func (p *predictResponse) toResult() *Result {
	return &Result{
		Profile:  ProfileDashboard,
		Domain:   p.PredictedDomain,
		TopRoles: nonNilRoles(p.TopRoles),
	}
}

// analyzeResponse is the service /analyze/* payload. Some service versions nest the
// roles under "analysis".
type analyzeResponse struct {
	Status           string               `json:"status"`
	DomainPrediction string               `json:"domain_prediction"`
	TopRoles         []analysis.RoleMatch `json:"top_roles"`
	Message          string               `json:"message"`
	Filename         string               `json:"filename"`
	Analysis         *struct {
		DomainPrediction string               `json:"domain_prediction"`
		TopRoles         []analysis.RoleMatch `json:"top_roles"`
	} `json:"analysis"`
}

func (a *analyzeResponse) toResult() (*Result, error) {
	if !strings.EqualFold(strings.TrimSpace(a.Status), statusSuccess) {
		return nil, &ServiceError{Message: strings.TrimSpace(a.Message)}
	}

	result := &Result{
		Profile:  ProfileService,
		Domain:   a.DomainPrediction,
		TopRoles: a.TopRoles,
		Filename: a.Filename,
	}

	if a.Analysis != nil {
		if len(result.TopRoles) == 0 {
			result.TopRoles = a.Analysis.TopRoles
		}
		if result.Domain == "" {
			result.Domain = a.Analysis.DomainPrediction
		}
	}

	result.TopRoles = nonNilRoles(result.TopRoles)

	return result, nil
}

func nonNilRoles(roles []analysis.RoleMatch) []analysis.RoleMatch {
	if roles == nil {
		return []analysis.RoleMatch{}
	}
	return roles
}
