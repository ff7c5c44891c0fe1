package smarthire

import (
	"context"
	"strings"

	"github.com/spigell/smart-hire/internal/analysis"
)

const explainPath = "/explain"

type explainRequest struct {
	ResumeText string `json:"resume_text"`
	RoleName   string `json:"role_name"`
}

type explainResponse struct {
	RoleName    string                `json:"role_name"`
	Explanation *analysis.Explanation `json:"explanation"`
}

// Explain asks the dashboard backend why a given role matches the resume.
func (c *Client) Explain(ctx context.Context, text, role string) (*analysis.Explanation, error) {
	if c.profile != ProfileDashboard {
		return nil, validationErrorf("explain is available only with the %s profile", ProfileDashboard)
	}

	role = strings.TrimSpace(role)
	if role == "" {
		return nil, validationErrorf("role name is required")
	}

	text = strings.TrimSpace(text)
	if err := c.validateText(text); err != nil {
		return nil, err
	}

	var resp explainResponse
	if err := c.postJSON(ctx, explainPath, &explainRequest{ResumeText: text, RoleName: role}, &resp); err != nil {
		return nil, err
	}

	if resp.Explanation == nil {
		return &analysis.Explanation{Explanations: []analysis.FeatureImpact{}}, nil
	}

	return resp.Explanation, nil
}
