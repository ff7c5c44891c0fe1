package render

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/assignments"
	"github.com/spigell/smart-hire/internal/smarthire"
)

// BatchItem is the outcome of analyzing one file of a batch.
type BatchItem struct {
	File   string            `json:"file" yaml:"file"`
	Result *smarthire.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func RenderHealth(profile smarthire.Profile, url string, h *smarthire.Health) *Node {
	s := section("System Status",
		badge("Backend", fmt.Sprintf("%s (%s)", url, profile)),
		badge("Model", h.ModelStatus()),
		badge("API", h.APIStatus()),
	)
	if h.Message != "" {
		s.Children = append(s.Children, text("%s", h.Message))
	}
	return document(s)
}

func RenderAssignments(list []assignments.Assignment) *Node {
	s := section("Recently Assigned")
	if len(list) == 0 {
		s.Children = append(s.Children, placeholder("No assignments yet"))
		return document(s)
	}

	for _, a := range list {
		assigned := a.AssignedDate
		if at, err := time.Parse(time.RFC3339Nano, a.AssignedDate); err == nil {
			assigned = at.Local().Format("2006-01-02 15:04")
		}

		s.Children = append(s.Children, item(a.CandidateName, a.Role,
			badge("Domain", a.Domain),
			badge("Confidence", matchLabel(a.Confidence)),
			badge("Assigned", assigned),
			badge("Status", a.Status),
		))
	}

	return document(s)
}

func RenderList(title string, items []string, empty string) *Node {
	s := section(title)
	if len(items) == 0 {
		s.Children = append(s.Children, placeholder(empty))
		return document(s)
	}

	for _, name := range items {
		s.Children = append(s.Children, text("- %s", name))
	}
	return document(s)
}

func RenderBatch(items []BatchItem) *Node {
	s := section(fmt.Sprintf("Batch Analysis (%d files)", len(items)))
	for _, it := range items {
		switch {
		case it.Error != "":
			s.Children = append(s.Children, item(it.File, "failed", placeholder(it.Error)))
		case it.Result.Empty():
			s.Children = append(s.Children, item(it.File, "no matches"))
		default:
			top := it.Result.Top()
			view := roleView(*top)
			s.Children = append(s.Children, item(it.File, top.JobRole,
				badge("Match", matchLabel(view.MatchScore)),
				badge("Level", string(view.Level)),
			))
		}
	}
	return document(s)
}

// RenderExplanation shows a single explanation fetched for one role.
func RenderExplanation(role string, exp *analysis.Explanation) *Node {
	chart := analysis.TopFeatures(exp.Explanations)
	view := &ExplanationView{
		Method:  exp.Method,
		Chart:   chart,
		Summary: chart[:min(summaryFeatures, len(chart))],
	}

	return document(
		section(role, badge("Total impact", percent(exp.TotalImpact))),
		explanationSection(view),
	)
}

func RenderModelInfo(info *smarthire.ModelInfo) *Node {
	s := section("Model Information")
	if info.Status != "" {
		s.Children = append(s.Children, badge("Status", info.Status))
	}
	if info.Version != "" {
		s.Children = append(s.Children, badge("Version", info.Version))
	}
	s.Children = append(s.Children, badge("Model loaded", fmt.Sprint(info.ModelLoaded)))

	for _, key := range slices.Sorted(maps.Keys(info.Raw)) {
		switch key {
		case "status", "version", "model_loaded":
			continue
		}
		s.Children = append(s.Children, badge(key, fmt.Sprint(info.Raw[key])))
	}

	return document(s)
}
