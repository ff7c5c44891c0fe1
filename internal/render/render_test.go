package render

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/assignments"
	"github.com/spigell/smart-hire/internal/smarthire"
)

var analyzedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleResult() *smarthire.Result {
	return &smarthire.Result{
		Profile: smarthire.ProfileDashboard,
		Domain:  "information-technology",
		TopRoles: []analysis.RoleMatch{
			{
				JobRole:          "Data Scientist",
				Domain:           "information-technology",
				MatchScore:       82.5,
				MatchingKeywords: []string{"python", "sql", "excel"},
			},
			{
				JobRole:          "Data Analyst",
				Domain:           "information-technology",
				MatchScore:       64,
				MatchingKeywords: []string{"sql", "excel", "tableau", "statistics"},
				Explanation: &analysis.Explanation{
					Method: "Keyword Matching",
					Explanations: []analysis.FeatureImpact{
						{Feature: "sql", NormalizedImpact: 0.4},
						{Feature: "tableau", NormalizedImpact: 0.6},
					},
				},
			},
		},
	}
}

func TestBuildFallsBackToKeywordExplanations(t *testing.T) {
	t.Parallel()

	m := Build(Input{Result: sampleResult(), CandidateName: "jane_doe", AnalyzedAt: analyzedAt, Rand: rand.New(rand.NewPCG(7, 7))})

	assert.False(t, m.Empty)
	assert.Equal(t, "Information Technology", m.Domain)
	assert.Equal(t, "High Confidence", m.Confidence)

	require.NotNil(t, m.Primary)
	assert.Equal(t, "Data Scientist", m.Primary.JobRole)
	assert.Equal(t, 3, m.Primary.KeywordCount)
	assert.Equal(t, analysis.LevelHigh, m.Primary.Level)

	require.NotNil(t, m.Explanation)
	assert.Equal(t, analysis.KeywordMatchingMethod, m.Explanation.Method)
	require.Len(t, m.Explanation.Chart, 3)
	assert.Equal(t, "python", m.Explanation.Chart[0].Feature)
	assert.InDelta(t, 1.0/3, m.Explanation.Chart[0].NormalizedImpact, 1e-9)

	require.Len(t, m.Alternatives, 1)
	assert.Equal(t, analysis.LevelMedium, m.Alternatives[0].Level)
	assert.Equal(t, []string{"sql", "excel", "tableau"}, m.Alternatives[0].Keywords)
	assert.Equal(t, 1, m.Alternatives[0].MoreKeywords)

	require.Len(t, m.Comparison, 2)
	assert.Equal(t, "tableau", m.Comparison[1].TopFeatures[0].Feature)

	require.NotEmpty(t, m.Features)
	assert.Equal(t, "sql", m.Features[0].Feature)
	assert.InDelta(t, 0.3+0.4, m.Features[0].Impact, 1e-9)
	assert.Equal(t, []string{"Data Scientist", "Data Analyst"}, m.Features[0].Roles)

	for _, skill := range m.Skills {
		assert.GreaterOrEqual(t, skill.Match, 70.0)
		assert.LessOrEqual(t, skill.Match, 95.0)
	}
}

func TestBuildIsDeterministicExceptSkills(t *testing.T) {
	t.Parallel()

	result := sampleResult()

	first := Build(Input{Result: result, AnalyzedAt: analyzedAt})
	second := Build(Input{Result: result, AnalyzedAt: analyzedAt})

	assert.Equal(t, first.Features, second.Features)
	assert.Equal(t, first.Comparison, second.Comparison)
	assert.Equal(t, first.Explanation, second.Explanation)

	assert.Nil(t, result.TopRoles[0].Explanation, "building must not mutate the result")
}

func TestBuildEmptyResult(t *testing.T) {
	t.Parallel()

	m := Build(Input{Result: &smarthire.Result{TopRoles: []analysis.RoleMatch{}}, AnalyzedAt: analyzedAt})

	assert.True(t, m.Empty)
	assert.Equal(t, "Candidate", m.CandidateName)
	assert.Nil(t, m.Primary)

	out := NewTerminal(NewStyles(&bytes.Buffer{})).Draw(Render(m))
	assert.Contains(t, out, "Candidate - Analysis Results")
	assert.Contains(t, out, msgNoMatches)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	m := Build(Input{Result: sampleResult(), CandidateName: "jane_doe", AnalyzedAt: analyzedAt, Summary: "Strong data profile."})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, m, Render(m)))
	out := buf.String()

	for _, expect := range []string{
		"jane_doe - Analysis Results",
		"Primary Recommendation",
		"82.5% Match",
		"Excellent match based on 3 key skills alignment",
		"Keyword Matching Analysis",
		"Top influencing factors: python (33.3%), sql (30.0%), excel (26.7%)",
		"Skills: sql, excel, tableau +1 more",
		"Influenced 2 roles",
		"Recruiter Summary",
		"Strong data profile.",
	} {
		assert.Contains(t, out, expect)
	}
}

func TestRenderNoFeatures(t *testing.T) {
	t.Parallel()

	m := Build(Input{Result: &smarthire.Result{TopRoles: []analysis.RoleMatch{{JobRole: "Clerk", MatchScore: 10}}}})
	assert.Empty(t, m.Features)

	out := NewTerminal(NewStyles(&bytes.Buffer{})).Draw(Render(m))
	assert.Contains(t, out, msgNoFeatures)
	assert.Contains(t, out, msgNoSkills)
	assert.Contains(t, out, msgNoAlts)
}

func TestBarClampsNegativeImpact(t *testing.T) {
	t.Parallel()

	term := NewTerminal(NewStyles(&bytes.Buffer{}))

	out := term.Draw(impactBar(analysis.FeatureImpact{Feature: "late", NormalizedImpact: -0.05}))
	assert.Contains(t, out, strings.Repeat("░", barWidth))
	assert.Contains(t, out, "-5.0%")

	full := term.Draw(bar("over", 250, ""))
	assert.Contains(t, full, strings.Repeat("█", barWidth))
}

func TestWriteStructured(t *testing.T) {
	t.Parallel()

	m := Build(Input{Result: sampleResult(), CandidateName: "jane_doe", AnalyzedAt: analyzedAt})

	var jsonBuf bytes.Buffer
	require.NoError(t, Write(&jsonBuf, FormatJSON, m, nil))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Equal(t, "jane_doe", decoded["candidate_name"])
	assert.Len(t, decoded["features"], len(m.Features))

	var yamlBuf bytes.Buffer
	require.NoError(t, Write(&yamlBuf, FormatYAML, m, nil))

	var yamlDecoded map[string]any
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &yamlDecoded))
	assert.Equal(t, "High Confidence", yamlDecoded["confidence"])
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, expect := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, expect, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderAuxiliaryViews(t *testing.T) {
	t.Parallel()

	term := NewTerminal(NewStyles(&bytes.Buffer{}))

	health := term.Draw(RenderHealth(smarthire.ProfileService, "http://localhost:8000", &smarthire.Health{Status: "error", Message: "Cannot connect to backend service"}))
	assert.Contains(t, health, "Offline")
	assert.Contains(t, health, "Disconnected")
	assert.Contains(t, health, "Cannot connect to backend service")

	list := term.Draw(RenderAssignments([]assignments.Assignment{
		assignments.New("jane_doe", analysis.RoleMatch{JobRole: "Data Scientist", Domain: "it", MatchScore: 82.5}, analyzedAt),
	}))
	assert.Contains(t, list, "jane_doe")
	assert.Contains(t, list, "Data Scientist")
	assert.Contains(t, list, "82.5% Match")

	assert.Contains(t, term.Draw(RenderAssignments(nil)), "No assignments yet")
	assert.Contains(t, term.Draw(RenderList("Domains", []string{"finance"}, "none")), "- finance")

	batch := term.Draw(RenderBatch([]BatchItem{
		{File: "a.txt", Result: sampleResult()},
		{File: "b.txt", Error: "HTTP status 500"},
		{File: "c.txt", Result: &smarthire.Result{}},
	}))
	assert.Contains(t, batch, "Batch Analysis (3 files)")
	assert.Contains(t, batch, "HTTP status 500")
	assert.Contains(t, batch, "no matches")
}

func TestRenderExplanationAndModelInfo(t *testing.T) {
	t.Parallel()

	term := NewTerminal(NewStyles(&bytes.Buffer{}))

	exp := term.Draw(RenderExplanation("Data Analyst", &analysis.Explanation{
		Method:      "SHAP",
		TotalImpact: 0.9,
		Explanations: []analysis.FeatureImpact{
			{Feature: "sql", NormalizedImpact: 0.2},
			{Feature: "tableau", NormalizedImpact: 0.7},
		},
	}))
	assert.Contains(t, exp, "Data Analyst")
	assert.Contains(t, exp, "SHAP Analysis")
	assert.Contains(t, exp, "Top influencing factors: tableau (70.0%), sql (20.0%)")

	info := term.Draw(RenderModelInfo(&smarthire.ModelInfo{
		Status:      "ready",
		ModelLoaded: true,
		Raw:         map[string]any{"status": "ready", "domains": 12, "algorithm": "tfidf"},
	}))
	assert.Contains(t, info, "Status: ready")
	assert.Contains(t, info, "Model loaded: true")
	assert.Less(t, strings.Index(info, "algorithm"), strings.Index(info, "domains"))
	assert.Equal(t, 1, strings.Count(info, "ready"))
}
