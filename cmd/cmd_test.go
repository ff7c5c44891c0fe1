package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/assignments"
	"github.com/spigell/smart-hire/internal/filtering"
	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/session"
	"github.com/spigell/smart-hire/internal/smarthire"
)

func sampleResult() *smarthire.Result {
	return &smarthire.Result{TopRoles: []analysis.RoleMatch{
		{JobRole: "Data Scientist", MatchScore: 82.5},
		{JobRole: "Data Analyst", MatchScore: 64},
	}}
}

func TestFindRole(t *testing.T) {
	result := sampleResult()

	role, err := findRole(result, "PRIMARY")
	if err != nil || role.JobRole != "Data Scientist" {
		t.Fatalf("expected primary role, got %v, %v", role, err)
	}

	role, err = findRole(result, " data analyst ")
	if err != nil || role.JobRole != "Data Analyst" {
		t.Fatalf("expected alternative role, got %v, %v", role, err)
	}

	if _, err := findRole(result, "Clerk"); err == nil {
		t.Fatalf("expected error for unknown role")
	}

	if _, err := findRole(&smarthire.Result{}, assignPrimary); err == nil {
		t.Fatalf("expected error for empty result")
	}
}

func textCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("text", "", "")
	cmd.Flags().String("text-file", "", "")
	return cmd
}

func TestResumeText(t *testing.T) {
	cmd := textCommand()
	if err := cmd.Flags().Set("text", "inline resume"); err != nil {
		t.Fatal(err)
	}

	text, err := resumeText(cmd, nil)
	if err != nil || text != "inline resume" {
		t.Fatalf("unexpected text %q, %v", text, err)
	}

	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("resume from file"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd = textCommand()
	if err := cmd.Flags().Set("text-file", path); err != nil {
		t.Fatal(err)
	}

	text, err = resumeText(cmd, nil)
	if err != nil || text != "resume from file" {
		t.Fatalf("unexpected text %q, %v", text, err)
	}

	stdin, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer stdin.Close()

	text, err = resumeText(textCommand(), stdin)
	if err != nil || text != "resume from file" {
		t.Fatalf("expected piped text, got %q, %v", text, err)
	}

	if _, err := resumeText(textCommand(), nil); err == nil {
		t.Fatalf("expected error without any input")
	}
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		err    error
		expect string
	}{
		{err: &smarthire.ValidationError{Reason: "Please enter resume text"}, expect: "Please enter resume text"},
		{err: &smarthire.NetworkError{Err: errors.New("connection refused")}, expect: "Cannot connect to backend service"},
		{err: &smarthire.HTTPError{StatusCode: 500, Message: "model not loaded"}, expect: "model not loaded"},
	}

	for _, tc := range cases {
		if got := describeError(tc.err); !strings.Contains(got, tc.expect) {
			t.Fatalf("expected %q in %q", tc.expect, got)
		}
	}
}

func TestNewClient(t *testing.T) {
	client, err := newClient(&BackendConfig{
		Profile:       "b",
		Timeout:       5 * time.Second,
		TopK:          3,
		MinTextLength: 50,
		UserAgent:     "recruiting-desk",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Profile() != smarthire.ProfileService || client.APIURL != smarthire.DefaultServiceURL {
		t.Fatalf("unexpected backend %s %s", client.Profile(), client.APIURL)
	}
	if client.HTTPClient.Timeout != 5*time.Second || client.TopK != 3 || client.MinTextLength != 50 || client.UserAgent != "recruiting-desk" {
		t.Fatalf("backend settings were not applied: %+v", client)
	}

	if _, err := newClient(&BackendConfig{Profile: "grpc"}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}

func TestOpenAssignments(t *testing.T) {
	for _, backend := range []string{assignmentsBackendFile, assignmentsBackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			d := &deps{
				logger: zap.NewNop(),
				config: &Config{Assignments: &AssignmentsConfig{
					Backend: backend,
					Path:    filepath.Join(t.TempDir(), "assignments"),
				}},
			}

			history, closeStore, err := d.openAssignments()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer closeStore()

			ctx := context.Background()
			role := analysis.RoleMatch{JobRole: "Data Scientist", MatchScore: 82.5}
			if err := history.Record(ctx, assignments.New("jane_doe", role, time.Now())); err != nil {
				t.Fatalf("record: %v", err)
			}

			list, err := history.List(ctx)
			if err != nil || len(list) != 1 || list[0].Role != "Data Scientist" {
				t.Fatalf("unexpected list %v, %v", list, err)
			}
		})
	}

	d := &deps{logger: zap.NewNop(), config: &Config{Assignments: &AssignmentsConfig{Backend: "redis"}}}
	if _, _, err := d.openAssignments(); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}
}

func newTestRun(t *testing.T, filters *filtering.Config, assignTarget string) (*analysisRun, *observer.ObservedLogs) {
	t.Helper()

	router := chi.NewRouter()
	router.Post("/predict", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"predicted_domain": "information-technology",
			"top_roles": [
				{"job_role": "Data Scientist", "domain": "information-technology", "match_score": 82.5, "matching_keywords": ["python"]},
				{"job_role": "Data Analyst", "domain": "information-technology", "match_score": 64, "matching_keywords": ["sql"]}
			]
		}`))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)

	store := &AssignmentsConfig{
		Backend: assignmentsBackendFile,
		Path:    filepath.Join(t.TempDir(), "assignments.json"),
	}

	d := &deps{
		config: &Config{Filters: filters, Assignments: store},
		logger: l,
		client: smarthire.New(l, smarthire.ProfileDashboard, server.URL),
		format: render.FormatJSON,
		out:    io.Discard,
	}

	return &analysisRun{deps: d, session: session.New(), assignTarget: assignTarget}, logs
}

func writeResume(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("python developer with five years of data science experience"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func listAssignments(t *testing.T, r *analysisRun) []assignments.Assignment {
	t.Helper()

	history, closeStore, err := r.openAssignments()
	if err != nil {
		t.Fatalf("open assignments: %v", err)
	}
	defer closeStore()

	list, err := history.List(context.Background())
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	return list
}

func TestFailedAnalysisKeepsPreviousCandidate(t *testing.T) {
	ctx := context.Background()
	run, _ := newTestRun(t, nil, "")

	if err := run.analyzeFile(ctx, writeResume(t, "alice.txt")); err != nil {
		t.Fatalf("analyze alice: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "bob.txt")
	if err := run.analyzeFile(ctx, missing); err == nil {
		t.Fatalf("expected error for missing file")
	}

	if got := run.session.CandidateName(); got != "alice" {
		t.Fatalf("expected candidate to stay alice, got %q", got)
	}

	if err := run.handleAction(ctx, PromptAssignPrimary); err != nil {
		t.Fatalf("assign: %v", err)
	}

	list := listAssignments(t, run)
	if len(list) != 1 {
		t.Fatalf("expected one assignment, got %d", len(list))
	}
	if list[0].CandidateName != "alice" || list[0].Role != "Data Scientist" {
		t.Fatalf("unexpected assignment: %+v", list[0])
	}
}

func TestAssignTargetSurvivesLimit(t *testing.T) {
	ctx := context.Background()

	limited, _ := newTestRun(t, &filtering.Config{Limit: 1}, "")
	if err := limited.analyzeFile(ctx, writeResume(t, "alice.txt")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got := len(limited.session.Current.TopRoles); got != 1 {
		t.Fatalf("expected limit to keep one role, got %d", got)
	}

	run, logs := newTestRun(t, &filtering.Config{Limit: 1}, "Data Analyst")
	if err := run.analyzeFile(ctx, writeResume(t, "alice.txt")); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if err := run.assign(ctx, run.assignTarget); err != nil {
		t.Fatalf("assign: %v", err)
	}

	list := listAssignments(t, run)
	if len(list) != 1 || list[0].Role != "Data Analyst" {
		t.Fatalf("unexpected assignments: %+v", list)
	}

	entries := logs.FilterMessage("filter status").All()
	if len(entries) != 1 {
		t.Fatalf("expected filter status to be logged once, got %d", len(entries))
	}

	statuses, ok := entries[0].ContextMap()["filters"].([]filtering.Status)
	if !ok || len(statuses) != 3 {
		t.Fatalf("unexpected filter status field: %#v", entries[0].ContextMap()["filters"])
	}
	if statuses[2].Name != "limit" || statuses[2].Enabled || statuses[2].Reason != "role requested for assignment" {
		t.Fatalf("expected limit to be disabled, got %+v", statuses[2])
	}
}
