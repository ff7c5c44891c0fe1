package filtering

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/smart-hire/internal/analysis"
)

const notConfiguredMsg = "not configured"

// toggle holds the enabled state shared by all steps.
type toggle struct {
	enabled bool
	reason  string
}

func newToggle(enabled bool) toggle {
	if enabled {
		return toggle{enabled: true}
	}
	return toggle{reason: notConfiguredMsg}
}

func (t *toggle) Disable(reason string) {
	t.enabled = false
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return t.enabled }

type minimumScoreFilter struct {
	toggle
	minimum float64
}

// NewMinimumScore creates a filter that drops roles scoring below minimum.
func NewMinimumScore(minimum float64) Filter {
	return &minimumScoreFilter{toggle: newToggle(minimum > 0), minimum: minimum}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum > 100 {
		return errors.New("minimum score must not exceed 100")
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, roles []analysis.RoleMatch) ([]analysis.RoleMatch, Step, error) {
	initial := len(roles)
	left := slices.DeleteFunc(roles, func(r analysis.RoleMatch) bool {
		return r.MatchScore < f.minimum
	})

	return left, Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.FormatFloat(f.minimum, 'f', -1, 64)},
	}
}

type excludeDomainsFilter struct {
	toggle
	domains []string
}

// NewExcludeDomains creates a filter that drops roles of the given domains.
// Domains are compared case-insensitively.
func NewExcludeDomains(domains []string) Filter {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			normalized = append(normalized, d)
		}
	}

	return &excludeDomainsFilter{toggle: newToggle(len(normalized) > 0), domains: normalized}
}

func (f *excludeDomainsFilter) Name() string { return "exclude_domains" }

func (f *excludeDomainsFilter) Validate() error { return nil }

func (f *excludeDomainsFilter) Apply(_ context.Context, roles []analysis.RoleMatch) ([]analysis.RoleMatch, Step, error) {
	initial := len(roles)
	left := slices.DeleteFunc(roles, func(r analysis.RoleMatch) bool {
		return slices.Contains(f.domains, strings.ToLower(r.Domain))
	})

	return left, Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}, nil
}

func (f *excludeDomainsFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"domains": strings.Join(f.domains, ",")},
	}
}

type limitFilter struct {
	toggle
	limit int
}

// NewLimit creates a filter that keeps only the first limit roles.
func NewLimit(limit int) Filter {
	return &limitFilter{toggle: newToggle(limit != 0), limit: limit}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Validate() error {
	if f.limit < 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

func (f *limitFilter) Apply(_ context.Context, roles []analysis.RoleMatch) ([]analysis.RoleMatch, Step, error) {
	initial := len(roles)
	if initial <= f.limit {
		return roles, Step{Initial: initial, Left: initial}, nil
	}

	return roles[:f.limit], Step{Initial: initial, Dropped: initial - f.limit, Left: f.limit}, nil
}

func (f *limitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}
