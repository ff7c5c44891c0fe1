// Package filtering applies optional client-side steps to the roles returned by an analysis.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/analysis"
)

// Filter represents a single filtering step applied to roles.
//
// Steps may drop roles but never reorder them: the first remaining role is still the
// primary recommendation.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, roles []analysis.RoleMatch) ([]analysis.RoleMatch, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
// Zero values leave the matching step disabled.
type Config struct {
	MinimumScore   float64  `mapstructure:"minimum-score"`
	ExcludeDomains []string `mapstructure:"exclude-domains"`
	Limit          int      `mapstructure:"limit"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name" yaml:"name"`
	Enabled bool              `json:"enabled" yaml:"enabled"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// New builds the steps in their fixed order.
func New(cfg *Config) []Filter {
	if cfg == nil {
		cfg = &Config{}
	}

	return []Filter{
		NewMinimumScore(cfg.MinimumScore),
		NewExcludeDomains(cfg.ExcludeDomains),
		NewLimit(cfg.Limit),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the remaining roles.
// The input slice is not modified.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, roles []analysis.RoleMatch) ([]analysis.RoleMatch, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	current := append([]analysis.RoleMatch{}, roles...)
	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		current = next
	}

	return current, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
