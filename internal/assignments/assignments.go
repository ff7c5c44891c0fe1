// Package assignments keeps the bounded, newest-first history of role assignments.
package assignments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/smart-hire/internal/analysis"
)

const (
	// StorageKey namespaces the serialized list inside a Store.
	StorageKey = "recentAssignments"
	// MaxEntries is how many assignments are kept; older ones are dropped.
	MaxEntries = 10

	StatusAssigned = "Assigned"
)

// ErrNotFound is returned by a Store for a key that was never written.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type Assignment struct {
	ID            int64   `json:"id" yaml:"id"`
	CandidateName string  `json:"candidateName" yaml:"candidateName"`
	Role          string  `json:"role" yaml:"role"`
	Domain        string  `json:"domain" yaml:"domain"`
	Confidence    float64 `json:"confidence" yaml:"confidence"`
	AssignedDate  string  `json:"assignedDate" yaml:"assignedDate"`
	Status        string  `json:"status" yaml:"status"`
}

// New builds an assignment of the role to the candidate created at the given time.
func New(candidate string, role analysis.RoleMatch, at time.Time) Assignment {
	return Assignment{
		ID:            at.UnixMilli(),
		CandidateName: candidate,
		Role:          role.JobRole,
		Domain:        role.Domain,
		Confidence:    role.MatchScore,
		AssignedDate:  at.UTC().Format(time.RFC3339Nano),
		Status:        StatusAssigned,
	}
}

// Log is a single-writer history. Concurrent writers overwrite each other.
type Log struct {
	store Store
}

func NewLog(store Store) *Log {
	return &Log{store: store}
}

// Record prepends the assignment and keeps only the MaxEntries newest ones.
func (l *Log) Record(ctx context.Context, a Assignment) error {
	current, err := l.List(ctx)
	if err != nil {
		return err
	}

	updated := make([]Assignment, 0, len(current)+1)
	updated = append(updated, a)
	updated = append(updated, current...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshal assignments: %w", err)
	}

	if err := l.store.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("store assignments: %w", err)
	}

	return nil
}

// List returns the stored assignments, newest first.
func (l *Log) List(ctx context.Context) ([]Assignment, error) {
	data, err := l.store.Get(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return []Assignment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	var list []Assignment
	if len(data) > 0 {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode assignments: %w", err)
		}
	}

	if list == nil {
		list = []Assignment{}
	}

	return list, nil
}
