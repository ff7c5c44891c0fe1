package batch

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/smarthire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAnalyzer struct {
	mu      sync.Mutex
	active  int
	peak    int
	calls   atomic.Int32
	delay   time.Duration
	failing string
}

func (f *fakeAnalyzer) AnalyzeFile(ctx context.Context, path string) (*smarthire.Result, error) {
	f.calls.Add(1)

	f.mu.Lock()
	f.active++
	f.peak = max(f.peak, f.active)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(f.delay):
	}

	if f.failing != "" && strings.Contains(path, f.failing) {
		return nil, &smarthire.HTTPError{StatusCode: 500, Message: "boom"}
	}

	return &smarthire.Result{TopRoles: []analysis.RoleMatch{{JobRole: "role for " + path, MatchScore: 70}}}, nil
}

func TestRunKeepsInputOrder(t *testing.T) {
	analyzer := &fakeAnalyzer{delay: 5 * time.Millisecond, failing: "bad"}
	files := []string{"a.txt", "bad.txt", "c.txt", "d.txt", "e.txt"}

	items := Run(context.Background(), zap.NewNop(), analyzer, files, 2)

	require.Len(t, items, len(files))
	for i, file := range files {
		assert.Equal(t, file, items[i].File)
	}

	assert.Equal(t, "boom", items[1].Error)
	assert.Nil(t, items[1].Result)

	require.NotNil(t, items[4].Result)
	assert.Equal(t, "role for e.txt", items[4].Result.TopRoles[0].JobRole)
	assert.Empty(t, items[4].Error)

	assert.EqualValues(t, len(files), analyzer.calls.Load())
	assert.LessOrEqual(t, analyzer.peak, 2)
}

func TestRunDefaultConcurrency(t *testing.T) {
	analyzer := &fakeAnalyzer{delay: 10 * time.Millisecond}
	files := make([]string, DefaultConcurrency*2)
	for i := range files {
		files[i] = "resume.txt"
	}

	items := Run(context.Background(), zap.NewNop(), analyzer, files, 0)

	assert.Len(t, items, len(files))
	assert.LessOrEqual(t, analyzer.peak, DefaultConcurrency)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := &fakeAnalyzer{}
	items := Run(ctx, zap.NewNop(), analyzer, []string{"a.txt", "b.txt"}, 1)

	require.ErrorIs(t, ctx.Err(), context.Canceled)
	for _, item := range items {
		assert.Equal(t, context.Canceled.Error(), item.Error)
	}
	assert.Zero(t, analyzer.calls.Load())
}

func TestRunEmpty(t *testing.T) {
	items := Run(context.Background(), zap.NewNop(), &fakeAnalyzer{}, nil, 3)
	assert.Empty(t, items)
}
