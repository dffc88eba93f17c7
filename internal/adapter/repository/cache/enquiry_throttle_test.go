package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptCounter answers the hit script in memory and records the expiry it
// was asked to set per key.
type scriptCounter struct {
	redis.Scripter
	hits   map[string]int64
	expiry map[string]any
	err    error
}

func newScriptCounter() *scriptCounter {
	return &scriptCounter{hits: map[string]int64{}, expiry: map[string]any{}}
}

func (s *scriptCounter) EvalSha(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	k := keys[0]
	s.hits[k]++
	if s.hits[k] == 1 {
		s.expiry[k] = args[0]
	}
	cmd.SetVal(s.hits[k])
	return cmd
}

func TestEnquiryThrottle_CountsPerKey(t *testing.T) {
	ctx := context.Background()
	counter := newScriptCounter()
	throttle := NewEnquiryThrottle(counter, 2, 10*time.Minute)

	got := []bool{}
	for i := 0; i < 3; i++ {
		ok, err := throttle.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		got = append(got, ok)
	}
	assert.Equal(t, []bool{true, true, false}, got)

	ok, err := throttle.Allow(ctx, "203.0.113.8")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, int64(3), counter.hits[throttleKeyPrefix+"203.0.113.7"])
	assert.Equal(t, int64(10*time.Minute/time.Millisecond), counter.expiry[throttleKeyPrefix+"203.0.113.7"])
}

func TestEnquiryThrottle_FailsOpen(t *testing.T) {
	counter := newScriptCounter()
	counter.err = errors.New("connection refused")
	throttle := NewEnquiryThrottle(counter, 1, time.Minute)

	ok, err := throttle.Allow(context.Background(), "203.0.113.7")
	assert.True(t, ok)
	assert.ErrorContains(t, err, "connection refused")
}
