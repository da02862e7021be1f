package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddRejectsBadSpec(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Add("every now and then", "sync", time.Second, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(zerolog.Nop())
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("@every 1s", "sync", time.Second, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))
	assert.Equal(t, 1, s.Len())

	s.Start()
	defer s.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
