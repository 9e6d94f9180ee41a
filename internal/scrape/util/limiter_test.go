package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitURLBucketsPerHost(t *testing.T) {
	hl := NewHostLimiter(1, 1) // burst 1: one immediate request per host
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, hl.WaitURL(ctx, "https://a.example.com/x"))
	require.NoError(t, hl.WaitURL(ctx, "https://b.example.com/x"))
	require.NoError(t, hl.WaitURL(ctx, "://not-a-url")) // fallback bucket
}

func TestWaitURLThrottlesSameHost(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, hl.WaitURL(ctx, "https://a.example.com/x"))
	// second token is ~1000s away; Wait must bail on the deadline
	assert.Error(t, hl.WaitURL(ctx, "https://a.example.com/y"))
}
