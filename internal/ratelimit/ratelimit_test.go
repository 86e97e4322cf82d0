package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckConnect_FailOpenWithoutRedis(t *testing.T) {
	limiter := NewLimiter(nil)
	assert.NoError(t, limiter.CheckConnect(context.Background(), "10.0.0.1"))

	var nilLimiter *Limiter
	assert.NoError(t, nilLimiter.CheckConnect(context.Background(), "10.0.0.1"))
}

func TestCheckConnect_EmptyIPAllowed(t *testing.T) {
	limiter := NewLimiter(nil)
	assert.NoError(t, limiter.CheckConnect(context.Background(), ""))
}

func TestDefaultConnectLimits(t *testing.T) {
	limits := DefaultConnectLimits()
	assert.Equal(t, 60, limits.IPLimit)
	assert.Equal(t, time.Minute, limits.IPWindow)
}
