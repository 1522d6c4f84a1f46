package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnrichContext(t *testing.T) {
	ctx := EnrichContext(context.Background(), "req-1")
	time.Sleep(2 * time.Millisecond)

	id, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
	assert.GreaterOrEqual(t, GetElapsedTime(ctx), 2*time.Millisecond)
}

func TestGetElapsedTime_WithoutStartTime(t *testing.T) {
	assert.Zero(t, GetElapsedTime(context.Background()))
}
