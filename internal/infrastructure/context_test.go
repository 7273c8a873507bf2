package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")
	assert.Equal(t, "trace-1", GetTraceID(ctx))
}

func TestGetTraceIDEmptyContext(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	generated := GetTraceID(ctx)
	assert.NotEmpty(t, generated)

	// An existing trace ID is kept.
	again := EnsureTraceID(ctx)
	assert.Equal(t, generated, GetTraceID(again))
}

func TestGenerateTraceIDIsUnique(t *testing.T) {
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}
