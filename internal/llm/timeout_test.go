package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deadlineProbe struct {
	hadDeadline bool
}

func (p *deadlineProbe) GenerateJSON(ctx context.Context, _ string) (string, error) {
	_, p.hadDeadline = ctx.Deadline()
	return "{}", nil
}

func (p *deadlineProbe) Converse(ctx context.Context, _ []Message, _ string) (string, error) {
	_, p.hadDeadline = ctx.Deadline()
	return "ok", nil
}

func (p *deadlineProbe) Close() error { return nil }

func TestWithTimeout(t *testing.T) {
	probe := &deadlineProbe{}
	client := WithTimeout(probe, time.Minute)

	_, err := client.GenerateJSON(context.Background(), "prompt")
	require.NoError(t, err)
	assert.True(t, probe.hadDeadline)

	probe.hadDeadline = false
	_, err = client.Converse(context.Background(), nil, "input")
	require.NoError(t, err)
	assert.True(t, probe.hadDeadline)
}

func TestWithTimeout_Disabled(t *testing.T) {
	probe := &deadlineProbe{}
	assert.Same(t, probe, WithTimeout(probe, 0).(*deadlineProbe))
}
