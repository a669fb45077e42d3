package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/llm"
	"github.com/jonathan/resume-insight/internal/scoring"
)

type mockClient struct {
	converseFunc func(ctx context.Context, history []llm.Message, input string) (string, error)
}

func (m *mockClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockClient) Converse(ctx context.Context, history []llm.Message, input string) (string, error) {
	return m.converseFunc(ctx, history, input)
}

func (m *mockClient) Close() error { return nil }

func TestStore_Turn_AccumulatesHistory(t *testing.T) {
	var inputs []string
	client := &mockClient{
		converseFunc: func(_ context.Context, history []llm.Message, input string) (string, error) {
			inputs = append(inputs, input)
			if len(history) == 0 {
				return "first reply", nil
			}
			return "second reply", nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	reply, err := store.Turn(context.Background(), "sess-1", "How can I improve?", sampleAssessment())
	require.NoError(t, err)
	assert.Equal(t, "first reply", reply)

	reply, err = store.Turn(context.Background(), "sess-1", "What about keywords?", sampleAssessment())
	require.NoError(t, err)
	assert.Equal(t, "second reply", reply)

	history := store.GetOrCreate("sess-1", scoring.Assessment{}).History()
	require.Len(t, history, 4)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, llm.RoleModel, history[1].Role)
	assert.Equal(t, "first reply", history[1].Text)
	assert.Equal(t, llm.RoleUser, history[2].Role)
	assert.Equal(t, "second reply", history[3].Text)

	require.Len(t, inputs, 2)
	assert.Contains(t, inputs[0], "expert resume consultant", "persona prepended on first turn")
	assert.NotContains(t, inputs[1], "expert resume consultant")
	assert.Contains(t, inputs[1], "User Question: What about keywords?")
	assert.Contains(t, inputs[1], "Overall Score: 81/100", "framed question carries the context summary")
}

func TestStore_SnapshotFixedAtCreation(t *testing.T) {
	var seenInput string
	client := &mockClient{
		converseFunc: func(_ context.Context, _ []llm.Message, input string) (string, error) {
			seenInput = input
			return "ok", nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	first := sampleAssessment()
	store.GetOrCreate("sess-1", first)

	later := sampleAssessment()
	later.OverallScore = 15

	_, err := store.Turn(context.Background(), "sess-1", "question", later)
	require.NoError(t, err)

	assert.Contains(t, seenInput, "Overall Score: 81/100")
	assert.NotContains(t, seenInput, "Overall Score: 15/100")
	assert.Equal(t, 81, store.GetOrCreate("sess-1", later).Snapshot().OverallScore)
}

func TestStore_FailedTurnReturnsApologyAndKeepsHistory(t *testing.T) {
	fail := false
	client := &mockClient{
		converseFunc: func(_ context.Context, _ []llm.Message, _ string) (string, error) {
			if fail {
				return "", errors.New("model unavailable")
			}
			return "good reply", nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	_, err := store.Turn(context.Background(), "sess-1", "first question", sampleAssessment())
	require.NoError(t, err)

	fail = true
	reply, err := store.Turn(context.Background(), "sess-1", "second question", sampleAssessment())
	require.NoError(t, err, "model failures surface as the apology, not an error")
	assert.Equal(t, apologyReply, reply)

	history := store.GetOrCreate("sess-1", scoring.Assessment{}).History()
	require.Len(t, history, 2, "failed turn appends nothing")
	assert.Equal(t, "good reply", history[1].Text)
}

func TestStore_TurnStream(t *testing.T) {
	const reply = "Your resume scores well.\nAdd more metrics."
	client := &mockClient{
		converseFunc: func(_ context.Context, _ []llm.Message, _ string) (string, error) {
			return reply, nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	chunks, err := store.TurnStream(context.Background(), "sess-1", "question", sampleAssessment())
	require.NoError(t, err)

	var sb strings.Builder
	count := 0
	for chunk := range chunks {
		sb.WriteString(chunk)
		count++
	}

	assert.Equal(t, reply, sb.String(), "concatenated chunks reproduce the reply exactly")
	assert.Greater(t, count, 1)

	history := store.GetOrCreate("sess-1", scoring.Assessment{}).History()
	require.Len(t, history, 2)
	assert.Equal(t, reply, history[1].Text)
}

func TestStore_TurnStream_ContextCancellation(t *testing.T) {
	client := &mockClient{
		converseFunc: func(_ context.Context, _ []llm.Message, _ string) (string, error) {
			return "one two three four five six", nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	chunks, err := store.TurnStream(ctx, "sess-1", "question", sampleAssessment())
	require.NoError(t, err)

	<-chunks
	cancel()

	// The channel must close rather than block once the consumer is gone.
	for range chunks {
	}
}

func TestStore_Clear(t *testing.T) {
	client := &mockClient{
		converseFunc: func(_ context.Context, _ []llm.Message, _ string) (string, error) {
			return "ok", nil
		},
	}
	store := NewStore(client, zap.NewNop(), 0)

	store.GetOrCreate("sess-1", sampleAssessment())

	assert.True(t, store.Clear("sess-1"))
	assert.False(t, store.Clear("sess-1"))
	assert.False(t, store.Clear("never-existed"))
}
