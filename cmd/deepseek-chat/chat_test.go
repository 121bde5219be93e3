package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/manishiitg/deepseek-chat-go/llmtypes"
	"github.com/manishiitg/deepseek-chat-go/pkg/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel is a scripted llmtypes.Model for turn-semantics tests
type fakeModel struct {
	resp   *llmtypes.ContentResponse
	err    error
	chunks []llmtypes.StreamChunk

	calls [][]llmtypes.Message
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llmtypes.Message, options ...llmtypes.CallOption) (*llmtypes.ContentResponse, error) {
	f.calls = append(f.calls, messages)

	opts := &llmtypes.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.StreamChan != nil {
		defer close(opts.StreamChan)
		for _, chunk := range f.chunks {
			select {
			case opts.StreamChan <- chunk:
			case <-ctx.Done():
				return nil, &llmtypes.TransportError{Err: ctx.Err()}
			}
		}
	}

	if ctx.Err() != nil {
		return nil, &llmtypes.TransportError{Err: ctx.Err()}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeModel) GetModelID() string { return "fake-model" }

func newTestSession(model llmtypes.Model, cost bool, stream bool) *session {
	return &session{
		llm:    model,
		conv:   NewConversation("You are a helpful assistant."),
		ledger: &pricing.Ledger{},
		table:  pricing.DeepSeekChatCNY(),
		opts: chatOptions{
			model:        "deepseek-chat",
			systemPrompt: "You are a helpful assistant.",
			cost:         cost,
			stream:       stream,
		},
	}
}

func TestRunTurnSuccessCommitsUserThenAssistant(t *testing.T) {
	model := &fakeModel{resp: &llmtypes.ContentResponse{Content: "hi there", StopReason: "stop"}}
	sess := newTestSession(model, false, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "hello", &out)

	require.NoError(t, err)

	// Exactly one call, carrying system prompt plus the user message
	require.Len(t, model.calls, 1)
	require.Len(t, model.calls[0], 2)
	assert.Equal(t, llmtypes.ChatMessageTypeSystem, model.calls[0][0].Role)
	assert.Equal(t, llmtypes.ChatMessageTypeHuman, model.calls[0][1].Role)
	assert.Equal(t, "hello", model.calls[0][1].Content)

	// History committed: system, user, assistant
	messages := sess.conv.Snapshot()
	require.Len(t, messages, 3)
	assert.Equal(t, llmtypes.ChatMessageTypeAI, messages[2].Role)
	assert.Equal(t, "hi there", messages[2].Content)

	assert.Contains(t, out.String(), "hi there")
}

func TestRunTurnStreamingPrintsAndCommits(t *testing.T) {
	model := &fakeModel{
		resp: &llmtypes.ContentResponse{Content: "streamed reply", StopReason: "stop"},
		chunks: []llmtypes.StreamChunk{
			{Type: llmtypes.StreamChunkTypeContent, Content: "streamed "},
			{Type: llmtypes.StreamChunkTypeContent, Content: "reply"},
		},
	}
	sess := newTestSession(model, false, true)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "hello", &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "streamed reply")
	assert.Equal(t, 3, sess.conv.Len())
}

func TestRunTurnFailureRollsBackHistory(t *testing.T) {
	model := &fakeModel{err: &llmtypes.APIError{StatusCode: 500, Message: "server blew up"}}
	sess := newTestSession(model, true, false)

	before := sess.conv.Snapshot()
	var out strings.Builder
	err := runTurn(context.Background(), sess, "hello", &out)

	require.Error(t, err)
	assert.Equal(t, before, sess.conv.Snapshot(), "failed turn must leave history unchanged")
	assert.Zero(t, sess.ledger.Turns)
	assert.Zero(t, sess.ledger.TotalCost)
}

func TestRunTurnCancelledDiscardsTurn(t *testing.T) {
	model := &fakeModel{
		resp: &llmtypes.ContentResponse{Content: "never printed"},
		chunks: []llmtypes.StreamChunk{
			{Type: llmtypes.StreamChunkTypeContent, Content: "partial"},
		},
	}
	sess := newTestSession(model, true, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := sess.conv.Snapshot()
	var out strings.Builder
	err := runTurn(ctx, sess, "hello", &out)

	require.Error(t, err)
	var transportErr *llmtypes.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, before, sess.conv.Snapshot())
	assert.Zero(t, sess.ledger.Turns)
	assert.Zero(t, sess.ledger.TotalCost)
}

func TestRunTurnRecordsCostWhenEnabled(t *testing.T) {
	model := &fakeModel{resp: &llmtypes.ContentResponse{
		Content: "answer",
		Usage: &llmtypes.Usage{
			InputTokens:     4360,
			CacheHitTokens:  4288,
			CacheMissTokens: 72,
			OutputTokens:    135,
			TotalTokens:     4495,
		},
	}}
	sess := newTestSession(model, true, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "hello", &out)

	require.NoError(t, err)
	assert.Equal(t, 1, sess.ledger.Turns)
	assert.Greater(t, sess.ledger.TotalCost, 0.0)
	assert.Contains(t, out.String(), "TOKEN USAGE")
	assert.Contains(t, out.String(), "cache hit: 4288")
}

func TestRunTurnMissingUsageAddsNoCost(t *testing.T) {
	model := &fakeModel{resp: &llmtypes.ContentResponse{Content: "answer"}}
	sess := newTestSession(model, true, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "hello", &out)

	require.NoError(t, err)
	assert.Zero(t, sess.ledger.Turns)
	assert.Zero(t, sess.ledger.TotalCost)
	assert.Contains(t, out.String(), "token usage unavailable")
}

func TestRunTurnExpandsInclusionDirectives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.txt")
	require.NoError(t, os.WriteFile(path, []byte("included body"), 0644))

	model := &fakeModel{resp: &llmtypes.ContentResponse{Content: "ok"}}
	sess := newTestSession(model, false, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, fmt.Sprintf("look: @file(%s)", path), &out)

	require.NoError(t, err)
	require.Len(t, model.calls, 1)
	sent := model.calls[0][1].Content
	assert.Contains(t, sent, "included body")
	assert.NotContains(t, sent, "@file(")
	assert.Contains(t, out.String(), "[reading file "+path+"]")
}

func TestRunTurnMissingIncludeStillSendsTurn(t *testing.T) {
	model := &fakeModel{resp: &llmtypes.ContentResponse{Content: "ok"}}
	sess := newTestSession(model, false, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "see @file(/nope.txt)", &out)

	require.NoError(t, err)
	require.Len(t, model.calls, 1)
	assert.Contains(t, model.calls[0][1].Content, "[could not read file /nope.txt:")
	assert.Equal(t, 3, sess.conv.Len())
}

func TestRunTurnNonStreamingPrintsReasoning(t *testing.T) {
	model := &fakeModel{resp: &llmtypes.ContentResponse{
		Content:          "final answer",
		ReasoningContent: "step by step",
	}}
	sess := newTestSession(model, false, false)

	var out strings.Builder
	err := runTurn(context.Background(), sess, "why?", &out)

	require.NoError(t, err)
	printed := out.String()
	assert.Contains(t, printed, "==Reasoning==")
	assert.Less(t, strings.Index(printed, "step by step"), strings.Index(printed, "final answer"))

	// Reasoning is never committed to history
	messages := sess.conv.Snapshot()
	assert.Equal(t, "final answer", messages[2].Content)
}
