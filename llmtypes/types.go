package llmtypes

import (
	"context"
	"fmt"
)

// Model is the core interface for chat-completion implementations
type Model interface {
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
	// GetModelID returns the model ID for this instance
	// Returns empty string if the model ID is not available
	GetModelID() string
}

// ChatMessageType represents the role of a chat message
type ChatMessageType string

const (
	ChatMessageTypeSystem ChatMessageType = "system"
	ChatMessageTypeHuman  ChatMessageType = "user"
	ChatMessageTypeAI     ChatMessageType = "assistant"
)

// Message represents a single role-tagged entry in the conversation history.
// The full ordered sequence is sent with every request; the API is stateless
// per call.
type Message struct {
	Role    ChatMessageType
	Content string
}

// SystemMessage creates a system message
func SystemMessage(text string) Message {
	return Message{Role: ChatMessageTypeSystem, Content: text}
}

// UserMessage creates a user message
func UserMessage(text string) Message {
	return Message{Role: ChatMessageTypeHuman, Content: text}
}

// AssistantMessage creates an assistant message
func AssistantMessage(text string) Message {
	return Message{Role: ChatMessageTypeAI, Content: text}
}

// StreamChunkType represents the type of a streaming chunk
type StreamChunkType string

const (
	StreamChunkTypeContent   StreamChunkType = "content"   // Answer text delta
	StreamChunkTypeReasoning StreamChunkType = "reasoning" // Reasoning text delta (reasoner models only)
)

// StreamChunk represents a single chunk in a streaming response.
// Chunks arrive as an ordered, finite, non-restartable sequence; the
// channel carrying them is closed when the stream ends.
type StreamChunk struct {
	Type    StreamChunkType
	Content string
}

// ContentResponse represents the complete response for one call attempt
type ContentResponse struct {
	// Content is the assistant's answer text
	Content string
	// ReasoningContent is the chain-of-thought text returned by reasoner
	// models. Empty for plain chat models. Never part of the history.
	ReasoningContent string
	// StopReason is the provider finish reason ("stop", "length", ...)
	StopReason string
	// Usage is the per-call token accounting. Nil when the provider did
	// not return usage metadata (e.g. the stream terminated abnormally).
	Usage *Usage
}

// Usage is the per-call token accounting returned by the completion
// service. Input tokens are broken down into cache-hit and cache-miss
// when the provider reports the split; a well-formed response satisfies
// CacheHitTokens + CacheMissTokens == InputTokens, but consumers must not
// assume the breakdown is present.
type Usage struct {
	InputTokens     int
	OutputTokens    int
	TotalTokens     int
	CacheHitTokens  int
	CacheMissTokens int
}

// APIError is returned when the remote service rejects the request or
// answers with a payload that cannot be interpreted. Recoverable per turn.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// TransportError is returned for network failures, timeouts and
// cancellations. Recoverable per turn.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CallOptions holds all call options for content generation
type CallOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	StreamChan  chan<- StreamChunk // Channel for streaming chunks; closed by the adapter when done
}

// CallOption is a function type for setting call options
type CallOption func(*CallOptions)
