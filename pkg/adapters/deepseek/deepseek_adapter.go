package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/manishiitg/deepseek-chat-go/interfaces"
	"github.com/manishiitg/deepseek-chat-go/llmtypes"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/packages/respjson"
	"github.com/openai/openai-go/v3/shared"
)

// DeepSeek-specific fields carried outside the standard OpenAI schema.
// The SDK surfaces them through the per-struct ExtraFields maps.
const (
	extraFieldCacheHitTokens  = "prompt_cache_hit_tokens"
	extraFieldCacheMissTokens = "prompt_cache_miss_tokens"
	extraFieldReasoning       = "reasoning_content"
)

// Adapter implements llmtypes.Model against the DeepSeek chat-completion
// API using the OpenAI Go SDK. DeepSeek is wire-compatible with the OpenAI
// chat completions endpoint; the base URL is set on the SDK client.
type Adapter struct {
	client  *openai.Client
	modelID string
	logger  interfaces.Logger
}

// NewAdapter creates a new adapter instance
func NewAdapter(client *openai.Client, modelID string, logger interfaces.Logger) *Adapter {
	return &Adapter{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

// GetModelID implements the llmtypes.Model interface
func (a *Adapter) GetModelID() string {
	return a.modelID
}

// GenerateContent implements the llmtypes.Model interface.
// Exactly one ContentResponse or error is produced per call attempt. When
// a streaming channel is configured, deltas are sent on it as they arrive
// and the channel is closed when the stream ends, whether or not an error
// occurred; partial output already delivered is never retracted.
func (a *Adapter) GenerateContent(ctx context.Context, messages []llmtypes.Message, options ...llmtypes.CallOption) (*llmtypes.ContentResponse, error) {
	// Parse call options
	opts := &llmtypes.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// Determine model ID (from option or default)
	modelID := a.modelID
	if opts.Model != "" {
		modelID = opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(modelID),
		Messages: convertMessages(messages),
	}
	if opts.Temperature > 0 {
		params.Temperature = param.NewOpt(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = param.NewOpt(int64(opts.MaxTokens))
	}

	if opts.StreamChan != nil {
		// Ask for usage on the final stream chunk
		params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: param.NewOpt(true),
		}
		return a.generateContentStreaming(ctx, modelID, params, opts)
	}

	result, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if a.logger != nil {
			a.logger.Errorf("deepseek completion failed: model=%s messages=%d err=%v", modelID, len(messages), err)
		}
		return nil, classifyError(err)
	}

	if len(result.Choices) == 0 {
		return nil, &llmtypes.APIError{Message: "response contained no choices"}
	}

	choice := result.Choices[0]
	resp := &llmtypes.ContentResponse{
		Content:          choice.Message.Content,
		ReasoningContent: extraString(choice.Message.JSON.ExtraFields, extraFieldReasoning),
		StopReason:       string(choice.FinishReason),
		Usage:            convertUsage(result.Usage),
	}

	if a.logger != nil {
		a.logger.Debugf("deepseek completion: model=%s stop=%s content=%d bytes", modelID, resp.StopReason, len(resp.Content))
	}

	return resp, nil
}

// generateContentStreaming handles streaming responses
func (a *Adapter) generateContentStreaming(ctx context.Context, modelID string, params openai.ChatCompletionNewParams, opts *llmtypes.CallOptions) (*llmtypes.ContentResponse, error) {
	stream := a.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	// The channel contract: closed when this call returns, error or not
	defer close(opts.StreamChan)

	var content strings.Builder
	var reasoning strings.Builder
	var finishReason string
	var usage *llmtypes.Usage

	for stream.Next() {
		chunk := stream.Current()

		// Usage arrives on the final chunk when include_usage is set
		if chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0 {
			usage = convertUsage(chunk.Usage)
		}

		for _, choice := range chunk.Choices {
			// Reasoner models interleave reasoning deltas before answer
			// deltas; both are surfaced in arrival order
			if delta := extraString(choice.Delta.JSON.ExtraFields, extraFieldReasoning); delta != "" {
				reasoning.WriteString(delta)
				select {
				case opts.StreamChan <- llmtypes.StreamChunk{
					Type:    llmtypes.StreamChunkTypeReasoning,
					Content: delta,
				}:
				case <-ctx.Done():
					return nil, classifyError(ctx.Err())
				}
			}

			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
				select {
				case opts.StreamChan <- llmtypes.StreamChunk{
					Type:    llmtypes.StreamChunkTypeContent,
					Content: choice.Delta.Content,
				}:
				case <-ctx.Done():
					return nil, classifyError(ctx.Err())
				}
			}

			if choice.FinishReason != "" {
				finishReason = string(choice.FinishReason)
			}
		}
	}

	if err := stream.Err(); err != nil {
		if a.logger != nil {
			a.logger.Errorf("deepseek streaming failed: model=%s err=%v", modelID, err)
		}
		// Usage is unavailable for an abnormally terminated stream
		return nil, classifyError(err)
	}

	return &llmtypes.ContentResponse{
		Content:          content.String(),
		ReasoningContent: reasoning.String(),
		StopReason:       finishReason,
		Usage:            usage,
	}, nil
}

// convertMessages converts history messages to the SDK param union
func convertMessages(messages []llmtypes.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llmtypes.ChatMessageTypeSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case llmtypes.ChatMessageTypeAI:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// convertUsage maps SDK usage onto the per-call accounting record.
// DeepSeek reports the cache split in prompt_cache_hit_tokens and
// prompt_cache_miss_tokens; the standard cached_tokens detail is used as a
// fallback. Returns nil when the provider reported nothing.
func convertUsage(u openai.CompletionUsage) *llmtypes.Usage {
	usage := &llmtypes.Usage{
		InputTokens:  int(u.PromptTokens),
		OutputTokens: int(u.CompletionTokens),
		TotalTokens:  int(u.TotalTokens),
	}
	if usage.InputTokens == 0 && usage.OutputTokens == 0 && usage.TotalTokens == 0 {
		return nil
	}

	hit, hitOK := extraInt(u.JSON.ExtraFields, extraFieldCacheHitTokens)
	if !hitOK && u.PromptTokensDetails.CachedTokens > 0 {
		hit = int(u.PromptTokensDetails.CachedTokens)
		hitOK = true
	}

	miss, missOK := extraInt(u.JSON.ExtraFields, extraFieldCacheMissTokens)
	if hitOK && !missOK {
		miss = usage.InputTokens - hit
		if miss < 0 {
			miss = 0
		}
	}

	usage.CacheHitTokens = hit
	usage.CacheMissTokens = miss
	return usage
}

// classifyError maps SDK errors onto the error taxonomy: rejected or
// malformed responses become APIError, everything else (network, timeout,
// cancellation) becomes TransportError.
func classifyError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &llmtypes.APIError{
			StatusCode: apierr.StatusCode,
			Message:    apierr.Message,
		}
	}
	return &llmtypes.TransportError{Err: err}
}

// extraInt decodes an integer extra field, reporting whether it was present
func extraInt(fields map[string]respjson.Field, key string) (int, bool) {
	field, ok := fields[key]
	if !ok || !field.Valid() {
		return 0, false
	}
	var n int
	if err := json.Unmarshal([]byte(field.Raw()), &n); err != nil {
		return 0, false
	}
	return n, true
}

// extraString decodes a string extra field, returning "" when absent
func extraString(fields map[string]respjson.Field, key string) string {
	field, ok := fields[key]
	if !ok || !field.Valid() {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(field.Raw()), &s); err != nil {
		return ""
	}
	return s
}

var _ llmtypes.Model = (*Adapter)(nil)
