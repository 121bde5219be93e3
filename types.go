package deepseekchat

import (
	"github.com/manishiitg/deepseek-chat-go/llmtypes"
)

// Re-export types from llmtypes for convenience
type Model = llmtypes.Model
type ChatMessageType = llmtypes.ChatMessageType
type Message = llmtypes.Message
type StreamChunk = llmtypes.StreamChunk
type ContentResponse = llmtypes.ContentResponse
type Usage = llmtypes.Usage
type APIError = llmtypes.APIError
type TransportError = llmtypes.TransportError
type CallOptions = llmtypes.CallOptions
type CallOption = llmtypes.CallOption

// Re-export constants
const (
	ChatMessageTypeSystem = llmtypes.ChatMessageTypeSystem
	ChatMessageTypeHuman  = llmtypes.ChatMessageTypeHuman
	ChatMessageTypeAI     = llmtypes.ChatMessageTypeAI
)

// Re-export functions
var (
	WithModel         = llmtypes.WithModel
	WithTemperature   = llmtypes.WithTemperature
	WithMaxTokens     = llmtypes.WithMaxTokens
	WithStreamingChan = llmtypes.WithStreamingChan
	WithStreamingFunc = llmtypes.WithStreamingFunc
	SystemMessage     = llmtypes.SystemMessage
	UserMessage       = llmtypes.UserMessage
	AssistantMessage  = llmtypes.AssistantMessage
)
