package main

import (
	"github.com/manishiitg/deepseek-chat-go/llmtypes"
)

// Conversation manages the conversation history for one session. The
// sequence is ordered and append-only; the full snapshot is sent with
// every request.
type Conversation struct {
	messages     []llmtypes.Message
	systemPrompt string
}

// NewConversation creates a new conversation. When systemPrompt is
// non-empty it is inserted exactly once, as the first message, and never
// duplicated afterwards.
func NewConversation(systemPrompt string) *Conversation {
	conv := &Conversation{systemPrompt: systemPrompt}
	if systemPrompt != "" {
		conv.messages = append(conv.messages, llmtypes.SystemMessage(systemPrompt))
	}
	return conv
}

// Append adds a message to the history
func (c *Conversation) Append(role llmtypes.ChatMessageType, content string) {
	c.messages = append(c.messages, llmtypes.Message{Role: role, Content: content})
}

// Snapshot returns a copy of the full ordered sequence for transmission
func (c *Conversation) Snapshot() []llmtypes.Message {
	out := make([]llmtypes.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// DropLast removes the most recent message. Used to roll back the staged
// user message when a completion call fails, so a failed turn leaves the
// history exactly as it was.
func (c *Conversation) DropLast() {
	if len(c.messages) > 0 {
		c.messages = c.messages[:len(c.messages)-1]
	}
}

// Reset clears the conversation but keeps the system prompt
func (c *Conversation) Reset() {
	c.messages = nil
	if c.systemPrompt != "" {
		c.messages = append(c.messages, llmtypes.SystemMessage(c.systemPrompt))
	}
}

// Len returns the number of messages in the history
func (c *Conversation) Len() int {
	return len(c.messages)
}
