package main

import (
	"fmt"
	"io"

	"github.com/manishiitg/deepseek-chat-go/llmtypes"
)

// safeCloseChannel safely closes a channel, recovering from panic if already closed
func safeCloseChannel(ch chan llmtypes.StreamChunk) {
	defer func() {
		if r := recover(); r != nil {
			// Channel already closed, ignore panic
			_ = r
		}
	}()
	close(ch)
}

// HandleStreaming prints streaming chunks as they arrive and blocks until
// the channel is closed. Reasoning deltas (reasoner models) are printed
// under a one-time ==Reasoning== header; a blank line separates the
// reasoning block from the answer content. Text already printed is never
// retracted, even when the stream later fails.
func HandleStreaming(streamChan <-chan llmtypes.StreamChunk, out io.Writer) {
	reasoningShown := false
	contentStarted := false

	for chunk := range streamChan {
		switch chunk.Type {
		case llmtypes.StreamChunkTypeReasoning:
			if chunk.Content == "" {
				continue
			}
			if !reasoningShown {
				fmt.Fprint(out, "==Reasoning==\n")
				reasoningShown = true
			}
			fmt.Fprint(out, chunk.Content)

		case llmtypes.StreamChunkTypeContent:
			if chunk.Content == "" {
				continue
			}
			if reasoningShown && !contentStarted {
				fmt.Fprint(out, "\n\n")
			}
			contentStarted = true
			fmt.Fprint(out, chunk.Content)
		}
	}
}
