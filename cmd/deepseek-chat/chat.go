package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	deepseekchat "github.com/manishiitg/deepseek-chat-go"
	"github.com/manishiitg/deepseek-chat-go/internal/logging"
	"github.com/manishiitg/deepseek-chat-go/llmtypes"
	"github.com/manishiitg/deepseek-chat-go/pkg/include"
	"github.com/manishiitg/deepseek-chat-go/pkg/pricing"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var errExit = fmt.Errorf("exit requested")

// chatOptions carries the resolved CLI configuration for one session.
// Immutable once the session starts.
type chatOptions struct {
	apiKey       string
	baseURL      string
	model        string
	systemPrompt string
	temperature  float64
	timeout      time.Duration
	stream       bool
	cost         bool
}

// session ties together the per-session state each turn operates on
type session struct {
	llm    llmtypes.Model
	conv   *Conversation
	ledger *pricing.Ledger
	table  pricing.Table
	opts   chatOptions
}

// RunChat is the main chat loop
func RunChat(opts chatOptions) error {
	// Load .env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger := logging.Noop()
	if viper.GetString("log-file") != "" {
		logger = logging.New(viper.GetString("log-file"), viper.GetString("log-level"))
	}

	// Credential resolution happens here; a missing key is fatal before
	// any conversation starts
	llm, err := deepseekchat.InitializeClient(deepseekchat.Config{
		BaseURL:      opts.baseURL,
		ModelID:      opts.model,
		APIKey:       opts.apiKey,
		SystemPrompt: opts.systemPrompt,
		Temperature:  opts.temperature,
		Timeout:      opts.timeout,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	sess := &session{
		llm:    llm,
		conv:   NewConversation(opts.systemPrompt),
		ledger: &pricing.Ledger{},
		table:  pricing.DeepSeekChatCNY(),
		opts:   opts,
	}

	fmt.Printf("=== DeepSeek Chat ===\n")
	fmt.Printf("Model: %s | endpoint: %s\n", llm.GetModelID(), orDefault(opts.baseURL, deepseekchat.DefaultBaseURL))
	fmt.Printf("Type '/help' for commands, '/exit' to quit. A line of %s toggles multi-line input.\n", multilineDelimiter)
	fmt.Println("=" + strings.Repeat("=", 50))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n> ")
		text, err := readInput(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if text == "" {
			continue
		}

		// Handle commands
		if strings.HasPrefix(text, "/") {
			if err := handleCommand(text, sess); err != nil {
				if errors.Is(err, errExit) {
					break
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// Ctrl+C during the request aborts the turn and returns to the
		// prompt; history and ledger are left untouched
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = runTurn(ctx, sess, text, os.Stdout)
		stop()
		if err != nil {
			fmt.Printf("\n[Error: %v]\n", err)
			continue
		}

		fmt.Println() // Empty line after response
	}

	if opts.cost {
		printSessionReport(os.Stdout, sess.ledger)
	}
	fmt.Println("\nGoodbye!")
	return nil
}

// runTurn executes one turn: preprocess the input, stage the user message,
// call the model, print the reply and commit the assistant message. On any
// failure the staged user message is rolled back so the history is exactly
// as it was before the turn, and nothing is added to the ledger unless
// usage metadata genuinely arrived.
func runTurn(ctx context.Context, sess *session, raw string, out io.Writer) error {
	expanded, notices := include.Expand(raw)
	for _, notice := range notices {
		if notice.Err != nil {
			fmt.Fprintf(out, "[could not read file %s: %v]\n", notice.Path, notice.Err)
		} else {
			fmt.Fprintf(out, "[reading file %s]\n", notice.Path)
		}
	}

	sess.conv.Append(llmtypes.ChatMessageTypeHuman, expanded)

	var resp *llmtypes.ContentResponse
	var err error
	if sess.opts.stream {
		resp, err = streamRequest(ctx, sess, out)
	} else {
		resp, err = sess.llm.GenerateContent(ctx, sess.conv.Snapshot(), callOptions(sess.opts, nil)...)
		if err == nil {
			if resp.ReasoningContent != "" {
				fmt.Fprintf(out, "==Reasoning==\n%s\n\n", resp.ReasoningContent)
			}
			fmt.Fprintln(out, resp.Content)
		}
	}
	if err != nil {
		sess.conv.DropLast()
		return err
	}

	sess.conv.Append(llmtypes.ChatMessageTypeAI, resp.Content)

	if sess.opts.cost {
		if resp.Usage != nil {
			cost := sess.ledger.Record(*resp.Usage, sess.table)
			printTurnUsage(out, *resp.Usage, cost)
		} else {
			fmt.Fprintln(out, "[token usage unavailable for this turn]")
		}
	}
	return nil
}

// streamRequest issues a streaming completion call, printing chunks as
// they arrive while the full response is buffered for accounting
func streamRequest(ctx context.Context, sess *session, out io.Writer) (*llmtypes.ContentResponse, error) {
	streamChan := make(chan llmtypes.StreamChunk, 100)

	var streamErr error
	responseChan := make(chan *llmtypes.ContentResponse, 1)
	go func() {
		defer func() {
			// The adapter closes the channel via defer; this is a safety
			// net in case GenerateContent panics before reaching it
			safeCloseChannel(streamChan)
		}()
		resp, err := sess.llm.GenerateContent(ctx, sess.conv.Snapshot(), callOptions(sess.opts, streamChan)...)
		if err != nil {
			streamErr = err
			responseChan <- nil
		} else {
			responseChan <- resp
		}
	}()

	// Blocks until the channel is closed
	HandleStreaming(streamChan, out)

	response := <-responseChan
	if streamErr != nil {
		return nil, streamErr
	}
	return response, nil
}

// callOptions translates the session configuration into call options
func callOptions(opts chatOptions, streamChan chan llmtypes.StreamChunk) []llmtypes.CallOption {
	callOpts := []llmtypes.CallOption{llmtypes.WithModel(opts.model)}
	if opts.temperature > 0 {
		callOpts = append(callOpts, llmtypes.WithTemperature(opts.temperature))
	}
	if streamChan != nil {
		callOpts = append(callOpts, llmtypes.WithStreamingChan(streamChan))
	}
	return callOpts
}

// handleCommand handles special commands
func handleCommand(cmd string, sess *session) error {
	cmd = strings.TrimSpace(cmd)
	switch cmd {
	case "/help":
		fmt.Println("\nAvailable commands:")
		fmt.Println("  /help     - Show this help message")
		fmt.Println("  /clear    - Clear conversation history")
		fmt.Println("  /history  - Show conversation summary")
		fmt.Println("  /cost     - Show the running cost ledger")
		fmt.Println("  /exit     - Exit chat")
		fmt.Println("  /quit     - Exit chat")
		fmt.Println("\nInclude a local file in your message with @file(path).")
	case "/clear":
		sess.conv.Reset()
		fmt.Println("\nConversation cleared (system prompt retained)")
	case "/history":
		messages := sess.conv.Snapshot()
		fmt.Printf("\nConversation history (%d messages):\n", len(messages))
		for i, msg := range messages {
			preview := msg.Content
			if len(preview) > 50 {
				preview = preview[:50] + "..."
			}
			fmt.Printf("  %d. [%s] %s\n", i+1, msg.Role, preview)
		}
	case "/cost":
		printSessionReport(os.Stdout, sess.ledger)
	case "/exit", "/quit":
		return errExit
	default:
		fmt.Printf("Unknown command: %s (type /help for available commands)\n", cmd)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
