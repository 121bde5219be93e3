package deepseekchat

import (
	"fmt"
	"os"
	"time"

	"github.com/manishiitg/deepseek-chat-go/interfaces"
	"github.com/manishiitg/deepseek-chat-go/llmtypes"
	deepseekadapter "github.com/manishiitg/deepseek-chat-go/pkg/adapters/deepseek"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// APIKeyEnvVar is the environment variable consulted when no literal
// credential is configured.
const APIKeyEnvVar = "DEEPSEEK_API_KEY"

// Defaults for the DeepSeek platform
const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"
)

// Known model IDs
const (
	ModelDeepSeekChat     = "deepseek-chat"
	ModelDeepSeekReasoner = "deepseek-reasoner"
)

// Config holds configuration for client initialization.
// Immutable once the session starts.
type Config struct {
	// BaseURL is the API endpoint; DefaultBaseURL when empty
	BaseURL string
	// ModelID is the model to chat with; DefaultModel when empty
	ModelID string
	// APIKey is the literal credential. When empty the DEEPSEEK_API_KEY
	// environment variable is consulted instead.
	APIKey string
	// SystemPrompt seeds the conversation; may be empty
	SystemPrompt string
	// Temperature for generation; 0 omits the parameter
	Temperature float64
	// Timeout applies per request; 0 defers to the transport defaults
	Timeout time.Duration
	// Logger for structured logging; a no-op logger is used when nil
	Logger interfaces.Logger
}

// ResolveAPIKey returns the credential to use: the literal value when
// non-empty, otherwise the DEEPSEEK_API_KEY environment variable. Fails
// with a *ConfigError naming the missing credential when neither is set.
// No side effects beyond reading the environment.
func ResolveAPIKey(literal string) (string, error) {
	if literal != "" {
		return literal, nil
	}
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key, nil
	}
	return "", &ConfigError{
		Field:   "api key",
		Message: fmt.Sprintf("not provided: pass it explicitly or set the %s environment variable", APIKeyEnvVar),
	}
}

// InitializeClient creates a chat-completion client for the configured
// endpoint. Credential resolution happens here, before any network call.
func InitializeClient(config Config) (llmtypes.Model, error) {
	apiKey, err := ResolveAPIKey(config.APIKey)
	if err != nil {
		return nil, err
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelID := config.ModelID
	if modelID == "" {
		modelID = DefaultModel
	}

	clientOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	if config.Timeout > 0 {
		clientOptions = append(clientOptions, option.WithRequestTimeout(config.Timeout))
	}

	client := openaisdk.NewClient(clientOptions...)

	return deepseekadapter.NewAdapter(&client, modelID, config.Logger), nil
}
