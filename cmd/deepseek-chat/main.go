package main

import (
	"fmt"
	"os"
	"time"

	deepseekchat "github.com/manishiitg/deepseek-chat-go"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	var opts chatOptions
	var noStream bool
	var timeoutSeconds int

	rootCmd := &cobra.Command{
		Use:   "deepseek-chat",
		Short: "Interactive chat CLI for the DeepSeek API",
		Long:  "Interactive chat client for DeepSeek models with streaming output, @file(...) inclusion and optional token/cost accounting",
		Run: func(cmd *cobra.Command, args []string) {
			opts.stream = !noStream
			opts.timeout = time.Duration(timeoutSeconds) * time.Second
			if err := RunChat(opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().BoolVarP(&opts.cost, "cost", "c", false, "Print per-turn token usage and cost, and a session report on exit")
	rootCmd.Flags().StringVar(&opts.apiKey, "api-key", "", "DeepSeek API key (or set DEEPSEEK_API_KEY env var)")
	rootCmd.Flags().StringVar(&opts.baseURL, "base-url", deepseekchat.DefaultBaseURL, "API base endpoint")
	rootCmd.Flags().StringVar(&opts.model, "model", deepseekchat.DefaultModel, "Model ID (deepseek-chat or deepseek-reasoner)")
	rootCmd.Flags().StringVar(&opts.systemPrompt, "system", "You are a helpful assistant.", "System prompt")
	rootCmd.Flags().Float64Var(&opts.temperature, "temperature", 0, "Sampling temperature (0 uses the model default)")
	rootCmd.Flags().BoolVar(&noStream, "no-stream", false, "Wait for the complete response instead of streaming")
	rootCmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds (0 defers to transport defaults)")

	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of discarding them")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (info or debug)")
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
