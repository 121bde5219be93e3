package llmtypes

// WithModel sets the model ID
func WithModel(model string) CallOption {
	return func(opts *CallOptions) {
		opts.Model = model
	}
}

// WithTemperature sets the temperature
func WithTemperature(temperature float64) CallOption {
	return func(opts *CallOptions) {
		opts.Temperature = temperature
	}
}

// WithMaxTokens sets the maximum tokens for the response
func WithMaxTokens(maxTokens int) CallOption {
	return func(opts *CallOptions) {
		opts.MaxTokens = maxTokens
	}
}

// WithStreamingChan sets the streaming channel for receiving chunks.
// The channel receives reasoning and content deltas in arrival order and
// is closed when streaming completes, whether or not an error occurred.
func WithStreamingChan(ch chan<- StreamChunk) CallOption {
	return func(opts *CallOptions) {
		opts.StreamChan = ch
	}
}

// WithStreamingFunc is a convenience wrapper that creates a channel and
// invokes fn for every chunk. For better control, use WithStreamingChan.
func WithStreamingFunc(fn func(StreamChunk)) CallOption {
	ch := make(chan StreamChunk, 100) // Buffered to avoid blocking the stream reader
	go func() {
		for chunk := range ch {
			fn(chunk)
		}
	}()
	return WithStreamingChan(ch)
}
