package assistant

// Options contains configuration for a chat request.
type Options struct {
	// Model is the target model identifier. The request layer may substitute
	// a different model when the reasoning policy routes to one.
	Model string
	// Effort is the user-chosen reasoning effort level ("none", "low",
	// "medium", "high"). Empty means no preference.
	Effort string
	// MaxTokens limits the completion length. Zero means provider default.
	MaxTokens int
	// Temperature is the sampling temperature. Nil means provider default.
	Temperature *float64
	// TopP is the nucleus sampling parameter. Nil means provider default.
	TopP *float64
	// Seed makes sampling deterministic where the provider supports it.
	Seed *int64
	// Tools lists the tool schemas offered to the model for this request.
	Tools []Tool
	// ToolChoice controls how the model uses the offered tools.
	ToolChoice ToolChoice
}

// Option is a functional option for configuring chat requests.
type Option func(*Options)

// WithModel sets the model to use for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithEffort sets the reasoning effort level for the request.
// The effective behavior depends on the model's reasoning capability.
func WithEffort(effort string) Option {
	return func(o *Options) {
		o.Effort = effort
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithTopP sets the nucleus sampling parameter (0.0 to 1.0).
func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = &p
	}
}

// WithSeed sets the sampling seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = &seed
	}
}

// WithTools sets the tools offered to the model for the request.
func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// WithToolChoice controls how the model uses tools.
func WithToolChoice(choice ToolChoice) Option {
	return func(o *Options) {
		o.ToolChoice = choice
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
