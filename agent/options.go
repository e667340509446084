package agent

import (
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// StopFunc is a custom termination predicate, called after each iteration
// with the step number and latest response. Return true to stop.
type StopFunc func(step int, response *ai.Response) bool

// Options configures a run.
type Options struct {
	// MaxIterations bounds the number of model requests. Set to 0 for
	// unlimited (not recommended). Default is 10. When the bound is hit
	// while tool calls are pending, the calls are answered with synthetic
	// error results and the run ends instead of dispatching them.
	MaxIterations int

	// Timeout sets a deadline for the entire run. Zero means no deadline
	// beyond the caller's context.
	Timeout time.Duration

	// HandlerTimeout bounds each individual tool handler. Zero disables
	// the per-handler deadline. Default is 30 seconds.
	HandlerTimeout time.Duration

	// ParallelToolCalls executes multiple tool calls concurrently.
	// Results are still reported and recorded in call order. Default is
	// false: calls run sequentially in the order the model issued them.
	ParallelToolCalls bool

	// StopPredicate is a custom termination condition.
	StopPredicate StopFunc

	// ChatOptions are passed through to every chat request.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring a run.
type Option func(*Options)

// WithMaxIterations bounds the number of model requests. Default is 10.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithTimeout sets a deadline for the entire run.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithHandlerTimeout bounds each tool handler. Default is 30 seconds.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithParallelToolCalls enables concurrent tool execution.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithStopPredicate sets a custom termination condition.
func WithStopPredicate(fn StopFunc) Option {
	return func(o *Options) {
		o.StopPredicate = fn
	}
}

// WithChatOptions passes options through to every chat request.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel sets the model for chat requests.
func WithModel(id string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithModel(id))
	}
}

// WithEffort sets the reasoning effort for chat requests.
func WithEffort(effort string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithEffort(effort))
	}
}

// ApplyOptions applies functional options over the defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxIterations:  10,
		HandlerTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
