// Package agent runs autonomous tool-calling conversations: stream a model
// response, execute any requested tools, fold the results back into the
// conversation and repeat until the model answers without tools or a
// termination condition fires.
package agent

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/chat"
	"github.com/Mostlime12195/Libre-Assistant-sub000/event"
	"github.com/Mostlime12195/Libre-Assistant-sub000/internal/store"
	"github.com/Mostlime12195/Libre-Assistant-sub000/tool"
)

// Agent orchestrates the conversation loop.
type Agent struct {
	chatClient chat.Client
	registry   *tool.Registry
}

// New creates an agent from a chat client and a tool registry.
func New(c chat.Client, registry *tool.Registry) *Agent {
	if registry == nil {
		registry = tool.NewRegistry()
	}
	return &Agent{chatClient: c, registry: registry}
}

// Run executes the loop and blocks until it finishes, returning the final
// result with the complete conversation.
func (a *Agent) Run(ctx context.Context, messages []ai.Message, opts ...Option) (*Result, error) {
	eventCh := a.RunStream(ctx, messages, opts...)

	result := &Result{history: store.NewHistoryFrom(messages)}
	var pendingResults []ai.ToolResult

	flush := func() {
		if len(pendingResults) > 0 {
			result.history.Append(ai.NewToolResultMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for ev := range eventCh {
		if ev.Step > result.Steps {
			result.Steps = ev.Step
		}
		switch ev.Type {
		case event.StepStart:
			flush()

		case event.StepEnd:
			if ev.Response != nil {
				result.Response = ev.Response
				result.TotalUsage.Add(ev.Response.Usage)
				result.history.Append(ai.Message{
					Role:      ai.RoleAssistant,
					Content:   ev.Response.Content,
					Reasoning: ev.Response.Reasoning,
					ToolCalls: ev.Response.ToolCalls,
				})
			}

		case event.ToolCallResult:
			if ev.ToolResult != nil {
				pendingResults = append(pendingResults, *ev.ToolResult)
			}

		case event.RunEnd:
			result.Termination = TerminationReason(ev.Message)
			if ev.Response != nil {
				result.Response = ev.Response
			}

		case event.RunCancelled:
			result.Termination = TerminationCancelled

		case event.RunError:
			result.Termination = TerminationError
			result.Error = ev.Error
		}
	}
	flush()

	if result.Termination == "" {
		result.Termination = TerminationCancelled
	}
	return result, result.Error
}

// RunStream executes the loop and returns a channel of events. The channel
// closes when the run ends; callers should drain it.
func (a *Agent) RunStream(ctx context.Context, messages []ai.Message, opts ...Option) <-chan event.Event {
	eventCh := event.NewChannel()
	go a.runLoop(ctx, messages, eventCh, opts...)
	return eventCh
}

func (a *Agent) runLoop(ctx context.Context, messages []ai.Message, eventCh chan<- event.Event, opts ...Option) {
	defer close(eventCh)

	options := ApplyOptions(opts...)
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	if !event.Send(ctx, eventCh, event.Event{Type: event.RunStart}) {
		return
	}

	chatOpts := options.ChatOptions
	if a.registry.Len() > 0 {
		chatOpts = append([]ai.Option{ai.WithTools(a.registry.Tools())}, options.ChatOptions...)
	}

	history := store.NewHistoryFrom(messages)

	for step := 1; ; step++ {
		if !event.Send(ctx, eventCh, event.Event{Type: event.StepStart, Step: step}) {
			a.emitCancelled(eventCh, step)
			return
		}

		response, err := a.executeStep(ctx, history.Messages(), chatOpts, step, eventCh)
		if err != nil {
			if ai.IsCanceled(err) || ctx.Err() != nil {
				a.emitCancelled(eventCh, step)
			} else {
				event.Emit(eventCh, event.Event{Type: event.RunError, Step: step, Error: err})
			}
			return
		}

		if !event.Send(ctx, eventCh, event.Event{Type: event.StepEnd, Step: step, Response: response}) {
			a.emitCancelled(eventCh, step)
			return
		}

		if options.StopPredicate != nil && options.StopPredicate(step, response) {
			a.finish(ctx, eventCh, step, response, TerminationCustom)
			return
		}

		calls := response.ToolCalls
		if len(calls) == 0 {
			a.finish(ctx, eventCh, step, response, TerminationComplete)
			return
		}

		// The assistant turn goes into history before its results so the
		// transcript stays well formed even if the run ends here.
		history.Append(ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			Reasoning: response.Reasoning,
			ToolCalls: calls,
		})

		if options.MaxIterations > 0 && step >= options.MaxIterations {
			results := budgetResults(calls)
			for i := range calls {
				event.Send(ctx, eventCh, event.Event{
					Type:       event.ToolCallResult,
					Step:       step,
					ToolCall:   &calls[i],
					ToolResult: &results[i],
				})
			}
			history.Append(ai.NewToolResultMessage(results...))
			a.finish(ctx, eventCh, step, response, TerminationMaxIterations)
			return
		}

		results := a.executeToolCalls(ctx, calls, options, step, eventCh)
		history.Append(ai.NewToolResultMessage(results...))

		if ctx.Err() != nil {
			a.emitCancelled(eventCh, step)
			return
		}
	}
}

// executeStep runs one streaming chat call, forwarding stream events with
// the step attached, and returns the completed response.
func (a *Agent) executeStep(ctx context.Context, messages []ai.Message, chatOpts []ai.Option, step int, eventCh chan<- event.Event) (*ai.Response, error) {
	streamCh, err := a.chatClient.ChatStream(ctx, messages, chatOpts...)
	if err != nil {
		return nil, err
	}

	var response *ai.Response
	for ev := range streamCh {
		switch ev.Type {
		case event.RunError:
			return nil, ev.Error

		case event.RunCancelled:
			return nil, ai.NewCanceledError(ctx.Err())

		case event.MessageEnd:
			response = ev.Response
			ev.Step = step
			if !event.Send(ctx, eventCh, ev) {
				return nil, ai.NewCanceledError(ctx.Err())
			}

		case event.RunStart, event.RunEnd:
			// The inner lifecycle is subsumed by step events.

		default:
			ev.Step = step
			if !event.Send(ctx, eventCh, ev) {
				return nil, ai.NewCanceledError(ctx.Err())
			}
		}
	}

	if response == nil {
		if ctx.Err() != nil {
			return nil, ai.NewCanceledError(ctx.Err())
		}
		return nil, ai.NewTransportError("stream ended without a complete response", 0, nil)
	}
	return response, nil
}

// executeToolCalls dispatches the assembled calls and returns one result
// per call, in call order.
func (a *Agent) executeToolCalls(ctx context.Context, calls []ai.ToolCall, options *Options, step int, eventCh chan<- event.Event) []ai.ToolResult {
	if options.ParallelToolCalls && len(calls) > 1 {
		return a.executeParallel(ctx, calls, options, step, eventCh)
	}

	results := make([]ai.ToolResult, 0, len(calls))
	for i := range calls {
		call := calls[i]

		if ctx.Err() != nil {
			results = append(results, cancelledResult(call))
			continue
		}

		event.Send(ctx, eventCh, event.Event{Type: event.ToolCallStart, Step: step, ToolCall: &call})
		result := a.executeOne(ctx, call, options)
		event.Send(ctx, eventCh, event.Event{Type: event.ToolCallResult, Step: step, ToolCall: &call, ToolResult: &result})
		results = append(results, result)
	}
	return results
}

// executeParallel runs all calls concurrently but reports results in call
// order once every handler has finished.
func (a *Agent) executeParallel(ctx context.Context, calls []ai.ToolCall, options *Options, step int, eventCh chan<- event.Event) []ai.ToolResult {
	for i := range calls {
		event.Send(ctx, eventCh, event.Event{Type: event.ToolCallStart, Step: step, ToolCall: &calls[i]})
	}

	results := make([]ai.ToolResult, len(calls))
	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.executeOne(ctx, calls[i], options)
		}(i)
	}
	wg.Wait()

	for i := range calls {
		event.Send(ctx, eventCh, event.Event{Type: event.ToolCallResult, Step: step, ToolCall: &calls[i], ToolResult: &results[i]})
	}
	return results
}

func (a *Agent) executeOne(ctx context.Context, call ai.ToolCall, options *Options) ai.ToolResult {
	handlerCtx := ctx
	if options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		handlerCtx, cancel = context.WithTimeout(ctx, options.HandlerTimeout)
		defer cancel()
	}
	return a.registry.Execute(handlerCtx, call)
}

func (a *Agent) finish(ctx context.Context, eventCh chan<- event.Event, step int, response *ai.Response, reason TerminationReason) {
	event.Send(ctx, eventCh, event.Event{
		Type:     event.RunEnd,
		Step:     step,
		Response: response,
		Message:  string(reason),
	})
}

// emitCancelled delivers the terminal cancellation event best-effort; the
// consumer may already be gone.
func (a *Agent) emitCancelled(eventCh chan<- event.Event, step int) {
	event.Emit(eventCh, event.Event{
		Type:    event.RunCancelled,
		Step:    step,
		Message: string(TerminationCancelled),
	})
}

// budgetResults answers pending calls when the iteration budget is
// exhausted, keeping the transcript well formed without executing anything.
func budgetResults(calls []ai.ToolCall) []ai.ToolResult {
	results := make([]ai.ToolResult, len(calls))
	for i, call := range calls {
		results[i] = ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    fmt.Sprintf("tool %q was not executed: iteration budget exhausted", call.Name),
			IsError:    true,
		}
	}
	return results
}

func cancelledResult(call ai.ToolCall) ai.ToolResult {
	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    "tool call cancelled",
		IsError:    true,
	}
}
