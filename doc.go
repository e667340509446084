// Package assistant provides the shared types for a streaming chat-client
// core: conversation messages, tool definitions and calls, streaming events,
// request options, and the categorized error taxonomy.
//
// The module drives an OpenAI-compatible chat-completions proxy and is
// organized around a small set of packages:
//
//   - client:    high-level client over the proxy (blocking and streaming)
//   - agent:     the tool-calling agent loop controller
//   - tool:      tool registry and typed handlers (the execution dispatcher)
//   - model:     model capability descriptors and registry
//   - reasoning: per-model reasoning policy resolution
//   - event:     unified streaming event type for agent and client output
//   - schema:    fluent JSON-Schema builders for tool parameters
//   - mcp:       Model Context Protocol bridge for remote tool sources
//
// Streaming is the primary interface: a turn produces a lazy, ordered,
// finite sequence of events that callers consume in real time. The blocking
// helpers aggregate that same stream.
package assistant
