// Package model defines model capability descriptors and the immutable
// registry used to look them up.
//
// The registry is injected wherever capability decisions are made (request
// building, reasoning policy, the agent loop) so tests can supply synthetic
// descriptors instead of depending on the built-in table.
package model

// Effort is a user-chosen reasoning effort level.
type Effort string

const (
	// EffortNone explicitly disables reasoning where it is optional.
	EffortNone   Effort = "none"
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// ReasoningKind classifies how a model exposes reasoning controls.
type ReasoningKind string

const (
	// ReasoningNone: the model never reasons; no params are emitted.
	ReasoningNone ReasoningKind = "none"
	// ReasoningAlways: the model always reasons; effort params are passed
	// through when chosen, and some models force enabled=true.
	ReasoningAlways ReasoningKind = "always"
	// ReasoningOptional: reasoning is a binary toggle.
	ReasoningOptional ReasoningKind = "optional"
	// ReasoningRoutes: requesting reasoning substitutes a companion model.
	ReasoningRoutes ReasoningKind = "routes"
	// ReasoningEffort: the model accepts a discrete effort level.
	ReasoningEffort ReasoningKind = "effort"
)

// ReasoningMode describes a model's reasoning controls. Only the fields
// relevant to Kind are populated.
type ReasoningMode struct {
	Kind ReasoningKind
	// AltModel is the companion model id for ReasoningRoutes.
	AltModel string
	// Levels are the accepted effort levels for ReasoningEffort.
	Levels []Effort
	// Default is the effort used when none is chosen (ReasoningEffort).
	Default Effort
	// ForceEnabled forces enabled=true regardless of effort (ReasoningAlways
	// special case for models that reject requests without it).
	ForceEnabled bool
}

// AllowsLevel reports whether level is one of the accepted effort levels.
func (m ReasoningMode) AllowsLevel(level Effort) bool {
	for _, l := range m.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Capability is the immutable descriptor of what one model supports.
type Capability struct {
	// ID is the provider-facing model identifier.
	ID string
	// SupportsTools reports whether the model accepts tool schemas.
	SupportsTools bool
	// SupportsVision reports whether the model accepts image parts.
	SupportsVision bool
	// Reasoning describes the model's reasoning controls.
	Reasoning ReasoningMode
}

// Registry is an immutable lookup of model id to capability descriptor.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	byID map[string]Capability
}

// NewRegistry creates a registry from the given descriptors.
func NewRegistry(caps ...Capability) *Registry {
	byID := make(map[string]Capability, len(caps))
	for _, c := range caps {
		byID[c.ID] = c
	}
	return &Registry{byID: byID}
}

// Lookup returns the descriptor for a model id.
func (r *Registry) Lookup(id string) (Capability, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.byID)
}
