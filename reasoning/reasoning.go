// Package reasoning resolves per-model reasoning policy: given a model's
// capability descriptor and the user's chosen effort level, it computes the
// reasoning parameters for the request and/or an alternate target model.
package reasoning

import (
	"github.com/Mostlime12195/Libre-Assistant-sub000/model"
)

// Params is the structured reasoning object sent on the request envelope.
type Params struct {
	// Enabled toggles reasoning for models with a binary switch.
	Enabled *bool `json:"enabled,omitempty"`
	// Effort is the discrete effort level for effort-selectable models.
	Effort string `json:"effort,omitempty"`
}

// Resolution is the outcome of resolving reasoning policy for one request.
type Resolution struct {
	// Params is the reasoning object to attach, or nil for none.
	Params *Params
	// AlternateModel, when non-empty, replaces the requested model as the
	// call target.
	AlternateModel string
}

// Resolve computes the reasoning request parameters for a capability
// descriptor and a user-chosen effort level. An empty effort means the user
// expressed no preference.
//
// An effort outside an effort-selectable descriptor's accepted set is a
// caller configuration error; it is resolved by clamping to the
// descriptor's default rather than failing the turn. Callers should
// validate before invoking.
func Resolve(cap model.Capability, effort model.Effort) Resolution {
	mode := cap.Reasoning

	switch mode.Kind {
	case model.ReasoningAlways:
		var p *Params
		if effort != "" && effort != model.EffortNone {
			p = &Params{Effort: string(effort)}
		}
		if mode.ForceEnabled {
			if p == nil {
				p = &Params{}
			}
			p.Enabled = boolPtr(true)
		}
		return Resolution{Params: p}

	case model.ReasoningOptional:
		return Resolution{Params: &Params{
			Enabled: boolPtr(effort != "" && effort != model.EffortNone),
		}}

	case model.ReasoningRoutes:
		if effort != "" && effort != model.EffortNone {
			return Resolution{AlternateModel: mode.AltModel}
		}
		return Resolution{}

	case model.ReasoningEffort:
		level := effort
		if level == "" || !mode.AllowsLevel(level) {
			level = mode.Default
		}
		return Resolution{Params: &Params{Effort: string(level)}}

	default:
		return Resolution{}
	}
}

func boolPtr(b bool) *bool { return &b }
