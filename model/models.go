package model

// Built-in capability table for the models exposed by the default proxy.
// Capability flags last verified: August 2026.
var (
	GPT4o = Capability{
		ID:             "gpt-4o",
		SupportsTools:  true,
		SupportsVision: true,
		Reasoning:      ReasoningMode{Kind: ReasoningNone},
	}

	GPT4oMini = Capability{
		ID:             "gpt-4o-mini",
		SupportsTools:  true,
		SupportsVision: true,
		Reasoning:      ReasoningMode{Kind: ReasoningNone},
	}

	O3 = Capability{
		ID:             "o3",
		SupportsTools:  true,
		SupportsVision: true,
		Reasoning: ReasoningMode{
			Kind:    ReasoningEffort,
			Levels:  []Effort{EffortLow, EffortMedium, EffortHigh},
			Default: EffortMedium,
		},
	}

	O4Mini = Capability{
		ID:            "o4-mini",
		SupportsTools: true,
		Reasoning: ReasoningMode{
			Kind:    ReasoningEffort,
			Levels:  []Effort{EffortLow, EffortMedium, EffortHigh},
			Default: EffortMedium,
		},
	}

	// DeepSeek exposes reasoning as a separate model: asking deepseek-chat
	// to reason routes the call to deepseek-reasoner instead.
	DeepSeekChat = Capability{
		ID:            "deepseek-chat",
		SupportsTools: true,
		Reasoning: ReasoningMode{
			Kind:     ReasoningRoutes,
			AltModel: "deepseek-reasoner",
		},
	}

	DeepSeekReasoner = Capability{
		ID: "deepseek-reasoner",
		Reasoning: ReasoningMode{
			Kind: ReasoningAlways,
		},
	}

	Qwen3 = Capability{
		ID:            "qwen3-235b-a22b",
		SupportsTools: true,
		Reasoning:     ReasoningMode{Kind: ReasoningOptional},
	}

	// GLM rejects requests that do not explicitly enable thinking.
	GLM45 = Capability{
		ID:            "glm-4.5",
		SupportsTools: true,
		Reasoning: ReasoningMode{
			Kind:         ReasoningAlways,
			ForceEnabled: true,
		},
	}

	Llama33 = Capability{
		ID:            "llama-3.3-70b",
		SupportsTools: true,
		Reasoning:     ReasoningMode{Kind: ReasoningNone},
	}

	Gemma3 = Capability{
		ID:             "gemma-3-27b",
		SupportsVision: true,
		Reasoning:      ReasoningMode{Kind: ReasoningNone},
	}
)

// DefaultModel is the recommended default chat model.
var DefaultModel = GPT4oMini

// DefaultRegistry returns a registry with the built-in capability table.
func DefaultRegistry() *Registry {
	return NewRegistry(
		GPT4o,
		GPT4oMini,
		O3,
		O4Mini,
		DeepSeekChat,
		DeepSeekReasoner,
		Qwen3,
		GLM45,
		Llama33,
		Gemma3,
	)
}
