package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(
		Capability{ID: "m-plain", SupportsTools: true},
		Capability{ID: "m-vision", SupportsVision: true},
	)

	c, ok := reg.Lookup("m-plain")
	require.True(t, ok)
	assert.True(t, c.SupportsTools)
	assert.False(t, c.SupportsVision)

	_, ok = reg.Lookup("m-unknown")
	assert.False(t, ok)
	assert.Equal(t, 2, reg.Len())
}

func TestDefaultRegistryDescriptors(t *testing.T) {
	reg := DefaultRegistry()

	o3, ok := reg.Lookup("o3")
	require.True(t, ok)
	assert.Equal(t, ReasoningEffort, o3.Reasoning.Kind)
	assert.Equal(t, EffortMedium, o3.Reasoning.Default)
	assert.True(t, o3.Reasoning.AllowsLevel(EffortHigh))
	assert.False(t, o3.Reasoning.AllowsLevel(EffortNone))

	ds, ok := reg.Lookup("deepseek-chat")
	require.True(t, ok)
	assert.Equal(t, ReasoningRoutes, ds.Reasoning.Kind)
	assert.Equal(t, "deepseek-reasoner", ds.Reasoning.AltModel)

	reasoner, ok := reg.Lookup("deepseek-reasoner")
	require.True(t, ok)
	assert.False(t, reasoner.SupportsTools)
	assert.Equal(t, ReasoningAlways, reasoner.Reasoning.Kind)

	glm, ok := reg.Lookup("glm-4.5")
	require.True(t, ok)
	assert.True(t, glm.Reasoning.ForceEnabled)
}
