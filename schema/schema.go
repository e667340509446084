// Package schema builds JSON Schema parameter definitions with a fluent
// API, for tools whose shape is decided at runtime. Tools with a fixed
// argument struct can use reflection-based generation instead.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Builder is implemented by all schema builders.
type Builder interface {
	// Build serializes the schema, validating it first.
	Build() (json.RawMessage, error)

	// MustBuild is like Build but panics on error.
	MustBuild() json.RawMessage

	schema() *node
}

// node is the internal JSON Schema representation.
type node struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`

	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	Items    *node `json:"items,omitempty"`
	MinItems *int  `json:"minItems,omitempty"`
	MaxItems *int  `json:"maxItems,omitempty"`

	Properties           map[string]*node `json:"properties,omitempty"`
	Required             []string         `json:"required,omitempty"`
	AdditionalProperties *bool            `json:"additionalProperties,omitempty"`
}

// ErrInvalidRange is returned when a minimum exceeds its maximum.
var ErrInvalidRange = errors.New("schema: minimum exceeds maximum")

// ErrNilItems is returned when an array has no items schema.
var ErrNilItems = errors.New("schema: array requires items schema")

func (n *node) validate() error {
	if n.Minimum != nil && n.Maximum != nil && *n.Minimum > *n.Maximum {
		return ErrInvalidRange
	}
	if n.Type == "array" && n.Items == nil {
		return ErrNilItems
	}
	for _, prop := range n.Properties {
		if err := prop.validate(); err != nil {
			return err
		}
	}
	return nil
}

func build(n *node) (json.RawMessage, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func mustBuild(n *node) json.RawMessage {
	data, err := build(n)
	if err != nil {
		panic(err)
	}
	return data
}

func ptr[T any](v T) *T { return &v }

// RequiredField wraps a builder whose field is required in its object.
type RequiredField struct {
	builder Builder
}

// Object creates an object schema builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{node: &node{Type: "object", Properties: make(map[string]*node)}}
}

// ObjectBuilder constructs object schemas.
type ObjectBuilder struct {
	node *node
}

func (b *ObjectBuilder) schema() *node { return b.node }

// Desc sets the object description.
func (b *ObjectBuilder) Desc(description string) *ObjectBuilder {
	b.node.Description = description
	return b
}

// Field adds a property. Accepts a Builder or a *RequiredField.
func (b *ObjectBuilder) Field(name string, field any) *ObjectBuilder {
	switch f := field.(type) {
	case *RequiredField:
		b.node.Properties[name] = f.builder.schema()
		b.markRequired(name)
	case Builder:
		b.node.Properties[name] = f.schema()
	default:
		panic(fmt.Sprintf("schema: Field %q requires a Builder or *RequiredField, got %T", name, field))
	}
	return b
}

func (b *ObjectBuilder) markRequired(name string) {
	for _, r := range b.node.Required {
		if r == name {
			return
		}
	}
	b.node.Required = append(b.node.Required, name)
}

// Strict forbids properties outside the declared set.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	b.node.AdditionalProperties = ptr(false)
	return b
}

// Required marks this object as required when nested in another object.
func (b *ObjectBuilder) Required() *RequiredField { return &RequiredField{builder: b} }

func (b *ObjectBuilder) Build() (json.RawMessage, error) { return build(b.node) }
func (b *ObjectBuilder) MustBuild() json.RawMessage      { return mustBuild(b.node) }

// String creates a string schema builder.
func String() *StringBuilder {
	return &StringBuilder{node: &node{Type: "string"}}
}

// StringBuilder constructs string schemas.
type StringBuilder struct {
	node *node
}

func (b *StringBuilder) schema() *node { return b.node }

// Desc sets the field description.
func (b *StringBuilder) Desc(description string) *StringBuilder {
	b.node.Description = description
	return b
}

// Enum restricts the value to the given options.
func (b *StringBuilder) Enum(values ...string) *StringBuilder {
	b.node.Enum = make([]any, len(values))
	for i, v := range values {
		b.node.Enum[i] = v
	}
	return b
}

// Default sets the default value.
func (b *StringBuilder) Default(value string) *StringBuilder {
	b.node.Default = value
	return b
}

// Required marks this field as required in its object.
func (b *StringBuilder) Required() *RequiredField { return &RequiredField{builder: b} }

func (b *StringBuilder) Build() (json.RawMessage, error) { return build(b.node) }
func (b *StringBuilder) MustBuild() json.RawMessage      { return mustBuild(b.node) }

// Number creates a number schema builder.
func Number() *NumberBuilder {
	return &NumberBuilder{node: &node{Type: "number"}}
}

// Integer creates an integer schema builder.
func Integer() *NumberBuilder {
	return &NumberBuilder{node: &node{Type: "integer"}}
}

// NumberBuilder constructs numeric schemas.
type NumberBuilder struct {
	node *node
}

func (b *NumberBuilder) schema() *node { return b.node }

// Desc sets the field description.
func (b *NumberBuilder) Desc(description string) *NumberBuilder {
	b.node.Description = description
	return b
}

// Min sets the inclusive lower bound.
func (b *NumberBuilder) Min(v float64) *NumberBuilder {
	b.node.Minimum = ptr(v)
	return b
}

// Max sets the inclusive upper bound.
func (b *NumberBuilder) Max(v float64) *NumberBuilder {
	b.node.Maximum = ptr(v)
	return b
}

// Required marks this field as required in its object.
func (b *NumberBuilder) Required() *RequiredField { return &RequiredField{builder: b} }

func (b *NumberBuilder) Build() (json.RawMessage, error) { return build(b.node) }
func (b *NumberBuilder) MustBuild() json.RawMessage      { return mustBuild(b.node) }

// Bool creates a boolean schema builder.
func Bool() *BoolBuilder {
	return &BoolBuilder{node: &node{Type: "boolean"}}
}

// BoolBuilder constructs boolean schemas.
type BoolBuilder struct {
	node *node
}

func (b *BoolBuilder) schema() *node { return b.node }

// Desc sets the field description.
func (b *BoolBuilder) Desc(description string) *BoolBuilder {
	b.node.Description = description
	return b
}

// Required marks this field as required in its object.
func (b *BoolBuilder) Required() *RequiredField { return &RequiredField{builder: b} }

func (b *BoolBuilder) Build() (json.RawMessage, error) { return build(b.node) }
func (b *BoolBuilder) MustBuild() json.RawMessage      { return mustBuild(b.node) }

// Array creates an array schema builder with the given item schema.
func Array(items Builder) *ArrayBuilder {
	b := &ArrayBuilder{node: &node{Type: "array"}}
	if items != nil {
		b.node.Items = items.schema()
	}
	return b
}

// ArrayBuilder constructs array schemas.
type ArrayBuilder struct {
	node *node
}

func (b *ArrayBuilder) schema() *node { return b.node }

// Desc sets the field description.
func (b *ArrayBuilder) Desc(description string) *ArrayBuilder {
	b.node.Description = description
	return b
}

// MinItems sets the minimum array length.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder {
	b.node.MinItems = ptr(n)
	return b
}

// MaxItems sets the maximum array length.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder {
	b.node.MaxItems = ptr(n)
	return b
}

// Required marks this field as required in its object.
func (b *ArrayBuilder) Required() *RequiredField { return &RequiredField{builder: b} }

func (b *ArrayBuilder) Build() (json.RawMessage, error) { return build(b.node) }
func (b *ArrayBuilder) MustBuild() json.RawMessage      { return mustBuild(b.node) }
