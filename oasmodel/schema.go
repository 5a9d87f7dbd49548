package oasmodel

// Schema is a trimmed OAS 3.1 Schema Object: either a $ref to a named
// component schema, or an inline type description. Exactly one of Ref or
// Type should be populated; a Schema with Ref set must, after resolution,
// transitively reach a non-ref Schema.
type Schema struct {
	// Ref is the raw $ref string, e.g. "#/components/schemas/User".
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	Type        string              `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string              `yaml:"format,omitempty" json:"format,omitempty"`
	Pattern     string              `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Properties  *OrderedMap[*Schema] `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items       *Schema             `yaml:"items,omitempty" json:"items,omitempty"`
	Required    []string            `yaml:"required,omitempty" json:"required,omitempty"`

	// XOuroborosMock is the literal value or faker DSL expression
	// ("{{$category.method(...)}}") used by the Mock Synthesizer in place
	// of a generated default.
	XOuroborosMock any `yaml:"x-ouroboros-mock,omitempty" json:"x-ouroboros-mock,omitempty"`
	// XOuroborosOrders is the canonical property order to use when
	// synthesizing an object, overriding declaration order.
	XOuroborosOrders []string `yaml:"x-ouroboros-orders,omitempty" json:"x-ouroboros-orders,omitempty"`

	// Extra carries any other vendor extension fields so a load-sync-write
	// round trip does not silently drop unrelated x-* annotations.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IsRef reports whether this Schema is a reference rather than an inline
// type description.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// HasMock reports whether an x-ouroboros-mock value is present (even if
// blank, per the Mock Synthesizer's leaf generator step 3).
func (s *Schema) HasMock() bool {
	return s != nil && s.XOuroborosMock != nil
}

// SchemaName extracts the component name from a local schema ref, e.g.
// "#/components/schemas/User" -> "User". Returns "" if ref does not match
// that local-component form.
func SchemaName(ref string) string {
	const prefix = "#/components/schemas/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return ""
	}
	return ref[len(prefix):]
}
