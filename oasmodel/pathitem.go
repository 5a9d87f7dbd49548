package oasmodel

import "go.yaml.in/yaml/v4"

// UnmarshalYAML decodes a YAML mapping of HTTP methods to Operations
// directly into PathItem.Operations, so PathItem serializes as a flat
// method map rather than nesting under an "operations" key.
func (p *PathItem) UnmarshalYAML(node *yaml.Node) error {
	p.Operations = NewOrderedMap[*Operation]()
	return p.Operations.UnmarshalYAML(node)
}

// MarshalYAML encodes PathItem.Operations as a flat method map.
func (p *PathItem) MarshalYAML() (any, error) {
	if p.Operations == nil {
		p.Operations = NewOrderedMap[*Operation]()
	}
	return p.Operations.MarshalYAML()
}

// Method returns the Operation for method (case already expected lowercase
// per the data model's convention), or nil if absent.
func (p *PathItem) Method(method string) *Operation {
	if p == nil || p.Operations == nil {
		return nil
	}
	op, _ := p.Operations.Get(method)
	return op
}

// SetMethod sets the Operation for method.
func (p *PathItem) SetMethod(method string, op *Operation) {
	if p.Operations == nil {
		p.Operations = NewOrderedMap[*Operation]()
	}
	p.Operations.Set(method, op)
}

// RemoveMethod deletes the Operation for method, returning whether it was
// present.
func (p *PathItem) RemoveMethod(method string) bool {
	if p == nil || p.Operations == nil {
		return false
	}
	return p.Operations.Delete(method)
}

// IsEmpty reports whether the path item has no remaining methods, meaning
// the owning path should be dropped from SpecDoc.Paths entirely.
func (p *PathItem) IsEmpty() bool {
	return p == nil || p.Operations == nil || p.Operations.Len() == 0
}
