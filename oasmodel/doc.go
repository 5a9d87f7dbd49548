// Package oasmodel defines the trimmed OAS 3.1 document model shared by the
// rest of ouroboros: Schema, Operation, PathItem, SpecDoc, and the
// x-ouroboros-* vendor extensions layered on top of them.
//
// Every mapping whose iteration order is observable (schema properties,
// path items, operation responses, media types) is backed by [OrderedMap]
// instead of a plain Go map: the response builder's success-priority
// fallback and the synthesizer's x-ouroboros-orders handling both depend
// on it.
package oasmodel

// NewSkeleton returns an empty SpecDoc with the given servers, used by the
// Spec Loader's ReadOrCreate when no file exists yet.
func NewSkeleton(servers []Server) *SpecDoc {
	return &SpecDoc{
		OpenAPI: "3.1.0",
		Info:    Info{Title: "ouroboros", Version: "0.0.0"},
		Servers: servers,
		Paths:   NewOrderedMap[*PathItem](),
		Components: Components{
			Schemas:         NewOrderedMap[*Schema](),
			SecuritySchemes: NewOrderedMap[*SecurityScheme](),
		},
		Security: nil,
	}
}
