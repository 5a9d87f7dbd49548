// Package resolver expands $ref schemas against a document's component
// schemas, breaking cycles with a visited-set rather than unbounded
// recursion.
package resolver

import (
	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/oasmodel"
)

// Resolver expands local $ref schemas against a fixed set of named
// component schemas.
type Resolver struct {
	schemas *oasmodel.OrderedMap[*oasmodel.Schema]
	log     log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the Logger used to record cycle warnings.
func WithLogger(l log.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// New returns a Resolver over the given component schemas.
func New(schemas *oasmodel.OrderedMap[*oasmodel.Schema], opts ...Option) *Resolver {
	r := &Resolver{schemas: schemas, log: log.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a Schema with every $ref replaced by its referent,
// recursively, cycle-safe. Properties and Items are resolved with a fresh
// copy of the visited set so diamond references are followed while true
// cycles are still caught.
func (r *Resolver) Resolve(schema *oasmodel.Schema) *oasmodel.Schema {
	return r.resolve(schema, map[string]bool{})
}

func (r *Resolver) resolve(schema *oasmodel.Schema, visited map[string]bool) *oasmodel.Schema {
	if schema == nil {
		return nil
	}
	if !schema.IsRef() {
		return r.resolveInline(schema, visited)
	}

	name := oasmodel.SchemaName(schema.Ref)
	if name == "" {
		r.log.Warn("resolver: unrecognized ref form, treating as empty schema", "ref", schema.Ref)
		return &oasmodel.Schema{Type: "object"}
	}
	if visited[schema.Ref] {
		r.log.Warn("resolver: circular reference detected", "ref", schema.Ref)
		return &oasmodel.Schema{Type: "object"}
	}

	target, ok := r.schemas.Get(name)
	if !ok {
		r.log.Warn("resolver: unresolved reference", "ref", schema.Ref)
		return &oasmodel.Schema{Type: "object"}
	}

	nextVisited := make(map[string]bool, len(visited)+1)
	for k := range visited {
		nextVisited[k] = true
	}
	nextVisited[schema.Ref] = true

	return r.resolve(target, nextVisited)
}

func (r *Resolver) resolveInline(schema *oasmodel.Schema, visited map[string]bool) *oasmodel.Schema {
	out := &oasmodel.Schema{
		Type:             schema.Type,
		Format:           schema.Format,
		Pattern:          schema.Pattern,
		Required:         schema.Required,
		XOuroborosMock:   schema.XOuroborosMock,
		XOuroborosOrders: schema.XOuroborosOrders,
		Extra:            schema.Extra,
	}

	if schema.Properties != nil {
		out.Properties = oasmodel.NewOrderedMap[*oasmodel.Schema]()
		schema.Properties.Range(func(name string, propSchema *oasmodel.Schema) bool {
			copyVisited := copyVisitedSet(visited)
			out.Properties.Set(name, r.resolve(propSchema, copyVisited))
			return true
		})
	}

	if schema.Items != nil {
		out.Items = r.resolve(schema.Items, copyVisitedSet(visited))
	}

	return out
}

func copyVisitedSet(visited map[string]bool) map[string]bool {
	cp := make(map[string]bool, len(visited))
	for k, v := range visited {
		cp[k] = v
	}
	return cp
}
