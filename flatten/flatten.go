// Package flatten reduces a schema graph into a TypeCounts multiset so two
// schemas can be compared structurally without caring about property
// declaration order.
package flatten

import (
	"fmt"

	"github.com/whitesnakegang/ouroboros/oasmodel"
)

// TypeCounts maps a leaf descriptor to how many times it occurs in a
// flattened schema graph.
type TypeCounts map[string]int

// Flatten walks the named schema against the given component schemas and
// returns its TypeCounts. Cycles are broken by treating a revisited schema
// name as an opaque leaf of that name.
func Flatten(name string, schemas *oasmodel.OrderedMap[*oasmodel.Schema]) TypeCounts {
	counts := TypeCounts{}
	schema, ok := schemas.Get(name)
	if !ok {
		return counts
	}
	visited := map[string]bool{name: true}
	if schema.Type == "object" || schema.Type == "" {
		walkObjectInline("", schema, schemas, visited, counts)
	} else {
		counts[schema.Type]++
	}
	return counts
}

// Equal reports whether two TypeCounts are equal as multisets: same key
// set, same count per key.
func Equal(a, b TypeCounts) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// walkProperty handles a named property: objects expand inline, arrays
// contribute an "array.<elementDescriptor>" leaf, everything else walks as
// a leaf keyed by its own property path.
func walkProperty(path string, schema *oasmodel.Schema, schemas *oasmodel.OrderedMap[*oasmodel.Schema], visited map[string]bool, counts TypeCounts) {
	if schema == nil {
		return
	}

	if schema.IsRef() {
		refName := oasmodel.SchemaName(schema.Ref)
		if refName == "" {
			return
		}
		if visited[refName] {
			counts[fmt.Sprintf("%s:%s", path, refName)]++
			return
		}
		target, ok := schemas.Get(refName)
		if !ok {
			return
		}
		if target.Type == "object" || target.Type == "" {
			walkObjectInline(path, target, schemas, extendVisited(visited, refName), counts)
			return
		}
		counts[fmt.Sprintf("%s:%s", path, refName)]++
		return
	}

	switch schema.Type {
	case "object":
		walkObjectInline(path, schema, schemas, visited, counts)
	case "array":
		counts[fmt.Sprintf("%s:array.%s", path, arrayElementDescriptor(schema.Items, schemas))]++
	default:
		counts[fmt.Sprintf("%s:%s", path, schema.Type)]++
	}
}

func walkObjectInline(path string, schema *oasmodel.Schema, schemas *oasmodel.OrderedMap[*oasmodel.Schema], visited map[string]bool, counts TypeCounts) {
	if schema.Properties == nil {
		return
	}
	schema.Properties.Range(func(propName string, propSchema *oasmodel.Schema) bool {
		walkProperty(joinPath(path, propName), propSchema, schemas, visited, counts)
		return true
	})
}

func arrayElementDescriptor(items *oasmodel.Schema, schemas *oasmodel.OrderedMap[*oasmodel.Schema]) string {
	if items == nil {
		return "string"
	}
	if items.IsRef() {
		if name := oasmodel.SchemaName(items.Ref); name != "" {
			return name
		}
	}
	if items.Type != "" {
		return items.Type
	}
	return "string"
}

func extendVisited(visited map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(visited)+1)
	for k := range visited {
		next[k] = true
	}
	next[name] = true
	return next
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
