package oasmodel

import (
	"bytes"
	"encoding/json"
	"fmt"

	ordmap "github.com/wk8/go-ordered-map/v2"
	"go.yaml.in/yaml/v4"
)

// OrderedMap is a string-keyed mapping that preserves insertion order on
// iteration and round-trips that order through YAML. Object property order
// matters for serialization (x-ouroboros-orders) and for the Response
// Builder's "first 2xx defined" fallback, so every mapping in the document model
// that OpenAPI callers can observe ordering on uses this type instead of a
// plain Go map.
type OrderedMap[V any] struct {
	m *ordmap.OrderedMap[string, V]
}

// NewOrderedMap returns an empty, ready-to-use OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: ordmap.New[string, V]()}
}

func (om *OrderedMap[V]) ensure() {
	if om.m == nil {
		om.m = ordmap.New[string, V]()
	}
}

// Set inserts or updates the value for key, preserving its original
// position on update and appending on insert.
func (om *OrderedMap[V]) Set(key string, value V) {
	om.ensure()
	om.m.Set(key, value)
}

// Get returns the value for key and whether it was present.
func (om *OrderedMap[V]) Get(key string) (V, bool) {
	if om == nil || om.m == nil {
		var zero V
		return zero, false
	}
	return om.m.Get(key)
}

// Delete removes key, returning whether it was present.
func (om *OrderedMap[V]) Delete(key string) bool {
	if om == nil || om.m == nil {
		return false
	}
	_, ok := om.m.Delete(key)
	return ok
}

// Len returns the number of entries.
func (om *OrderedMap[V]) Len() int {
	if om == nil || om.m == nil {
		return 0
	}
	return om.m.Len()
}

// Keys returns the keys in insertion order.
func (om *OrderedMap[V]) Keys() []string {
	if om == nil || om.m == nil {
		return nil
	}
	keys := make([]string, 0, om.m.Len())
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// First returns the first-inserted value and whether the map is non-empty.
func (om *OrderedMap[V]) First() (V, bool) {
	if om == nil || om.m == nil || om.m.Len() == 0 {
		var zero V
		return zero, false
	}
	pair := om.m.Oldest()
	return pair.Value, true
}

// Range calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (om *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	if om == nil || om.m == nil {
		return
	}
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Reorder rearranges entries to match order, appending any keys from order
// that have a matching entry, followed by any remaining entries in their
// prior relative order. Used to apply x-ouroboros-orders before synthesis.
func (om *OrderedMap[V]) Reorder(order []string) {
	if om == nil || om.m == nil || len(order) == 0 {
		return
	}
	seen := make(map[string]bool, len(order))
	rebuilt := ordmap.New[string, V]()
	for _, key := range order {
		if v, ok := om.m.Get(key); ok && !seen[key] {
			rebuilt.Set(key, v)
			seen[key] = true
		}
	}
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		if !seen[pair.Key] {
			rebuilt.Set(pair.Key, pair.Value)
			seen[pair.Key] = true
		}
	}
	om.m = rebuilt
}

// MarshalJSON encodes the OrderedMap as a JSON object with keys in
// insertion order, which encoding/json does not otherwise guarantee for
// Go maps.
func (om *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var outerErr error
	om.Range(func(key string, value V) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		keyBytes, err := json.Marshal(key)
		if err != nil {
			outerErr = err
			return false
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(value)
		if err != nil {
			outerErr = err
			return false
		}
		buf.Write(valBytes)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping node into the OrderedMap, preserving
// the document's key order.
func (om *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("oasmodel: expected a mapping node, got kind %d", node.Kind)
	}
	om.m = ordmap.New[string, V]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("oasmodel: decoding map key: %w", err)
		}
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("oasmodel: decoding value for key %q: %w", key, err)
		}
		om.m.Set(key, value)
	}
	return nil
}

// MarshalYAML encodes the OrderedMap as a YAML mapping node with keys in
// insertion order.
func (om *OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if om == nil || om.m == nil {
		return node, nil
	}
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		var keyNode, valNode yaml.Node
		if err := keyNode.Encode(pair.Key); err != nil {
			return nil, fmt.Errorf("oasmodel: encoding map key %q: %w", pair.Key, err)
		}
		if err := valNode.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("oasmodel: encoding value for key %q: %w", pair.Key, err)
		}
		node.Content = append(node.Content, &keyNode, &valNode)
	}
	return node, nil
}
