package oasmodel

import "go.yaml.in/yaml/v4"

// Clone returns a deep copy of v by serializing and re-parsing it through
// YAML. This is the one place the document model relies on the wire
// encoding for correctness rather than hand-rolled per-field copying: it
// guarantees a clone can never alias the OrderedMap/slice backing of the
// original, which matters for both the Spec Loader's handout copies and
// the Sync Pipeline's schema adoption step.
func Clone[T any](v T) (T, error) {
	var zero T
	data, err := yaml.Marshal(v)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return zero, err
	}
	return out, nil
}
