package oasmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrderedMap_SetGetLen(t *testing.T) {
	om := NewOrderedMap[int]()
	assert.Equal(t, 0, om.Len())

	om.Set("a", 1)
	om.Set("b", 2)
	assert.Equal(t, 2, om.Len())

	v, ok := om.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = om.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMap_SetPreservesPositionOnUpdate(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("a", 1)
	om.Set("b", 2)
	om.Set("c", 3)
	om.Set("a", 100)

	assert.Equal(t, []string{"a", "b", "c"}, om.Keys())
	v, _ := om.Get("a")
	assert.Equal(t, 100, v)
}

func TestOrderedMap_Delete(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("a", 1)
	om.Set("b", 2)

	assert.True(t, om.Delete("a"))
	assert.False(t, om.Delete("a"))
	assert.Equal(t, []string{"b"}, om.Keys())
}

func TestOrderedMap_First(t *testing.T) {
	om := NewOrderedMap[string]()
	_, ok := om.First()
	assert.False(t, ok)

	om.Set("x", "first")
	om.Set("y", "second")
	v, ok := om.First()
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestOrderedMap_Range(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("a", 1)
	om.Set("b", 2)
	om.Set("c", 3)

	var seen []string
	om.Range(func(key string, value int) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestOrderedMap_Reorder(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("c", 3)
	om.Set("a", 1)
	om.Set("b", 2)

	om.Reorder([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, om.Keys())
}

func TestOrderedMap_ReorderIgnoresUnknownKeys(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("a", 1)
	om.Set("b", 2)

	om.Reorder([]string{"z", "b", "a"})
	assert.Equal(t, []string{"b", "a"}, om.Keys())
}

func TestOrderedMap_ReorderNoopOnEmptyOrder(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("a", 1)
	om.Set("b", 2)

	om.Reorder(nil)
	assert.Equal(t, []string{"a", "b"}, om.Keys())
}

func TestOrderedMap_MarshalJSONPreservesInsertionOrder(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("zebra", 1)
	om.Set("apple", 2)
	om.Set("mango", 3)

	data, err := json.Marshal(om)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
}

func TestOrderedMap_MarshalJSONEmpty(t *testing.T) {
	om := NewOrderedMap[int]()
	data, err := json.Marshal(om)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestOrderedMap_MarshalJSONNestedOrderedValues(t *testing.T) {
	inner := NewOrderedMap[any]()
	inner.Set("b", 2)
	inner.Set("a", 1)

	outer := NewOrderedMap[any]()
	outer.Set("inner", inner)
	outer.Set("flag", true)

	data, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"b":2,"a":1},"flag":true}`, string(data))
}

func TestOrderedMap_YAMLRoundTripPreservesOrder(t *testing.T) {
	om := NewOrderedMap[int]()
	om.Set("third", 3)
	om.Set("first", 1)
	om.Set("second", 2)

	data, err := yaml.Marshal(om)
	require.NoError(t, err)

	var out OrderedMap[int]
	require.NoError(t, yaml.Unmarshal(data, &out))

	assert.Equal(t, []string{"third", "first", "second"}, out.Keys())
	v, ok := out.Get("second")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestOrderedMap_UnmarshalYAMLRejectsNonMapping(t *testing.T) {
	var out OrderedMap[int]
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &out)
	assert.Error(t, err)
}
