package oasmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecDoc_JSONFieldCasing(t *testing.T) {
	doc := &SpecDoc{
		OpenAPI: "3.1.0",
		Info:    Info{Title: "pets", Version: "1.0"},
		Paths:   NewOrderedMap[*PathItem](),
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	jsonStr := string(data)

	assert.Contains(t, jsonStr, `"openapi"`)
	assert.Contains(t, jsonStr, `"info"`)
	assert.Contains(t, jsonStr, `"paths"`)
	assert.NotContains(t, jsonStr, `"OpenAPI"`)
}

func TestNewSkeleton(t *testing.T) {
	servers := []Server{{URL: "http://localhost"}}
	doc := NewSkeleton(servers)

	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Equal(t, servers, doc.Servers)
	assert.Equal(t, 0, doc.Paths.Len())
	assert.NotNil(t, doc.Components.Schemas)
	assert.NotNil(t, doc.Components.SecuritySchemes)
}
