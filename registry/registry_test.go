package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ExactMatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/me"}))
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/{id}"}))

	meta, ok := r.Find("/api/users/me", "GET")
	require.True(t, ok)
	assert.Equal(t, "/api/users/me", meta.Path, "exact match should win over a template match")
}

func TestRegistry_TemplateMatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/{id}"}))

	meta, ok := r.Find("/api/users/7", "GET")
	require.True(t, ok)
	assert.Equal(t, "/api/users/{id}", meta.Path)
}

func TestRegistry_NoMatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/{id}"}))

	_, ok := r.Find("/api/orders/7", "GET")
	assert.False(t, ok)
}

func TestRegistry_MethodMismatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/{id}"}))

	_, ok := r.Find("/api/users/7", "POST")
	assert.False(t, ok)
}

func TestRegistry_TrailingSlashNormalized(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/"}))

	_, ok := r.Find("/api/users", "GET")
	assert.True(t, ok)
}

func TestRegistry_PermissiveOverwrite(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/ping", ID: "first"}))
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/ping", ID: "second"}))

	meta, ok := r.Find("/ping", "GET")
	require.True(t, ok)
	assert.Equal(t, "second", meta.ID)
}

func TestRegistry_StrictRejectsDuplicate(t *testing.T) {
	r := New()
	r.Permissive = false
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/ping", ID: "first"}))

	err := r.Register(&EndpointMeta{Method: "GET", Path: "/ping", ID: "second"})
	assert.Error(t, err)

	meta, ok := r.Find("/ping", "GET")
	require.True(t, ok)
	assert.Equal(t, "first", meta.ID, "rejected registration must not replace the existing entry")
}

func TestRegistry_Clear(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/ping"}))
	r.Clear()

	_, ok := r.Find("/ping", "GET")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentReadsAndWrites(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&EndpointMeta{Method: "GET", Path: "/api/users/{id}"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Find("/api/users/7", "GET")
		}()
		go func(i int) {
			defer wg.Done()
			_ = r.Register(&EndpointMeta{Method: "GET", Path: "/api/orders/{id}"})
		}(i)
	}
	wg.Wait()

	_, ok := r.Find("/api/orders/9", "GET")
	assert.True(t, ok)
}

func TestTemplateToPattern(t *testing.T) {
	pattern := templateToPattern("/api/users/{id}/orders/{orderId}")
	assert.Equal(t, `^/api/users/[^/]+/orders/[^/]+$`, pattern)
}
