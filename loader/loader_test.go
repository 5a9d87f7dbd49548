package loader

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitesnakegang/ouroboros/oaserrors"
	"github.com/whitesnakegang/ouroboros/oasmodel"
)

func writeFixture(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const fixtureYAML = `
openapi: 3.1.0
info:
  title: Fixture
  version: "1.0"
paths:
  /api/users/{id}:
    get:
      x-ouroboros-id: abc123
      x-ouroboros-progress: mock
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: integer
components:
  schemas: {}
`

func TestLoader_ReadMissing(t *testing.T) {
	ld := New(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := ld.Read()
	require.Error(t, err)
	var parseErr *oaserrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "file missing", parseErr.Message)
}

func TestLoader_ReadOrCreate_ReturnsSkeleton(t *testing.T) {
	ld := New(filepath.Join(t.TempDir(), "missing.yaml"))
	doc, err := ld.ReadOrCreate([]oasmodel.Server{{URL: "http://localhost"}})
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Equal(t, 0, doc.Paths.Len())
}

func TestLoader_ReadParsesFixture(t *testing.T) {
	path := writeFixture(t, t.TempDir(), fixtureYAML)
	ld := New(path)

	doc, err := ld.Read()
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", doc.OpenAPI)
	assert.Equal(t, 1, doc.Paths.Len())

	item, ok := doc.Paths.Get("/api/users/{id}")
	require.True(t, ok)
	op := item.Method("get")
	require.NotNil(t, op)
	assert.Equal(t, "mock", op.XOuroborosProgress)
}

func TestLoader_ReadHandoutsDoNotAliasCache(t *testing.T) {
	path := writeFixture(t, t.TempDir(), fixtureYAML)
	ld := New(path)

	doc1, err := ld.Read()
	require.NoError(t, err)
	item, _ := doc1.Paths.Get("/api/users/{id}")
	item.Method("get").XOuroborosProgress = "completed"

	doc2, err := ld.Read()
	require.NoError(t, err)
	item2, _ := doc2.Paths.Get("/api/users/{id}")
	assert.Equal(t, "mock", item2.Method("get").XOuroborosProgress,
		"mutating a handed-out document must not affect the cache")
}

func TestLoader_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "openapi.yaml")
	ld := New(path)

	doc := oasmodel.NewSkeleton(nil)
	doc.Paths.Set("/ping", &oasmodel.PathItem{})
	require.NoError(t, ld.Write(doc))

	reread, err := ld.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, reread.Paths.Len())
}

func TestLoader_ConcurrentReadsReturnConsistentDocuments(t *testing.T) {
	path := writeFixture(t, t.TempDir(), fixtureYAML)
	ld := New(path)

	const readers = 32
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			doc, err := ld.Read()
			assert.NoError(t, err)
			if err == nil {
				assert.Equal(t, 1, doc.Paths.Len())
			}
		}()
	}
	wg.Wait()
}

func TestLoader_Invalidate_ForcesReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, fixtureYAML)
	ld := New(path)

	_, err := ld.Read()
	require.NoError(t, err)

	// Rewrite with identical mtime-insensitive content change, then force reload.
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML+"\n"), 0o644))
	ld.Invalidate()

	_, err = ld.Read()
	require.NoError(t, err)
}
