package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitesnakegang/ouroboros/oasmodel"
)

func newDoc() *oasmodel.SpecDoc {
	return &oasmodel.SpecDoc{
		OpenAPI: "3.1.0",
		Info:    oasmodel.Info{Title: "test", Version: "0.0.0"},
		Paths:   oasmodel.NewOrderedMap[*oasmodel.PathItem](),
		Components: oasmodel.Components{
			Schemas:         oasmodel.NewOrderedMap[*oasmodel.Schema](),
			SecuritySchemes: oasmodel.NewOrderedMap[*oasmodel.SecurityScheme](),
		},
	}
}

func withPathOp(doc *oasmodel.SpecDoc, path, method string, op *oasmodel.Operation) {
	item, ok := doc.Paths.Get(path)
	if !ok {
		item = &oasmodel.PathItem{Operations: oasmodel.NewOrderedMap[*oasmodel.Operation]()}
		doc.Paths.Set(path, item)
	}
	item.SetMethod(method, op)
}

func TestSync_BootstrapAdoptsScannedWholesale(t *testing.T) {
	scanned := newDoc()
	withPathOp(scanned, "/pets", "get", &oasmodel.Operation{
		Tags:      []string{"pets"},
		Responses: oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	out := New().Run(nil, scanned)

	item, ok := out.Paths.Get("/pets")
	require.True(t, ok)
	op := item.Method("get")
	require.NotNil(t, op)
	assert.NotEmpty(t, op.XOuroborosID)
	assert.Equal(t, oasmodel.DiffEndpoint, op.XOuroborosDiff)
	assert.Equal(t, oasmodel.TagNone, op.XOuroborosTag)
	assert.Equal(t, []string{"PETS"}, op.Tags)
}

func TestSync_NewPathIsAdopted(t *testing.T) {
	fileSpec := newDoc()
	withPathOp(fileSpec, "/existing", "get", &oasmodel.Operation{
		XOuroborosDiff: oasmodel.DiffNone,
		Responses:      oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	scanned := newDoc()
	withPathOp(scanned, "/existing", "get", &oasmodel.Operation{Responses: oasmodel.NewOrderedMap[*oasmodel.Response]()})
	withPathOp(scanned, "/new-path", "post", &oasmodel.Operation{Responses: oasmodel.NewOrderedMap[*oasmodel.Response]()})

	out := New().Run(fileSpec, scanned)

	item, ok := out.Paths.Get("/new-path")
	require.True(t, ok)
	op := item.Method("post")
	require.NotNil(t, op)
	assert.Equal(t, oasmodel.DiffEndpoint, op.XOuroborosDiff)
}

func TestSync_StaleEndpointDiffDropped(t *testing.T) {
	fileSpec := newDoc()
	withPathOp(fileSpec, "/gone", "get", &oasmodel.Operation{
		XOuroborosDiff: oasmodel.DiffEndpoint,
		Responses:      oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	scanned := newDoc()

	out := New().Run(fileSpec, scanned)
	_, ok := out.Paths.Get("/gone")
	assert.False(t, ok, "stale endpoint-diff path should be dropped")
}

func TestSync_RequestMismatchSetsDiffRequest(t *testing.T) {
	fileSpec := newDoc()
	withPathOp(fileSpec, "/pets", "get", &oasmodel.Operation{
		XOuroborosDiff: oasmodel.DiffNone,
		Responses:      oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	scanned := newDoc()
	withPathOp(scanned, "/pets", "get", &oasmodel.Operation{
		Parameters: []oasmodel.Parameter{{Name: "limit", Required: true, Schema: &oasmodel.Schema{Type: "integer"}}},
		Responses:  oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	out := New().Run(fileSpec, scanned)
	item, _ := out.Paths.Get("/pets")
	op := item.Method("get")
	assert.Equal(t, oasmodel.DiffRequest, op.XOuroborosDiff)
	assert.Contains(t, op.XOuroborosReqLog, "limit")
	assert.Equal(t, oasmodel.ProgressMock, op.XOuroborosProgress)
}

func TestSync_DocumentationOnlyMockSkipsCompare(t *testing.T) {
	fileSpec := newDoc()
	withPathOp(fileSpec, "/pets", "get", &oasmodel.Operation{
		XOuroborosDiff: oasmodel.DiffNone,
		Responses:      oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	scanned := newDoc()
	withPathOp(scanned, "/pets", "get", &oasmodel.Operation{
		XOuroborosProgress: oasmodel.ProgressMock,
		Parameters:         []oasmodel.Parameter{{Name: "limit", Required: true}},
		Responses:          oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	out := New().Run(fileSpec, scanned)
	item, _ := out.Paths.Get("/pets")
	op := item.Method("get")
	assert.Equal(t, oasmodel.DiffNone, op.XOuroborosDiff)
}

func TestSync_FixpointIsIdempotent(t *testing.T) {
	fileSpec := newDoc()
	withPathOp(fileSpec, "/pets", "get", &oasmodel.Operation{
		Responses: oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	scanned := newDoc()
	withPathOp(scanned, "/pets", "get", &oasmodel.Operation{
		Responses: oasmodel.NewOrderedMap[*oasmodel.Response](),
	})

	first := New().Run(fileSpec, scanned)
	second := New().Run(first, scanned)

	item1, _ := first.Paths.Get("/pets")
	item2, _ := second.Paths.Get("/pets")
	assert.Equal(t, item1.Method("get").XOuroborosDiff, item2.Method("get").XOuroborosDiff)
	assert.Equal(t, item1.Method("get").XOuroborosProgress, item2.Method("get").XOuroborosProgress)
}

func TestSync_SecuritySchemesPreserved(t *testing.T) {
	fileSpec := newDoc()
	fileSpec.Components.SecuritySchemes.Set("apiKey", &oasmodel.SecurityScheme{Type: "apiKey", Name: "X-Api-Key", In: "header"})
	withPathOp(fileSpec, "/pets", "get", &oasmodel.Operation{Responses: oasmodel.NewOrderedMap[*oasmodel.Response]()})

	scanned := newDoc()
	withPathOp(scanned, "/pets", "get", &oasmodel.Operation{Responses: oasmodel.NewOrderedMap[*oasmodel.Response]()})

	New().Run(fileSpec, scanned)
	_, ok := scanned.Components.SecuritySchemes.Get("apiKey")
	assert.True(t, ok)
}
