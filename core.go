package ouroboros

import (
	"context"
	"net/http"
	"strings"

	"github.com/whitesnakegang/ouroboros/internal/httputil"
	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/loader"
	"github.com/whitesnakegang/ouroboros/mockgen"
	"github.com/whitesnakegang/ouroboros/oasmodel"
	"github.com/whitesnakegang/ouroboros/registry"
	"github.com/whitesnakegang/ouroboros/reqfilter"
	"github.com/whitesnakegang/ouroboros/resolver"
	"github.com/whitesnakegang/ouroboros/respbuilder"
	"github.com/whitesnakegang/ouroboros/validation"
)

// Core composes the mock serving engine: it owns the loaded document, the
// endpoint registry built from it, and the filter chain that serves mock
// responses for every endpoint marked x-ouroboros-progress: mock.
type Core struct {
	loader *loader.Loader
	reg    *registry.Registry
	filter *reqfilter.Filter
	log    log.Logger
}

// config holds the options an Open caller may set.
type config struct {
	log log.Logger
}

// Option configures Open.
type Option func(*config)

// WithLogger sets the Logger used across every composed component.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.log = l }
}

// Open loads the spec document at path, builds the endpoint registry from
// every operation marked x-ouroboros-progress: mock, and returns a Core
// ready to serve mock responses.
func Open(ctx context.Context, path string, opts ...Option) (*Core, error) {
	cfg := &config{log: log.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	ld := loader.New(path, loader.WithLogger(cfg.log))
	doc, err := ld.ReadOrCreate(nil)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	res := resolver.New(schemasOf(doc), resolver.WithLogger(cfg.log))
	if err := populateRegistry(reg, doc, res); err != nil {
		return nil, err
	}

	builder := respbuilder.New(res, respbuilder.WithSynthesizer(mockgen.New()))
	pipeline := validation.New(validation.WithLogger(cfg.log))
	filter := reqfilter.New(reg, pipeline, builder, reqfilter.WithLogger(cfg.log))

	return &Core{loader: ld, reg: reg, filter: filter, log: cfg.log}, nil
}

// MockHandler returns an http.Handler that serves mock responses for every
// registered endpoint and forwards everything else to next (nil is
// treated as 404).
func (c *Core) MockHandler(next http.Handler) http.Handler {
	return c.filter.Wrap(next)
}

// Registry exposes the underlying endpoint table, e.g. for a sync rebuild
// to Clear and repopulate. Clear and each Register take effect one at a
// time, so concurrent lookups can observe a partly rebuilt table.
func (c *Core) Registry() *registry.Registry {
	return c.reg
}

func schemasOf(doc *oasmodel.SpecDoc) *oasmodel.OrderedMap[*oasmodel.Schema] {
	if doc.Components.Schemas == nil {
		return oasmodel.NewOrderedMap[*oasmodel.Schema]()
	}
	return doc.Components.Schemas
}

// populateRegistry registers one EndpointMeta per operation whose
// x-ouroboros-progress is "mock"; completed operations are assumed served
// by real application code and are never mocked.
func populateRegistry(reg *registry.Registry, doc *oasmodel.SpecDoc, res *resolver.Resolver) error {
	if doc.Paths == nil {
		return nil
	}
	var firstErr error
	doc.Paths.Range(func(path string, item *oasmodel.PathItem) bool {
		if item.Operations == nil {
			return true
		}
		item.Operations.Range(func(method string, op *oasmodel.Operation) bool {
			if op.XOuroborosProgress != oasmodel.ProgressMock {
				return true
			}
			meta := buildEndpointMeta(path, method, op, res)
			if err := reg.Register(meta); err != nil && firstErr == nil {
				firstErr = err
			}
			return true
		})
		return true
	})
	return firstErr
}

func buildEndpointMeta(path, method string, op *oasmodel.Operation, res *resolver.Resolver) *registry.EndpointMeta {
	meta := &registry.EndpointMeta{
		ID:        op.XOuroborosID,
		Path:      path,
		Method:    strings.ToUpper(method),
		Responses: oasmodel.NewOrderedMap[*registry.ResponseMeta](),
	}

	for _, param := range op.Parameters {
		if !param.Required {
			continue
		}
		switch strings.ToLower(param.In) {
		case "header":
			meta.RequiredHeaders = append(meta.RequiredHeaders, param.Name)
		case "query":
			meta.RequiredParams = append(meta.RequiredParams, param.Name)
		}
	}

	for _, secReq := range op.Security {
		for schemeName := range secReq {
			meta.AuthHeaders = append(meta.AuthHeaders, schemeName)
		}
	}

	if op.RequestBody != nil {
		meta.RequestBodyRequired = op.RequestBody.Required
		if op.RequestBody.Content != nil {
			if ct, mt := firstContent(op.RequestBody.Content); mt != nil {
				meta.RequestBodyContentType = ct
				meta.RequestBodySchema = mt.Schema
			}
		}
	}

	if op.Responses != nil {
		op.Responses.Range(func(status string, resp *oasmodel.Response) bool {
			if !httputil.ValidateStatusCode(status) {
				return true
			}
			rm := &registry.ResponseMeta{}
			if resp.Headers != nil {
				rm.Headers = resp.Headers
			}
			if resp.Content != nil {
				if ct, mt := firstContent(resp.Content); mt != nil {
					rm.ContentType = ct
					rm.Body = res.Resolve(mt.Schema)
				}
			}
			meta.Responses.Set(status, rm)
			return true
		})
	}

	return meta
}

func firstContent(content *oasmodel.OrderedMap[*oasmodel.MediaType]) (string, *oasmodel.MediaType) {
	var foundKey string
	var found *oasmodel.MediaType
	content.Range(func(key string, mt *oasmodel.MediaType) bool {
		foundKey, found = key, mt
		return false
	})
	return foundKey, found
}
