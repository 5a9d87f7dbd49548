// Package validation implements the mock serving engine's request
// validation pipeline: a strictly ordered sequence of checks that
// short-circuits on the first failure.
package validation

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/registry"
)

// ForcedErrorHeader is the header used to force a specific error status
// code on a mock response, for testing client error-handling paths.
const ForcedErrorHeader = "X-Ouroboros-Error"

// Result is the outcome of running the pipeline against a request.
type Result struct {
	Valid   bool
	Status  int
	Message string
}

// ok is the single passing result, returned when every check clears.
var ok = Result{Valid: true}

// Pipeline runs the four precedence-ordered checks against an HTTP request
// and an endpoint's declared requirements.
type Pipeline struct {
	log log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the Logger used to record ignored malformed headers.
func WithLogger(l log.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New returns a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: log.NopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validate runs the checks in strict precedence order against req for the
// given endpoint metadata, stopping at the first failure.
func (p *Pipeline) Validate(req *http.Request, meta *registry.EndpointMeta) Result {
	if res, failed := p.checkForcedError(req); failed {
		return res
	}
	if res, failed := checkAuthHeaders(req, meta.AuthHeaders); failed {
		return res
	}
	if res, failed := checkRequiredHeaders(req, meta.RequiredHeaders); failed {
		return res
	}
	if res, failed := checkRequiredParams(req, meta.RequiredParams); failed {
		return res
	}
	return ok
}

func (p *Pipeline) checkForcedError(req *http.Request) (Result, bool) {
	raw := req.Header.Get(ForcedErrorHeader)
	if raw == "" {
		return Result{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.log.Warn("validation: ignoring non-numeric forced error header", "value", raw)
		return Result{}, false
	}
	return Result{Status: n, Message: "Forced error response via X-Ouroboros-Error header"}, true
}

func checkAuthHeaders(req *http.Request, authHeaders []string) (Result, bool) {
	for _, name := range authHeaders {
		if req.Header.Get(name) == "" {
			return Result{Status: http.StatusUnauthorized, Message: "Authentication required."}, true
		}
	}
	return Result{}, false
}

func checkRequiredHeaders(req *http.Request, required []string) (Result, bool) {
	for _, name := range required {
		if req.Header.Get(name) == "" {
			return Result{Status: http.StatusBadRequest, Message: "Missing required header"}, true
		}
	}
	return Result{}, false
}

func checkRequiredParams(req *http.Request, required []string) (Result, bool) {
	query := req.URL.Query()
	for _, name := range required {
		if query.Get(name) == "" {
			return Result{Status: http.StatusBadRequest, Message: "Missing required parameter"}, true
		}
	}
	return Result{}, false
}
