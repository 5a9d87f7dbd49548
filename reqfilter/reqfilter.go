// Package reqfilter intercepts an incoming HTTP request, parses its body
// according to the matched endpoint's declared content type, runs the
// validation pipeline, and either short-circuits with an error body or
// hands off to the response builder.
package reqfilter

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/registry"
	"github.com/whitesnakegang/ouroboros/respbuilder"
	"github.com/whitesnakegang/ouroboros/validation"
)

var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// Filter is an http.Handler wrapper: it looks up each request in the
// registry, parses and validates it, and either serves a mock response or
// forwards to next when no endpoint matches.
type Filter struct {
	registry  *registry.Registry
	validator *validation.Pipeline
	respond   *respbuilder.Builder
	log       log.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the Filter's Logger. Body parse failures are not logged;
// they yield a nil parsed body.
func WithLogger(l log.Logger) Option {
	return func(f *Filter) { f.log = l }
}

// New returns a Filter wired to reg for lookups, validator for request
// checks, and respond for building the mock response body.
func New(reg *registry.Registry, validator *validation.Pipeline, respond *respbuilder.Builder, opts ...Option) *Filter {
	f := &Filter{registry: reg, validator: validator, respond: respond, log: log.NopLogger{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Wrap returns an http.Handler that serves matched endpoints as mocks and
// forwards everything else to next.
func (f *Filter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta, ok := f.registry.Find(r.URL.Path, r.Method)
		if !ok {
			if next != nil {
				next.ServeHTTP(w, r)
			} else {
				http.NotFound(w, r)
			}
			return
		}

		body := f.parseBody(r, meta)

		result := f.validator.Validate(r, meta)
		if !result.Valid {
			writeError(w, result.Status, result.Message)
			return
		}

		f.respond.Build(w, r, meta, body)
	})
}

// parseBody parses the request body per meta's declared content type when
// the method carries a body, returning nil for methods that don't.
func (f *Filter) parseBody(r *http.Request, meta *registry.EndpointMeta) any {
	if !bodyMethods[r.Method] {
		return nil
	}

	contentType := meta.RequestBodyContentType
	if contentType == "" {
		contentType = "application/json"
	}

	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		return parseMultipart(r)
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return parseURLEncoded(r)
	case strings.Contains(contentType, "application/xml"):
		return parseXML(r)
	default:
		return parseJSON(r)
	}
}

func parseMultipart(r *http.Request) any {
	actual, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.Contains(actual, "multipart/form-data") && !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil
	}
	return map[string]any{"_multipart": true}
}

func parseURLEncoded(r *http.Request) any {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil
	}
	out := map[string]any{}
	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out
}

func parseXML(r *http.Request) any {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil
	}
	out, err := decodeXMLMap(raw)
	if err != nil {
		return nil
	}
	return out
}

func parseJSON(r *http.Request) any {
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
