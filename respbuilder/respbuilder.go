// Package respbuilder selects a ResponseMeta by success-code priority,
// synthesizes and deep-merges its mock body, and serializes the result as
// JSON or XML depending on content negotiation.
package respbuilder

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/whitesnakegang/ouroboros/internal/httputil"
	"github.com/whitesnakegang/ouroboros/mockgen"
	"github.com/whitesnakegang/ouroboros/oaserrors"
	"github.com/whitesnakegang/ouroboros/oasmodel"
	"github.com/whitesnakegang/ouroboros/registry"
	"github.com/whitesnakegang/ouroboros/resolver"
)

// successPriority ranks status codes for default response selection: 200,
// 201, 204, then any other 2xx defined for the operation.
var successPriority = []int{200, 201, 204}

// Builder constructs and writes mock responses.
type Builder struct {
	resolver    *resolver.Resolver
	synthesizer *mockgen.Synthesizer
	synthMu     sync.Mutex // serializes use of synthesizer's random source
}

// Option configures a Builder.
type Option func(*Builder)

// WithSynthesizer overrides the default Synthesizer, e.g. to fix a seed in
// tests.
func WithSynthesizer(s *mockgen.Synthesizer) Option {
	return func(b *Builder) { b.synthesizer = s }
}

// New returns a Builder that resolves schemas with res and synthesizes
// bodies with mockgen's default Synthesizer unless overridden.
func New(res *resolver.Resolver, opts ...Option) *Builder {
	b := &Builder{resolver: res, synthesizer: mockgen.New()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build selects a response by success-code priority, synthesizes and
// merges its body, and writes it to w.
func (b *Builder) Build(w http.ResponseWriter, r *http.Request, meta *registry.EndpointMeta, requestBody any) {
	statusCode, respMeta, ok := selectResponse(meta.Responses)
	if !ok {
		writeMissingResponse(w, meta)
		return
	}

	if respMeta != nil {
		for k, v := range respMeta.Headers {
			w.Header().Set(k, v)
		}
	}

	var body any
	if respMeta != nil && respMeta.Body != nil {
		resolved := b.resolver.Resolve(respMeta.Body)
		b.synthMu.Lock()
		body = b.synthesizer.Synthesize(resolved)
		b.synthMu.Unlock()
	}

	body = mergeRequestBody(body, requestBody)

	contentType := chooseContentType(respMeta, r)
	w.Header().Set("Content-Type", contentType)

	effectiveStatus := statusCode
	if respMeta != nil && respMeta.StatusCode > 0 {
		effectiveStatus = respMeta.StatusCode
	}
	w.WriteHeader(effectiveStatus)

	writeBody(w, body, contentType)
}

// writeMissingResponse reports an operation with no usable response
// definition as a 500 with a JSON error payload, rather than silently
// serving an empty 200 body.
func writeMissingResponse(w http.ResponseWriter, meta *registry.EndpointMeta) {
	err := &oaserrors.ResponseDefinitionMissingError{
		Path:    meta.Path,
		Method:  meta.Method,
		Message: "no success response defined for this operation",
	}
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// selectResponse picks the ResponseMeta by success-code priority, falling
// back to any other 2xx response defined when none of the priority codes
// are present. ok is false when responses defines no success code at all,
// the condition Build reports as a missing response definition.
func selectResponse(responses *oasmodel.OrderedMap[*registry.ResponseMeta]) (int, *registry.ResponseMeta, bool) {
	if responses == nil || responses.Len() == 0 {
		return 0, nil, false
	}
	for _, code := range successPriority {
		if rm, ok := responses.Get(strconv.Itoa(code)); ok {
			return code, rm, true
		}
	}
	var anyTwoXXCode int
	var anyTwoXX *registry.ResponseMeta
	responses.Range(func(key string, rm *registry.ResponseMeta) bool {
		if n, err := strconv.Atoi(key); err == nil && n >= 200 && n < 300 {
			anyTwoXXCode, anyTwoXX = n, rm
			return false
		}
		return true
	})
	if anyTwoXX != nil {
		return anyTwoXXCode, anyTwoXX, true
	}

	return 0, nil, false
}

func chooseContentType(respMeta *registry.ResponseMeta, r *http.Request) string {
	if respMeta != nil && respMeta.ContentType != "" && httputil.IsValidMediaType(respMeta.ContentType) {
		return appendCharset(respMeta.ContentType)
	}
	if strings.Contains(strings.ToLower(r.Header.Get("Accept")), "xml") {
		return appendCharset("application/xml")
	}
	return appendCharset("application/json")
}

func appendCharset(contentType string) string {
	return contentType + ";charset=UTF-8"
}

func writeBody(w http.ResponseWriter, body any, contentType string) {
	if body == nil {
		return
	}
	if strings.Contains(contentType, "xml") {
		_ = xml.NewEncoder(w).Encode(wrapXMLRoot(body))
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// mergeRequestBody deep-merges requestBody into body, returning body
// unchanged when either side isn't a mergeable object. A synthesized body
// is always an *oasmodel.OrderedMap[any] (see mockgen.Synthesizer); merging
// must preserve that type rather than flatten to map[string]any, since
// OrderedMap carries the ordering encoding/json otherwise can't see.
func mergeRequestBody(body, requestBody any) any {
	dst, ok := body.(*oasmodel.OrderedMap[any])
	if !ok {
		return body
	}
	src, ok := asPlainMap(requestBody)
	if !ok {
		return body
	}
	deepMergeOrdered(dst, src)
	return dst
}

func asPlainMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// deepMergeOrdered merges src into dst in place: for a key present as a
// mergeable object on both sides it recurses, else the request's value
// replaces the generated one. Arrays and scalars from the request always
// replace. New keys from src are appended, so dst's declared order is kept
// for existing keys and is only extended, never reshuffled.
func deepMergeOrdered(dst *oasmodel.OrderedMap[any], src map[string]any) {
	for k, srcVal := range src {
		dstVal, exists := dst.Get(k)
		if !exists {
			dst.Set(k, srcVal)
			continue
		}
		dstMap, dstIsMap := dstVal.(*oasmodel.OrderedMap[any])
		srcMap, srcIsMap := srcVal.(map[string]any)
		if dstIsMap && srcIsMap {
			deepMergeOrdered(dstMap, srcMap)
			continue
		}
		dst.Set(k, srcVal)
	}
}
