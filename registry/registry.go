// Package registry holds the runtime EndpointMeta table the mock serving
// engine looks up on every request: exact key match first, then a
// path-template regex match, with compiled patterns memoized.
package registry

import (
	"regexp"
	"strings"
	"sync"

	"github.com/whitesnakegang/ouroboros/oasmodel"
)

// EndpointMeta is the runtime handle derived from a mock-marked Operation.
type EndpointMeta struct {
	ID                     string
	Path                   string
	Method                 string
	RequiredHeaders        []string
	RequiredParams         []string
	AuthHeaders            []string
	RequestBodyRequired    bool
	RequestBodySchema      *oasmodel.Schema
	RequestBodyContentType string
	// Responses is keyed by HTTP status code; ordered so the Response
	// Builder's "first 2xx defined" fallback has a well-defined meaning.
	Responses *oasmodel.OrderedMap[*ResponseMeta]
}

// ResponseMeta describes one possible response for an EndpointMeta.
type ResponseMeta struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        *oasmodel.Schema
}

// Registry maps (method, path) to EndpointMeta. Exact-key reads are
// lock-free; a template lookup copies the registration order under
// orderMu before scanning it. Writes serialize per key via sync.Map. The regex cache for path
// templates uses compute-if-absent semantics, grounded on the same pattern
// a sibling HTTP router in this corpus uses for its own route table.
type Registry struct {
	// Permissive controls Register's overwrite policy for a duplicate
	// (method, path) key. Default true: the later Register call silently
	// wins, matching the documented default behavior. Set false to make
	// a duplicate registration return an error instead.
	Permissive bool

	entries     sync.Map // key: "METHOD:normalizedPath" -> *EndpointMeta
	entryOrder  []string // insertion order of keys, for template-match tie-break
	orderMu     sync.Mutex
	regexCache  sync.Map // key: path template -> *regexp.Regexp
}

// New returns an empty, permissive Registry.
func New() *Registry {
	return &Registry{Permissive: true}
}

// Register stores meta under "METHOD:normalize(path)". With Permissive
// set (the default), a duplicate key silently overwrites the previous
// entry; otherwise it returns an error without modifying the table.
func (r *Registry) Register(meta *EndpointMeta) error {
	key := registryKey(meta.Method, meta.Path)
	if _, loaded := r.entries.Load(key); loaded && !r.Permissive {
		return &duplicateKeyError{key: key}
	}
	if _, loaded := r.entries.Load(key); !loaded {
		r.orderMu.Lock()
		r.entryOrder = append(r.entryOrder, key)
		r.orderMu.Unlock()
	}
	r.entries.Store(key, meta)
	return nil
}

// Find looks up the EndpointMeta for an incoming request path and method.
// Exact matches always win; failing that, registered templates matching
// method are tried in registration order and the first matching template
// wins. Callers must ensure at most one template matches a given concrete
// path.
func (r *Registry) Find(path, method string) (*EndpointMeta, bool) {
	key := registryKey(method, path)
	if v, ok := r.entries.Load(key); ok {
		return v.(*EndpointMeta), true
	}

	r.orderMu.Lock()
	order := append([]string(nil), r.entryOrder...)
	r.orderMu.Unlock()

	for _, candidateKey := range order {
		v, ok := r.entries.Load(candidateKey)
		if !ok {
			continue
		}
		meta := v.(*EndpointMeta)
		if !strings.EqualFold(meta.Method, method) {
			continue
		}
		re, err := r.compileTemplate(meta.Path)
		if err != nil {
			continue
		}
		if re.MatchString(path) {
			return meta, true
		}
	}
	return nil, false
}

// Clear drops all entries and the compiled-pattern cache.
func (r *Registry) Clear() {
	r.entries.Range(func(k, _ any) bool {
		r.entries.Delete(k)
		return true
	})
	r.regexCache.Range(func(k, _ any) bool {
		r.regexCache.Delete(k)
		return true
	})
	r.orderMu.Lock()
	r.entryOrder = nil
	r.orderMu.Unlock()
}

func (r *Registry) compileTemplate(template string) (*regexp.Regexp, error) {
	if v, ok := r.regexCache.Load(template); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(templateToPattern(template))
	if err != nil {
		return nil, err
	}
	actual, _ := r.regexCache.LoadOrStore(template, re)
	return actual.(*regexp.Regexp), nil
}

func registryKey(method, path string) string {
	return strings.ToUpper(method) + ":" + normalizePath(path)
}

// normalizePath strips a single trailing slash, except for the root path.
func normalizePath(path string) string {
	if path != "/" && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

type duplicateKeyError struct {
	key string
}

func (e *duplicateKeyError) Error() string {
	return "registry: duplicate key " + e.key
}
