package oasmodel

// SpecDoc is the whole-file OpenAPI 3.1 document model.
type SpecDoc struct {
	OpenAPI    string                 `yaml:"openapi" json:"openapi"`
	Info       Info                   `yaml:"info" json:"info"`
	Servers    []Server               `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      *OrderedMap[*PathItem] `yaml:"paths" json:"paths"`
	Components Components             `yaml:"components" json:"components"`
	Security   []SecurityRequirement  `yaml:"security,omitempty" json:"security,omitempty"`
}

// Info is the OAS Info Object, trimmed to the fields a mock/sync core cares
// about.
type Info struct {
	Title   string `yaml:"title" json:"title"`
	Version string `yaml:"version" json:"version"`
}

// Server is the OAS Server Object.
type Server struct {
	URL string `yaml:"url" json:"url"`
}

// Components holds the document's reusable objects.
type Components struct {
	Schemas         *OrderedMap[*Schema]         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	SecuritySchemes *OrderedMap[*SecurityScheme] `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
}

// SecurityRequirement maps a security scheme name to its required scopes.
type SecurityRequirement map[string][]string

// SecurityScheme is a trimmed OAS Security Scheme Object; this core reads
// header presence only, never validates token/credential contents.
type SecurityScheme struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	In   string `yaml:"in,omitempty" json:"in,omitempty"`
}

// PathItem maps an HTTP method (lowercase) to the Operation handling it.
// Kept as an ordered map rather than named per-method fields so the Sync
// Pipeline can add/remove methods without special-casing each one.
type PathItem struct {
	Operations *OrderedMap[*Operation]
}

// Operation is a trimmed OAS Operation Object carrying the x-ouroboros-*
// bookkeeping fields the Sync Pipeline and Mock Registry depend on.
type Operation struct {
	Summary     string                 `yaml:"summary,omitempty" json:"summary,omitempty"`
	OperationID string                 `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Tags        []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Parameters  []Parameter            `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody           `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   *OrderedMap[*Response] `yaml:"responses" json:"responses"`
	Security    []SecurityRequirement  `yaml:"security,omitempty" json:"security,omitempty"`

	XOuroborosID       string `yaml:"x-ouroboros-id,omitempty" json:"x-ouroboros-id,omitempty"`
	XOuroborosProgress string `yaml:"x-ouroboros-progress,omitempty" json:"x-ouroboros-progress,omitempty"`
	XOuroborosDiff     string `yaml:"x-ouroboros-diff,omitempty" json:"x-ouroboros-diff,omitempty"`
	XOuroborosTag      string `yaml:"x-ouroboros-tag,omitempty" json:"x-ouroboros-tag,omitempty"`
	XOuroborosReqLog   string `yaml:"x-ouroboros-req-log,omitempty" json:"x-ouroboros-req-log,omitempty"`
	XOuroborosResLog   string `yaml:"x-ouroboros-res-log,omitempty" json:"x-ouroboros-res-log,omitempty"`
	XOuroborosResponse string `yaml:"x-ouroboros-response,omitempty" json:"x-ouroboros-response,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Progress/diff/tag enum values for the x-ouroboros-* extension fields.
const (
	ProgressMock      = "mock"
	ProgressCompleted = "completed"

	DiffNone     = "none"
	DiffRequest  = "request"
	DiffResponse = "response"
	DiffEndpoint = "endpoint"
	DiffBoth     = "both"

	TagNone         = "none"
	TagImplementing = "implementing"
	TagBugfix       = "bugfix"

	ResponseUse    = "use"
	ResponseUnused = "unused"
)

// Parameter is a trimmed OAS Parameter Object.
type Parameter struct {
	Name     string  `yaml:"name" json:"name"`
	In       string  `yaml:"in" json:"in"`
	Required bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema   *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// RequestBody is a trimmed OAS Request Body Object.
type RequestBody struct {
	Required bool                    `yaml:"required,omitempty" json:"required,omitempty"`
	Content  *OrderedMap[*MediaType] `yaml:"content" json:"content"`
}

// Response is a trimmed OAS Response Object. Operation.Responses is keyed
// by status code string ("200", "default", ...); iteration order over that
// map implements the success-priority "first 2xx defined" fallback.
type Response struct {
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     map[string]string       `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     *OrderedMap[*MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
}

// MediaType is a trimmed OAS Media Type Object.
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}
