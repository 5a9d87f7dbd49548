// Package sync reconciles the on-disk spec document against a freshly
// scanned one, so the file on disk always reflects what the running code
// actually implements while preserving human-curated metadata.
package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/whitesnakegang/ouroboros/flatten"
	"github.com/whitesnakegang/ouroboros/internal/issues"
	"github.com/whitesnakegang/ouroboros/internal/log"
	"github.com/whitesnakegang/ouroboros/internal/severity"
	"github.com/whitesnakegang/ouroboros/oasmodel"
)

// Pipeline reconciles a file spec with a scanned spec.
type Pipeline struct {
	log log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the Logger used for diagnostics during reconciliation.
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

// Run reconciles fileSpec against scannedSpec and returns the mutated file
// spec the Loader should persist. fileSpec may be nil, meaning no spec file
// existed yet.
func (p *Pipeline) Run(fileSpec, scannedSpec *oasmodel.SpecDoc) *oasmodel.SpecDoc {
	if isEmptyDoc(fileSpec) && hasPaths(scannedSpec) {
		return p.bootstrap(scannedSpec)
	}
	if fileSpec == nil {
		return scannedSpec
	}

	schemaMatch := compareSchemas(fileSpec, scannedSpec)
	preserveSecuritySchemes(fileSpec, scannedSpec)
	cleanupFileSide(fileSpec)
	p.walkScanned(fileSpec, scannedSpec, schemaMatch)

	return fileSpec
}

func isEmptyDoc(doc *oasmodel.SpecDoc) bool {
	return doc == nil || doc.Paths == nil || doc.Paths.Len() == 0
}

func hasPaths(doc *oasmodel.SpecDoc) bool {
	return doc != nil && doc.Paths != nil && doc.Paths.Len() > 0
}

// bootstrap adopts the scanned spec wholesale: every operation gets a
// fresh id if absent, uppercased tags, diff=endpoint, tag=none.
func (p *Pipeline) bootstrap(scanned *oasmodel.SpecDoc) *oasmodel.SpecDoc {
	adopted, err := oasmodel.Clone(scanned)
	if err != nil {
		p.log.Warn("sync: bootstrap clone failed, adopting live scanned doc", "error", err)
		adopted = scanned
	}

	adopted.Paths.Range(func(_ string, item *oasmodel.PathItem) bool {
		item.Operations.Range(func(_ string, op *oasmodel.Operation) bool {
			prepareAdoptedOperation(op)
			return true
		})
		return true
	})
	return adopted
}

func prepareAdoptedOperation(op *oasmodel.Operation) {
	if op.XOuroborosID == "" {
		op.XOuroborosID = uuid.NewString()
	}
	uppercaseTags(op)
	op.XOuroborosDiff = oasmodel.DiffEndpoint
	op.XOuroborosTag = oasmodel.TagNone
}

var tagCaser = cases.Upper(language.Und)

// uppercaseTags uses Unicode-aware case folding rather than strings.ToUpper,
// since tags are free-form author text and not guaranteed to be ASCII.
func uppercaseTags(op *oasmodel.Operation) {
	for i, tag := range op.Tags {
		op.Tags[i] = tagCaser.String(tag)
	}
}

// compareSchemas flattens every named schema in both specs and records,
// for each scanned schema name, whether the file spec has a schema of the
// same name with an equal TypeCounts multiset.
func compareSchemas(fileSpec, scanned *oasmodel.SpecDoc) map[string]bool {
	match := map[string]bool{}
	if scanned.Components.Schemas == nil {
		return match
	}
	scanned.Components.Schemas.Range(func(name string, _ *oasmodel.Schema) bool {
		scannedCounts := flatten.Flatten(name, scanned.Components.Schemas)
		fileHasName := fileSpec.Components.Schemas != nil
		if fileHasName {
			_, fileHasName = fileSpec.Components.Schemas.Get(name)
		}
		matched := false
		if fileHasName {
			fileCounts := flatten.Flatten(name, fileSpec.Components.Schemas)
			matched = flatten.Equal(fileCounts, scannedCounts)
		}
		match[name] = matched
		return true
	})
	return match
}

// preserveSecuritySchemes copies the file spec's security schemes into the
// scanned spec, since scanning code cannot discover them on its own.
func preserveSecuritySchemes(fileSpec, scanned *oasmodel.SpecDoc) {
	if fileSpec.Components.SecuritySchemes == nil {
		return
	}
	scanned.Components.SecuritySchemes = fileSpec.Components.SecuritySchemes
}

// cleanupFileSide drops operations that were a stale endpoint adoption
// (diff=endpoint) and resets everything else to a neutral baseline ahead
// of the scanned walk re-marking what's still live.
func cleanupFileSide(fileSpec *oasmodel.SpecDoc) {
	if fileSpec.Paths == nil {
		return
	}
	var emptyPaths []string
	fileSpec.Paths.Range(func(path string, item *oasmodel.PathItem) bool {
		var staleMethods []string
		item.Operations.Range(func(method string, op *oasmodel.Operation) bool {
			if op.XOuroborosDiff == oasmodel.DiffEndpoint {
				staleMethods = append(staleMethods, method)
				return true
			}
			op.XOuroborosDiff = oasmodel.DiffNone
			op.XOuroborosProgress = oasmodel.ProgressMock
			op.XOuroborosTag = oasmodel.TagNone
			return true
		})
		for _, method := range staleMethods {
			item.RemoveMethod(method)
		}
		if item.IsEmpty() {
			emptyPaths = append(emptyPaths, path)
		}
		return true
	})
	for _, path := range emptyPaths {
		fileSpec.Paths.Delete(path)
	}
}

// walkScanned reconciles every (path, method) in the scanned spec into the
// file spec, per the five-way case split.
func (p *Pipeline) walkScanned(fileSpec, scanned *oasmodel.SpecDoc, schemaMatch map[string]bool) {
	if scanned.Paths == nil {
		return
	}
	scanned.Paths.Range(func(path string, scannedItem *oasmodel.PathItem) bool {
		fileItem, pathExists := fileSpec.Paths.Get(path)

		if !pathExists {
			p.adoptNewPath(fileSpec, scanned, path, scannedItem)
			return true
		}

		scannedItem.Operations.Range(func(method string, scannedOp *oasmodel.Operation) bool {
			fileOp := fileItem.Method(method)

			switch {
			case fileOp == nil:
				p.adoptNewMethod(fileSpec, scanned, fileItem, method, scannedOp)
			case fileOp.XOuroborosDiff == oasmodel.DiffEndpoint:
				// endpoint diffs dominate; leave as-is.
			case scannedOp.XOuroborosProgress == oasmodel.ProgressMock:
				// documentation-only; skip request/response compare.
			default:
				p.compareOperation(path, method, fileOp, scannedOp, schemaMatch)
			}
			return true
		})
		return true
	})
}

func (p *Pipeline) adoptNewPath(fileSpec, scanned *oasmodel.SpecDoc, path string, scannedItem *oasmodel.PathItem) {
	newItem := &oasmodel.PathItem{Operations: oasmodel.NewOrderedMap[*oasmodel.Operation]()}
	scannedItem.Operations.Range(func(method string, scannedOp *oasmodel.Operation) bool {
		op, err := oasmodel.Clone(scannedOp)
		if err != nil {
			p.log.Warn("sync: clone of adopted operation failed, using live value", "path", path, "method", method, "error", err)
			op = scannedOp
		}
		prepareAdoptedOperation(op)
		newItem.SetMethod(method, op)
		p.copyReachableSchemas(fileSpec, scanned, op)
		return true
	})
	fileSpec.Paths.Set(path, newItem)
}

func (p *Pipeline) adoptNewMethod(fileSpec, scanned *oasmodel.SpecDoc, fileItem *oasmodel.PathItem, method string, scannedOp *oasmodel.Operation) {
	op, err := oasmodel.Clone(scannedOp)
	if err != nil {
		p.log.Warn("sync: clone of adopted method failed, using live value", "method", method, "error", err)
		op = scannedOp
	}
	prepareAdoptedOperation(op)
	fileItem.SetMethod(method, op)
	p.copyReachableSchemas(fileSpec, scanned, op)
}

// copyReachableSchemas copies every schema reachable from op's parameters,
// request body, and responses that is missing from fileSpec, cycle-safe,
// deep-copying each before insertion.
func (p *Pipeline) copyReachableSchemas(fileSpec, scanned *oasmodel.SpecDoc, op *oasmodel.Operation) {
	if scanned.Components.Schemas == nil {
		return
	}
	if fileSpec.Components.Schemas == nil {
		fileSpec.Components.Schemas = oasmodel.NewOrderedMap[*oasmodel.Schema]()
	}

	visited := map[string]bool{}
	for _, param := range op.Parameters {
		p.copySchemaRefs(fileSpec, scanned, param.Schema, visited)
	}
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		op.RequestBody.Content.Range(func(_ string, mt *oasmodel.MediaType) bool {
			p.copySchemaRefs(fileSpec, scanned, mt.Schema, visited)
			return true
		})
	}
	if op.Responses != nil {
		op.Responses.Range(func(_ string, resp *oasmodel.Response) bool {
			if resp.Content == nil {
				return true
			}
			resp.Content.Range(func(_ string, mt *oasmodel.MediaType) bool {
				p.copySchemaRefs(fileSpec, scanned, mt.Schema, visited)
				return true
			})
			return true
		})
	}
}

func (p *Pipeline) copySchemaRefs(fileSpec, scanned *oasmodel.SpecDoc, schema *oasmodel.Schema, visited map[string]bool) {
	if schema == nil {
		return
	}
	if schema.IsRef() {
		name := oasmodel.SchemaName(schema.Ref)
		if name == "" || visited[name] {
			return
		}
		visited[name] = true

		if _, exists := fileSpec.Components.Schemas.Get(name); !exists {
			target, ok := scanned.Components.Schemas.Get(name)
			if !ok {
				return
			}
			copied, err := oasmodel.Clone(target)
			if err != nil {
				p.log.Warn("sync: clone of copied schema failed, using live value", "schema", name, "error", err)
				copied = target
			}
			fileSpec.Components.Schemas.Set(name, copied)
			p.copySchemaRefs(fileSpec, scanned, copied, visited)
		}
		return
	}

	if schema.Properties != nil {
		schema.Properties.Range(func(_ string, propSchema *oasmodel.Schema) bool {
			p.copySchemaRefs(fileSpec, scanned, propSchema, visited)
			return true
		})
	}
	if schema.Items != nil {
		p.copySchemaRefs(fileSpec, scanned, schema.Items, visited)
	}
}

// compareOperation runs the request and response comparisons for an
// operation present in both specs under the same method.
func (p *Pipeline) compareOperation(path, method string, fileOp, scannedOp *oasmodel.Operation, schemaMatch map[string]bool) {
	opCtx := &issues.OperationContext{Method: strings.ToUpper(method), Path: path, OperationID: scannedOp.OperationID}

	reqMismatches := compareRequest(path, opCtx, fileOp, scannedOp)
	if len(reqMismatches) > 0 {
		fileOp.XOuroborosDiff = combineDiff(fileOp.XOuroborosDiff, oasmodel.DiffRequest)
		fileOp.XOuroborosProgress = oasmodel.ProgressMock
		fileOp.XOuroborosReqLog = joinIssues(reqMismatches)
	} else {
		fileOp.XOuroborosReqLog = ""
	}

	if scannedOp.XOuroborosResponse != oasmodel.ResponseUse {
		if fileOp.XOuroborosDiff == "" || fileOp.XOuroborosDiff == oasmodel.DiffNone {
			if len(reqMismatches) == 0 {
				fileOp.XOuroborosProgress = oasmodel.ProgressCompleted
			}
		}
		return
	}

	resMismatches := compareResponses(path, opCtx, fileOp, scannedOp, schemaMatch)
	if len(resMismatches) > 0 {
		fileOp.XOuroborosDiff = combineDiff(fileOp.XOuroborosDiff, oasmodel.DiffResponse)
		fileOp.XOuroborosProgress = oasmodel.ProgressMock
		fileOp.XOuroborosResLog = joinIssues(resMismatches)
	} else {
		fileOp.XOuroborosResLog = ""
		if fileOp.XOuroborosDiff == "" || fileOp.XOuroborosDiff == oasmodel.DiffNone {
			fileOp.XOuroborosProgress = oasmodel.ProgressCompleted
		}
	}
}

func joinIssues(found []issues.Issue) string {
	lines := make([]string, len(found))
	for i, iss := range found {
		lines[i] = iss.String()
	}
	return strings.Join(lines, "\n")
}

func combineDiff(existing, next string) string {
	if existing == "" || existing == oasmodel.DiffNone {
		return next
	}
	if existing == next {
		return existing
	}
	return oasmodel.DiffBoth
}

// compareRequest compares parameters and body requirement between the file
// and scanned operations, returning an Issue per discrepancy.
func compareRequest(basePath string, opCtx *issues.OperationContext, fileOp, scannedOp *oasmodel.Operation) []issues.Issue {
	var mismatches []issues.Issue

	fileParams := paramsByName(fileOp.Parameters)
	scannedParams := paramsByName(scannedOp.Parameters)

	for name, sp := range scannedParams {
		fp, ok := fileParams[name]
		if !ok {
			if sp.Required {
				mismatches = append(mismatches, issues.Issue{
					Path: issues.FormatPath(basePath, "parameters", name), Field: name, Severity: severity.SeverityWarning,
					Message: fmt.Sprintf("parameter %q is required in code but missing from spec", name),
					OperationContext: opCtx,
				})
			}
			continue
		}
		if fp.Schema != nil && sp.Schema != nil && fp.Schema.Type != sp.Schema.Type {
			mismatches = append(mismatches, issues.Issue{
				Path: issues.FormatPath(basePath, "parameters", name), Field: name, Severity: severity.SeverityWarning,
				Message:          fmt.Sprintf("parameter %q type mismatch: spec=%s code=%s", name, fp.Schema.Type, sp.Schema.Type),
				OperationContext: opCtx,
			})
		}
	}
	for name, fp := range fileParams {
		if _, ok := scannedParams[name]; !ok && fp.Required {
			mismatches = append(mismatches, issues.Issue{
				Path: issues.FormatPath(basePath, "parameters", name), Field: name, Severity: severity.SeverityWarning,
				Message:          fmt.Sprintf("parameter %q is required in spec but missing from code", name),
				OperationContext: opCtx,
			})
		}
	}

	fileHasBody := fileOp.RequestBody != nil && fileOp.RequestBody.Required
	scannedHasBody := scannedOp.RequestBody != nil && scannedOp.RequestBody.Required
	if fileHasBody != scannedHasBody {
		mismatches = append(mismatches, issues.Issue{
			Path: issues.FormatPath(basePath, "requestBody"), Severity: severity.SeverityWarning,
			Message: "request body requirement mismatch", OperationContext: opCtx,
		})
	}

	return mismatches
}

func paramsByName(params []oasmodel.Parameter) map[string]oasmodel.Parameter {
	out := make(map[string]oasmodel.Parameter, len(params))
	for _, param := range params {
		out[param.Name] = param
	}
	return out
}

// compareResponses compares, for each status code in the scanned
// operation, whether the file operation declares a structurally
// equivalent response.
func compareResponses(basePath string, opCtx *issues.OperationContext, fileOp, scannedOp *oasmodel.Operation, schemaMatch map[string]bool) []issues.Issue {
	var mismatches []issues.Issue
	if scannedOp.Responses == nil {
		return mismatches
	}
	scannedOp.Responses.Range(func(status string, scannedResp *oasmodel.Response) bool {
		fileResp, ok := fileOp.Responses.Get(status)
		if !ok {
			mismatches = append(mismatches, issues.Issue{
				Path: issues.FormatPath(basePath, "responses", status), Field: status, Severity: severity.SeverityWarning,
				Message:          fmt.Sprintf("response %s is present in code but missing from spec", status),
				OperationContext: opCtx,
			})
			return true
		}
		if !responseContentEquivalent(fileResp, scannedResp, schemaMatch) {
			mismatches = append(mismatches, issues.Issue{
				Path: issues.FormatPath(basePath, "responses", status), Field: status, Severity: severity.SeverityWarning,
				Message:          fmt.Sprintf("response %s content mismatch between spec and code", status),
				OperationContext: opCtx,
			})
		}
		return true
	})
	return mismatches
}

// responseContentEquivalent compares two responses ignoring media-type
// keys: each scanned media type's schema must equal at least one file
// media type's schema and vice versa.
func responseContentEquivalent(fileResp, scannedResp *oasmodel.Response, schemaMatch map[string]bool) bool {
	fileSchemas := mediaTypeSchemas(fileResp)
	scannedSchemas := mediaTypeSchemas(scannedResp)

	if len(fileSchemas) == 0 && len(scannedSchemas) == 0 {
		return true
	}

	for _, s := range scannedSchemas {
		if !anySchemaEqual(s, fileSchemas, schemaMatch) {
			return false
		}
	}
	for _, s := range fileSchemas {
		if !anySchemaEqual(s, scannedSchemas, schemaMatch) {
			return false
		}
	}
	return true
}

func mediaTypeSchemas(resp *oasmodel.Response) []*oasmodel.Schema {
	if resp == nil || resp.Content == nil {
		return nil
	}
	var out []*oasmodel.Schema
	resp.Content.Range(func(_ string, mt *oasmodel.MediaType) bool {
		if mt.Schema != nil {
			out = append(out, mt.Schema)
		}
		return true
	})
	return out
}

func anySchemaEqual(s *oasmodel.Schema, candidates []*oasmodel.Schema, schemaMatch map[string]bool) bool {
	for _, c := range candidates {
		if schemaEqual(s, c, schemaMatch) {
			return true
		}
	}
	return false
}

// schemaEqual uses schemaMatch for $ref leaves and exact type equality for
// primitive leaves.
func schemaEqual(a, b *oasmodel.Schema, schemaMatch map[string]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsRef() && b.IsRef() {
		nameA := oasmodel.SchemaName(a.Ref)
		nameB := oasmodel.SchemaName(b.Ref)
		if nameA != nameB {
			return false
		}
		return schemaMatch[nameA]
	}
	if a.IsRef() != b.IsRef() {
		return false
	}
	return a.Type == b.Type
}
