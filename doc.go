// Package ouroboros wires a self-hosted OpenAPI mock server and its
// specification-synchronization engine into a single facade.
//
// # Overview
//
// A team writes an OpenAPI 3.1 document annotated with a private
// "x-ouroboros-*" extension vocabulary, and ouroboros serves mock HTTP
// responses straight from that document while keeping it reconciled against
// what the code actually does. Two engines cooperate:
//
//   - The mock serving engine (packages [registry], [resolver], [mockgen],
//     [validation], [reqfilter], [respbuilder]) looks up an incoming request
//     against the loaded document, validates it, and synthesizes a response
//     body from the matched operation's schema.
//   - The specification synchronization engine (package [sync]) reconciles
//     the on-disk document against a scanned-from-code view of the same
//     paths, rewriting x-ouroboros-progress and x-ouroboros-diff markers so
//     drift between spec and implementation stays visible.
//
// # Quick Start
//
//	core, err := ouroboros.Open(ctx, "openapi.yaml", ouroboros.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	mux := http.NewServeMux()
//	mux.Handle("/", core.MockHandler(http.NotFoundHandler()))
//
// # Data Model
//
// [oasmodel] holds the trimmed OAS 3.1 document model the rest of the
// packages operate over: [oasmodel.SpecDoc], [oasmodel.Schema],
// [oasmodel.Operation], and friends, using insertion-ordered maps wherever
// iteration order is observable on the wire.
//
// # Error Handling
//
// All packages return errors from [oaserrors], enabling callers to branch on
// error category with errors.Is/errors.As rather than string matching.
package ouroboros
