// Package mockgen synthesizes sample values from resolved schemas, using a
// faker expression sublanguage for property-level literal control and
// format-aware or pattern-constrained defaults otherwise.
package mockgen

import (
	"math/rand"
	"time"

	"github.com/lucasjones/reggen"

	"github.com/whitesnakegang/ouroboros/oasmodel"
)

const arrayCardinality = 3

// Synthesizer produces sample values from resolved schemas.
type Synthesizer struct {
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed fixes the random source for deterministic output, e.g. in tests.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New returns a Synthesizer seeded from the current time unless overridden
// with WithSeed. Each Synthesizer owns its own *rand.Rand so concurrent
// callers should use one Synthesizer per goroutine or per call.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize produces a value for schema. schema must already be resolved
// (no remaining $ref) by the resolver package.
func (s *Synthesizer) Synthesize(schema *oasmodel.Schema) any {
	if schema == nil {
		return nil
	}
	switch schema.Type {
	case "object":
		return s.synthesizeObject(schema)
	case "array":
		return s.synthesizeArray(schema)
	default:
		return s.leaf(schema)
	}
}

func (s *Synthesizer) synthesizeObject(schema *oasmodel.Schema) *oasmodel.OrderedMap[any] {
	out := oasmodel.NewOrderedMap[any]()
	if schema.Properties == nil {
		out.Set("message", randomSentence(s.rng))
		return out
	}

	schema.Properties.Range(func(name string, propSchema *oasmodel.Schema) bool {
		out.Set(name, s.Synthesize(propSchema))
		return true
	})
	if len(schema.XOuroborosOrders) > 0 {
		out.Reorder(schema.XOuroborosOrders)
	}
	return out
}

func (s *Synthesizer) synthesizeArray(schema *oasmodel.Schema) []any {
	if schema.Items == nil {
		return []any{randomWord(s.rng, 3, 8), randomWord(s.rng, 3, 8)}
	}
	out := make([]any, arrayCardinality)
	for i := range out {
		out[i] = s.Synthesize(schema.Items)
	}
	return out
}

// leaf implements the four-step leaf-generator precedence.
func (s *Synthesizer) leaf(schema *oasmodel.Schema) any {
	if lit, ok := schema.XOuroborosMock.(string); ok {
		if expr, isFaker := asFakerExpr(lit); isFaker {
			call, ok := parseFakerCall(expr)
			if !ok {
				return "[FAKER_ERROR] " + expr
			}
			if v, ok := evalFaker(s.rng, call); ok {
				return v
			}
			return "[FAKER_ERROR] " + expr
		}
		if lit != "" {
			return lit
		}
		return ""
	}

	return s.typeDefault(schema)
}

func asFakerExpr(s string) (string, bool) {
	if fakerExprPattern.MatchString(s) {
		return s, true
	}
	return "", false
}

func (s *Synthesizer) typeDefault(schema *oasmodel.Schema) any {
	switch schema.Type {
	case "integer", "number":
		return numberBetween(s.rng, 1, 1000)
	case "boolean":
		return s.rng.Intn(2) == 0
	case "array":
		return []any{randomWord(s.rng, 3, 8), randomWord(s.rng, 3, 8)}
	case "object":
		out := oasmodel.NewOrderedMap[any]()
		out.Set("message", randomSentence(s.rng))
		return out
	default:
		return s.stringDefault(schema)
	}
}

// stringDefault chooses a format-aware default or pattern-constrained
// value before falling back to a plain random word, for string schemas
// that carry a format or pattern but no explicit mock literal.
func (s *Synthesizer) stringDefault(schema *oasmodel.Schema) any {
	if schema.Format != "" {
		if v, ok := formatDefault(s.rng, schema.Format); ok {
			return v
		}
	}
	if schema.Pattern != "" {
		if v, err := reggen.Generate(schema.Pattern, 10); err == nil {
			return v
		}
	}
	return randomWord(s.rng, 4, 10)
}
