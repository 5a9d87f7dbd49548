package mockgen

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// fakerExprPattern matches the whole faker DSL expression string:
// "{{$category.method(param1=value1,param2=value2)}}".
var fakerExprPattern = regexp.MustCompile(`^\{\{\$(.+)\}\}$`)

// fakerCallPattern splits the inner expression into category, method, and
// the raw (possibly empty) parameter list.
var fakerCallPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)\(([^)]*)\)$`)

var fakerParamPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)=(?:(-?\d+)|'([^']*)'|"([^"]*)")$`)

// fakerCall is the parsed form of a faker DSL expression.
type fakerCall struct {
	Category string
	Method   string
	Params   map[string]any
}

// parseFakerCall parses expr as a faker DSL expression. ok is false if expr
// is not of the "{{$...}}" form at all or the inner grammar does not parse,
// which the caller surfaces as a FAKER_ERROR literal.
func parseFakerCall(expr string) (fakerCall, bool) {
	outer := fakerExprPattern.FindStringSubmatch(expr)
	if outer == nil {
		return fakerCall{}, false
	}
	inner := fakerCallPattern.FindStringSubmatch(outer[1])
	if inner == nil {
		return fakerCall{}, false
	}

	call := fakerCall{Category: inner[1], Method: inner[2], Params: map[string]any{}}
	raw := strings.TrimSpace(inner[3])
	if raw == "" {
		return call, true
	}
	for _, part := range strings.Split(raw, ",") {
		m := fakerParamPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return fakerCall{}, false
		}
		name := m[1]
		switch {
		case m[2] != "":
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return fakerCall{}, false
			}
			call.Params[name] = n
		case m[3] != "":
			call.Params[name] = m[3]
		default:
			call.Params[name] = m[4]
		}
	}
	return call, true
}

// fakerGenerator produces a value for a parsed faker call.
type fakerGenerator func(rng *rand.Rand, call fakerCall) any

// methodAliases maps a DSL method name to the generator key actually
// dispatched.
var methodAliases = map[string]string{
	"int":     "numberBetween",
	"decimal": "randomDouble",
}

// fakerTable is the explicit (category, generatorKey) -> generator
// dispatch table, authored by hand rather than invoked via reflection, so
// an unknown method has one well-defined fallback instead of a runtime
// panic path.
var fakerTable = map[string]fakerGenerator{
	"numberBetween": func(rng *rand.Rand, call fakerCall) any {
		minV := intParam(call, "min", 1)
		maxV := intParam(call, "max", 100)
		return numberBetween(rng, minV, maxV)
	},
	"randomDouble": func(rng *rand.Rand, call fakerCall) any {
		minV := intParam(call, "min", 1000)
		maxV := intParam(call, "max", 100000)
		v := float64(numberBetween(rng, minV, maxV))
		// two decimal places
		frac := rng.Intn(100)
		return roundTo2(v + float64(frac)/100)
	},
}

// categoryFallback generates a value for (category, method) pairs with no
// table entry: "any other method name is invoked on the category with no
// arguments", interpreted here as a representative word keyed by category.
// ok is false for a category other than name, internet or lorem.
func categoryFallback(rng *rand.Rand, category, method string) (any, bool) {
	switch category {
	case "name":
		return fullName(rng), true
	case "internet":
		return randomWord(rng, 3, 10) + "@" + randomWord(rng, 3, 8) + ".com", true
	case "lorem":
		return randomSentence(rng), true
	default:
		return nil, false
	}
}

// evalFaker evaluates a parsed faker call, looking up its generator key by
// method name (after alias translation), else falling through to
// categoryFallback. ok is false when the call cannot be evaluated, which the
// caller surfaces as a FAKER_ERROR literal.
func evalFaker(rng *rand.Rand, call fakerCall) (any, bool) {
	key := call.Method
	if alias, ok := methodAliases[call.Method]; ok {
		key = alias
	}
	if gen, ok := fakerTable[key]; ok {
		return gen(rng, call), true
	}
	if call.Category == "name" && call.Method == "fullName" {
		return fullName(rng), true
	}
	return categoryFallback(rng, call.Category, call.Method)
}

func intParam(call fakerCall, name string, fallback int) int {
	if v, ok := call.Params[name]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return fallback
}

func numberBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
