package registry

import (
	"regexp"
	"strings"
)

var templateParamPattern = regexp.MustCompile(`\{[^/{}]+\}`)

// templateToPattern converts a URI template such as "/api/users/{id}" into
// an anchored regular expression, escaping regex metacharacters in the
// literal segments and replacing each "{name}" segment with "[^/]+".
func templateToPattern(template string) string {
	var b strings.Builder
	b.WriteByte('^')

	last := 0
	for _, loc := range templateParamPattern.FindAllStringIndex(template, -1) {
		start, end := loc[0], loc[1]
		b.WriteString(regexp.QuoteMeta(template[last:start]))
		b.WriteString(`[^/]+`)
		last = end
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteByte('$')
	return b.String()
}
