package resource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lyraproj/puppet-catalog/eval"
)

// HostName is a node name as it appears in a node definition. Its value is
// either a string or a *regexp.Regexp.
type HostName struct {
	Value interface{}
}

func (h HostName) String() string {
	switch v := h.Value.(type) {
	case *regexp.Regexp:
		return `/` + v.String() + `/`
	case string:
		return v
	default:
		return fmt.Sprintf(`%v`, v)
	}
}

// IsRegexp returns true if the host name is a regular expression.
func (h HostName) IsRegexp() bool {
	_, ok := h.Value.(*regexp.Regexp)
	return ok
}

// Normalize returns the canonical form of a type name. Strings are lower cased
// with any leading `::` removed. Regular expressions (also when wrapped in a
// HostName) are reduced to the alphanumeric characters and colons of their
// source, without leading dots or colons. Normalize is idempotent.
func Normalize(name interface{}) string {
	switch n := name.(type) {
	case string:
		return strings.TrimLeft(strings.ToLower(n), `:`)
	case *regexp.Regexp:
		return normalizeRegexp(n.String())
	case HostName:
		return Normalize(n.Value)
	case *HostName:
		return Normalize(n.Value)
	case fmt.Stringer:
		return Normalize(n.String())
	default:
		return Normalize(eval.ToString(n))
	}
}

func normalizeRegexp(src string) string {
	b := strings.Builder{}
	for _, c := range strings.ToLower(src) {
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == ':' {
			b.WriteRune(c)
		}
	}
	return strings.TrimLeft(b.String(), `.:`)
}

// NamespaceOf returns the namespace of a type with the given kind and canonical name. The
// namespace of a class is its own name. The namespace of a definition or node is the name
// without its last segment. Regexp named types have no namespace.
func NamespaceOf(kind Kind, canonical string, regex bool) string {
	if regex {
		return ``
	}
	if kind == Hostclass {
		return canonical
	}
	if idx := strings.LastIndex(canonical, `::`); idx >= 0 {
		return canonical[:idx]
	}
	return ``
}
