package eval

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lyraproj/puppet-catalog/utils"
)

// IsTruthy returns false for undef and false. All other values are true.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// ToString returns the string form of a value as it appears when
// interpolated into a string.
func ToString(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	b := bytes.NewBufferString(``)
	writeValue(b, v, false)
	return b.String()
}

// SourceString returns the value formatted as manifest source.
func SourceString(v Value) string {
	b := bytes.NewBufferString(``)
	writeValue(b, v, true)
	return b.String()
}

// ToString3 writes the string form of a value to the given writer.
func ToString3(v Value, w io.Writer) {
	if s, ok := v.(string); ok {
		io.WriteString(w, s)
		return
	}
	writeValue(w, v, false)
}

func writeValue(w io.Writer, v Value, quote bool) {
	switch v := v.(type) {
	case nil:
		if quote {
			io.WriteString(w, `undef`)
		}
	case string:
		if quote {
			io.WriteString(w, utils.PuppetQuote(v))
		} else {
			io.WriteString(w, v)
		}
	case bool:
		io.WriteString(w, strconv.FormatBool(v))
	case int64:
		io.WriteString(w, strconv.FormatInt(v, 10))
	case int:
		io.WriteString(w, strconv.Itoa(v))
	case float64:
		io.WriteString(w, strconv.FormatFloat(v, 'f', -1, 64))
	case DefaultValue:
		io.WriteString(w, `default`)
	case *regexp.Regexp:
		io.WriteString(w, `/`)
		io.WriteString(w, v.String())
		io.WriteString(w, `/`)
	case []Value:
		io.WriteString(w, `[`)
		for i, e := range v {
			if i > 0 {
				io.WriteString(w, `, `)
			}
			writeValue(w, e, true)
		}
		io.WriteString(w, `]`)
	case map[string]Value:
		io.WriteString(w, `{`)
		for i, k := range SortedKeys(v) {
			if i > 0 {
				io.WriteString(w, `, `)
			}
			io.WriteString(w, utils.PuppetQuote(k))
			io.WriteString(w, ` => `)
			writeValue(w, v[k], true)
		}
		io.WriteString(w, `}`)
	default:
		fmt.Fprintf(w, `%v`, v)
	}
}

// SortedKeys returns the keys of the given hash in sorted order.
func SortedKeys(h map[string]Value) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PuppetEquals compares two values using Puppet semantics. Strings compare
// case insensitively and integers are equal to floats of the same value.
func PuppetEquals(a, b Value) bool {
	switch a := a.(type) {
	case string:
		if bs, ok := b.(string); ok {
			return strings.EqualFold(a, bs)
		}
		return false
	case int64, float64:
		if af, ok := ToFloat(a); ok {
			if bf, ok := ToFloat(b); ok {
				return af == bf
			}
		}
		return false
	case []Value:
		ba, ok := b.([]Value)
		if !ok || len(a) != len(ba) {
			return false
		}
		for i, e := range a {
			if !PuppetEquals(e, ba[i]) {
				return false
			}
		}
		return true
	case map[string]Value:
		bh, ok := b.(map[string]Value)
		if !ok || len(a) != len(bh) {
			return false
		}
		for k, e := range a {
			if be, ok := bh[k]; !ok || !PuppetEquals(e, be) {
				return false
			}
		}
		return true
	case *regexp.Regexp:
		if br, ok := b.(*regexp.Regexp); ok {
			return a.String() == br.String()
		}
		return false
	default:
		return a == b
	}
}

// ToFloat converts a numeric value to a float64.
func ToFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
