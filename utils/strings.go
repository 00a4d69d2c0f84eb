package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ContainsString returns true if strings contains str
func ContainsString(strings []string, str string) bool {
	if str != `` {
		for _, v := range strings {
			if v == str {
				return true
			}
		}
	}
	return false
}

// IsDecimalInteger returns true if the string represents a base 10 integer
func IsDecimalInteger(s string) bool {
	if len(s) > 0 {
		for _, c := range s {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	}
	return false
}

func capitalizeSegment(b io.Writer, segment string) {
	_, s := utf8.DecodeRuneInString(segment)
	if s > 0 {
		if s == len(segment) {
			io.WriteString(b, strings.ToUpper(segment))
		} else {
			io.WriteString(b, strings.ToUpper(segment[:s]))
			io.WriteString(b, strings.ToLower(segment[s:]))
		}
	}
}

// CapitalizeSegments capitalizes each segment of a qualified name, i.e.
// "foo::bar" becomes "Foo::Bar".
func CapitalizeSegments(name string) string {
	segments := strings.Split(name, `::`)
	b := bytes.NewBufferString(``)
	capitalizeSegment(b, segments[0])
	for _, s := range segments[1:] {
		io.WriteString(b, `::`)
		capitalizeSegment(b, s)
	}
	return b.String()
}

// NameSegments returns the non empty segments of a qualified name.
func NameSegments(name string) []string {
	segments := strings.Split(name, `::`)
	result := segments[:0]
	for _, s := range segments {
		if s != `` {
			result = append(result, s)
		}
	}
	return result
}

// PuppetQuote returns the string quoted so that it can be parsed as a Puppet
// string literal. Single quotes are used unless the string contains control
// characters.
func PuppetQuote(str string) string {
	for _, c := range str {
		if c < 0x20 {
			return puppetDoubleQuote(str)
		}
	}
	b := bytes.NewBufferString(``)
	b.WriteByte('\'')
	for _, c := range str {
		switch c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func puppetDoubleQuote(str string) string {
	b := bytes.NewBufferString(``)
	b.WriteByte('"')
	for _, c := range str {
		switch c {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		default:
			if c < 0x20 {
				fmt.Fprintf(b, `\u{%X}`, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
