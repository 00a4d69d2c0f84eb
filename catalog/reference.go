package catalog

import (
	"strings"

	"github.com/lyraproj/puppet-catalog/utils"
)

// Reference returns the string T[<title>] where T is the capitalized name of a resource type
// and <title> is the unique title of the instance that is referenced. Class titles are
// capitalized too.
func Reference(typeName, title string) string {
	typeName = utils.CapitalizeSegments(typeName)
	if typeName == `Class` {
		title = utils.CapitalizeSegments(title)
	}
	return typeName + `[` + title + `]`
}

// SplitRef splits a reference in the form `<name> '[' <title> ']'` into a name and
// a title string and returns them.
// The method returns two empty strings and boolean false if the string cannot be
// parsed into a name and a title.
func SplitRef(ref string) (typeName, title string, ok bool) {
	end := len(ref) - 1
	if end >= 3 && ref[end] == ']' {
		titleStart := strings.IndexByte(ref, '[')
		if titleStart > 0 && titleStart+1 < end {
			title = strings.Trim(ref[titleStart+1:end], `'"`)
			if title != `` {
				return ref[:titleStart], title, true
			}
		}
	}
	return ``, ``, false
}

// key is the catalog index key for a resource. Type names compare case insensitively and
// so do class and node titles.
func key(typeName, title string) string {
	typeName = strings.ToLower(strings.TrimPrefix(typeName, `::`))
	if typeName == `class` || typeName == `node` {
		title = strings.ToLower(strings.TrimPrefix(title, `::`))
	}
	return typeName + `[` + title + `]`
}
