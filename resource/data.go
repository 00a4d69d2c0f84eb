package resource

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

type (
	// Data is the interchange record of a Type.
	Data struct {
		Name      string
		Type      string
		Line      int
		Doc       string
		File      string
		Parent    string
		Arguments []*ArgumentData
	}

	// ArgumentData is a declared parameter in a Data record. The default is nil when the
	// parameter is required. Otherwise it is the source text of the default expression.
	ArgumentData struct {
		Name    string
		Default *string
	}
)

// ParseDefault turns the source text of a parameter default back into an expression. It is
// assigned by the package that can parse manifests. Without it, defaults are read as strings.
var ParseDefault func(source string) (eval.Expression, error)

// ToData returns the interchange record of the type. The name of a regexp named
// node is its pattern enclosed in slashes.
func (t *Type) ToData() *Data {
	name := t.name
	if t.matcher != nil {
		name = HostName{t.source}.String()
	}
	d := &Data{
		Name:   name,
		Type:   t.kind.String(),
		Line:   t.line,
		Doc:    t.doc,
		File:   t.file,
		Parent: t.ParentName()}
	if len(t.arguments) > 0 {
		d.Arguments = make([]*ArgumentData, len(t.arguments))
		for i, a := range t.arguments {
			ad := &ArgumentData{Name: a.Name}
			if a.Default != nil {
				src := defaultSource(a.Default)
				ad.Default = &src
			}
			d.Arguments[i] = ad
		}
	}
	return d
}

func defaultSource(e eval.Expression) string {
	if se, ok := e.(eval.SourceExpression); ok {
		return se.Source()
	}
	return eval.ToString(e)
}

// FromData creates a type from its interchange record. The type is not added to
// the collection but uses it to resolve its parent.
func FromData(d *Data, collection *TypeCollection) (*Type, error) {
	kind, err := KindFromString(d.Type)
	if err != nil {
		return nil, err
	}
	name, err := dataName(kind, d)
	if err != nil {
		return nil, err
	}
	opts := &Options{Doc: d.Doc, File: d.File, Line: d.Line, Parent: d.Parent}
	if collection != nil {
		opts.Collection = collection
	}
	if len(d.Arguments) > 0 {
		opts.Arguments = make([]*Argument, len(d.Arguments))
		for i, ad := range d.Arguments {
			a := &Argument{Name: ad.Name}
			if ad.Default != nil {
				if a.Default, err = parseDefault(*ad.Default); err != nil {
					return nil, err
				}
			}
			opts.Arguments[i] = a
		}
	}
	return NewType(kind, name, opts)
}

func dataName(kind Kind, d *Data) (interface{}, error) {
	n := d.Name
	if kind != Node || len(n) < 2 || !strings.HasPrefix(n, `/`) || !strings.HasSuffix(n, `/`) {
		return n, nil
	}
	rx, err := regexp.Compile(n[1 : len(n)-1])
	if err != nil {
		var location issue.Location
		if d.File != `` || d.Line != 0 {
			location = issue.NewLocation(d.File, d.Line, 0)
		}
		return nil, eval.Error(EVAL_INVALID_TYPE_NAME, issue.H{`name`: n}, location)
	}
	return HostName{rx}, nil
}

func parseDefault(src string) (eval.Expression, error) {
	if ParseDefault != nil {
		return ParseDefault(src)
	}
	return eval.Literal{Value: src}, nil
}

// MarshalJSON writes the record as a JSON object where empty fields are omitted
// and arguments appear in declaration order.
func (d *Data) MarshalJSON() ([]byte, error) {
	b := bytes.NewBufferString(`{`)
	writeField(b, `name`, d.Name, true)
	writeField(b, `type`, d.Type, false)
	if d.Line != 0 {
		writeField(b, `line`, d.Line, false)
	}
	if d.Doc != `` {
		writeField(b, `doc`, d.Doc, false)
	}
	if d.File != `` {
		writeField(b, `file`, d.File, false)
	}
	if d.Parent != `` {
		writeField(b, `parent`, d.Parent, false)
	}
	if len(d.Arguments) > 0 {
		b.WriteString(`,"arguments":{`)
		for i, a := range d.Arguments {
			writeField(b, a.Name, a.Default, i == 0)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeField(b *bytes.Buffer, key string, value interface{}, first bool) {
	if !first {
		b.WriteByte(',')
	}
	kb, _ := json.Marshal(key)
	vb, _ := json.Marshal(value)
	b.Write(kb)
	b.WriteByte(':')
	b.Write(vb)
}

// UnmarshalJSON reads a record written by MarshalJSON, retaining the order of the arguments.
func (d *Data) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	*d = Data{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		switch key {
		case `name`:
			err = dec.Decode(&d.Name)
		case `type`:
			err = dec.Decode(&d.Type)
		case `line`:
			err = dec.Decode(&d.Line)
		case `doc`:
			err = dec.Decode(&d.Doc)
		case `file`:
			err = dec.Decode(&d.File)
		case `parent`:
			err = dec.Decode(&d.Parent)
		case `arguments`:
			err = d.decodeArguments(dec)
		default:
			var ignored interface{}
			err = dec.Decode(&ignored)
		}
		if err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func (d *Data) decodeArguments(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return err
		}
		var dflt *string
		if err = dec.Decode(&dflt); err != nil {
			return err
		}
		d.Arguments = append(d.Arguments, &ArgumentData{Name: name, Default: dflt})
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != delim {
		return eval.Error(EVAL_INVALID_RECORD, issue.H{`expected`: delim.String(), `actual`: tok}, nil)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return ``, err
	}
	if s, ok := tok.(string); ok {
		return s, nil
	}
	return ``, eval.Error(EVAL_INVALID_RECORD, issue.H{`expected`: `a key`, `actual`: tok}, nil)
}
