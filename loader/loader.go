// Package loader parses manifests and modules and registers the classes,
// defined types and nodes that they contain in a resource.TypeCollection.
package loader

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/evaluator"
	"github.com/lyraproj/puppet-catalog/resource"
	"github.com/lyraproj/puppet-parser/parser"
)

// ManifestExtension is the file extension of manifests.
const ManifestExtension = `.pp`

// Loader registers types in a collection. A Loader is not safe for concurrent use.
type Loader struct {
	collection *resource.TypeCollection
	freezeMain bool
	logger     eval.Logger
	modules    []*Module
}

// New creates a loader that adds types to the given collection. When freezeMain
// is true, only one manifest may contribute code to the main class.
func New(collection *resource.TypeCollection, freezeMain bool, logger eval.Logger) *Loader {
	if logger == nil {
		logger = eval.NewStdLogger()
	}
	return &Loader{collection: collection, freezeMain: freezeMain, logger: logger}
}

func (l *Loader) Collection() *resource.TypeCollection {
	return l.collection
}

// LoadManifest loads a manifest file, or all manifests found beneath a directory
// in lexical order.
func (l *Loader) LoadManifest(path string) error {
	files, err := manifestFiles(path)
	if err != nil {
		return err
	}
	for _, file := range files {
		content, err := readFile(file)
		if err != nil {
			return err
		}
		if err = l.LoadString(file, content, ``); err != nil {
			return err
		}
	}
	return nil
}

// LoadString parses the given manifest source and registers its definitions. The
// types are assigned to the given module. Statements that are not definitions
// become code of the main class.
func (l *Loader) LoadString(file, content, module string) error {
	program, err := parse(file, content)
	if err != nil {
		return err
	}
	return l.define(program, module)
}

func (l *Loader) define(program *parser.Program, module string) error {
	for _, d := range definitions(program) {
		if err := l.defineType(d, module); err != nil {
			return err
		}
	}
	if !hasCode(program.Body()) {
		return nil
	}
	main, err := resource.NewType(resource.Hostclass, ``, &resource.Options{
		Code:   evaluator.NewCodeBody(program.Body()),
		File:   program.File(),
		Line:   1,
		Module: module})
	if err == nil {
		_, err = l.collection.AddOrMerge(main, l.freezeMain)
	}
	return err
}

func (l *Loader) defineType(d parser.Definition, module string) error {
	switch d := d.(type) {
	case *parser.HostClassDefinition:
		return l.add(resource.Hostclass, d.Name(), &resource.Options{
			Code:      codeBody(d.Body()),
			File:      d.File(),
			Line:      d.Line(),
			Parent:    d.ParentClass(),
			Arguments: arguments(d.Parameters()),
			Module:    module})
	case *parser.ResourceTypeDefinition:
		return l.add(resource.Definition, d.Name(), &resource.Options{
			Code:      codeBody(d.Body()),
			File:      d.File(),
			Line:      d.Line(),
			Arguments: arguments(d.Parameters()),
			Module:    module})
	case *parser.NodeDefinition:
		parent := ``
		if d.Parent() != nil {
			pn, err := hostName(d.Parent())
			if err != nil {
				return err
			}
			parent = pn.String()
		}
		code := codeBody(d.Body())
		for _, hm := range d.HostMatches() {
			name, err := hostName(hm)
			if err != nil {
				return err
			}
			if err = l.add(resource.Node, name, &resource.Options{
				Code:   code,
				File:   d.File(),
				Line:   d.Line(),
				Parent: parent,
				Module: module}); err != nil {
				return err
			}
		}
		return nil
	default:
		return eval.Error(LOAD_UNSUPPORTED_DEFINITION, issue.H{`definition`: strings.TrimPrefix(typeOf(d), `*parser.`)}, d)
	}
}

func (l *Loader) add(kind resource.Kind, name interface{}, options *resource.Options) error {
	options.Collection = l.collection
	t, err := resource.NewType(kind, name, options)
	if err != nil {
		return err
	}
	l.logger.Logf(eval.DEBUG, `Loaded %s from %s`, t.String(), issue.LocationString(t.Location()))
	_, err = l.collection.AddOrMerge(t, l.freezeMain)
	return err
}

func parse(file, content string) (*parser.Program, error) {
	expr, err := parser.CreateParser().Parse(file, content, false)
	if err != nil {
		if _, ok := err.(issue.Reported); ok {
			return nil, err
		}
		return nil, eval.Error(LOAD_PARSE_ERROR, issue.H{`file`: file, `detail`: err.Error()}, nil)
	}
	program, ok := expr.(*parser.Program)
	if !ok {
		return nil, eval.Error(LOAD_PARSE_ERROR, issue.H{`file`: file, `detail`: `not a program`}, nil)
	}
	return program, nil
}

// definitions returns the definitions known to the program together with the
// definitions found in its statements and in class bodies, each once.
func definitions(program *parser.Program) []parser.Definition {
	seen := make(map[parser.Definition]bool)
	var result []parser.Definition
	add := func(d parser.Definition) {
		if !seen[d] {
			seen[d] = true
			result = append(result, d)
		}
	}
	for _, d := range program.Definitions() {
		add(d)
	}
	var walk func(expr parser.Expression)
	walk = func(expr parser.Expression) {
		switch expr := expr.(type) {
		case *parser.BlockExpression:
			for _, s := range expr.Statements() {
				walk(s)
			}
		case *parser.HostClassDefinition:
			add(expr)
			walk(expr.Body())
		case parser.Definition:
			add(expr)
		}
	}
	walk(program.Body())
	return result
}

// hasCode returns true if the expression contains statements other than definitions.
func hasCode(expr parser.Expression) bool {
	switch expr := expr.(type) {
	case nil, *parser.Nop:
		return false
	case parser.Definition:
		return false
	case *parser.BlockExpression:
		for _, s := range expr.Statements() {
			if hasCode(s) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func codeBody(expr parser.Expression) eval.CodeBody {
	switch expr.(type) {
	case nil, *parser.Nop:
		return nil
	default:
		return evaluator.NewCodeBody(expr)
	}
}

func arguments(params []parser.Expression) []*resource.Argument {
	args := make([]*resource.Argument, 0, len(params))
	for _, p := range params {
		param := p.(*parser.Parameter)
		arg := &resource.Argument{Name: param.Name()}
		if param.Value() != nil {
			arg.Default = evaluator.NewExpression(param.Value())
		}
		args = append(args, arg)
	}
	return args
}

// hostName converts a host match of a node definition to a resource.HostName.
func hostName(expr parser.Expression) (resource.HostName, error) {
	switch expr := expr.(type) {
	case *parser.LiteralString:
		return resource.HostName{Value: expr.StringValue()}, nil
	case *parser.QualifiedName:
		return resource.HostName{Value: expr.Name()}, nil
	case *parser.LiteralDefault:
		return resource.HostName{Value: `default`}, nil
	case *parser.LiteralInteger:
		return resource.HostName{Value: eval.ToString(expr.Int())}, nil
	case *parser.RegexpExpression:
		rx, err := regexp.Compile(expr.PatternString())
		if err != nil {
			return resource.HostName{}, eval.Error(LOAD_ILLEGAL_NODE_NAME, issue.H{`name`: expr.PatternString()}, expr)
		}
		return resource.HostName{Value: rx}, nil
	default:
		return resource.HostName{}, eval.Error(LOAD_ILLEGAL_NODE_NAME, issue.H{`name`: typeOf(expr)}, expr)
	}
}

func typeOf(v interface{}) string {
	return fmt.Sprintf(`%T`, v)
}

func manifestFiles(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, eval.Error(LOAD_UNABLE_TO_READ_FILE, issue.H{`path`: path, `detail`: err.Error()}, nil)
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(p, ManifestExtension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, eval.Error(LOAD_UNABLE_TO_READ_FILE, issue.H{`path`: path, `detail`: err.Error()}, nil)
	}
	sort.Strings(files)
	return files, nil
}

func readFile(path string) (string, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return ``, eval.Error(LOAD_UNABLE_TO_READ_FILE, issue.H{`path`: path, `detail`: err.Error()}, nil)
	}
	return string(content), nil
}
