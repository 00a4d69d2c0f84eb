package evaluator

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/functions"
	"github.com/lyraproj/puppet-catalog/resource"
	"github.com/lyraproj/puppet-parser/parser"
)

type attribute struct {
	name  string
	value eval.Value
}

// eval_ResourceExpression declares the resources of each body. Class resources are
// evaluated at once. Resources of defined types are evaluated when the compiler
// evaluates generators. All other resources are added to the catalog as they are.
func (e *evaluator) eval_ResourceExpression(expr *parser.ResourceExpression) eval.Value {
	if expr.Form() != parser.REGULAR {
		panic(evalError(EVAL_ILLEGAL_RESOURCE_FORM, expr, issue.H{`form`: expr.Form()}))
	}
	typeName := strings.ToLower(strings.TrimPrefix(eval.ToString(e.eval(expr.TypeName())), `::`))
	refs := make([]eval.Value, 0, len(expr.Bodies()))
	for _, b := range expr.Bodies() {
		body := b.(*parser.ResourceBody)
		titles := e.titles(body.Title())
		attrs := e.attributes(body.Operations())
		for _, title := range titles {
			refs = append(refs, e.declare(typeName, title, attrs, body))
		}
	}
	return refs
}

func (e *evaluator) titles(expr parser.Expression) []string {
	tv := e.eval(expr)
	var values []eval.Value
	switch tv := tv.(type) {
	case string:
		values = []eval.Value{tv}
	case []eval.Value:
		values = flatten(tv, nil)
	default:
		panic(evalError(EVAL_ILLEGAL_TITLE, expr, issue.H{`title`: typeName(tv)}))
	}
	titles := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok || s == `` {
			panic(evalError(EVAL_ILLEGAL_TITLE, expr, issue.H{`title`: typeName(v)}))
		}
		titles[i] = s
	}
	return titles
}

func (e *evaluator) attributes(ops []parser.Expression) []attribute {
	attrs := make([]attribute, 0, len(ops))
	for _, op := range ops {
		switch op := op.(type) {
		case *parser.AttributeOperation:
			attrs = append(attrs, attribute{op.Name(), e.eval(op.Value())})
		case *parser.AttributesOperation:
			h, ok := e.eval(op.Expr()).(map[string]eval.Value)
			if !ok {
				panic(evalError(EVAL_ILLEGAL_ASSIGNMENT, op, issue.H{`value`: sourceText(op.Expr())}))
			}
			for _, k := range eval.SortedKeys(h) {
				attrs = append(attrs, attribute{k, h[k]})
			}
		default:
			panic(evalError(EVAL_UNHANDLED_EXPRESSION, op, issue.H{`expression`: typeNameOf(op)}))
		}
	}
	return attrs
}

func (e *evaluator) declare(typeName, title string, attrs []attribute, location issue.Location) eval.Value {
	if typeName == `class` {
		return e.declareClass(title, attrs, location)
	}

	cat := e.scope.Compiler().Catalog()
	evaluated := true
	if registry, ok := resource.RegistryOf(e.scope); ok {
		if t, found := registry.Lookup(resource.Definition, typeName, e.scope.Namespace()); found {
			typeName = t.Name()
			evaluated = false
		}
	}
	r := catalog.NewResource(typeName, title, e.scope, location)
	for _, a := range attrs {
		r.Set(a.name, a.value)
	}
	if evaluated {
		r.MarkEvaluated()
	}
	if err := cat.AddResource(r); err != nil {
		panic(err)
	}
	return r.Ref()
}

// declareClass evaluates a resource-like class declaration. Unlike include, it is
// an error to declare a class that is already in the catalog.
func (e *evaluator) declareClass(title string, attrs []attribute, location issue.Location) eval.Value {
	registry, ok := resource.RegistryOf(e.scope)
	if !ok {
		panic(evalError(functions.EVAL_NO_REGISTRY, location, issue.H{`function`: `class`}))
	}
	t, found := registry.Lookup(resource.Hostclass, title, e.scope.Namespace())
	if !found {
		panic(evalError(functions.EVAL_UNKNOWN_CLASS, location, issue.H{`name`: title}))
	}
	cat := e.scope.Compiler().Catalog()
	if _, found = cat.Resource(`Class`, t.Name()); found {
		if err := cat.AddResource(catalog.NewResource(`Class`, t.Name(), e.scope, location)); err != nil {
			panic(err)
		}
	}
	params := make(map[string]eval.Value, len(attrs))
	for _, a := range attrs {
		params[a.name] = a.value
	}
	r, err := t.EnsureInCatalog(e.scope, params)
	if err != nil {
		panic(err)
	}
	return r.Ref()
}
