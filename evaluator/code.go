// Package evaluator evaluates the manifest AST produced by the puppet-parser.
// It provides the code bodies and parameter default expressions of resource
// types.
package evaluator

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
	"github.com/lyraproj/puppet-parser/parser"
)

func init() {
	resource.ParseDefault = ParseExpression
}

// CodeBody is the code of a class, defined type or node.
type CodeBody struct {
	expr parser.Expression
}

// NewCodeBody creates a code body from the body of a definition or from the
// statements of a program.
func NewCodeBody(expr parser.Expression) *CodeBody {
	return &CodeBody{expr}
}

func (b *CodeBody) Expression() parser.Expression {
	return b.expr
}

// SafeEvaluate evaluates the code in the given scope. Ephemeral layers created
// by matches are removed when the evaluation ends.
func (b *CodeBody) SafeEvaluate(scope eval.Scope) (err error) {
	_, err = evaluate(b.expr, scope)
	return
}

func (b *CodeBody) String() string {
	return sourceText(b.expr)
}

// Expression is a parameter default value.
type Expression struct {
	expr parser.Expression
}

func NewExpression(expr parser.Expression) *Expression {
	return &Expression{expr}
}

func (x *Expression) Evaluate(scope eval.Scope) (eval.Value, error) {
	return evaluate(x.expr, scope)
}

// Source returns the source text of the expression.
func (x *Expression) Source() string {
	return sourceText(x.expr)
}

func (x *Expression) String() string {
	return x.Source()
}

// ParseExpression parses the source of a single expression.
func ParseExpression(source string) (eval.Expression, error) {
	expr, err := parser.CreateParser().Parse(``, source, true)
	if err != nil {
		return nil, eval.Error(EVAL_PARSE_ERROR, issue.H{`source`: source, `detail`: err.Error()}, nil)
	}
	return NewExpression(unwrapProgram(expr)), nil
}

func unwrapProgram(expr parser.Expression) parser.Expression {
	if p, ok := expr.(*parser.Program); ok {
		expr = p.Body()
	}
	if b, ok := expr.(*parser.BlockExpression); ok && len(b.Statements()) == 1 {
		expr = b.Statements()[0]
	}
	return expr
}

func evaluate(expr parser.Expression, scope eval.Scope) (result eval.Value, err error) {
	level := scope.EphemeralLevel()
	defer func() {
		scope.UnsetEphemeral(level)
		if r := recover(); r != nil {
			switch r := r.(type) {
			case issue.Reported:
				err = r
			case error:
				err = r
			default:
				panic(r)
			}
			result = nil
		}
	}()
	result = (&evaluator{scope}).eval(expr)
	return
}

func sourceText(expr parser.Expression) string {
	if l := expr.Locator(); l != nil {
		src := l.String()
		start := expr.ByteOffset()
		end := start + expr.ByteLength()
		if start >= 0 && start < end && end <= len(src) {
			return src[start:end]
		}
	}
	return fmt.Sprintf(`%v`, expr)
}
