package evaluator

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-parser/parser"
)

type evaluator struct {
	scope eval.Scope
}

func evalError(code issue.Code, location issue.Location, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, location)
}

func (e *evaluator) eval(expr parser.Expression) eval.Value {
	switch expr := expr.(type) {
	case *parser.AccessExpression:
		return e.eval_AccessExpression(expr)
	case *parser.AndExpression:
		return eval.IsTruthy(e.eval(expr.Lhs())) && eval.IsTruthy(e.eval(expr.Rhs()))
	case *parser.ArithmeticExpression:
		return calculate(expr, e.eval(expr.Lhs()), e.eval(expr.Rhs()))
	case *parser.AssignmentExpression:
		return e.eval_AssignmentExpression(expr)
	case *parser.BlockExpression:
		return e.eval_BlockExpression(expr)
	case *parser.CallNamedFunctionExpression:
		return e.eval_CallNamedFunctionExpression(expr)
	case *parser.CaseExpression:
		return e.eval_CaseExpression(expr)
	case *parser.ComparisonExpression:
		return compare(expr, expr.Operator(), e.eval(expr.Lhs()), e.eval(expr.Rhs()))
	case *parser.ConcatenatedString:
		return e.eval_ConcatenatedString(expr)
	case *parser.HeredocExpression:
		return e.eval(expr.Text())
	case *parser.IfExpression:
		return e.eval_IfExpression(expr)
	case *parser.InExpression:
		return e.eval_InExpression(expr)
	case *parser.LiteralBoolean:
		return expr.Bool()
	case *parser.LiteralDefault:
		return eval.Default
	case *parser.LiteralFloat:
		return expr.Float()
	case *parser.LiteralHash:
		return e.eval_LiteralHash(expr)
	case *parser.LiteralInteger:
		return expr.Int()
	case *parser.LiteralList:
		return e.unfold(expr.Elements())
	case *parser.LiteralString:
		return expr.StringValue()
	case *parser.LiteralUndef, *parser.Nop:
		return nil
	case *parser.MatchExpression:
		return e.eval_MatchExpression(expr)
	case *parser.NotExpression:
		return !eval.IsTruthy(e.eval(expr.Expr()))
	case *parser.OrExpression:
		return eval.IsTruthy(e.eval(expr.Lhs())) || eval.IsTruthy(e.eval(expr.Rhs()))
	case *parser.ParenthesizedExpression:
		return e.eval(expr.Expr())
	case *parser.Program:
		return e.eval(expr.Body())
	case *parser.QualifiedName:
		return expr.Name()
	case *parser.QualifiedReference:
		return expr.Name()
	case *parser.RegexpExpression:
		return compileRegexp(expr, expr.PatternString())
	case *parser.RelationshipExpression:
		e.eval(expr.Lhs())
		return e.eval(expr.Rhs())
	case *parser.ResourceExpression:
		return e.eval_ResourceExpression(expr)
	case *parser.SelectorExpression:
		return e.eval_SelectorExpression(expr)
	case *parser.TextExpression:
		return eval.ToString(e.eval(expr.Expr()))
	case *parser.UnaryMinusExpression:
		return e.eval_UnaryMinusExpression(expr)
	case *parser.UnlessExpression:
		return e.eval_UnlessExpression(expr)
	case *parser.VariableExpression:
		return e.eval_VariableExpression(expr)
	case *parser.HostClassDefinition, *parser.ResourceTypeDefinition, *parser.NodeDefinition, *parser.FunctionDefinition:
		// Definitions are processed by the loader
		return nil
	default:
		panic(evalError(EVAL_UNHANDLED_EXPRESSION, expr, issue.H{`expression`: typeNameOf(expr)}))
	}
}

func (e *evaluator) eval_BlockExpression(expr *parser.BlockExpression) (result eval.Value) {
	for _, statement := range expr.Statements() {
		result = e.eval(statement)
	}
	return result
}

func (e *evaluator) eval_CallNamedFunctionExpression(call *parser.CallNamedFunctionExpression) eval.Value {
	qn, ok := call.Functor().(*parser.QualifiedName)
	if !ok {
		panic(evalError(EVAL_UNHANDLED_EXPRESSION, call.Functor(), issue.H{`expression`: typeNameOf(call.Functor())}))
	}
	if call.Lambda() != nil {
		panic(evalError(EVAL_UNHANDLED_EXPRESSION, call.Lambda(), issue.H{`expression`: typeNameOf(call.Lambda())}))
	}
	fn, ok := eval.LoadFunction(qn.Name())
	if !ok {
		panic(evalError(EVAL_UNKNOWN_FUNCTION, call, issue.H{`name`: qn.Name()}))
	}
	result, err := fn(e.scope, e.unfold(call.Arguments()), call)
	if err != nil {
		panic(err)
	}
	return result
}

func (e *evaluator) eval_ConcatenatedString(expr *parser.ConcatenatedString) eval.Value {
	bld := bytes.NewBufferString(``)
	for _, s := range expr.Segments() {
		eval.ToString3(e.eval(s), bld)
	}
	return bld.String()
}

func (e *evaluator) eval_LiteralHash(expr *parser.LiteralHash) eval.Value {
	result := make(map[string]eval.Value, len(expr.Entries()))
	for _, en := range expr.Entries() {
		entry := en.(*parser.KeyedEntry)
		result[eval.ToString(e.eval(entry.Key()))] = e.eval(entry.Value())
	}
	return result
}

func (e *evaluator) eval_UnaryMinusExpression(expr *parser.UnaryMinusExpression) eval.Value {
	switch v := e.eval(expr.Expr()).(type) {
	case int64:
		return -v
	case float64:
		return -v
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: `-`, `left`: typeName(v)}))
	}
}

func (e *evaluator) eval_VariableExpression(expr *parser.VariableExpression) eval.Value {
	if name, ok := expr.Name(); ok {
		if value, found := e.scope.Get(name); found {
			return value
		}
		if e.scope.Compiler().StrictVariables() {
			panic(evalError(eval.EVAL_UNKNOWN_VARIABLE, expr, issue.H{`name`: name}))
		}
		return nil
	}
	idx, _ := expr.Index()
	value, _ := e.scope.RxGet(int(idx))
	return value
}

// withLocalMatches evaluates f and then removes the match variables that
// were set during the evaluation.
func (e *evaluator) withLocalMatches(f func() eval.Value) eval.Value {
	level := e.scope.EphemeralLevel()
	defer e.scope.UnsetEphemeral(level)
	return f()
}

func (e *evaluator) eval_IfExpression(expr *parser.IfExpression) eval.Value {
	return e.withLocalMatches(func() eval.Value {
		if eval.IsTruthy(e.eval(expr.Test())) {
			return e.eval(expr.Then())
		}
		return e.eval(expr.Else())
	})
}

func (e *evaluator) eval_UnlessExpression(expr *parser.UnlessExpression) eval.Value {
	return e.withLocalMatches(func() eval.Value {
		if !eval.IsTruthy(e.eval(expr.Test())) {
			return e.eval(expr.Then())
		}
		return e.eval(expr.Else())
	})
}

func (e *evaluator) eval_CaseExpression(expr *parser.CaseExpression) eval.Value {
	return e.withLocalMatches(func() eval.Value {
		test := e.eval(expr.Test())
		var theDefault *parser.CaseOption
		var selected *parser.CaseOption
	options:
		for _, o := range expr.Options() {
			co := o.(*parser.CaseOption)
			for _, cv := range co.Values() {
				cv = unwindParenthesis(cv)
				if _, ok := cv.(*parser.LiteralDefault); ok {
					theDefault = co
					continue
				}
				if e.matchAny(cv, test) {
					selected = co
					break options
				}
			}
		}
		if selected == nil {
			selected = theDefault
		}
		if selected == nil {
			return nil
		}
		return e.eval(selected.Then())
	})
}

func (e *evaluator) eval_SelectorExpression(expr *parser.SelectorExpression) eval.Value {
	return e.withLocalMatches(func() eval.Value {
		test := e.eval(expr.Lhs())
		var theDefault *parser.SelectorEntry
		var selected *parser.SelectorEntry
		for _, s := range expr.Selectors() {
			se := s.(*parser.SelectorEntry)
			me := unwindParenthesis(se.Matching())
			if _, ok := me.(*parser.LiteralDefault); ok {
				theDefault = se
				continue
			}
			if e.matchAny(me, test) {
				selected = se
				break
			}
		}
		if selected == nil {
			selected = theDefault
		}
		if selected == nil {
			return nil
		}
		return e.eval(selected.Value())
	})
}

// matchAny matches the test value against an option. An unfolded array
// option matches when any of its elements match.
func (e *evaluator) matchAny(option parser.Expression, test eval.Value) bool {
	if u, ok := option.(*parser.UnfoldExpression); ok {
		if values, ok := e.eval(u.Expr()).([]eval.Value); ok {
			for _, v := range values {
				if e.caseMatch(option, test, v) {
					return true
				}
			}
			return false
		}
	}
	return e.caseMatch(option, test, e.eval(option))
}

func (e *evaluator) unfold(array []parser.Expression) []eval.Value {
	result := make([]eval.Value, 0, len(array))
	for _, ex := range array {
		ex = unwindParenthesis(ex)
		if u, ok := ex.(*parser.UnfoldExpression); ok {
			switch ev := e.eval(u.Expr()).(type) {
			case []eval.Value:
				result = append(result, ev...)
			default:
				result = append(result, ev)
			}
		} else {
			result = append(result, e.eval(ex))
		}
	}
	return result
}

func unwindParenthesis(expr parser.Expression) parser.Expression {
	if p, ok := expr.(*parser.ParenthesizedExpression); ok {
		return p.Expr()
	}
	return expr
}

func compileRegexp(location issue.Location, pattern string) *regexp.Regexp {
	rx, err := regexp.Compile(pattern)
	if err != nil {
		panic(evalError(EVAL_ILLEGAL_REGEXP, location, issue.H{`pattern`: pattern, `detail`: err.Error()}))
	}
	return rx
}

// typeName returns the name of the Puppet type of a value, used in error messages.
func typeName(v eval.Value) string {
	switch v.(type) {
	case nil:
		return `Undef`
	case string:
		return `String`
	case bool:
		return `Boolean`
	case int64, int:
		return `Integer`
	case float64:
		return `Float`
	case eval.DefaultValue:
		return `Default`
	case *regexp.Regexp:
		return `Regexp`
	case []eval.Value:
		return `Array`
	case map[string]eval.Value:
		return `Hash`
	default:
		return `Runtime`
	}
}

func typeNameOf(expr parser.Expression) string {
	return strings.TrimPrefix(fmt.Sprintf(`%T`, expr), `*parser.`)
}
