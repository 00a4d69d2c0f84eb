package evaluator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-parser/parser"
)

func (e *evaluator) eval_AssignmentExpression(expr *parser.AssignmentExpression) eval.Value {
	if expr.Operator() != `=` {
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: expr.Operator(), `left`: `Variable`}))
	}
	return e.assign(expr, e.lvalue(expr.Lhs()), e.eval(expr.Rhs()))
}

func (e *evaluator) assign(expr *parser.AssignmentExpression, lv eval.Value, rv eval.Value) eval.Value {
	if name, ok := lv.(string); ok {
		if !e.scope.Set(name, rv) {
			panic(evalError(eval.EVAL_ILLEGAL_REASSIGNMENT, expr, issue.H{`var`: name}))
		}
		return rv
	}

	names := lv.([]eval.Value)
	switch rv := rv.(type) {
	case map[string]eval.Value:
		r := make([]eval.Value, len(names))
		for idx, name := range names {
			v, ok := rv[eval.ToString(name)]
			if !ok {
				panic(evalError(EVAL_MISSING_MULTI_ASSIGNMENT_KEY, expr, issue.H{`name`: eval.ToString(name)}))
			}
			r[idx] = e.assign(expr, name, v)
		}
		return r
	case []eval.Value:
		if len(names) != len(rv) {
			panic(evalError(EVAL_ILLEGAL_MULTI_ASSIGNMENT_SIZE, expr, issue.H{`expected`: len(names), `actual`: len(rv)}))
		}
		for idx, name := range names {
			e.assign(expr, name, rv[idx])
		}
		return rv
	default:
		panic(evalError(EVAL_ILLEGAL_ASSIGNMENT, expr.Lhs(), issue.H{`value`: sourceText(expr.Lhs())}))
	}
}

func (e *evaluator) lvalue(expr parser.Expression) eval.Value {
	switch expr := expr.(type) {
	case *parser.VariableExpression:
		if name, ok := expr.Name(); ok {
			return name
		}
	case *parser.LiteralList:
		le := expr.Elements()
		ev := make([]eval.Value, len(le))
		for idx, ex := range le {
			ev[idx] = e.lvalue(ex)
		}
		return ev
	}
	panic(evalError(EVAL_ILLEGAL_ASSIGNMENT, expr, issue.H{`value`: sourceText(expr)}))
}

// eval_AccessExpression indexes arrays, hashes and strings. A type name followed
// by titles produces resource references.
func (e *evaluator) eval_AccessExpression(expr *parser.AccessExpression) eval.Value {
	if qr, ok := expr.Operand().(*parser.QualifiedReference); ok {
		return e.references(expr, qr.Name(), e.unfold(expr.Keys()))
	}
	keys := e.unfold(expr.Keys())
	switch lhs := e.eval(expr.Operand()).(type) {
	case []eval.Value:
		start, count := accessRange(expr, keys)
		if start < 0 {
			start += len(lhs)
		}
		if count < 0 {
			if start < 0 || start >= len(lhs) {
				return nil
			}
			return lhs[start]
		}
		if start < 0 {
			start = 0
		}
		end := start + count
		if end > len(lhs) {
			end = len(lhs)
		}
		if start >= end {
			return []eval.Value{}
		}
		return append([]eval.Value{}, lhs[start:end]...)
	case map[string]eval.Value:
		if len(keys) == 1 {
			return lhs[eval.ToString(keys[0])]
		}
		result := make([]eval.Value, 0, len(keys))
		for _, k := range keys {
			if v, ok := lhs[eval.ToString(k)]; ok {
				result = append(result, v)
			}
		}
		return result
	case string:
		start, count := accessRange(expr, keys)
		if start < 0 {
			start += len(lhs)
		}
		if count < 0 {
			count = 1
		}
		if start < 0 || start >= len(lhs) {
			return ``
		}
		end := start + count
		if end > len(lhs) {
			end = len(lhs)
		}
		return lhs[start:end]
	default:
		panic(evalError(EVAL_NOT_INDEXABLE, expr, issue.H{`value`: typeName(lhs)}))
	}
}

// accessRange returns the start index and the count given in an access. The
// count is -1 when only an index was given.
func accessRange(expr *parser.AccessExpression, keys []eval.Value) (int, int) {
	if len(keys) == 0 || len(keys) > 2 {
		panic(evalError(EVAL_NOT_INDEXABLE, expr, issue.H{`value`: sourceText(expr)}))
	}
	start, ok := keys[0].(int64)
	if !ok {
		panic(evalError(EVAL_NOT_INDEXABLE, expr, issue.H{`value`: sourceText(expr)}))
	}
	if len(keys) == 1 {
		return int(start), -1
	}
	count, ok := keys[1].(int64)
	if !ok || count < 0 {
		panic(evalError(EVAL_NOT_INDEXABLE, expr, issue.H{`value`: sourceText(expr)}))
	}
	return int(start), int(count)
}

func (e *evaluator) references(expr *parser.AccessExpression, resourceType string, titles []eval.Value) eval.Value {
	refs := make([]eval.Value, 0, len(titles))
	for _, t := range flatten(titles, nil) {
		refs = append(refs, catalog.Reference(resourceType, strings.TrimPrefix(eval.ToString(t), `::`)))
	}
	if len(refs) == 1 {
		return refs[0]
	}
	return refs
}

func flatten(values []eval.Value, result []eval.Value) []eval.Value {
	for _, v := range values {
		if a, ok := v.([]eval.Value); ok {
			result = flatten(a, result)
		} else {
			result = append(result, v)
		}
	}
	return result
}

func compare(expr issue.Location, op string, a, b eval.Value) bool {
	switch op {
	case `==`:
		return eval.PuppetEquals(a, b)
	case `!=`:
		return !eval.PuppetEquals(a, b)
	}

	var c int
	if af, ok := eval.ToFloat(a); ok {
		bf, ok := eval.ToFloat(b)
		if !ok {
			panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: op, `left`: typeName(a)}))
		}
		switch {
		case af < bf:
			c = -1
		case af > bf:
			c = 1
		}
	} else if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: op, `left`: typeName(a)}))
		}
		c = strings.Compare(strings.ToLower(as), strings.ToLower(bs))
	} else {
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: op, `left`: typeName(a)}))
	}

	switch op {
	case `<`:
		return c < 0
	case `<=`:
		return c <= 0
	case `>`:
		return c > 0
	case `>=`:
		return c >= 0
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: op, `left`: typeName(a)}))
	}
}

func (e *evaluator) eval_MatchExpression(expr *parser.MatchExpression) eval.Value {
	a := e.eval(expr.Lhs())
	b := e.eval(expr.Rhs())
	if expr.Operator() == `!~` {
		return !e.match(expr, a, b, false)
	}
	return e.match(expr, a, b, true)
}

// match matches a string against a regexp or a pattern string. The capture
// groups of a successful match become match variables when setGroups is true.
func (e *evaluator) match(location issue.Location, a, b eval.Value, setGroups bool) bool {
	var rx *regexp.Regexp
	switch b := b.(type) {
	case *regexp.Regexp:
		rx = b
	case string:
		rx = compileRegexp(location, b)
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, location, issue.H{`operator`: `=~`, `left`: typeName(a)}))
	}
	s, ok := a.(string)
	if !ok {
		return false
	}
	groups := rx.FindStringSubmatch(s)
	if groups == nil {
		return false
	}
	if setGroups {
		e.scope.EphemeralFrom(groups)
	}
	return true
}

// caseMatch is the match used by case and selector options. Regexps match
// strings and set match variables. Everything else is compared for equality.
func (e *evaluator) caseMatch(location issue.Location, test, option eval.Value) bool {
	if _, ok := option.(*regexp.Regexp); ok {
		return e.match(location, test, option, true)
	}
	return eval.PuppetEquals(test, option)
}

func (e *evaluator) eval_InExpression(expr *parser.InExpression) eval.Value {
	a := e.eval(expr.Lhs())
	switch x := e.eval(expr.Rhs()).(type) {
	case string:
		switch a := a.(type) {
		case string:
			return strings.Contains(strings.ToLower(x), strings.ToLower(a))
		case *regexp.Regexp:
			return a.MatchString(x)
		}
	case []eval.Value:
		for _, b := range x {
			if e.inMatch(a, b) {
				return true
			}
		}
	case map[string]eval.Value:
		for k := range x {
			if e.inMatch(a, k) {
				return true
			}
		}
	}
	return false
}

func (e *evaluator) inMatch(a, b eval.Value) bool {
	if rx, ok := a.(*regexp.Regexp); ok {
		s, ok := b.(string)
		return ok && rx.MatchString(s)
	}
	return eval.PuppetEquals(a, b)
}

func calculate(expr *parser.ArithmeticExpression, a eval.Value, b eval.Value) eval.Value {
	op := expr.Operator()
	switch a := a.(type) {
	case []eval.Value:
		return arrayArithmetic(expr, a, b)
	case map[string]eval.Value:
		return hashArithmetic(expr, a, b)
	case string:
		if n, ok := toNumber(a); ok {
			return calculate(expr, n, b)
		}
	case int64:
		switch b := b.(type) {
		case int64:
			return intArithmetic(expr, a, b)
		case float64:
			return floatArithmetic(expr, float64(a), b)
		case string:
			if n, ok := toNumber(b); ok {
				return calculate(expr, a, n)
			}
		}
	case float64:
		if bf, ok := eval.ToFloat(b); ok {
			return floatArithmetic(expr, a, bf)
		}
		if bs, ok := b.(string); ok {
			if n, ok := toNumber(bs); ok {
				return calculate(expr, a, n)
			}
		}
	}
	panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: op, `left`: typeName(a)}))
}

func toNumber(s string) (eval.Value, bool) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

func intArithmetic(expr *parser.ArithmeticExpression, a int64, b int64) int64 {
	switch expr.Operator() {
	case `+`:
		return a + b
	case `-`:
		return a - b
	case `*`:
		return a * b
	case `/`, `%`:
		if b == 0 {
			panic(evalError(EVAL_DIV_BY_ZERO, expr, issue.NO_ARGS))
		}
		if expr.Operator() == `/` {
			return a / b
		}
		return a % b
	case `<<`:
		return a << uint(b)
	case `>>`:
		return a >> uint(b)
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: expr.Operator(), `left`: `Integer`}))
	}
}

func floatArithmetic(expr *parser.ArithmeticExpression, a float64, b float64) float64 {
	switch expr.Operator() {
	case `+`:
		return a + b
	case `-`:
		return a - b
	case `*`:
		return a * b
	case `/`:
		if b == 0 {
			panic(evalError(EVAL_DIV_BY_ZERO, expr, issue.NO_ARGS))
		}
		return a / b
	case `%`:
		if b == 0 {
			panic(evalError(EVAL_DIV_BY_ZERO, expr, issue.NO_ARGS))
		}
		return math.Mod(a, b)
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: expr.Operator(), `left`: `Float`}))
	}
}

func arrayArithmetic(expr *parser.ArithmeticExpression, a []eval.Value, b eval.Value) eval.Value {
	switch expr.Operator() {
	case `+`:
		result := append([]eval.Value{}, a...)
		if ba, ok := b.([]eval.Value); ok {
			return append(result, ba...)
		}
		return append(result, b)
	case `<<`:
		return append(append([]eval.Value{}, a...), b)
	case `-`:
		remove, ok := b.([]eval.Value)
		if !ok {
			remove = []eval.Value{b}
		}
		result := make([]eval.Value, 0, len(a))
	next:
		for _, v := range a {
			for _, r := range remove {
				if eval.PuppetEquals(v, r) {
					continue next
				}
			}
			result = append(result, v)
		}
		return result
	default:
		panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: expr.Operator(), `left`: `Array`}))
	}
}

func hashArithmetic(expr *parser.ArithmeticExpression, a map[string]eval.Value, b eval.Value) eval.Value {
	result := make(map[string]eval.Value, len(a))
	for k, v := range a {
		result[k] = v
	}
	switch expr.Operator() {
	case `+`:
		if bh, ok := b.(map[string]eval.Value); ok {
			for k, v := range bh {
				result[k] = v
			}
			return result
		}
	case `-`:
		switch b := b.(type) {
		case map[string]eval.Value:
			for k := range b {
				delete(result, k)
			}
			return result
		case []eval.Value:
			for _, k := range b {
				delete(result, eval.ToString(k))
			}
			return result
		case string:
			delete(result, b)
			return result
		}
	}
	panic(evalError(EVAL_OPERATOR_NOT_APPLICABLE, expr, issue.H{`operator`: expr.Operator(), `left`: `Hash`}))
}
