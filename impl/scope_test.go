package impl

import (
	"testing"

	"github.com/lyraproj/puppet-catalog/eval"
)

func TestScopeParentLookup(t *testing.T) {
	top := NewTopScope(nil)
	top.Set(`a`, `top`)
	child := top.NewScope(`foo`, `mod`, nil)
	child.Set(`b`, `child`)

	if v, ok := child.Get(`a`); !ok || v != `top` {
		t.Errorf(`Expected to find 'a' in parent, got %v`, v)
	}
	if _, ok := top.Get(`b`); ok {
		t.Errorf(`Expected child variable to be invisible in parent`)
	}
	if v, ok := child.Get(`::a`); !ok || v != `top` {
		t.Errorf(`Expected '::a' to resolve in top scope, got %v`, v)
	}
	if child.Namespace() != `foo` || child.ModuleName() != `mod` || child.ParentModuleName() != `` {
		t.Errorf(`Unexpected namespace or module names`)
	}
}

func TestScopeReassignment(t *testing.T) {
	top := NewTopScope(nil)
	if !top.Set(`x`, int64(1)) {
		t.Fatalf(`Expected first assignment to succeed`)
	}
	if top.Set(`x`, int64(2)) {
		t.Errorf(`Expected reassignment to fail`)
	}
	child := top.NewScope(``, ``, nil)
	if !child.Set(`x`, int64(3)) {
		t.Errorf(`Expected a child to be able to shadow a parent variable`)
	}
	if child.Set(`::y`, 1) {
		t.Errorf(`Expected assignment of a top scope variable from a child to fail`)
	}
}

func TestScopeState(t *testing.T) {
	top := NewTopScope(nil)
	top.Set(`g`, 1)
	child := top.NewScope(``, ``, nil)
	child.Set(`l`, 1)

	if s := child.State(`l`); s != eval.Local {
		t.Errorf(`Expected Local, got %d`, s)
	}
	if s := child.State(`g`); s != eval.Global {
		t.Errorf(`Expected Global, got %d`, s)
	}
	if s := child.State(`::g`); s != eval.Global {
		t.Errorf(`Expected Global, got %d`, s)
	}
	if s := child.State(`nope`); s != eval.NotFound {
		t.Errorf(`Expected NotFound, got %d`, s)
	}
}

func TestScopeEphemeral(t *testing.T) {
	s := NewTopScope(nil)
	level := s.EphemeralLevel()
	s.EphemeralFrom([]string{`abc`, `b`})
	if v, ok := s.Get(`1`); !ok || v != `b` {
		t.Errorf(`Expected $1 to be 'b', got %v`, v)
	}
	s.EphemeralFrom([]string{`x`})
	if v, ok := s.RxGet(0); !ok || v != `x` {
		t.Errorf(`Expected $0 to be 'x', got %v`, v)
	}
	if _, ok := s.RxGet(1); ok {
		t.Errorf(`Expected $1 to be hidden by the innermost match`)
	}
	s.UnsetEphemeral(level)
	if s.EphemeralLevel() != level {
		t.Errorf(`Expected ephemeral level %d, got %d`, level, s.EphemeralLevel())
	}
	if _, ok := s.RxGet(0); ok {
		t.Errorf(`Expected match variables to be gone`)
	}
}

func TestScopeQualifiedWithoutCompiler(t *testing.T) {
	s := NewTopScope(nil)
	if _, ok := s.Get(`foo::x`); ok {
		t.Errorf(`Expected qualified lookup to fail without a compiler`)
	}
}
