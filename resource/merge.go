package resource

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// Merge adds the parent, documentation and code of other to this type. Both
// types must be classes. The code of the two types is composed into a new
// eval.Sequence so neither of the original code bodies is changed. Code cannot
// be added to the main class when freezeMain is true.
func (t *Type) Merge(other *Type, freezeMain bool) error {
	if t.kind != Hostclass {
		return eval.Error(EVAL_MERGE_WRONG_KIND, issue.H{`name`: t.String(), `direction`: `to`}, other.Location())
	}
	if other.kind != Hostclass {
		return eval.Error(EVAL_MERGE_WRONG_KIND, issue.H{`name`: other.String(), `direction`: `from`}, other.Location())
	}
	if t.name == `` && freezeMain {
		return eval.Error(EVAL_MERGE_FROZEN_MAIN, issue.NO_ARGS, other.Location())
	}

	parent := t.ParentName()
	otherParent := other.ParentName()
	if parent != `` && otherParent != `` && parent != otherParent {
		return eval.Error(EVAL_MERGE_PARENT_CONFLICT, issue.H{
			`name`: t.String(), `parent`: parent, `other_name`: other.String(), `other_parent`: otherParent}, other.Location())
	}
	if parent == `` && otherParent != `` {
		t.setParentName(otherParent)
	}

	t.doc += other.doc

	if other.code != nil {
		if t.code == nil {
			t.code = other.code
		} else {
			t.code = eval.NewSequence(t.code, other.code)
		}
	}
	return nil
}
