package eval

// Sequence is a code body composed of other code bodies. It is produced
// when two definitions of the same class are merged.
type Sequence struct {
	children []CodeBody
}

// NewSequence returns a Sequence that evaluates the non nil children in
// order.
func NewSequence(children ...CodeBody) *Sequence {
	cs := make([]CodeBody, 0, len(children))
	for _, c := range children {
		if c != nil {
			cs = append(cs, c)
		}
	}
	return &Sequence{cs}
}

func (s *Sequence) Children() []CodeBody {
	return s.children
}

func (s *Sequence) SafeEvaluate(scope Scope) error {
	for _, c := range s.children {
		if err := c.SafeEvaluate(scope); err != nil {
			return err
		}
	}
	return nil
}
