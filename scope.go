package wisp

// loopFrame binds a single for-loop variable to the current element for the
// duration of one iteration.
type loopFrame struct {
	name  string
	value Value
}

// scopeStack resolves dotted paths against a stack of frames: the root
// Context at the bottom, with each active for loop pushing a frame above
// it. Lookups start from the innermost frame and walk outward; a name bound
// by an inner frame shadows a same-named root variable.
type scopeStack struct {
	root   *Context
	frames []loopFrame
}

func newScopeStack(root *Context) *scopeStack {
	return &scopeStack{root: root}
}

func (s *scopeStack) push(name string, v Value) {
	s.frames = append(s.frames, loopFrame{name: name, value: v})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// resolve resolves a dotted path against the scope stack. found is false
// ("absent") if the leading segment binds to nothing, or if a later segment
// looks up a key that a bound Object simply doesn't have. mismatch is true
// instead if a later segment attempts to descend through a value that isn't
// an Object at all; found is always false when mismatch is true. Callers in
// boolean contexts collapse both into "absent"; callers in
// variable-substitution contexts report mismatch as a type-mismatch render
// error rather than an unresolved-variable one.
func (s *scopeStack) resolve(path []string) (v Value, found bool, mismatch bool) {
	if len(path) == 0 {
		return Value{}, false, false
	}
	v, ok := s.lookupHead(path[0])
	if !ok {
		return Value{}, false, false
	}
	for _, seg := range path[1:] {
		if v.Kind() != KindObject {
			return Value{}, false, true
		}
		fv, ok := v.Field(seg)
		if !ok {
			return Value{}, false, false
		}
		v = fv
	}
	return v, true, false
}

func (s *scopeStack) lookupHead(name string) (Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			return s.frames[i].value, true
		}
	}
	return s.root.Get(name)
}
