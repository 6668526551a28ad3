package wisp

import "strconv"

// DefaultMaxDepth is the default limit on combined nested include and
// control-flow depth a Renderer will walk before giving up with
// KindRecursionExceeded.
const DefaultMaxDepth = 128

// Registry is the minimum contract the renderer requires of whatever holds
// parsed templates: a total, side-effect-free lookup by name. Alternative
// implementations (backed by a database, a filesystem, a cache, ...) are
// expected and fully supported.
type Registry interface {
	Get(name string) (*Template, bool)
}

// Lister is an optional capability a Registry may implement to enumerate
// its currently-registered names. The renderer never calls it; it exists
// for tests and diagnostics.
type Lister interface {
	List() []string
}

// Renderer walks a Template tree against a Context and a Registry,
// producing rendered output. A Renderer holds no per-render state and is
// safe to reuse (and to share across goroutines) as long as the Registry it
// is given tolerates concurrent reads during a render.
type Renderer struct {
	// MaxDepth bounds nested includes plus nested control-flow blocks.
	// Zero means DefaultMaxDepth.
	MaxDepth int
}

// NewRenderer returns a Renderer configured with DefaultMaxDepth.
func NewRenderer() *Renderer {
	return &Renderer{MaxDepth: DefaultMaxDepth}
}

func (r *Renderer) maxDepth() int {
	if r.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return r.MaxDepth
}

// Render renders tmpl, known to the caller as name, against ctx. Includes
// encountered during the render are looked up in reg; reg may be nil if
// tmpl contains no include nodes.
func (r *Renderer) Render(name string, tmpl *Template, ctx *Context, reg Registry) (string, error) {
	rs := &renderState{renderer: r, reg: reg, active: map[string]bool{name: true}}
	stack := newScopeStack(ctx)
	var buf []byte
	buf, err := rs.renderNodes(buf, tmpl.nodes, stack, name, 0)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

type renderState struct {
	renderer *Renderer
	reg      Registry
	active   map[string]bool
}

func (rs *renderState) renderNodes(buf []byte, nodes []Node, stack *scopeStack, currentName string, depth int) ([]byte, error) {
	var err error
	for _, n := range nodes {
		buf, err = rs.renderNode(buf, n, stack, currentName, depth)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (rs *renderState) renderNode(buf []byte, n Node, stack *scopeStack, currentName string, depth int) ([]byte, error) {
	switch node := n.(type) {
	case *LiteralNode:
		return append(buf, node.Text...), nil

	case *VariableNode:
		v, ok, mismatch := stack.resolve(node.Path)
		if mismatch {
			return nil, &RenderError{Template: currentName, Path: joinPath(node.Path), Kind: KindTypeMismatch, Detail: "cannot descend into a non-object"}
		}
		if !ok {
			return nil, &RenderError{Template: currentName, Path: joinPath(node.Path), Kind: KindUnresolvedVariable}
		}
		switch v.Kind() {
		case KindString:
			s, _ := v.AsString()
			return append(buf, s...), nil
		case KindBool:
			b, _ := v.AsBool()
			return append(buf, strconv.FormatBool(b)...), nil
		default:
			return nil, &RenderError{Template: currentName, Path: joinPath(node.Path), Kind: KindTypeMismatch, Detail: "cannot substitute a " + v.Kind().String()}
		}

	case *IfNode:
		if depth+1 > rs.renderer.maxDepth() {
			return nil, &RenderError{Template: currentName, Kind: KindRecursionExceeded}
		}
		for _, branch := range node.Branches {
			if evalCond(branch.Cond, stack) {
				return rs.renderNodes(buf, branch.Body, stack, currentName, depth+1)
			}
		}
		if node.Else != nil {
			return rs.renderNodes(buf, node.Else, stack, currentName, depth+1)
		}
		return buf, nil

	case *ForNode:
		if depth+1 > rs.renderer.maxDepth() {
			return nil, &RenderError{Template: currentName, Kind: KindRecursionExceeded}
		}
		v, ok, _ := stack.resolve(node.Iterable)
		if !ok {
			return nil, &RenderError{Template: currentName, Path: joinPath(node.Iterable), Kind: KindNotIterable}
		}
		items, ok := v.AsIterable()
		if !ok {
			return nil, &RenderError{Template: currentName, Path: joinPath(node.Iterable), Kind: KindNotIterable, Detail: "got a " + v.Kind().String()}
		}
		var err error
		for _, item := range items {
			stack.push(node.Var, item)
			buf, err = rs.renderNodes(buf, node.Body, stack, currentName, depth+1)
			stack.pop()
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case *IncludeNode:
		if rs.active[node.Name] {
			return nil, &RenderError{Template: currentName, Path: node.Name, Kind: KindCyclicInclude}
		}
		if rs.reg == nil {
			return nil, &RenderError{Template: currentName, Path: node.Name, Kind: KindUnknownTemplate}
		}
		included, ok := rs.reg.Get(node.Name)
		if !ok {
			return nil, &RenderError{Template: currentName, Path: node.Name, Kind: KindUnknownTemplate}
		}
		if depth+1 > rs.renderer.maxDepth() {
			return nil, &RenderError{Template: currentName, Path: node.Name, Kind: KindRecursionExceeded}
		}
		rs.active[node.Name] = true
		buf, err := rs.renderNodes(buf, included.nodes, stack, node.Name, depth+1)
		delete(rs.active, node.Name)
		return buf, err

	default:
		return buf, nil
	}
}

func evalCond(n *CondNode, stack *scopeStack) bool {
	switch n.Kind {
	case CondLeaf:
		v, ok, _ := stack.resolve(n.Path)
		if !ok {
			return false
		}
		return v.Truthy()
	case CondNot:
		return !evalCond(n.Operand, stack)
	case CondAnd:
		return evalCond(n.Left, stack) && evalCond(n.Right, stack)
	case CondOr:
		return evalCond(n.Left, stack) || evalCond(n.Right, stack)
	default:
		return false
	}
}

func joinPath(path []string) string {
	out := path[0]
	for _, seg := range path[1:] {
		out += "." + seg
	}
	return out
}
