package wisp

import (
	"sort"
	"strings"
)

// RequiredVariables statically walks t (and, through reg, anything it
// includes) and reports the sorted, deduplicated set of dotted variable
// paths a real render against ctx would need but ctx does not supply.
//
// This is advisory analysis, not a render: it follows the same branch of an
// if/elif/else that a render would take (using ctx's current values for
// truthiness, absent-is-false), skips a for loop's body entirely if its
// iterable isn't present with elements, and only recurses into an include
// once per template name to avoid an infinite walk through a cyclic
// include set. reg may be nil, in which case includes are treated as
// contributing nothing (their bodies are never visited).
//
// A for loop's variable is treated as always present and truthy for the
// extent of its body, mirroring how a real element would be bound; nested
// field access below a loop variable is not verified against ctx, since the
// analysis has no real element to check it against.
func (t *Template) RequiredVariables(ctx *Context, reg Registry) []string {
	a := &analyzer{ctx: ctx, reg: reg, seen: map[string]bool{}}
	a.walk(t.nodes, map[string]bool{}, map[string]bool{})
	sort.Strings(a.missing)
	return a.missing
}

type analyzer struct {
	ctx     *Context
	reg     Registry
	seen    map[string]bool
	missing []string
}

func (a *analyzer) report(path []string) {
	key := strings.Join(path, ".")
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.missing = append(a.missing, key)
}

func (a *analyzer) pathValue(path []string, known map[string]bool) (Value, bool, bool) {
	head := path[0]
	if known[head] {
		return Value{}, true, true // present, but opaque (no real element to descend into)
	}
	v, ok := a.ctx.Get(head)
	if !ok {
		return Value{}, false, false
	}
	for _, seg := range path[1:] {
		fv, ok := v.Field(seg)
		if !ok {
			return Value{}, false, false
		}
		v = fv
	}
	return v, true, false
}

func (a *analyzer) pathSatisfied(path []string, known map[string]bool) bool {
	_, ok, _ := a.pathValue(path, known)
	return ok
}

func (a *analyzer) pathTruthy(path []string, known map[string]bool) bool {
	v, ok, opaque := a.pathValue(path, known)
	if !ok {
		return false
	}
	if opaque {
		return true
	}
	return v.Truthy()
}

func (a *analyzer) evalCond(n *CondNode, known map[string]bool) bool {
	switch n.Kind {
	case CondLeaf:
		return a.pathTruthy(n.Path, known)
	case CondNot:
		return !a.evalCond(n.Operand, known)
	case CondAnd:
		return a.evalCond(n.Left, known) && a.evalCond(n.Right, known)
	case CondOr:
		return a.evalCond(n.Left, known) || a.evalCond(n.Right, known)
	default:
		return false
	}
}

func (a *analyzer) walk(nodes []Node, known map[string]bool, visitedIncludes map[string]bool) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *LiteralNode:
			// contributes nothing

		case *VariableNode:
			if !a.pathSatisfied(node.Path, known) {
				a.report(node.Path)
			}

		case *IfNode:
			ran := false
			for _, branch := range node.Branches {
				if a.evalCond(branch.Cond, known) {
					a.walk(branch.Body, known, visitedIncludes)
					ran = true
					break
				}
			}
			if !ran && node.Else != nil {
				a.walk(node.Else, known, visitedIncludes)
			}

		case *ForNode:
			if !a.pathSatisfied(node.Iterable, known) {
				a.report(node.Iterable)
				continue
			}
			v, _, opaque := a.pathValue(node.Iterable, known)
			hasItems := opaque
			if !opaque {
				items, ok := v.AsIterable()
				hasItems = ok && len(items) > 0
			}
			if hasItems {
				loopKnown := make(map[string]bool, len(known)+1)
				for k := range known {
					loopKnown[k] = true
				}
				loopKnown[node.Var] = true
				a.walk(node.Body, loopKnown, visitedIncludes)
			}

		case *IncludeNode:
			if visitedIncludes[node.Name] || a.reg == nil {
				continue
			}
			visitedIncludes[node.Name] = true
			if included, ok := a.reg.Get(node.Name); ok {
				a.walk(included.nodes, known, visitedIncludes)
			}
		}
	}
}
