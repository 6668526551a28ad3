package wisp

import (
	"errors"
	"fmt"
)

// ParseErrorKind categorizes the reason a template failed to parse.
type ParseErrorKind int

const (
	// KindUnknownDirective is returned for a {{% ... %}} tag whose leading
	// word is not one of if/elif/else/endif/for/endfor, or for a bare
	// "else" followed by trailing text that isn't the "if <cond>" synonym
	// for elif.
	KindUnknownDirective ParseErrorKind = iota
	// KindEmptyVariable is returned for a {{ }} tag with no path inside.
	KindEmptyVariable
	// KindEmptyInclude is returned for a {{<< }} tag with no name inside.
	KindEmptyInclude
	// KindUnbalancedDelimiter is returned when a {{, {{%, or {{<< is never
	// closed before end of input.
	KindUnbalancedDelimiter
	// KindUnclosedBlock is returned when input ends with an open if/for
	// block still on the parser's block stack.
	KindUnclosedBlock
	// KindStrayElif is returned for an elif/else-if with no enclosing if.
	KindStrayElif
	// KindStrayElse is returned for an else with no enclosing if.
	KindStrayElse
	// KindStrayEndif is returned for an endif with no enclosing if.
	KindStrayEndif
	// KindStrayEndfor is returned for an endfor with no enclosing for.
	KindStrayEndfor
	// KindElseAfterElse is returned for a second else in the same if.
	KindElseAfterElse
	// KindElifAfterElse is returned for an elif following an else.
	KindElifAfterElse
	// KindMalformedFor is returned when a for header isn't
	// "<ident> in <path>".
	KindMalformedFor
	// KindMalformedExpression is returned for a syntactically invalid
	// boolean expression inside an if/elif.
	KindMalformedExpression
	// KindInvalidPath is returned for a malformed dotted identifier path.
	KindInvalidPath
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindUnknownDirective:
		return "unknown directive"
	case KindEmptyVariable:
		return "empty variable"
	case KindEmptyInclude:
		return "empty include"
	case KindUnbalancedDelimiter:
		return "unbalanced delimiter"
	case KindUnclosedBlock:
		return "unclosed block"
	case KindStrayElif:
		return "stray elif"
	case KindStrayElse:
		return "stray else"
	case KindStrayEndif:
		return "stray endif"
	case KindStrayEndfor:
		return "stray endfor"
	case KindElseAfterElse:
		return "else after else"
	case KindElifAfterElse:
		return "elif after else"
	case KindMalformedFor:
		return "malformed for header"
	case KindMalformedExpression:
		return "malformed boolean expression"
	case KindInvalidPath:
		return "invalid path"
	default:
		return "parse error"
	}
}

// ParseError describes a syntax error found while parsing a template. Offset
// is the byte offset into the source where the error was detected.
type ParseError struct {
	Offset int
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("wisp: parse error at byte %d: %s", e.Offset, e.Kind)
	}
	return fmt.Sprintf("wisp: parse error at byte %d: %s: %s", e.Offset, e.Kind, e.Detail)
}

// RenderErrorKind categorizes the reason a render failed.
type RenderErrorKind int

const (
	// KindUnresolvedVariable is returned when a {{ path }} substitution's
	// path does not resolve to a value in the current scope.
	KindUnresolvedVariable RenderErrorKind = iota
	// KindTypeMismatch is returned when a resolved value has the wrong
	// kind for the context it's used in (substituting an Object/Iterable,
	// descending through a non-Object).
	KindTypeMismatch
	// KindNotIterable is returned when a for loop's iterable path is
	// absent or does not resolve to an Iterable value.
	KindNotIterable
	// KindUnknownTemplate is returned when a render or include targets a
	// template name the registry doesn't have.
	KindUnknownTemplate
	// KindCyclicInclude is returned when a template includes itself,
	// directly or transitively, within a single render.
	KindCyclicInclude
	// KindRecursionExceeded is returned when nested includes and control
	// flow exceed the renderer's configured maximum depth.
	KindRecursionExceeded
	// KindDuplicateTemplate is returned by a registry that rejects
	// registering a template name that already exists.
	KindDuplicateTemplate
)

func (k RenderErrorKind) String() string {
	switch k {
	case KindUnresolvedVariable:
		return "unresolved variable"
	case KindTypeMismatch:
		return "type mismatch"
	case KindNotIterable:
		return "not iterable"
	case KindUnknownTemplate:
		return "unknown template"
	case KindCyclicInclude:
		return "cyclic include"
	case KindRecursionExceeded:
		return "recursion depth exceeded"
	case KindDuplicateTemplate:
		return "duplicate template"
	default:
		return "render error"
	}
}

// Sentinel errors so callers can use errors.Is against a RenderError's kind
// without needing to type-assert and switch on Kind themselves.
var (
	ErrUnresolvedVariable = errors.New("wisp: unresolved variable")
	ErrTypeMismatch       = errors.New("wisp: type mismatch")
	ErrNotIterable        = errors.New("wisp: not iterable")
	ErrUnknownTemplate    = errors.New("wisp: unknown template")
	ErrCyclicInclude      = errors.New("wisp: cyclic include")
	ErrRecursionExceeded  = errors.New("wisp: recursion depth exceeded")
	ErrDuplicateTemplate  = errors.New("wisp: duplicate template")
)

// RenderError describes a failure that occurred while rendering a template.
// Template is the name of the template being rendered when the error
// occurred (empty for a template rendered without a registered name). Path
// is the variable or included-template path relevant to the error, when
// applicable.
type RenderError struct {
	Template string
	Path     string
	Kind     RenderErrorKind
	Detail   string
}

func (e *RenderError) Error() string {
	base := fmt.Sprintf("wisp: render error in %q: %s", e.Template, e.Kind)
	if e.Path != "" {
		base = fmt.Sprintf("%s %q", base, e.Path)
	}
	if e.Detail != "" {
		base = fmt.Sprintf("%s: %s", base, e.Detail)
	}
	return base
}

func (e *RenderError) Is(target error) bool {
	switch e.Kind {
	case KindUnresolvedVariable:
		return target == ErrUnresolvedVariable
	case KindTypeMismatch:
		return target == ErrTypeMismatch
	case KindNotIterable:
		return target == ErrNotIterable
	case KindUnknownTemplate:
		return target == ErrUnknownTemplate
	case KindCyclicInclude:
		return target == ErrCyclicInclude
	case KindRecursionExceeded:
		return target == ErrRecursionExceeded
	case KindDuplicateTemplate:
		return target == ErrDuplicateTemplate
	default:
		return false
	}
}
