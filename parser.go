package wisp

import "strings"

// Parse parses template source into an immutable Template tree, or returns
// a *ParseError describing the first syntax error found.
func Parse(source string) (*Template, error) {
	p := &parser{lex: newLexer(source)}
	nodes, err := p.parseSequence("")
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes}, nil
}

// parser is a recursive-descent parser over the lexer's token stream. It
// keeps a single token of lookahead so a nested parseSequence call can peek
// a closing directive (elif/else/endif/endfor) and return without consuming
// it, leaving it for the enclosing if/for builder to handle.
type parser struct {
	lex    *lexer
	peeked *token
}

func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		t, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

func (p *parser) advance() (token, error) {
	t, err := p.peek()
	if err != nil {
		return token{}, err
	}
	p.peeked = nil
	return t, nil
}

// blockDirective splits a {{% ... %}} tag's trimmed inner text into its
// leading directive word and the remainder, folding the "else if" synonym
// for "elif". A bare "else" followed by trailing text that doesn't cleanly
// form the "if <cond>" synonym is a parse error rather than a silently
// accepted, data-dropping "else": offset is the tag's byte offset, used to
// locate that error.
func blockDirective(text string, offset int) (string, string, error) {
	text = strings.TrimSpace(text)
	idx := strings.IndexAny(text, " \t\r\n\v\f")
	var first, rest string
	if idx < 0 {
		first = text
	} else {
		first = text[:idx]
		rest = strings.TrimSpace(text[idx:])
	}
	if first == "else" && rest != "" {
		switch {
		case rest == "if":
			return "elif", "", nil
		case strings.HasPrefix(rest, "if ") || strings.HasPrefix(rest, "if\t"):
			return "elif", strings.TrimSpace(rest[2:]), nil
		default:
			return "", "", &ParseError{Offset: offset, Kind: KindUnknownDirective, Detail: "else " + rest}
		}
	}
	return first, rest, nil
}

// parseSequence parses a run of nodes until it hits an EOF or a directive
// that closes ctx ("" at top level, "if" inside an if body, "for" inside a
// for body). A closing directive is left unconsumed for the caller.
func (p *parser) parseSequence(ctx string) ([]Node, error) {
	var nodes []Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			if ctx != "" {
				return nil, &ParseError{Offset: tok.offset, Kind: KindUnclosedBlock, Detail: "unclosed {{% " + ctx + " %}}"}
			}
			return nodes, nil
		}
		if tok.kind == tokBlock {
			directive, _, err := blockDirective(tok.text, tok.offset)
			if err != nil {
				return nil, err
			}
			switch directive {
			case "elif":
				if ctx == "if" {
					return nodes, nil
				}
				return nil, &ParseError{Offset: tok.offset, Kind: KindStrayElif}
			case "else":
				if ctx == "if" {
					return nodes, nil
				}
				return nil, &ParseError{Offset: tok.offset, Kind: KindStrayElse}
			case "endif":
				if ctx == "if" {
					return nodes, nil
				}
				return nil, &ParseError{Offset: tok.offset, Kind: KindStrayEndif}
			case "endfor":
				if ctx == "for" {
					return nodes, nil
				}
				return nil, &ParseError{Offset: tok.offset, Kind: KindStrayEndfor}
			}
		}

		tok, _ = p.advance()
		switch tok.kind {
		case tokLiteral:
			nodes = append(nodes, &LiteralNode{Text: []byte(tok.text)})
		case tokVariable:
			node, err := p.parseVariable(tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case tokInclude:
			if tok.text == "" {
				return nil, &ParseError{Offset: tok.offset, Kind: KindEmptyInclude}
			}
			nodes = append(nodes, &IncludeNode{Name: tok.text, Offset: tok.offset})
		case tokBlock:
			directive, rest, err := blockDirective(tok.text, tok.offset)
			if err != nil {
				return nil, err
			}
			switch directive {
			case "if":
				node, err := p.parseIf(rest, tok.offset)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			case "for":
				node, err := p.parseFor(rest, tok.offset)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			default:
				return nil, &ParseError{Offset: tok.offset, Kind: KindUnknownDirective, Detail: directive}
			}
		}
	}
}

func (p *parser) parseVariable(tok token) (Node, error) {
	if tok.text == "" {
		return nil, &ParseError{Offset: tok.offset, Kind: KindEmptyVariable}
	}
	path, ok := splitPath(tok.text)
	if !ok {
		return nil, &ParseError{Offset: tok.offset, Kind: KindInvalidPath, Detail: tok.text}
	}
	return &VariableNode{Path: path, Offset: tok.offset}, nil
}

func (p *parser) parseIf(headerRest string, offset int) (Node, error) {
	cond, err := parseCondition(headerRest, offset)
	if err != nil {
		return nil, err
	}
	body, err := p.parseSequence("if")
	if err != nil {
		return nil, err
	}
	ifNode := &IfNode{Branches: []IfBranch{{Cond: cond, Body: body}}}
	sawElse := false
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		directive, rest, err := blockDirective(tok.text, tok.offset)
		if err != nil {
			return nil, err
		}
		switch directive {
		case "elif":
			if sawElse {
				return nil, &ParseError{Offset: tok.offset, Kind: KindElifAfterElse}
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			branchCond, err := parseCondition(rest, tok.offset)
			if err != nil {
				return nil, err
			}
			branchBody, err := p.parseSequence("if")
			if err != nil {
				return nil, err
			}
			ifNode.Branches = append(ifNode.Branches, IfBranch{Cond: branchCond, Body: branchBody})
		case "else":
			if sawElse {
				return nil, &ParseError{Offset: tok.offset, Kind: KindElseAfterElse}
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			sawElse = true
			elseBody, err := p.parseSequence("if")
			if err != nil {
				return nil, err
			}
			ifNode.Else = elseBody
		case "endif":
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			return ifNode, nil
		default:
			// parseSequence("if") only returns control here on
			// elif/else/endif or a propagated error, so this is
			// unreachable in practice; treat defensively as unclosed.
			return nil, &ParseError{Offset: tok.offset, Kind: KindUnclosedBlock, Detail: "if"}
		}
	}
}

func (p *parser) parseFor(headerRest string, offset int) (Node, error) {
	varName, iterable, err := parseForHeader(headerRest, offset)
	if err != nil {
		return nil, err
	}
	body, err := p.parseSequence("for")
	if err != nil {
		return nil, err
	}
	if _, err := p.advance(); err != nil { // consume endfor
		return nil, err
	}
	return &ForNode{Var: varName, Iterable: iterable, Body: body, Offset: offset}, nil
}

func parseForHeader(rest string, offset int) (string, []string, error) {
	fields := strings.Fields(rest)
	if len(fields) != 3 || fields[1] != "in" {
		return "", nil, &ParseError{Offset: offset, Kind: KindMalformedFor, Detail: rest}
	}
	if !isIdentifier(fields[0]) {
		return "", nil, &ParseError{Offset: offset, Kind: KindMalformedFor, Detail: "loop variable must be a bare identifier"}
	}
	path, ok := splitPath(fields[2])
	if !ok {
		return "", nil, &ParseError{Offset: offset, Kind: KindMalformedFor, Detail: "iterable must be a dotted path"}
	}
	return fields[0], path, nil
}
