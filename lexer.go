package wisp

import "strings"

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokVariable
	tokBlock
	tokInclude
	tokEOF
)

// token is one lexeme produced by the lexer. Text holds the literal bytes
// (with \{{ and \{{% already unescaped) for tokLiteral, or the trimmed inner
// text for tokVariable/tokBlock/
// tokInclude. Offset is the byte offset of the token's start (the opening
// delimiter, or the first literal byte).
type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lexer classifies template source into a stream of literal runs and
// {{ }} / {{% %}} / {{<< }} tags, unescaping \{{ and \{{% along the way.
// It never validates tag contents beyond finding a matching closer: that's
// the parser's job.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() (token, error) {
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, offset: l.pos}, nil
	}
	if strings.HasPrefix(l.src[l.pos:], "{{") {
		return l.scanTag()
	}
	return l.scanLiteral(), nil
}

func (l *lexer) scanLiteral() token {
	start := l.pos
	var buf *strings.Builder
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		if strings.HasPrefix(rest, `\{{%`) {
			if buf == nil {
				buf = &strings.Builder{}
				buf.WriteString(l.src[start:l.pos])
			}
			buf.WriteString("{{%")
			l.pos += 4
			continue
		}
		if strings.HasPrefix(rest, `\{{`) {
			if buf == nil {
				buf = &strings.Builder{}
				buf.WriteString(l.src[start:l.pos])
			}
			buf.WriteString("{{")
			l.pos += 3
			continue
		}
		if strings.HasPrefix(rest, "{{") {
			break
		}
		if buf != nil {
			buf.WriteByte(l.src[l.pos])
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	if buf != nil {
		text = buf.String()
	}
	return token{kind: tokLiteral, text: text, offset: start}
}

func (l *lexer) scanTag() (token, error) {
	start := l.pos
	switch {
	case strings.HasPrefix(l.src[l.pos:], "{{%"):
		contentStart := l.pos + 3
		idx := strings.Index(l.src[contentStart:], "%}}")
		if idx < 0 {
			return token{}, &ParseError{Offset: start, Kind: KindUnbalancedDelimiter, Detail: "unclosed {{% ... %}}"}
		}
		inner := l.src[contentStart : contentStart+idx]
		l.pos = contentStart + idx + 3
		return token{kind: tokBlock, text: strings.TrimSpace(inner), offset: start}, nil
	case strings.HasPrefix(l.src[l.pos:], "{{<<"):
		contentStart := l.pos + 4
		idx := strings.Index(l.src[contentStart:], "}}")
		if idx < 0 {
			return token{}, &ParseError{Offset: start, Kind: KindUnbalancedDelimiter, Detail: "unclosed {{<< ... }}"}
		}
		inner := l.src[contentStart : contentStart+idx]
		l.pos = contentStart + idx + 2
		return token{kind: tokInclude, text: strings.TrimSpace(inner), offset: start}, nil
	default:
		contentStart := l.pos + 2
		idx := strings.Index(l.src[contentStart:], "}}")
		if idx < 0 {
			return token{}, &ParseError{Offset: start, Kind: KindUnbalancedDelimiter, Detail: "unclosed {{ ... }}"}
		}
		inner := l.src[contentStart : contentStart+idx]
		l.pos = contentStart + idx + 2
		return token{kind: tokVariable, text: strings.TrimSpace(inner), offset: start}, nil
	}
}
