package wisp

import "strings"

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentCont(s[i]) {
			return false
		}
	}
	return true
}

// splitPath splits a dotted identifier path (a.b.c) into its segments,
// returning false if the path is empty or any segment is not a bare
// identifier.
func splitPath(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if !isIdentifier(seg) {
			return nil, false
		}
	}
	return segments, true
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
