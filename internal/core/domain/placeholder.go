package domain

import "strings"

// TokenKind classifies a piece of an attribute string.
type TokenKind uint8

const (
	// Literal is plain text.
	Literal TokenKind = iota
	// SelfRef is %key%, a sibling attribute of the same instance.
	SelfRef
	// UserRef is !key!, a recipe argument or interactive answer.
	UserRef
	// DepRef is $component/instance/key$, an attribute of another instance's persisted spec.
	DepRef
)

// Token is one lexical unit of an attribute string.
type Token struct {
	Kind TokenKind
	// Text is the literal text, or the raw placeholder including delimiters.
	Text string
	// Key is the referenced attribute for SelfRef, UserRef and DepRef.
	Key string
	// Component and Instance are set for DepRef.
	Component string
	Instance  string
}

// Tokenize splits s into literal text and placeholders. A delimiter that has
// no well-formed closing partner is kept as literal text.
func Tokenize(s string) []Token {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if tok, n, ok := placeholderAt(s[i:]); ok {
			flush()
			tokens = append(tokens, tok)
			i += n
			continue
		}
		lit.WriteByte(s[i])
		i++
	}
	flush()
	return tokens
}

// DepRefs returns every cross-component reference in s.
func DepRefs(s string) []Token {
	var refs []Token
	for _, t := range Tokenize(s) {
		if t.Kind == DepRef {
			refs = append(refs, t)
		}
	}
	return refs
}

func placeholderAt(s string) (Token, int, bool) {
	if len(s) < 3 {
		return Token{}, 0, false
	}
	var kind TokenKind
	switch s[0] {
	case '%':
		kind = SelfRef
	case '!':
		kind = UserRef
	case '$':
		kind = DepRef
	default:
		return Token{}, 0, false
	}

	end := strings.IndexByte(s[1:], s[0])
	if end <= 0 {
		return Token{}, 0, false
	}
	body := s[1 : end+1]
	raw := s[:end+2]

	if kind != DepRef {
		if !isKey(body) {
			return Token{}, 0, false
		}
		return Token{Kind: kind, Text: raw, Key: body}, len(raw), true
	}

	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return Token{}, 0, false
	}
	for _, p := range parts {
		if !isKey(p) {
			return Token{}, 0, false
		}
	}
	return Token{
		Kind:      DepRef,
		Text:      raw,
		Component: parts[0],
		Instance:  parts[1],
		Key:       parts[2],
	}, len(raw), true
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.', c == '+':
		default:
			return false
		}
	}
	return true
}
