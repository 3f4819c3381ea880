// Package scan locates parameter placeholder tokens in raw SQL text.
//
// The scanner is a single-pass lexical state machine: placeholder
// patterns are only tested outside quoted string literals and outside
// "--" line comments and "/* */" block comments, so values such as
// '10:30:00' or commented-out fragments never produce tokens.
package scan

// Syntax selects the token syntax a Matcher recognizes.
type Syntax int

const (
	// Qmark matches a bare "?".
	Qmark Syntax = iota
	// ColonName matches ":name" where name is an identifier.
	ColonName
	// ColonNumber matches ":N" where N is a digit sequence.
	ColonNumber
	// DollarName matches "$name".
	DollarName
	// DollarNumber matches "$N".
	DollarNumber
	// PercentS matches "%s".
	PercentS
	// PercentParen matches "%(name)s".
	PercentParen
)

// Sigil returns the character that introduces a token of this syntax.
func (s Syntax) Sigil() byte {
	switch s {
	case Qmark:
		return '?'
	case ColonName, ColonNumber:
		return ':'
	case DollarName, DollarNumber:
		return '$'
	default:
		return '%'
	}
}

// Kind discriminates the token variants a scan can produce.
type Kind int

const (
	// KindParam is a placeholder occurrence.
	KindParam Kind = iota
	// KindEscape is a doubled sigil to be rewritten as the single
	// literal character. Only produced when escaping is enabled.
	KindEscape
	// KindPercent is a literal '%' that must be doubled so a
	// percent-formatting backend does not misread it. Only produced
	// when the matcher is built with doublePercent.
	KindPercent
)

// Token is a located match in the source SQL.
type Token struct {
	Name  string // captured identifier or digit sequence, if any
	Kind  Kind
	Start int // byte offset of the first character
	End   int // byte offset one past the last character
}

// Matcher finds every in-style token in a SQL string. It is immutable
// and safe for concurrent use; each Scan call is independent.
type Matcher struct {
	syntax        Syntax
	sigil         byte
	escape        bool
	doublePercent bool
}

// NewMatcher builds a matcher for the given syntax. When escape is
// set, a doubled sigil is consumed as an escape sequence instead of a
// token. When doublePercent is set, stray '%' characters are reported
// so the rewriter can double them for a percent-based output style.
func NewMatcher(syntax Syntax, escape, doublePercent bool) *Matcher {
	return &Matcher{
		syntax:        syntax,
		sigil:         syntax.Sigil(),
		escape:        escape,
		doublePercent: doublePercent,
	}
}

// Lexical states for the scan loop.
const (
	stateNormal = iota
	stateSingleQuote
	stateDoubleQuote
	stateLineComment
	stateBlockComment
)

// Scan returns every token in sql in left-to-right source order.
func (m *Matcher) Scan(sql string) []Token {
	var tokens []Token
	state := stateNormal
	n := len(sql)

	for i := 0; i < n; {
		c := sql[i]

		switch state {
		case stateSingleQuote:
			if c == '\'' {
				// A doubled quote is a literal quote, not a
				// terminator.
				if i+1 < n && sql[i+1] == '\'' {
					i += 2
					continue
				}
				state = stateNormal
				i++
				continue
			}
			if tok, next, ok := m.literalPercent(sql, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}
			i++

		case stateDoubleQuote:
			if c == '"' {
				if i+1 < n && sql[i+1] == '"' {
					i += 2
					continue
				}
				state = stateNormal
				i++
				continue
			}
			if tok, next, ok := m.literalPercent(sql, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}
			i++

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				i++
				continue
			}
			if tok, next, ok := m.literalPercent(sql, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}
			i++

		case stateBlockComment:
			if c == '*' && i+1 < n && sql[i+1] == '/' {
				state = stateNormal
				i += 2
				continue
			}
			if tok, next, ok := m.literalPercent(sql, i); ok {
				tokens = append(tokens, tok)
				i = next
				continue
			}
			i++

		default: // stateNormal
			switch {
			case c == '\'':
				state = stateSingleQuote
				i++
			case c == '"':
				state = stateDoubleQuote
				i++
			case c == '-' && i+1 < n && sql[i+1] == '-':
				state = stateLineComment
				i += 2
			case c == '/' && i+1 < n && sql[i+1] == '*':
				state = stateBlockComment
				i += 2
			default:
				if tok, next, ok := m.matchAt(sql, i); ok {
					tokens = append(tokens, tok)
					i = next
					continue
				}
				if c == '%' && m.doublePercent {
					tokens = append(tokens, Token{Kind: KindPercent, Start: i, End: i + 1})
				}
				i++
			}
		}
	}

	return tokens
}

// literalPercent handles a '%' seen inside a string literal or a
// comment. Percent escapes mirror percent doubling and apply in every
// lexical state; colon, dollar and qmark escapes only exist in normal
// text, where those characters can carry placeholder meaning.
func (m *Matcher) literalPercent(sql string, i int) (Token, int, bool) {
	if sql[i] != '%' {
		return Token{}, 0, false
	}
	if m.escape && m.sigil == '%' && i+1 < len(sql) && sql[i+1] == '%' {
		return Token{Kind: KindEscape, Start: i, End: i + 2}, i + 2, true
	}
	if m.doublePercent {
		return Token{Kind: KindPercent, Start: i, End: i + 1}, i + 1, true
	}
	return Token{}, 0, false
}

// matchAt tests for an escape sequence or placeholder token starting
// at offset i, which must be in Normal state.
func (m *Matcher) matchAt(sql string, i int) (Token, int, bool) {
	if sql[i] != m.sigil {
		return Token{}, 0, false
	}
	n := len(sql)

	var next byte
	if i+1 < n {
		next = sql[i+1]
	}

	// An escape sequence wins over a placeholder match.
	if m.escape && next == m.sigil {
		return Token{Kind: KindEscape, Start: i, End: i + 2}, i + 2, true
	}

	// A sigil immediately preceded by the same sigil never starts a
	// token; this keeps "::" casts, "??" operators and "%%" literals
	// intact when escaping is disabled.
	if i > 0 && sql[i-1] == m.sigil {
		return Token{}, 0, false
	}

	switch m.syntax {
	case Qmark:
		if next == '?' {
			return Token{}, 0, false
		}
		return Token{Kind: KindParam, Start: i, End: i + 1}, i + 1, true

	case ColonName, DollarName:
		if !isIdentStart(next) {
			return Token{}, 0, false
		}
		j := i + 2
		for j < n && isIdentChar(sql[j]) {
			j++
		}
		return Token{Kind: KindParam, Name: sql[i+1 : j], Start: i, End: j}, j, true

	case ColonNumber, DollarNumber:
		if !isDigit(next) {
			return Token{}, 0, false
		}
		j := i + 2
		for j < n && isDigit(sql[j]) {
			j++
		}
		return Token{Kind: KindParam, Name: sql[i+1 : j], Start: i, End: j}, j, true

	case PercentS:
		if next != 's' {
			return Token{}, 0, false
		}
		return Token{Kind: KindParam, Start: i, End: i + 2}, i + 2, true

	case PercentParen:
		if next != '(' {
			return Token{}, 0, false
		}
		j := i + 2
		if j >= n || !isIdentStart(sql[j]) {
			return Token{}, 0, false
		}
		j++
		for j < n && isIdentChar(sql[j]) {
			j++
		}
		if j+1 >= n || sql[j] != ')' || sql[j+1] != 's' {
			return Token{}, 0, false
		}
		return Token{Kind: KindParam, Name: sql[i+2 : j], Start: i, End: j + 2}, j + 2, true
	}

	return Token{}, 0, false
}

// Identifiers cannot start with a digit so that values such as time
// literals ("10:30") are never mistaken for parameters.
func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
