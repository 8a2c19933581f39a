package sprout

// Lexer turns source bytes into tokens. Unlike a NUL-terminated scanner it
// checks every read against the input length.
type Lexer struct {
	input []byte
	pos   int
	line  int
}

// NewLexer creates a lexer positioned at the start of input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Tokenize scans the whole input. The result always ends with exactly one EOF.
func Tokenize(input []byte) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) token(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Line: l.line}
}

// twoChar emits a two-byte operator when the next byte is second, otherwise
// the one-byte fallback.
func (l *Lexer) twoChar(second byte, two TokenType, one TokenType) Token {
	if l.peekByte(1) == second {
		tok := l.token(two, string(l.input[l.pos:l.pos+2]))
		l.pos += 2
		return tok
	}
	tok := l.token(one, string(l.input[l.pos]))
	l.pos++
	return tok
}

// NextToken scans the next token. Once the input is exhausted it keeps
// returning EOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.input) {
		return l.token(EOF, "")
	}

	c := l.input[l.pos]
	switch {
	case c == '+':
		l.pos++
		return l.token(PLUS, "+")
	case c == '-':
		l.pos++
		return l.token(MINUS, "-")
	case c == '*':
		l.pos++
		return l.token(ASTERISK, "*")
	case c == '/':
		l.pos++
		return l.token(SLASH, "/")
	case c == ':':
		l.pos++
		return l.token(COLON, ":")
	case c == ',':
		l.pos++
		return l.token(COMMA, ",")
	case c == '(':
		l.pos++
		return l.token(LPAREN, "(")
	case c == ')':
		l.pos++
		return l.token(RPAREN, ")")
	case c == '!':
		return l.twoChar('=', NOT_EQ, BANG)
	case c == '<':
		return l.twoChar('=', LE, LT)
	case c == '>':
		return l.twoChar('=', GE, GT)
	case c == '=':
		return l.twoChar('=', EQ, ILLEGAL)
	case c == '&':
		return l.twoChar('&', AND, ILLEGAL)
	case c == '|':
		return l.twoChar('|', OR, ILLEGAL)
	case c == '"':
		return l.readString()
	case isLetter(c):
		word := l.readIdentifier()
		return l.token(lookupIdent(word), word)
	case isDigit(c):
		return l.token(NUMBER, l.readNumber())
	default:
		l.pos++
		return l.token(ILLEGAL, string(c))
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peekByte(1) == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// readNumber reads digits with an optional fractional part.
func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return string(l.input[start:l.pos])
}

// readString reads a double-quoted literal. Strings do not span lines; an
// unterminated one becomes an ILLEGAL token holding the rest of the line.
func (l *Lexer) readString() Token {
	line := l.line
	l.pos++ // skip opening "
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' && l.input[l.pos] != '\n' {
		l.pos++
	}
	if l.pos >= len(l.input) || l.input[l.pos] != '"' {
		return Token{Type: ILLEGAL, Literal: "\"" + string(l.input[start:l.pos]), Line: line}
	}
	lit := string(l.input[start:l.pos])
	l.pos++ // skip closing "
	return Token{Type: STRING, Literal: lit, Line: line}
}
