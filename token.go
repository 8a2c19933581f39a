package sprout

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT   = "IDENT"   // x, add, _tmp
	NUMBER  = "NUMBER"  // 42, 3.5
	STRING  = "STRING"  // "hi"
	BOOLEAN = "BOOLEAN" // true, false
	TYPE    = "TYPE"    // Number, String, Boolean, Void

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	BANG     = "!"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LE     = "<=" // also assignment at statement start
	GT     = ">"
	GE     = ">="

	AND = "&&"
	OR  = "||"

	// Delimiters
	COLON  = ":"
	COMMA  = ","
	LPAREN = "("
	RPAREN = ")"

	// Keywords
	PRINT        = "PRINT"
	IF           = "IF"
	THEN         = "THEN"
	ELSE         = "ELSE"
	END_IF       = "END_IF"
	WHILE        = "WHILE"
	DO           = "DO"
	END_WHILE    = "END_WHILE"
	FUNCTION     = "FUNCTION"
	RETURNS      = "RETURNS"
	END_FUNCTION = "END_FUNCTION"
	RETURN       = "RETURN"
)

var keywords = map[string]TokenType{
	"print":       PRINT,
	"if":          IF,
	"then":        THEN,
	"else":        ELSE,
	"endIf":       END_IF,
	"while":       WHILE,
	"do":          DO,
	"endWhile":    END_WHILE,
	"function":    FUNCTION,
	"returns":     RETURNS,
	"endFunction": END_FUNCTION,
	"return":      RETURN,
	"true":        BOOLEAN,
	"false":       BOOLEAN,
	"Number":      TYPE,
	"String":      TYPE,
	"Boolean":     TYPE,
	"Void":        TYPE,
}

// lookupIdent classifies an identifier-shaped word.
func lookupIdent(word string) TokenType {
	if tt, ok := keywords[word]; ok {
		return tt
	}
	return IDENT
}

// Token is one element of the input sequence. Line is 1-based.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

// describe renders a token for "found ..." messages.
func (t Token) describe() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case IDENT, NUMBER, STRING, BOOLEAN, TYPE, ILLEGAL:
		return string(t.Type) + " " + quote(t.Literal)
	default:
		return quote(t.Literal)
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

// tokenStream is a bounds-checked cursor over a token slice. Reads past the
// end yield a synthesized EOF, so a sequence without a trailing EOF behaves
// as if it had one.
type tokenStream struct {
	tokens []Token
	pos    int
}

func newTokenStream(tokens []Token) *tokenStream {
	return &tokenStream{tokens: tokens}
}

func (s *tokenStream) at(i int) Token {
	if i < len(s.tokens) {
		return s.tokens[i]
	}
	line := 1
	if n := len(s.tokens); n > 0 {
		line = s.tokens[n-1].Line
	}
	return Token{Type: EOF, Line: line}
}

// current returns the token under the cursor.
func (s *tokenStream) current() Token {
	return s.at(s.pos)
}

// peek returns the token offset positions ahead of the cursor.
func (s *tokenStream) peek(offset int) Token {
	return s.at(s.pos + offset)
}

// advance consumes and returns the current token. It never moves past EOF.
func (s *tokenStream) advance() Token {
	tok := s.current()
	if tok.Type != EOF {
		s.pos++
	}
	return tok
}

// previous returns the most recently consumed token, or a zero Token at the
// start of the stream.
func (s *tokenStream) previous() Token {
	if s.pos == 0 {
		return Token{}
	}
	return s.at(s.pos - 1)
}

func (s *tokenStream) atEOF() bool {
	return s.current().Type == EOF
}
