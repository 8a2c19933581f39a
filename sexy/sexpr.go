package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node represents any Sexy datum
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// Head returns the symbol at the start of a list, or "".
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if len(p.lexer.errors) > 0 {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, p.lexer.errors[0]
	}
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.nextToken()
		return NewInteger(tok.Value), nil
	case tokenEllipsis:
		p.nextToken()
		return NewEllipsis(), nil
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	items := []*Node{}
	p.nextToken() // consume '('

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("expected ')' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume ')'
	return NewList(items...), nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type  tokenType
	Value string
}

type lexer struct {
	input  []rune
	pos    int
	errors []error
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peek(offset int) rune {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *lexer) fail(format string, args ...any) token {
	l.errors = append(l.errors, fmt.Errorf(format, args...))
	return token{Type: tokenEOF}
}

func (l *lexer) nextToken() token {
	for {
		for unicode.IsSpace(l.peek(0)) {
			l.pos++
		}
		c := l.peek(0)
		switch {
		case c == 0:
			return token{Type: tokenEOF}
		case c == ';':
			for l.peek(0) != '\n' && l.peek(0) != 0 {
				l.pos++
			}
			continue
		case c == '(':
			l.pos++
			return token{Type: tokenLParen, Value: "("}
		case c == ')':
			l.pos++
			return token{Type: tokenRParen, Value: ")"}
		case c == '"':
			return l.readString()
		case c == '.':
			if l.peek(1) == '.' && l.peek(2) == '.' {
				l.pos += 3
				return token{Type: tokenEllipsis, Value: "..."}
			}
			return l.fail("unexpected character '.'")
		case unicode.IsDigit(c) || ((c == '-' || c == '+') && unicode.IsDigit(l.peek(1))):
			start := l.pos
			l.pos++
			for unicode.IsDigit(l.peek(0)) {
				l.pos++
			}
			return token{Type: tokenInteger, Value: string(l.input[start:l.pos])}
		case isSymbolChar(c):
			start := l.pos
			for isSymbolChar(l.peek(0)) {
				l.pos++
			}
			return token{Type: tokenSymbol, Value: string(l.input[start:l.pos])}
		default:
			return l.fail("unexpected character '%c'", c)
		}
	}
}

func (l *lexer) readString() token {
	var b strings.Builder
	l.pos++ // skip opening quote
	for {
		c := l.peek(0)
		switch c {
		case 0:
			return l.fail("unterminated string")
		case '"':
			l.pos++
			return token{Type: tokenString, Value: b.String()}
		case '\\':
			switch next := l.peek(1); next {
			case '"', '\\':
				b.WriteRune(next)
				l.pos += 2
			default:
				return l.fail("invalid escape sequence: \\%c", next)
			}
		default:
			b.WriteRune(c)
			l.pos++
		}
	}
}

// Symbols cover type names, kebab-case kinds and operator words.
func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
