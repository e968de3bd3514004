package custom

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// TokenType identifies the lexical class of a token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenNumber
	TokenString
	TokenHexString
	TokenName
	TokenKeyword
	TokenDelimiter
	TokenDictStart
	TokenDictEnd
	TokenArrayStart
	TokenArrayEnd
	TokenIndirectRef
	TokenObjStart
	TokenObjEnd
	TokenStreamStart
	TokenStreamEnd
	TokenXRefKeyword
	TokenTrailerKeyword
	TokenStartXRef
)

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "error"
	case TokenEOF:
		return "eof"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenHexString:
		return "hex_string"
	case TokenName:
		return "name"
	case TokenKeyword:
		return "keyword"
	case TokenDelimiter:
		return "delimiter"
	case TokenDictStart:
		return "dict_start"
	case TokenDictEnd:
		return "dict_end"
	case TokenArrayStart:
		return "array_start"
	case TokenArrayEnd:
		return "array_end"
	case TokenIndirectRef:
		return "indirect_ref"
	case TokenObjStart:
		return "obj_start"
	case TokenObjEnd:
		return "obj_end"
	case TokenStreamStart:
		return "stream_start"
	case TokenStreamEnd:
		return "stream_end"
	case TokenXRefKeyword:
		return "xref_keyword"
	case TokenTrailerKeyword:
		return "trailer_keyword"
	case TokenStartXRef:
		return "startxref"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit. Value holds decoded bytes for string
// tokens (escapes resolved, hex pairs decoded), so it is not necessarily a
// byte copy of the source. Pos and End delimit the token's source bytes,
// which is what rewriting code splices on.
type Token struct {
	Type  TokenType
	Value string
	Pos   int64 // offset of the first byte of the token
	End   int64 // offset one past the last byte of the token
}

// Lexer tokenizes PDF syntax from a byte source
type Lexer struct {
	reader   *bufio.Reader
	position int64
	current  byte
	hasNext  bool
	err      error
}

// NewLexer creates a lexer reading from r with positions starting at 0
func NewLexer(r io.Reader) *Lexer {
	l := &Lexer{
		reader:   bufio.NewReader(r),
		position: -1,
		hasNext:  true,
	}
	l.advance()
	return l
}

// NewByteLexerAt creates a lexer over buf starting at offset. Token
// positions are absolute offsets into buf.
func NewByteLexerAt(buf []byte, offset int64) *Lexer {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(buf)) {
		offset = int64(len(buf))
	}
	l := &Lexer{
		reader:   bufio.NewReader(bytes.NewReader(buf[offset:])),
		position: offset - 1,
		hasNext:  true,
	}
	l.advance()
	return l
}

// advance reads the next byte from the input
func (l *Lexer) advance() {
	if !l.hasNext {
		return
	}

	ch, err := l.reader.ReadByte()
	if err != nil {
		if err == io.EOF {
			l.hasNext = false
			l.current = 0
		} else {
			l.err = err
			l.hasNext = false
		}
		return
	}

	l.current = ch
	l.position++
}

// peek looks at the next byte without advancing
func (l *Lexer) peek() byte {
	if !l.hasNext {
		return 0
	}

	next, err := l.reader.Peek(1)
	if err != nil || len(next) == 0 {
		return 0
	}
	return next[0]
}

// end returns the exclusive end offset of the token just read
func (l *Lexer) end() int64 {
	if !l.hasNext {
		return l.position + 1
	}
	return l.position
}

// skipWhitespace skips all whitespace bytes
func (l *Lexer) skipWhitespace() {
	for l.hasNext && IsWhitespace(l.current) {
		l.advance()
	}
}

// skipComment skips a comment through the end of its line
func (l *Lexer) skipComment() {
	if l.current != PercentSign {
		return
	}

	for l.hasNext && l.current != LineFeedChar && l.current != CarriageReturnChar {
		l.advance()
	}

	if l.hasNext && (l.current == LineFeedChar || l.current == CarriageReturnChar) {
		if l.current == CarriageReturnChar && l.peek() == LineFeedChar {
			l.advance()
		}
		l.advance()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{Type: TokenError, Value: l.err.Error(), Pos: l.position}, l.err
	}

	for l.hasNext {
		if IsWhitespace(l.current) {
			l.skipWhitespace()
		} else if l.current == PercentSign {
			l.skipComment()
		} else {
			break
		}
	}

	if !l.hasNext {
		return Token{Type: TokenEOF, Pos: l.position + 1, End: l.position + 1}, nil
	}

	startPos := l.position

	switch l.current {
	case LeftParen:
		return l.readLiteralString()
	case LeftAngle:
		if l.peek() == LeftAngle {
			l.advance()
			l.advance()
			return Token{Type: TokenDictStart, Value: "<<", Pos: startPos, End: l.end()}, nil
		}
		return l.readHexString()
	case RightAngle:
		if l.peek() == RightAngle {
			l.advance()
			l.advance()
			return Token{Type: TokenDictEnd, Value: ">>", Pos: startPos, End: l.end()}, nil
		}
		l.advance()
		return Token{Type: TokenDelimiter, Value: ">", Pos: startPos, End: l.end()}, nil
	case LeftSquare:
		l.advance()
		return Token{Type: TokenArrayStart, Value: "[", Pos: startPos, End: l.end()}, nil
	case RightSquare:
		l.advance()
		return Token{Type: TokenArrayEnd, Value: "]", Pos: startPos, End: l.end()}, nil
	case LeftCurly, RightCurly:
		ch := l.current
		l.advance()
		return Token{Type: TokenDelimiter, Value: string(ch), Pos: startPos, End: l.end()}, nil
	case Solidus:
		return l.readName()
	default:
		if isDigit(l.current) || l.current == '+' || l.current == '-' || l.current == '.' {
			return l.readNumber()
		}
		return l.readKeyword()
	}
}

// readLiteralString reads a (..) string, resolving escape sequences and
// balanced nested parentheses into raw bytes
func (l *Lexer) readLiteralString() (Token, error) {
	startPos := l.position
	var buffer bytes.Buffer

	l.advance() // opening parenthesis
	parenCount := 1

	for l.hasNext && parenCount > 0 {
		ch := l.current

		switch {
		case ch == LeftParen:
			parenCount++
			buffer.WriteByte(ch)
		case ch == RightParen:
			parenCount--
			if parenCount > 0 {
				buffer.WriteByte(ch)
			}
		case ch == '\\':
			l.advance()
			if !l.hasNext {
				return Token{Type: TokenError, Value: "unterminated string", Pos: startPos},
					NewSyntaxError("unterminated literal string", startPos)
			}

			switch l.current {
			case 'n':
				buffer.WriteByte('\n')
			case 'r':
				buffer.WriteByte('\r')
			case 't':
				buffer.WriteByte('\t')
			case 'b':
				buffer.WriteByte('\b')
			case 'f':
				buffer.WriteByte('\f')
			case '(', ')', '\\':
				buffer.WriteByte(l.current)
			case LineFeedChar:
				// line continuation, emits nothing
			case CarriageReturnChar:
				if l.peek() == LineFeedChar {
					l.advance()
				}
			default:
				if isOctalDigit(l.current) {
					val := int(l.current - '0')
					for i := 0; i < 2 && isOctalDigit(l.peek()); i++ {
						l.advance()
						val = val*8 + int(l.current-'0')
					}
					buffer.WriteByte(byte(val & 0xFF))
				} else {
					// A backslash before any other byte is dropped
					buffer.WriteByte(l.current)
				}
			}
		default:
			buffer.WriteByte(ch)
		}

		l.advance()
	}

	if parenCount > 0 {
		return Token{Type: TokenError, Value: "unterminated string", Pos: startPos},
			NewSyntaxError("unterminated literal string", startPos)
	}

	return Token{Type: TokenString, Value: buffer.String(), Pos: startPos, End: l.end()}, nil
}

// readHexString reads a <..> string, decoding hex pairs into raw bytes. An
// odd trailing digit is padded with zero per the file format rules.
func (l *Lexer) readHexString() (Token, error) {
	startPos := l.position
	var buffer bytes.Buffer

	l.advance() // opening angle bracket

	var hi byte
	havePending := false
	for l.hasNext && l.current != RightAngle {
		if IsWhitespace(l.current) {
			l.advance()
			continue
		}
		v, ok := hexValue(l.current)
		if !ok {
			return Token{Type: TokenError, Value: "invalid hex digit", Pos: l.position},
				NewSyntaxError("invalid hex digit in hex string", l.position)
		}
		if havePending {
			buffer.WriteByte(hi<<4 | v)
			havePending = false
		} else {
			hi = v
			havePending = true
		}
		l.advance()
	}

	if !l.hasNext {
		return Token{Type: TokenError, Value: "unterminated hex string", Pos: startPos},
			NewSyntaxError("unterminated hex string", startPos)
	}
	l.advance() // closing angle bracket

	if havePending {
		buffer.WriteByte(hi << 4)
	}

	return Token{Type: TokenHexString, Value: buffer.String(), Pos: startPos, End: l.end()}, nil
}

// readName reads a /Name, resolving #XX hex escapes
func (l *Lexer) readName() (Token, error) {
	startPos := l.position
	var buffer bytes.Buffer

	l.advance() // solidus

	for l.hasNext && IsRegular(l.current) {
		if l.current == '#' {
			l.advance()
			v1, ok1 := hexValue(l.current)
			if l.hasNext && ok1 {
				hex1 := l.current
				l.advance()
				v2, ok2 := hexValue(l.current)
				if l.hasNext && ok2 {
					buffer.WriteByte(v1<<4 | v2)
					l.advance()
				} else {
					buffer.WriteByte('#')
					buffer.WriteByte(hex1)
				}
			} else {
				buffer.WriteByte('#')
			}
		} else {
			buffer.WriteByte(l.current)
			l.advance()
		}
	}

	return Token{Type: TokenName, Value: buffer.String(), Pos: startPos, End: l.end()}, nil
}

// readNumber reads an integer or real
func (l *Lexer) readNumber() (Token, error) {
	startPos := l.position
	var buffer bytes.Buffer

	if l.current == '+' || l.current == '-' {
		buffer.WriteByte(l.current)
		l.advance()
	}

	for l.hasNext && isDigit(l.current) {
		buffer.WriteByte(l.current)
		l.advance()
	}

	if l.hasNext && l.current == '.' {
		buffer.WriteByte(l.current)
		l.advance()

		for l.hasNext && isDigit(l.current) {
			buffer.WriteByte(l.current)
			l.advance()
		}
	}

	return Token{Type: TokenNumber, Value: buffer.String(), Pos: startPos, End: l.end()}, nil
}

// readKeyword reads a bare keyword and classifies the structural ones
func (l *Lexer) readKeyword() (Token, error) {
	startPos := l.position
	var buffer bytes.Buffer

	for l.hasNext && IsRegular(l.current) {
		buffer.WriteByte(l.current)
		l.advance()
	}

	keyword := buffer.String()
	endPos := l.end()

	switch keyword {
	case "R":
		return Token{Type: TokenIndirectRef, Value: keyword, Pos: startPos, End: endPos}, nil
	case ObjKeyword:
		return Token{Type: TokenObjStart, Value: keyword, Pos: startPos, End: endPos}, nil
	case EndObjKeyword:
		return Token{Type: TokenObjEnd, Value: keyword, Pos: startPos, End: endPos}, nil
	case StreamKeyword:
		return Token{Type: TokenStreamStart, Value: keyword, Pos: startPos, End: endPos}, nil
	case EndStreamKeyword:
		return Token{Type: TokenStreamEnd, Value: keyword, Pos: startPos, End: endPos}, nil
	case XRefKeyword:
		return Token{Type: TokenXRefKeyword, Value: keyword, Pos: startPos, End: endPos}, nil
	case TrailerKeyword:
		return Token{Type: TokenTrailerKeyword, Value: keyword, Pos: startPos, End: endPos}, nil
	case StartXRefKeyword:
		return Token{Type: TokenStartXRef, Value: keyword, Pos: startPos, End: endPos}, nil
	default:
		if keyword == "" {
			// A byte that is neither regular, whitespace, nor a handled
			// delimiter; consume it so the lexer cannot loop forever.
			ch := l.current
			l.advance()
			return Token{Type: TokenDelimiter, Value: string(ch), Pos: startPos, End: l.end()}, nil
		}
		return Token{Type: TokenKeyword, Value: keyword, Pos: startPos, End: endPos}, nil
	}
}

// Position returns the offset of the byte the lexer will consider next
func (l *Lexer) Position() int64 {
	if !l.hasNext {
		return l.position + 1
	}
	return l.position
}

// AlignStreamData consumes the single end-of-line sequence that follows the
// stream keyword and returns the offset where stream data begins.
func (l *Lexer) AlignStreamData() int64 {
	if l.hasNext && l.current == CarriageReturnChar {
		l.advance()
	}
	if l.hasNext && l.current == LineFeedChar {
		l.advance()
	}
	return l.Position()
}

// ExpectKeyword reads the next token and checks it against the expected
// keyword or structural keyword value
func (l *Lexer) ExpectKeyword(expected string) error {
	token, err := l.NextToken()
	if err != nil {
		return err
	}

	switch token.Type {
	case TokenKeyword, TokenObjStart, TokenObjEnd, TokenStreamStart, TokenStreamEnd,
		TokenXRefKeyword, TokenTrailerKeyword, TokenStartXRef, TokenIndirectRef:
		if token.Value == expected {
			return nil
		}
	}
	return NewSyntaxError(fmt.Sprintf("expected keyword %q, got %q", expected, token.Value), token.Pos)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func hexValue(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	default:
		return 0, false
	}
}
