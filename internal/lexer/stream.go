package lexer

import (
	"typedjs/internal/source"
	"typedjs/internal/token"
)

// Stream is a fully lexed token slice with arbitrary lookahead.
// The language subset has no regular expression literals, so lexing does not
// depend on parser state and the whole file can be tokenized up front.
type Stream struct {
	toks []token.Token
	pos  int
}

// NewStream lexes everything left in lx.
func NewStream(lx *Lexer) *Stream {
	return &Stream{toks: lx.All()}
}

// StreamOf wraps already lexed tokens; the slice must end with EOF.
func StreamOf(toks []token.Token) *Stream {
	return &Stream{toks: toks}
}

// Peek возвращает текущий токен, не потребляя его.
func (s *Stream) Peek() token.Token {
	return s.toks[s.pos]
}

// PeekN looks n tokens ahead; PeekN(0) == Peek(). Past the end it returns EOF.
func (s *Stream) PeekN(n int) token.Token {
	if i := s.pos + n; i < len(s.toks) {
		return s.toks[i]
	}
	return s.toks[len(s.toks)-1]
}

// Next потребляет текущий токен. EOF никогда не потребляется.
func (s *Stream) Next() token.Token {
	tok := s.toks[s.pos]
	if tok.Kind != token.EOF {
		s.pos++
	}
	return tok
}

// Pos returns a restorable position.
func (s *Stream) Pos() int { return s.pos }

// Reset rewinds to a position returned by Pos.
func (s *Stream) Reset(pos int) { s.pos = pos }

// MatchClose returns the position of the bracket closing the one at pos, or -1.
// Used for "is this parenthesis followed by =>" style decisions.
func (s *Stream) MatchClose(pos int) int {
	depth := 0
	for i := pos; i < len(s.toks); i++ {
		switch s.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return i
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

// At returns the token at absolute position i (EOF past the end).
func (s *Stream) At(i int) token.Token {
	if i < len(s.toks) {
		return s.toks[i]
	}
	return s.toks[len(s.toks)-1]
}

// EatGt consumes a single '>' from the head token. '>>', '>>>' and '>='
// are split in place so nested type argument lists close one at a time.
func (s *Stream) EatGt() (token.Token, bool) {
	head := s.toks[s.pos]
	var rest token.Kind
	switch head.Kind {
	case token.Gt:
		s.pos++
		return head, true
	case token.Shr:
		rest = token.Gt
	case token.UShr:
		rest = token.Shr
	case token.GtEq:
		rest = token.Assign
	default:
		return head, false
	}
	first := head
	first.Kind = token.Gt
	first.Text = ">"
	first.Span = source.Span{File: head.Span.File, Start: head.Span.Start, End: head.Span.Start + 1}

	tail := head
	tail.Kind = rest
	tail.Text = head.Text[1:]
	tail.Span.Start++
	tail.Leading = nil
	tail.NewlineBefore = false
	s.toks[s.pos] = tail
	return first, true
}

// Fork returns an independent copy positioned at the current token.
// Speculative parses run on a fork because EatGt rewrites tokens in place.
func (s *Stream) Fork() *Stream {
	toks := make([]token.Token, len(s.toks)-s.pos)
	copy(toks, s.toks[s.pos:])
	return &Stream{toks: toks}
}
