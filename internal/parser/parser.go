package parser

import (
	"slices"

	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/lexer"
	"typedjs/internal/source"
	"typedjs/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл
type Parser struct {
	s        *lexer.Stream
	arenas   *ast.Builder
	file     ast.FileID
	src      *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile lexes and parses one file of the FileSet into arenas.
func ParseFile(fs *source.FileSet, id source.FileID, arenas *ast.Builder, opts Options) Result {
	src := fs.Get(id)
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	empty := source.Span{File: id}
	p := Parser{
		s:        lexer.NewStream(lx),
		arenas:   arenas,
		file:     arenas.Files.New(empty),
		src:      src,
		opts:     opts,
		lastSpan: empty,
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.s.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.s.Peek().Kind)
}

// parseItems: основной цикл верхнего уровня, parseStmt до EOF.
func (p *Parser) parseItems() {
	startSpan := p.s.Peek().Span
	for !p.at(token.EOF) {
		stmtID, ok := p.parseStmt()
		if !ok {
			p.resync()
			continue
		}
		p.arenas.PushStmt(p.file, stmtID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.s.Peek().Span)
}

// resync: восстановление после ошибки: прокручиваем до ';', '}' на том же
// уровне вложенности или до начала следующего оператора на новой строке.
func (p *Parser) resync() {
	depth := 0
	first := true
	for !p.at(token.EOF) {
		tok := p.s.Peek()
		switch tok.Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
				if first {
					p.advance()
				}
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && !first && tok.NewlineBefore && isStmtStarter(tok.Kind) {
				return
			}
		}
		p.advance()
		first = false
	}
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass,
		token.KwReturn, token.KwIf, token.KwFor, token.KwWhile, token.KwThrow, token.KwTry,
		token.KwBreak, token.KwContinue:
		return true
	default:
		return false
	}
}
