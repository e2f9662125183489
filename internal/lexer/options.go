package lexer

import (
	"typedjs/internal/diag"
	"typedjs/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// Range restricts lexing to a slice of the file; a zero Range lexes the whole file.
	// JSDoc type expressions are lexed this way, directly over the comment bytes.
	Range *source.Span
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
