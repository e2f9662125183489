package printer

import (
	"errors"
	"strings"

	"typedjs/internal/ast"
	"typedjs/internal/token"
	"typedjs/internal/typeast"
)

type Options struct {
	IndentWidth int
	// PreserveTypes re-emits inline annotations from the canonical types.
	PreserveTypes bool
	// KeepDocs writes JSDoc blocks in front of the statements and members
	// that own them.
	KeepDocs bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	b   *ast.Builder
	w   *Writer
	opt Options
}

func newPrinter(b *ast.Builder, opt Options, sizeHint int) *printer {
	opt = opt.withDefaults()
	return &printer{b: b, w: NewWriter(opt.IndentWidth, sizeHint), opt: opt}
}

// PrintFile renders every top-level statement of fid.
func PrintFile(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("printer: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("printer: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("printer: missing ast file")
	}
	p := newPrinter(b, opt, 64*len(file.Stmts))
	for _, id := range file.Stmts {
		p.stmt(id)
		p.w.Newline()
	}
	return p.w.Bytes(), nil
}

// PrintStmt renders a single statement, mostly for tests and diagnostics.
func PrintStmt(b *ast.Builder, id ast.StmtID, opt Options) string {
	p := newPrinter(b, opt, 64)
	p.stmt(id)
	return strings.TrimSuffix(p.w.String(), "\n")
}

// PrintExpr renders a single expression.
func PrintExpr(b *ast.Builder, id ast.ExprID) string {
	p := newPrinter(b, Options{}, 32)
	p.expr(id, precSeq)
	return p.w.String()
}

func (p *printer) doc(t *token.Trivia) {
	if !p.opt.KeepDocs || t == nil {
		return
	}
	lines := strings.Split(t.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			// продолжение блока: выравниваем по текущему отступу
			line = " " + strings.TrimLeft(line, " \t")
		}
		p.w.WriteString(line)
		p.w.Newline()
	}
}

// annotation writes `: T` for site when types are preserved and the
// canonical type has an inline spelling.
func (p *printer) annotation(site ast.TypeSite, unwrap bool) {
	if !p.opt.PreserveTypes {
		return
	}
	t, ok := p.b.Types.Lookup(site)
	if !ok {
		return
	}
	if unwrap {
		switch w := t.(type) {
		case *typeast.Rest:
			t = w.Inner
		case *typeast.Optional:
			t = w.Inner
		}
	}
	if !typeast.InlineRepresentable(t) {
		return
	}
	p.w.WriteString(": ")
	p.w.WriteString(typeast.Print(t))
}

// singleQuoted rewrites a double-quoted literal when the content has no
// single quote; anything else is returned unchanged.
func singleQuoted(raw string) string {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if strings.ContainsRune(body, '\'') {
		return raw
	}
	return "'" + body + "'"
}
