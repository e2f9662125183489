package printer

import "typedjs/internal/ast"

func (p *printer) class(id ast.ClassID) {
	cls := p.b.Classes.Get(id)
	p.w.WriteString("class")
	if cls.Name != "" {
		p.w.WriteString(" " + cls.Name)
	}
	if cls.Extends.IsValid() {
		p.w.WriteString(" extends ")
		p.expr(cls.Extends, precCall)
	}
	if len(cls.Members) == 0 {
		p.w.WriteString(" {}")
		return
	}
	p.w.WriteString(" {")
	p.w.Newline()
	p.w.IndentPush()
	for _, mid := range cls.Members {
		p.member(mid)
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString("}")
}

func (p *printer) member(id ast.MemberID) {
	m := p.b.Classes.Member(id)
	p.doc(m.Doc)
	if m.Static {
		p.w.WriteString("static ")
	}
	switch m.Kind {
	case ast.MemberGetter:
		p.w.WriteString("get ")
	case ast.MemberSetter:
		p.w.WriteString("set ")
	}
	p.propKey(m.Name, m.Computed, m.Key)
	if m.Kind != ast.MemberField {
		p.signature(m.Func)
		return
	}
	p.annotation(ast.FieldSite(id), false)
	if m.Init.IsValid() {
		p.w.WriteString(" = ")
		p.expr(m.Init, precAssign)
	}
	p.w.WriteString(";")
}
