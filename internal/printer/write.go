package printer

// Writer accumulates output and tracks indentation.
type Writer struct {
	buf         []byte
	indent      string
	indentLevel int
	atLineStart bool
}

func NewWriter(indentWidth, sizeHint int) *Writer {
	ind := make([]byte, indentWidth)
	for i := range ind {
		ind[i] = ' '
	}
	return &Writer{buf: make([]byte, 0, sizeHint), indent: string(ind), atLineStart: true}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) String() string { return string(w.buf) }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel {
		w.buf = append(w.buf, w.indent...)
	}
	w.atLineStart = false
}

// WriteString writes s; a trailing newline puts the writer at line start.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a single space unless the output already ends with one.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	if last := w.buf[len(w.buf)-1]; last == ' ' || last == '\n' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line unless it is already empty.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

func (w *Writer) IndentPush() { w.indentLevel++ }

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
