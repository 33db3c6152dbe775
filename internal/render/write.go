package render

// Writer accumulates rendered output and keeps track of the current
// indentation level. Indentation is emitted lazily: the first write on a
// fresh line prefixes one tab per level, later writes on the same line
// append verbatim.
type Writer struct {
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates an empty writer positioned at the start of a line.
func NewWriter() *Writer {
	return &Writer{atLineStart: true}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel {
		w.buf = append(w.buf, '\t')
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
}

// Line writes an indented line built from parts followed by a newline.
// Without parts it emits a bare newline, ending the current line or leaving
// a blank one.
func (w *Writer) Line(parts ...string) {
	if len(parts) != 0 {
		w.writeIndent()
		for _, part := range parts {
			w.buf = append(w.buf, part...)
		}
	}
	w.Newline()
}

// Newline unconditionally ends the current line.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Level returns the current indentation level.
func (w *Writer) Level() int {
	return w.indentLevel
}
