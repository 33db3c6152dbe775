package render

import (
	"mosdl/internal/spec"
)

// renderOperation emits the documentation block, the operation line with its
// pattern-specific message layout and the optional throws clause. Message
// continuation lines and the throws clause hang one level deeper than the
// operation line.
func (r *renderer) renderOperation(op *spec.Operation) {
	hasErrDoc := false
	for _, e := range op.Errors {
		if spec.HasDoc(e) {
			hasErrDoc = true
			break
		}
	}
	r.opDoc(op, hasErrDoc)

	r.w.WriteString(op.Pattern.Keyword() + " ")
	if op.Replay {
		r.w.WriteString("*")
	}
	r.w.WriteString(escapeID(op.Name) + " [" + num(uint64(op.Number)) + "] ")
	r.w.IndentPush()
	switch op.Pattern {
	case spec.PatternSend, spec.PatternSubmit:
		r.message("", op.Messages[0])
	case spec.PatternRequest:
		r.message("", op.Messages[0])
		r.message("-> ", op.Messages[1])
	case spec.PatternInvoke:
		r.message("", op.Messages[0])
		r.message("-> ", op.Messages[1])
		r.message("-> ", op.Messages[2])
	case spec.PatternProgress:
		r.message("", op.Messages[0])
		r.message("-> ", op.Messages[1])
		r.message("-> ", op.Messages[2])
		r.w.WriteString("*")
		r.message("-> ", op.Messages[3])
	case spec.PatternPubSub:
		r.w.WriteString("<- ")
		r.message("", op.Messages[0])
	}
	if len(op.Errors) > 0 {
		r.renderThrows(op.Errors, hasErrDoc)
	}
	r.w.IndentPop()
	r.w.Newline()
	r.w.Line()
}

// message renders one field group. prefix is empty for the first stage and
// "-> " for follow-up stages, which start on their own continuation line.
func (r *renderer) message(prefix string, msg *spec.Message) {
	inline := r.opt.Doc == DocInline
	if prefix != "" || (inline && msg.Comment != "") {
		r.w.Newline()
	}
	if inline {
		r.doc(msg.Comment)
	}
	r.w.WriteString(prefix + "(")
	multiline := false
	if inline {
		for _, f := range msg.Fields {
			if f.Comment != "" {
				multiline = true
				break
			}
		}
	}
	if multiline {
		r.w.Newline()
		r.w.IndentPush()
	}
	for i, field := range msg.Fields {
		if inline {
			r.doc(field.Comment)
		}
		r.w.WriteString(escapeID(field.Name) + ": " + r.typeName(field.Type))
		if i != len(msg.Fields)-1 {
			r.w.WriteString(", ")
		}
		if multiline {
			r.w.Newline()
		}
	}
	if multiline {
		r.w.IndentPop()
	}
	r.w.WriteString(")")
}

// renderThrows emits the throws clause. The multi-line layout is chosen only
// when the mode is INLINE and some error carries documentation, never by
// error count.
func (r *renderer) renderThrows(errs []spec.ThrownError, hasErrDoc bool) {
	r.w.Newline()
	r.w.WriteString("throws")
	if hasErrDoc && r.opt.Doc == DocInline {
		r.w.IndentPush()
		r.w.Newline()
		for i, e := range errs {
			r.doc(e.Doc())
			r.writeThrown(e)
			if i != len(errs)-1 {
				r.w.WriteString(",")
				r.w.Newline()
			}
		}
		r.w.IndentPop()
	} else {
		r.w.WriteString(" ")
		for i, e := range errs {
			r.writeThrown(e)
			if i != len(errs)-1 {
				r.w.WriteString(", ")
			}
		}
	}
}

// writeThrown renders a single throws entry: a resolved type name for
// references, an inline definition otherwise.
func (r *renderer) writeThrown(e spec.ThrownError) {
	switch err := e.(type) {
	case *spec.ErrorRef:
		r.w.WriteString(r.typeName(err.Type))
		r.writeExtraInfo(err.ExtraInfo, false)
	case *spec.ErrorDef:
		r.writeErrorDef(err, false)
	}
}

func (r *renderer) writeErrorDef(e *spec.ErrorDef, atDeclarationScope bool) {
	r.w.WriteString("error " + escapeID(e.Name) + " [" + num(uint64(e.Number)) + "]")
	r.writeExtraInfo(e.ExtraInfo, atDeclarationScope)
}

// writeExtraInfo renders the ": Type" narrowing of an error. When the extra
// information carries a comment that will actually be printed, the type moves
// to its own line below the comment block, indented one level deeper.
func (r *renderer) writeExtraInfo(extra *spec.ExtraInfo, atDeclarationScope bool) {
	if extra == nil {
		return
	}
	withComment := extra.Comment != "" &&
		(atDeclarationScope || r.opt.Doc == DocInline) &&
		r.opt.Doc != DocSuppress
	if withComment {
		r.w.WriteString(":")
		r.w.Newline()
		r.w.IndentPush()
		r.doc(extra.Comment)
		r.w.WriteString(r.typeName(extra.Type))
		r.w.IndentPop()
	} else {
		r.w.WriteString(": " + r.typeName(extra.Type))
	}
}
