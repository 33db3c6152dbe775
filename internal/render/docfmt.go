package render

import (
	"strings"

	"mosdl/internal/spec"
)

// doc writes a free-text comment in front of the current element. A comment
// with embedded line breaks becomes a triple-quote block, a single-line
// comment a line comment. Nothing is written in SUPPRESS mode or for empty
// comments.
func (r *renderer) doc(text string) {
	if r.opt.Doc == DocSuppress || text == "" {
		return
	}
	if strings.ContainsRune(text, '\n') {
		r.w.Line(`"""`)
		normalized := strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
		for _, line := range strings.Split(normalized, "\n") {
			r.w.Line(line)
		}
		r.w.Line(`"""`)
	} else {
		r.w.Line("/// ", text)
	}
}

// opDoc writes the documentation of an operation. In BULK mode the operation
// comment, stage and field comments and error comments are synthesized into
// one tagged block; stages contribute @<tag>/@<tag>param lines, errors
// @error/@errorinfo lines. An all-whitespace synthesis emits nothing.
func (r *renderer) opDoc(op *spec.Operation, hasErrDoc bool) {
	switch r.opt.Doc {
	case DocSuppress:
		return
	case DocInline:
		r.doc(op.Comment)
		return
	}

	var sb strings.Builder
	sb.WriteString(op.Comment)
	for _, msg := range op.Messages {
		if msg.Comment != "" || len(msg.Fields) > 0 {
			sb.WriteString("\n")
		}
		tag := msg.Stage.Tag()
		if msg.Comment != "" {
			sb.WriteString("\n@")
			sb.WriteString(tag)
			sb.WriteString(": ")
			sb.WriteString(msg.Comment)
		}
		for _, field := range msg.Fields {
			if field.Comment == "" {
				continue
			}
			sb.WriteString("\n@")
			sb.WriteString(tag)
			sb.WriteString("param ")
			sb.WriteString(field.Name)
			sb.WriteString(": ")
			sb.WriteString(field.Comment)
		}
	}

	if hasErrDoc {
		sb.WriteString("\n")
	}
	for _, e := range op.Errors {
		name := r.thrownName(e)
		if e.Doc() != "" {
			sb.WriteString("\n@error ")
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(e.Doc())
		}
		if extra := e.Extra(); extra != nil && extra.Comment != "" {
			sb.WriteString("\n@errorinfo ")
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(extra.Comment)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return
	}
	r.doc(text)
}

// thrownName is the display name of a throws entry used in doc tags:
// references resolve their type against the current context, definitions use
// their plain name.
func (r *renderer) thrownName(e spec.ThrownError) string {
	switch err := e.(type) {
	case *spec.ErrorRef:
		return r.typeName(err.Type)
	case *spec.ErrorDef:
		return err.Name
	default:
		return ""
	}
}
