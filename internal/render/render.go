package render

import (
	"mosdl/internal/spec"
)

// FileEnding is appended to an area name to build its output file name.
const FileEnding = ".mosdl"

// FileName returns the deterministic output file name for an area.
func FileName(area *spec.Area) string {
	return area.Name + FileEnding
}

// renderer carries the mutable traversal context of a single area render:
// the output writer, the selected options and the current area/service. A
// fresh renderer is created per area, so nothing leaks between output units.
type renderer struct {
	w       *Writer
	opt     Options
	area    *spec.Area
	service *spec.Service
}

// RenderArea renders one area into MOSDL text. The model is only read, never
// mutated; the returned buffer is owned by the caller.
func RenderArea(area *spec.Area, opt Options) []byte {
	r := &renderer{w: NewWriter(), opt: opt, area: area}
	r.doc(area.Comment)
	header := "area " + escapeID(area.Name) + " [" + num(uint64(area.Number))
	if area.Version != 1 {
		header += "." + num(uint64(area.Version))
	}
	header += "]"
	r.w.Line(header)
	r.w.Line()
	// Imports are reserved for future use: nothing is emitted for them yet.
	for _, svc := range area.Services {
		r.renderService(svc)
	}
	for _, dt := range area.DataTypes {
		r.renderDataType(dt)
		r.w.Line()
	}
	r.renderErrorDefs(area.Errors)
	return r.w.Bytes()
}

func (r *renderer) renderService(svc *spec.Service) {
	r.service = svc
	r.doc(svc.Comment)
	r.w.Line("service ", escapeID(svc.Name), " [", num(uint64(svc.Number)), "] {")
	r.w.IndentPush()
	for _, cs := range svc.Capabilities {
		r.renderCapabilitySet(cs)
	}
	for _, dt := range svc.DataTypes {
		r.renderDataType(dt)
		r.w.Line()
	}
	r.renderErrorDefs(svc.Errors)
	r.w.IndentPop()
	r.w.Line("}")
	r.w.Line()
	r.service = nil
}

func (r *renderer) renderCapabilitySet(cs *spec.CapabilitySet) {
	r.doc(cs.Comment)
	if cs.HasNumber {
		r.w.Line("capability [", num(uint64(cs.Number)), "] {")
	} else {
		r.w.Line("capability {")
	}
	r.w.IndentPush()
	for _, op := range cs.Operations {
		r.renderOperation(op)
	}
	r.w.IndentPop()
	r.w.Line("}")
	r.w.Line()
}

func (r *renderer) renderDataType(dt spec.DataType) {
	switch t := dt.(type) {
	case *spec.Composite:
		r.renderComposite(t)
	case *spec.Enumeration:
		r.renderEnumeration(t)
	case *spec.Attribute:
		r.doc(t.Comment)
		r.w.Line("attribute ", escapeID(t.Name), " [", num(uint64(t.ShortForm)), "]")
	case *spec.Fundamental:
		r.doc(t.Comment)
		extension := ""
		if t.Extends != nil {
			extension = " extends " + r.typeName(*t.Extends)
		}
		r.w.Line("fundamental ", escapeID(t.Name), extension)
	}
}

func (r *renderer) renderComposite(c *spec.Composite) {
	r.doc(c.Comment)
	if c.Abstract() {
		r.w.WriteString("abstract ")
	}
	r.w.WriteString("composite " + escapeID(c.Name))
	if !c.Abstract() {
		r.w.WriteString(" [" + num(uint64(c.ShortForm)) + "]")
		if c.Extends != nil {
			r.w.WriteString(" extends " + r.typeName(*c.Extends))
		}
	}
	r.w.WriteString(" {")
	r.w.Newline()
	r.w.IndentPush()
	for _, field := range c.Fields {
		r.doc(field.Comment)
		r.w.Line(escapeID(field.Name), ": ", r.typeName(field.Type))
	}
	r.w.IndentPop()
	r.w.Line("}")
}

func (r *renderer) renderEnumeration(e *spec.Enumeration) {
	r.doc(e.Comment)
	r.w.Line("enum ", escapeID(e.Name), " [", num(uint64(e.ShortForm)), "] {")
	r.w.IndentPush()
	for _, item := range e.Items {
		r.doc(item.Comment)
		r.w.Line(escapeID(item.Value), " [", num(uint64(item.NValue)), "]")
	}
	r.w.IndentPop()
	r.w.Line("}")
}

// renderErrorDefs renders errors declared at area or service scope.
func (r *renderer) renderErrorDefs(errs []*spec.ErrorDef) {
	for _, e := range errs {
		r.doc(e.Comment)
		r.writeErrorDef(e, true)
		r.w.Newline()
		r.w.Line()
	}
}
