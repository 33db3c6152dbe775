package render

import (
	"strconv"
	"strings"

	"mosdl/internal/spec"
)

// malArea is the base interface-modeling area whose foundational types are
// referenced without qualification.
const malArea = "MAL"

var malFundamentals = map[string]struct{}{
	"Blob": {}, "Boolean": {}, "Double": {}, "Duration": {}, "FineTime": {},
	"Float": {}, "Identifier": {}, "Integer": {}, "Long": {}, "Octet": {},
	"Short": {}, "String": {}, "Time": {}, "UInteger": {}, "ULong": {},
	"UOctet": {}, "URI": {}, "UShort": {}, "Attribute": {}, "Composite": {},
	"Element": {},
}

var keywords = map[string]struct{}{
	"area": {}, "service": {}, "composite": {}, "enum": {}, "attribute": {},
	"fundamental": {}, "error": {}, "extends": {}, "import": {}, "throws": {},
	"abstract": {}, "capability": {}, "send": {}, "submit": {}, "request": {},
	"invoke": {}, "progress": {}, "pubsub": {},
}

// escapeID quotes identifiers that collide with MOSDL keywords. The check is
// case-sensitive; already unreserved identifiers pass through unchanged.
func escapeID(id string) string {
	if _, reserved := keywords[id]; reserved {
		return `"` + id + `"`
	}
	return id
}

func num(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// typeName resolves a type reference against the current area/service
// context. Area qualification is elided only when both the area and the
// effective service context match: an area match alone mis-qualifies when a
// same-named type exists at both area and service scope.
func (r *renderer) typeName(ref spec.TypeRef) string {
	fundamental := ref.Area == malArea && ref.Service == ""
	if fundamental {
		_, fundamental = malFundamentals[ref.Name]
	}
	sameArea := r.area != nil && r.area.Name == ref.Area
	sameService := r.service != nil && r.service.Name == ref.Service

	var sb strings.Builder
	if ref.List {
		sb.WriteString("List")
		if ref.Nullable {
			sb.WriteString("?")
		}
		sb.WriteString("<")
	}
	if !fundamental && !(sameArea && sameService) {
		sb.WriteString(escapeID(ref.Area))
		sb.WriteString("::")
	}
	if ref.Service != "" && !sameService {
		sb.WriteString(escapeID(ref.Service))
		sb.WriteString(".")
	}
	sb.WriteString(escapeID(ref.Name))
	if !ref.List && ref.Nullable {
		sb.WriteString("?")
	}
	if ref.List {
		sb.WriteString(">")
	}
	return sb.String()
}
