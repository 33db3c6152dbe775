package render

import (
	"testing"

	"mosdl/internal/spec"
)

func TestEscapeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Definition", "Definition"},
		{"service", `"service"`},
		{"throws", `"throws"`},
		{"abstract", `"abstract"`},
		{"Service", "Service"}, // case-sensitive
		{"pubsub", `"pubsub"`},
	}
	for _, tc := range cases {
		if got := escapeID(tc.in); got != tc.want {
			t.Errorf("escapeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	// Quoting is applied once; the quoted form is not itself a keyword.
	if got := escapeID(escapeID("enum")); got != `"enum"` {
		t.Errorf("escaping must be idempotent, got %q", got)
	}
}

func qualContext() *renderer {
	svc := &spec.Service{Name: "Archive", Number: 2}
	area := &spec.Area{Name: "COM", Number: 2, Version: 1, Services: []*spec.Service{svc}}
	return &renderer{w: NewWriter(), area: area, service: svc}
}

func TestTypeNameQualification(t *testing.T) {
	r := qualContext()
	cases := []struct {
		name string
		ref  spec.TypeRef
		want string
	}{
		{"mal fundamental", spec.TypeRef{Area: "MAL", Name: "Identifier"}, "Identifier"},
		{"mal non-fundamental", spec.TypeRef{Area: "MAL", Name: "Subscription"}, "MAL::Subscription"},
		{"same area and service", spec.TypeRef{Area: "COM", Service: "Archive", Name: "ArchiveDetails"}, "ArchiveDetails"},
		{"same area, different service", spec.TypeRef{Area: "COM", Service: "Event", Name: "ArchiveDetails"}, "COM::Event.ArchiveDetails"},
		{"same area, no service qualifier", spec.TypeRef{Area: "COM", Name: "ObjectId"}, "COM::ObjectId"},
		{"foreign area", spec.TypeRef{Area: "MC", Service: "Parameter", Name: "ParameterValue"}, "MC::Parameter.ParameterValue"},
		{"list", spec.TypeRef{Area: "MAL", Name: "Identifier", List: true}, "List<Identifier>"},
		{"nullable scalar", spec.TypeRef{Area: "MAL", Name: "String", Nullable: true}, "String?"},
		{"nullable list wraps the list, not the element", spec.TypeRef{Area: "MAL", Name: "String", List: true, Nullable: true}, "List?<String>"},
		{"keyword type name", spec.TypeRef{Area: "MAL", Name: "error"}, `MAL::"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.typeName(tc.ref); got != tc.want {
				t.Fatalf("typeName(%+v) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

// Regression for the qualification-elision rule: an area name match alone is
// not enough. At area scope (no current service) a reference without a
// service qualifier still renders fully qualified, so a same-named type at
// service scope can never be confused with the area-level one.
func TestTypeNameAreaMatchAloneIsInsufficient(t *testing.T) {
	area := &spec.Area{Name: "COM", Number: 2, Version: 1}
	r := &renderer{w: NewWriter(), area: area}

	ref := spec.TypeRef{Area: "COM", Name: "ObjectType"}
	if got := r.typeName(ref); got != "COM::ObjectType" {
		t.Fatalf("area-scope reference must stay qualified, got %q", got)
	}
}
