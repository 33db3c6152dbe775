package loader

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"fortio.org/safecast"
	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"mosdl/internal/spec"
)

// Load reads and parses one specification file.
func Load(path string) (*spec.Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("areas", len(s.Areas)).Msg("loaded specification")
	return s, nil
}

// Parse builds a specification from service-schema XML. Element namespace
// prefixes are ignored; only local names matter.
func Parse(data []byte) (*spec.Specification, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("empty document")
	}
	if root.Tag != "specification" {
		return nil, fmt.Errorf("unexpected root element <%s>, want <specification>", root.Tag)
	}
	out := &spec.Specification{}
	for _, el := range root.ChildElements() {
		if el.Tag != "area" {
			continue
		}
		area, err := parseArea(el)
		if err != nil {
			return nil, err
		}
		out.Areas = append(out.Areas, area)
	}
	return out, nil
}

func parseArea(el *etree.Element) (*spec.Area, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, err
	}
	number, _, err := attrUint[uint16](el, "number", true)
	if err != nil {
		return nil, fmt.Errorf("area %q: %w", name, err)
	}
	version, hasVersion, err := attrUint[uint8](el, "version", false)
	if err != nil {
		return nil, fmt.Errorf("area %q: %w", name, err)
	}
	if !hasVersion {
		version = 1
	}
	area := &spec.Area{
		Name:    name,
		Number:  number,
		Version: version,
		Comment: text(el, "comment"),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "service":
			svc, err := parseService(child)
			if err != nil {
				return nil, fmt.Errorf("area %q: %w", name, err)
			}
			area.Services = append(area.Services, svc)
		case "dataTypes":
			types, err := parseDataTypes(child, true)
			if err != nil {
				return nil, fmt.Errorf("area %q: %w", name, err)
			}
			area.DataTypes = types
		case "errors":
			errs, err := parseErrorDefs(child)
			if err != nil {
				return nil, fmt.Errorf("area %q: %w", name, err)
			}
			area.Errors = errs
		}
	}
	return area, nil
}

func parseService(el *etree.Element) (*spec.Service, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, err
	}
	number, _, err := attrUint[uint16](el, "number", true)
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", name, err)
	}
	svc := &spec.Service{
		Name:    name,
		Number:  number,
		Comment: text(el, "comment"),
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "capabilitySet":
			cs, err := parseCapabilitySet(child)
			if err != nil {
				return nil, fmt.Errorf("service %q: %w", name, err)
			}
			svc.Capabilities = append(svc.Capabilities, cs)
		case "dataTypes":
			types, err := parseDataTypes(child, false)
			if err != nil {
				return nil, fmt.Errorf("service %q: %w", name, err)
			}
			svc.DataTypes = types
		case "errors":
			errs, err := parseErrorDefs(child)
			if err != nil {
				return nil, fmt.Errorf("service %q: %w", name, err)
			}
			svc.Errors = errs
		}
	}
	return svc, nil
}

// patternElements maps operation element names to their interaction pattern.
var patternElements = map[string]spec.Pattern{
	"sendIP":     spec.PatternSend,
	"submitIP":   spec.PatternSubmit,
	"requestIP":  spec.PatternRequest,
	"invokeIP":   spec.PatternInvoke,
	"progressIP": spec.PatternProgress,
	"pubsubIP":   spec.PatternPubSub,
}

// messageElements lists the expected message element names per pattern, in
// stage order. The operation is malformed unless every one is present.
var messageElements = map[spec.Pattern][]string{
	spec.PatternSend:     {"send"},
	spec.PatternSubmit:   {"submit"},
	spec.PatternRequest:  {"request", "response"},
	spec.PatternInvoke:   {"invoke", "acknowledgement", "response"},
	spec.PatternProgress: {"progress", "acknowledgement", "update", "response"},
	spec.PatternPubSub:   {"publishNotify"},
}

func parseCapabilitySet(el *etree.Element) (*spec.CapabilitySet, error) {
	number, hasNumber, err := attrUint[uint16](el, "number", false)
	if err != nil {
		return nil, fmt.Errorf("capabilitySet: %w", err)
	}
	cs := &spec.CapabilitySet{
		Number:    number,
		HasNumber: hasNumber,
		Comment:   text(el, "comment"),
	}
	for _, child := range el.ChildElements() {
		pattern, ok := patternElements[child.Tag]
		if !ok {
			continue
		}
		op, err := parseOperation(child, pattern)
		if err != nil {
			return nil, err
		}
		cs.Operations = append(cs.Operations, op)
	}
	return cs, nil
}

func parseOperation(el *etree.Element, pattern spec.Pattern) (*spec.Operation, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", el.Tag, err)
	}
	number, _, err := attrUint[uint16](el, "number", true)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", name, err)
	}
	replay, err := attrBool(el, "supportInReplay")
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", name, err)
	}
	op := &spec.Operation{
		Name:    name,
		Number:  number,
		Comment: text(el, "comment"),
		Replay:  replay,
		Pattern: pattern,
	}

	messages := childElement(el, "messages")
	if messages == nil {
		return nil, fmt.Errorf("operation %q: missing <messages>", name)
	}
	stages := pattern.Stages()
	for i, msgTag := range messageElements[pattern] {
		msgEl := childElement(messages, msgTag)
		if msgEl == nil {
			return nil, fmt.Errorf("operation %q: missing <%s> message", name, msgTag)
		}
		msg, err := parseMessage(msgEl, stages[i])
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", name, err)
		}
		op.Messages = append(op.Messages, msg)
	}

	if errsEl := childElement(el, "errors"); errsEl != nil {
		if !pattern.CanThrow() {
			return nil, fmt.Errorf("operation %q: %s operations cannot declare errors", name, pattern)
		}
		thrown, err := parseThrownErrors(errsEl)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", name, err)
		}
		op.Errors = thrown
	}
	return op, nil
}

func parseMessage(el *etree.Element, stage spec.Stage) (*spec.Message, error) {
	msg := &spec.Message{
		Stage:   stage,
		Comment: text(el, "comment"),
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "field" {
			continue
		}
		field, err := parseField(child)
		if err != nil {
			return nil, err
		}
		msg.Fields = append(msg.Fields, field)
	}
	return msg, nil
}

func parseField(el *etree.Element) (*spec.Field, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	nullable, err := attrBool(el, "canBeNull")
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	typeEl := childElement(el, "type")
	if typeEl == nil {
		return nil, fmt.Errorf("field %q: missing <type>", name)
	}
	ref, err := parseTypeRef(typeEl, nullable)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return &spec.Field{Name: name, Type: ref, Comment: text(el, "comment")}, nil
}

func parseTypeRef(el *etree.Element, nullable bool) (spec.TypeRef, error) {
	area := text(el, "area")
	name := text(el, "name")
	if area == "" || name == "" {
		return spec.TypeRef{}, errors.New("<type>: area and name attributes are required")
	}
	list, err := attrBool(el, "list")
	if err != nil {
		return spec.TypeRef{}, fmt.Errorf("<type>: %w", err)
	}
	return spec.TypeRef{
		Area:     area,
		Service:  text(el, "service"),
		Name:     name,
		List:     list,
		Nullable: nullable,
	}, nil
}

func parseDataTypes(el *etree.Element, areaScope bool) ([]spec.DataType, error) {
	var types []spec.DataType
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "composite":
			dt, err := parseComposite(child)
			if err != nil {
				return nil, err
			}
			types = append(types, dt)
		case "enumeration":
			dt, err := parseEnumeration(child)
			if err != nil {
				return nil, err
			}
			types = append(types, dt)
		case "attribute", "fundamental":
			if !areaScope {
				return nil, fmt.Errorf("<%s> types are only allowed at area scope", child.Tag)
			}
			if child.Tag == "attribute" {
				dt, err := parseAttribute(child)
				if err != nil {
					return nil, err
				}
				types = append(types, dt)
				continue
			}
			dt, err := parseFundamental(child)
			if err != nil {
				return nil, err
			}
			types = append(types, dt)
		}
	}
	return types, nil
}

func parseComposite(el *etree.Element) (*spec.Composite, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	// No short form part marks the composite as abstract.
	shortForm, _, err := attrUint[uint32](el, "shortFormPart", false)
	if err != nil {
		return nil, fmt.Errorf("composite %q: %w", name, err)
	}
	c := &spec.Composite{Name: name, ShortForm: shortForm, Comment: text(el, "comment")}
	c.Extends, err = parseExtends(el)
	if err != nil {
		return nil, fmt.Errorf("composite %q: %w", name, err)
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "field" {
			continue
		}
		field, err := parseField(child)
		if err != nil {
			return nil, fmt.Errorf("composite %q: %w", name, err)
		}
		c.Fields = append(c.Fields, field)
	}
	return c, nil
}

func parseEnumeration(el *etree.Element) (*spec.Enumeration, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("enumeration: %w", err)
	}
	shortForm, _, err := attrUint[uint32](el, "shortFormPart", true)
	if err != nil {
		return nil, fmt.Errorf("enumeration %q: %w", name, err)
	}
	e := &spec.Enumeration{Name: name, ShortForm: shortForm, Comment: text(el, "comment")}
	for _, child := range el.ChildElements() {
		if child.Tag != "item" {
			continue
		}
		value := text(child, "value")
		if value == "" {
			return nil, fmt.Errorf("enumeration %q: item without value", name)
		}
		nvalue, _, err := attrUint[uint32](child, "nvalue", true)
		if err != nil {
			return nil, fmt.Errorf("enumeration %q, item %q: %w", name, value, err)
		}
		e.Items = append(e.Items, spec.EnumItem{
			Value:   value,
			NValue:  nvalue,
			Comment: text(child, "comment"),
		})
	}
	return e, nil
}

func parseAttribute(el *etree.Element) (*spec.Attribute, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("attribute: %w", err)
	}
	shortForm, _, err := attrUint[uint32](el, "shortFormPart", true)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	return &spec.Attribute{Name: name, ShortForm: shortForm, Comment: text(el, "comment")}, nil
}

func parseFundamental(el *etree.Element) (*spec.Fundamental, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("fundamental: %w", err)
	}
	extends, err := parseExtends(el)
	if err != nil {
		return nil, fmt.Errorf("fundamental %q: %w", name, err)
	}
	return &spec.Fundamental{Name: name, Extends: extends, Comment: text(el, "comment")}, nil
}

func parseExtends(el *etree.Element) (*spec.TypeRef, error) {
	extends := childElement(el, "extends")
	if extends == nil {
		return nil, nil
	}
	typeEl := childElement(extends, "type")
	if typeEl == nil {
		return nil, errors.New("<extends> without <type>")
	}
	ref, err := parseTypeRef(typeEl, false)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func parseErrorDefs(el *etree.Element) ([]*spec.ErrorDef, error) {
	var defs []*spec.ErrorDef
	for _, child := range el.ChildElements() {
		if child.Tag != "error" {
			continue
		}
		def, err := parseErrorDef(child)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseErrorDef(el *etree.Element) (*spec.ErrorDef, error) {
	name, err := requireName(el)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	number, _, err := attrUint[uint32](el, "number", true)
	if err != nil {
		return nil, fmt.Errorf("error %q: %w", name, err)
	}
	extra, err := parseExtraInfo(el)
	if err != nil {
		return nil, fmt.Errorf("error %q: %w", name, err)
	}
	return &spec.ErrorDef{
		Name:      name,
		Number:    number,
		Comment:   text(el, "comment"),
		ExtraInfo: extra,
	}, nil
}

func parseThrownErrors(el *etree.Element) ([]spec.ThrownError, error) {
	var thrown []spec.ThrownError
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "error":
			def, err := parseErrorDef(child)
			if err != nil {
				return nil, err
			}
			thrown = append(thrown, def)
		case "errorRef":
			typeEl := childElement(child, "type")
			if typeEl == nil {
				return nil, errors.New("<errorRef> without <type>")
			}
			ref, err := parseTypeRef(typeEl, false)
			if err != nil {
				return nil, err
			}
			extra, err := parseExtraInfo(child)
			if err != nil {
				return nil, err
			}
			thrown = append(thrown, &spec.ErrorRef{
				Type:      ref,
				Comment:   text(child, "comment"),
				ExtraInfo: extra,
			})
		}
	}
	return thrown, nil
}

func parseExtraInfo(el *etree.Element) (*spec.ExtraInfo, error) {
	extraEl := childElement(el, "extraInformation")
	if extraEl == nil {
		return nil, nil
	}
	typeEl := childElement(extraEl, "type")
	if typeEl == nil {
		return nil, errors.New("<extraInformation> without <type>")
	}
	ref, err := parseTypeRef(typeEl, false)
	if err != nil {
		return nil, err
	}
	return &spec.ExtraInfo{Type: ref, Comment: text(extraEl, "comment")}, nil
}

// childElement returns the first child with the given local name. Namespace
// prefixes on elements are deliberately ignored.
func childElement(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// text returns an attribute value, NFC-normalized. Missing attributes yield
// the empty string.
func text(el *etree.Element, attr string) string {
	value := el.SelectAttrValue(attr, "")
	if value == "" {
		return ""
	}
	return norm.NFC.String(value)
}

func requireName(el *etree.Element) (string, error) {
	name := text(el, "name")
	if name == "" {
		return "", fmt.Errorf("<%s>: missing name attribute", el.Tag)
	}
	return name, nil
}

// attrUint parses an unsigned numeric attribute and range-checks it against
// the target type. The second result reports whether the attribute was set.
func attrUint[T uint8 | uint16 | uint32](el *etree.Element, attr string, required bool) (T, bool, error) {
	raw := el.SelectAttrValue(attr, "")
	if raw == "" {
		if required {
			return 0, false, fmt.Errorf("missing %q attribute", attr)
		}
		return 0, false, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("attribute %s=%q is not a number: %w", attr, raw, err)
	}
	value, err := safecast.Conv[T](parsed)
	if err != nil {
		return 0, false, fmt.Errorf("attribute %s=%q out of range: %w", attr, raw, err)
	}
	return value, true, nil
}

func attrBool(el *etree.Element, attr string) (bool, error) {
	raw := el.SelectAttrValue(attr, "")
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("attribute %s=%q is not a boolean: %w", attr, raw, err)
	}
	return value, nil
}
