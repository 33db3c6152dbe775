package spec

// DataType is implemented by the four data type declarations: Composite,
// Enumeration, Attribute and Fundamental. The interface is sealed; renderers
// dispatch over the concrete type once.
type DataType interface {
	dataType()
}

// Composite is a record type. A composite without a short form part is
// abstract: it has no wire representation and cannot carry an extends id.
type Composite struct {
	Name      string
	ShortForm uint32 // 0 marks an abstract composite
	Extends   *TypeRef
	Fields    []*Field
	Comment   string
}

// Abstract reports whether the composite carries no short form part.
func (c *Composite) Abstract() bool { return c.ShortForm == 0 }

// Enumeration is a closed set of named items.
type Enumeration struct {
	Name      string
	ShortForm uint32
	Items     []EnumItem
	Comment   string
}

// EnumItem is a single enumeration member with its numeric value.
type EnumItem struct {
	Value   string
	NValue  uint32
	Comment string
}

// Attribute declares a new attribute type at area scope.
type Attribute struct {
	Name      string
	ShortForm uint32
	Comment   string
}

// Fundamental declares a foundational type, optionally derived from another.
type Fundamental struct {
	Name    string
	Extends *TypeRef
	Comment string
}

func (*Composite) dataType()   {}
func (*Enumeration) dataType() {}
func (*Attribute) dataType()   {}
func (*Fundamental) dataType() {}
