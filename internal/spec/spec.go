package spec

// Specification is the root of the model: an ordered list of areas.
type Specification struct {
	Areas []*Area
}

// Area is a top-level unit. Each area is rendered into its own output file.
type Area struct {
	Name      string
	Number    uint16
	Version   uint8
	Comment   string
	Services  []*Service
	DataTypes []DataType
	Errors    []*ErrorDef
}

// Service groups capability sets plus optional service-level data types and
// errors. A service is owned by exactly one area.
type Service struct {
	Name      string
	Number    uint16
	Comment   string
	Capabilities []*CapabilitySet
	DataTypes []DataType
	Errors    []*ErrorDef
}

// CapabilitySet holds an ordered sequence of operations. The numeric id is
// optional: HasNumber reports whether one was declared.
type CapabilitySet struct {
	Number    uint16
	HasNumber bool
	Comment   string
	Operations []*Operation
}

// Operation describes one interaction. Messages holds exactly the number of
// stages fixed by the pattern (see Pattern.Stages).
type Operation struct {
	Name    string
	Number  uint16
	Comment string
	Replay  bool // operation supports replay
	Pattern Pattern
	Messages []*Message
	Errors  []ThrownError
}

// Message is a single stage of an operation's interaction pattern.
type Message struct {
	Stage   Stage
	Comment string
	Fields  []*Field
}

// Field is a named, typed message or composite member.
type Field struct {
	Name    string
	Type    TypeRef
	Comment string
}

// TypeRef points at a data type by area, optional service and name. List and
// Nullable carry the decoration of the use site, not of the type itself.
type TypeRef struct {
	Area     string
	Service  string
	Name     string
	List     bool
	Nullable bool
}
