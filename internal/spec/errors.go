package spec

// ThrownError is anything usable inside a throws clause: either a reference
// to an error defined elsewhere (ErrorRef) or an error defined inline
// (ErrorDef). The interface is sealed.
type ThrownError interface {
	thrownError()
	// Doc returns the comment attached at the use site.
	Doc() string
	// Extra returns the optional extra information narrowing, or nil.
	Extra() *ExtraInfo
}

// ErrorRef reuses an externally defined error by type, optionally narrowing
// its extra information and attaching a local comment.
type ErrorRef struct {
	Type      TypeRef
	Comment   string
	ExtraInfo *ExtraInfo
}

// ErrorDef introduces a new error, either at area/service scope or inline in
// a throws clause.
type ErrorDef struct {
	Name      string
	Number    uint32 // MO error numbers exceed 65535 (standard errors start at 65536)
	Comment   string
	ExtraInfo *ExtraInfo
}

// ExtraInfo is the optional typed payload an error may carry.
type ExtraInfo struct {
	Type    TypeRef
	Comment string
}

func (*ErrorRef) thrownError() {}
func (*ErrorDef) thrownError() {}

func (e *ErrorRef) Doc() string       { return e.Comment }
func (e *ErrorDef) Doc() string       { return e.Comment }
func (e *ErrorRef) Extra() *ExtraInfo { return e.ExtraInfo }
func (e *ErrorDef) Extra() *ExtraInfo { return e.ExtraInfo }

// HasDoc reports whether the error or its extra information carries a
// comment. It decides between single-line and multi-line throws layout.
func HasDoc(e ThrownError) bool {
	if e.Doc() != "" {
		return true
	}
	if extra := e.Extra(); extra != nil && extra.Comment != "" {
		return true
	}
	return false
}
