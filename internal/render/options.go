package render

import (
	"fmt"
	"strings"
)

// DocMode selects how comments from the model appear in the output.
type DocMode uint8

const (
	// DocBulk gathers all documentation of an operation into a single block
	// in front of the operation. Recommended default.
	DocBulk DocMode = iota
	// DocInline puts every comment right in front of the element it
	// documents. Hard to read for more than a tiny amount of documentation.
	DocInline
	// DocSuppress strips documentation completely.
	DocSuppress
)

func (m DocMode) String() string {
	switch m {
	case DocInline:
		return "inline"
	case DocSuppress:
		return "suppress"
	default:
		return "bulk"
	}
}

// ParseDocMode reads a documentation mode from its flag spelling.
func ParseDocMode(value string) (DocMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "bulk":
		return DocBulk, nil
	case "inline":
		return DocInline, nil
	case "suppress":
		return DocSuppress, nil
	default:
		return DocBulk, fmt.Errorf("invalid doc mode %q (expected bulk|inline|suppress)", value)
	}
}

// Options configures a render pass.
type Options struct {
	Doc DocMode
}
