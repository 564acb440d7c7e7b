package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGeometry matches every *MalformedGeometryError.
	ErrMalformedGeometry = errors.New("malformed geometry")
	// ErrUnsupportedGeometryType matches every *UnsupportedGeometryTypeError.
	ErrUnsupportedGeometryType = errors.New("unsupported geometry type")
)

// MalformedGeometryError reports a geometry record whose fields are missing
// or whose coordinate arrays have the wrong shape.
type MalformedGeometryError struct {
	Type   string
	Reason string
}

func (e *MalformedGeometryError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("malformed geometry (%s): %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("malformed geometry: %s", e.Reason)
}

func (e *MalformedGeometryError) Is(target error) bool { return target == ErrMalformedGeometry }

// UnsupportedGeometryTypeError reports a type discriminator outside the
// GeoJSON geometry types.
type UnsupportedGeometryTypeError struct {
	Type string
}

func (e *UnsupportedGeometryTypeError) Error() string {
	return fmt.Sprintf("unsupported geometry type: %q", e.Type)
}

func (e *UnsupportedGeometryTypeError) Is(target error) bool {
	return target == ErrUnsupportedGeometryType
}

func malformed(typ, format string, args ...any) error {
	return &MalformedGeometryError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}
