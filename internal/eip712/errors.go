package eip712

import "errors"

// All engine errors are definitional or input errors. None of them are
// transient, so callers should surface them as validation failures rather
// than retry.
var (
	// ErrUnsupportedType is returned when a type string is outside the
	// recognized ABI grammar and does not name a registered struct.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRange is returned when a value does not fit the declared width,
	// e.g. a uint8 larger than 255 or a bytes4 value with 5 bytes.
	ErrRange = errors.New("value out of range")

	// ErrArity is returned when a fixed-length array value has the wrong
	// number of elements.
	ErrArity = errors.New("wrong array length")

	// ErrSchemaMismatch is returned when a message value does not line up
	// with its struct definition: a missing field, an extra field, or a
	// value whose shape does not match the declared type.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrCyclicType is returned when a struct type references itself,
	// directly or through other structs. Such a type has no finite
	// encodeType string.
	ErrCyclicType = errors.New("cyclic type reference")

	// ErrEmptyDomain is returned when a domain separator is requested with
	// no domain fields set. A domain with no distinguishing fields offers
	// no replay protection.
	ErrEmptyDomain = errors.New("no domain fields set")
)
