package eip712

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Field is a single named, typed member of a struct definition. The Type
// string is either an ABI primitive ("uint256", "address", ...), the name of
// another registered struct, or either of those with an array suffix
// ("uint256[]", "Person[2]").
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Types maps struct names to their ordered field lists. Field order is part
// of a type's identity: the same fields in a different order hash to a
// different typeHash.
type Types map[string][]Field

// Message holds the values for one struct instance, keyed by field name.
// Nested structs are nested Messages (or map[string]interface{} as produced
// by encoding/json); array fields are []interface{}.
type Message = map[string]interface{}

// identifierRegexp matches valid field and struct identifiers, following the
// eth-account grammar.
var identifierRegexp = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z_$0-9]*$`)

// Registry is an immutable set of struct definitions, validated once at
// construction and safe for concurrent use. typeHash results are cached per
// struct name; cached values are pure functions of the definitions, so the
// cache may race and overwrite with identical values.
type Registry struct {
	types      Types
	typeHashes sync.Map // struct name -> common.Hash
}

// NewRegistry validates the given definitions and builds a registry.
// Unknown field types, malformed identifiers, duplicate fields and cyclic
// struct references are all rejected here, before any hashing happens.
func NewRegistry(types Types) (*Registry, error) {
	r := &Registry{types: types}

	for name, fields := range types {
		if !identifierRegexp.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid struct name %q", ErrUnsupportedType, name)
		}

		seen := make(map[string]bool, len(fields))
		for _, field := range fields {
			if !identifierRegexp.MatchString(field.Name) {
				return nil, fmt.Errorf("%w: invalid field name %q in %q", ErrUnsupportedType, field.Name, name)
			}
			if seen[field.Name] {
				return nil, fmt.Errorf("%w: field %q declared more than once in %q", ErrSchemaMismatch, field.Name, name)
			}
			seen[field.Name] = true

			base, err := baseType(field.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q in %q: %w", field.Name, name, err)
			}
			if _, ok := types[base]; ok {
				continue
			}
			if !isPrimitiveType(base) {
				return nil, fmt.Errorf("%w: %q (field %q in %q)", ErrUnsupportedType, field.Type, field.Name, name)
			}
		}
	}

	for name := range types {
		if err := r.checkCycles(name, make(map[string]bool)); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Types returns the definitions backing the registry.
func (r *Registry) Types() Types {
	return r.types
}

// checkCycles walks the struct reference graph below name and rejects any
// path that re-enters a type already on the stack.
func (r *Registry) checkCycles(name string, stack map[string]bool) error {
	if stack[name] {
		return fmt.Errorf("%w: %q references itself", ErrCyclicType, name)
	}

	stack[name] = true
	defer delete(stack, name)

	for _, field := range r.types[name] {
		base, err := baseType(field.Type)
		if err != nil {
			return err
		}
		if _, ok := r.types[base]; ok {
			if err := r.checkCycles(base, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseArrayType splits the outermost array suffix off a type string.
// "uint256[3][]" yields ("uint256[3]", -1, true); a fixed suffix yields its
// declared size. Types without a suffix return isArray == false.
func parseArrayType(encType string) (elem string, size int, isArray bool, err error) {
	if !strings.HasSuffix(encType, "]") {
		return encType, 0, false, nil
	}

	open := strings.LastIndex(encType, "[")
	if open <= 0 {
		return "", 0, false, fmt.Errorf("%w: malformed array type %q", ErrUnsupportedType, encType)
	}

	inner := encType[open+1 : len(encType)-1]
	if inner == "" {
		return encType[:open], -1, true, nil
	}

	n, convErr := strconv.Atoi(inner)
	if convErr != nil || n < 1 || strings.HasPrefix(inner, "0") {
		return "", 0, false, fmt.Errorf("%w: malformed array size in %q", ErrUnsupportedType, encType)
	}
	return encType[:open], n, true, nil
}

// baseType strips every array suffix from a type string.
func baseType(encType string) (string, error) {
	for {
		elem, _, isArray, err := parseArrayType(encType)
		if err != nil {
			return "", err
		}
		if !isArray {
			return elem, nil
		}
		encType = elem
	}
}

// isPrimitiveType reports whether encType is a recognized non-array ABI
// primitive: address, bool, string, bytes, bytesN (N in 1..32), or
// uintN/intN (N a multiple of 8 up to 256).
func isPrimitiveType(encType string) bool {
	switch encType {
	case "address", "bool", "string", "bytes":
		return true
	}

	if rest, ok := strings.CutPrefix(encType, "bytes"); ok {
		n, err := strconv.Atoi(rest)
		return err == nil && n >= 1 && n <= 32 && !strings.HasPrefix(rest, "0")
	}

	rest, ok := strings.CutPrefix(encType, "uint")
	if !ok {
		rest, ok = strings.CutPrefix(encType, "int")
	}
	if ok {
		n, err := strconv.Atoi(rest)
		return err == nil && n >= 8 && n <= 256 && n%8 == 0 && !strings.HasPrefix(rest, "0")
	}

	return false
}
