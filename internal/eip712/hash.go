package eip712

import (
	"bytes"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashStruct computes the EIP-712 hashStruct value for one instance of the
// named struct: keccak256(typeHash || encoded field values in declaration
// order).
func (r *Registry) HashStruct(name string, msg Message) (ethcommon.Hash, error) {
	encoded, err := r.encodeData(name, msg)
	if err != nil {
		return ethcommon.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

// encodeData builds typeHash || encodeField(...) for every declared field.
// The message must carry exactly the declared field set: missing fields and
// extra fields are both rejected.
func (r *Registry) encodeData(name string, msg Message) ([]byte, error) {
	fields, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown struct %q", ErrUnsupportedType, name)
	}

	declared := make(map[string]bool, len(fields))
	for _, field := range fields {
		declared[field.Name] = true
		if _, present := msg[field.Name]; !present {
			return nil, fmt.Errorf("%w: %s is missing field %q", ErrSchemaMismatch, name, field.Name)
		}
	}
	for key := range msg {
		if !declared[key] {
			return nil, fmt.Errorf("%w: %s has unexpected field %q", ErrSchemaMismatch, name, key)
		}
	}

	typeHash, err := r.TypeHash(name)
	if err != nil {
		return nil, err
	}

	buffer := bytes.Buffer{}
	buffer.Write(typeHash.Bytes())
	for _, field := range fields {
		encoded, err := r.encodeField(field.Type, msg[field.Name])
		if err != nil {
			return nil, fmt.Errorf("field %q of %s: %w", field.Name, name, err)
		}
		buffer.Write(encoded)
	}
	return buffer.Bytes(), nil
}

// encodeField encodes one value into its 32-byte slot: arrays hash the
// concatenation of their encoded elements, struct references contribute
// their hashStruct digest, and primitives go through the primitive encoder.
func (r *Registry) encodeField(encType string, value interface{}) ([]byte, error) {
	elem, size, isArray, err := parseArrayType(encType)
	if err != nil {
		return nil, err
	}

	if isArray {
		items, ok := toSlice(value)
		if !ok {
			return nil, mismatchError(encType, value)
		}
		if size >= 0 && len(items) != size {
			return nil, fmt.Errorf("%w: %s wants %d elements, got %d", ErrArity, encType, size, len(items))
		}

		// An empty dynamic array contributes keccak256 of the empty string.
		arrayBuffer := bytes.Buffer{}
		for _, item := range items {
			encoded, err := r.encodeField(elem, item)
			if err != nil {
				return nil, err
			}
			arrayBuffer.Write(encoded)
		}
		return crypto.Keccak256(arrayBuffer.Bytes()), nil
	}

	if r.types[encType] != nil {
		nested, ok := toMessage(value)
		if !ok {
			return nil, mismatchError(encType, value)
		}
		hash, err := r.HashStruct(encType, nested)
		if err != nil {
			return nil, err
		}
		return hash.Bytes(), nil
	}

	return encodePrimitive(encType, value)
}

func toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []Message:
		items := make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, true
	}
	return nil, false
}

func toMessage(value interface{}) (Message, bool) {
	v, ok := value.(Message)
	return v, ok
}
