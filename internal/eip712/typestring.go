package eip712

import (
	"bytes"
	"fmt"
	"sort"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// dependencies collects the names of every struct type reachable from name,
// including name itself as the first entry. Array suffixes are stripped
// before the lookup so that "Person[]" pulls in "Person".
func (r *Registry) dependencies(name string, found []string) []string {
	includes := func(arr []string, str string) bool {
		for _, obj := range arr {
			if obj == str {
				return true
			}
		}
		return false
	}

	if includes(found, name) {
		return found
	}
	if r.types[name] == nil {
		return found
	}

	found = append(found, name)
	for _, field := range r.types[name] {
		base, err := baseType(field.Type)
		if err != nil {
			continue
		}
		for _, dep := range r.dependencies(base, found) {
			if !includes(found, dep) {
				found = append(found, dep)
			}
		}
	}
	return found
}

// EncodeType renders the canonical EIP-712 type signature for name: the
// root's own signature first, then the signature of every transitively
// referenced struct, sorted by type name.
func (r *Registry) EncodeType(name string) (string, error) {
	if r.types[name] == nil {
		return "", fmt.Errorf("%w: unknown struct %q", ErrUnsupportedType, name)
	}

	deps := r.dependencies(name, nil)
	slicedDeps := deps[1:]
	sort.Strings(slicedDeps)
	deps = append([]string{name}, slicedDeps...)

	var buffer bytes.Buffer
	for _, dep := range deps {
		buffer.WriteString(dep)
		buffer.WriteString("(")
		for i, field := range r.types[dep] {
			if i > 0 {
				buffer.WriteString(",")
			}
			buffer.WriteString(field.Type)
			buffer.WriteString(" ")
			buffer.WriteString(field.Name)
		}
		buffer.WriteString(")")
	}
	return buffer.String(), nil
}

// TypeHash returns keccak256(EncodeType(name)). Results depend only on the
// immutable definitions, so they are cached per struct name.
func (r *Registry) TypeHash(name string) (ethcommon.Hash, error) {
	if cached, ok := r.typeHashes.Load(name); ok {
		return cached.(ethcommon.Hash), nil
	}

	encoded, err := r.EncodeType(name)
	if err != nil {
		return ethcommon.Hash{}, err
	}

	hash := crypto.Keccak256Hash([]byte(encoded))
	r.typeHashes.Store(name, hash)
	return hash, nil
}
