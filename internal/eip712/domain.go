package eip712

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// domainFieldTypes fixes the relative order and ABI type of the five
// optional EIP712Domain fields. Do not reorder: the encoding of every
// domain separator depends on this sequence.
var domainFieldTypes = []Field{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
	{Name: "salt", Type: "bytes32"},
}

// Domain carries the message-independent signing context. Every field is
// optional, but at least one must be set; the EIP712Domain struct type is
// synthesized per message from the fields actually present.
type Domain struct {
	Name              string                `json:"name,omitempty"`
	Version           string                `json:"version,omitempty"`
	ChainID           *math.HexOrDecimal256 `json:"chainId,omitempty"`
	VerifyingContract string                `json:"verifyingContract,omitempty"`
	Salt              string                `json:"salt,omitempty"`
}

// Fields returns the EIP712Domain field list for the fields present in d,
// in the canonical relative order.
func (d *Domain) Fields() []Field {
	present := d.presence()

	fields := make([]Field, 0, len(domainFieldTypes))
	for _, field := range domainFieldTypes {
		if present[field.Name] {
			fields = append(fields, field)
		}
	}
	return fields
}

// Map returns the domain values keyed the way HashStruct expects them,
// containing only the fields present in d.
func (d *Domain) Map() Message {
	present := d.presence()

	msg := Message{}
	if present["name"] {
		msg["name"] = d.Name
	}
	if present["version"] {
		msg["version"] = d.Version
	}
	if present["chainId"] {
		msg["chainId"] = d.ChainID
	}
	if present["verifyingContract"] {
		msg["verifyingContract"] = d.VerifyingContract
	}
	if present["salt"] {
		msg["salt"] = d.Salt
	}
	return msg
}

func (d *Domain) presence() map[string]bool {
	return map[string]bool{
		"name":              d.Name != "",
		"version":           d.Version != "",
		"chainId":           d.ChainID != nil,
		"verifyingContract": d.VerifyingContract != "",
		"salt":              d.Salt != "",
	}
}

// Separator computes hashStruct(EIP712Domain, d) over the synthesized
// domain type. A domain with zero fields set is rejected.
func (d *Domain) Separator() (ethcommon.Hash, error) {
	fields := d.Fields()
	if len(fields) == 0 {
		return ethcommon.Hash{}, fmt.Errorf("%w: set at least one of name, version, chainId, verifyingContract, salt", ErrEmptyDomain)
	}

	registry, err := NewRegistry(Types{"EIP712Domain": fields})
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("building domain type: %w", err)
	}

	hash, err := registry.HashStruct("EIP712Domain", d.Map())
	if err != nil {
		return ethcommon.Hash{}, err
	}
	return hash, nil
}
