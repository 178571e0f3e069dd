package eip712

import "fmt"

// Well-known reusable struct definitions. Each pairs with a caller-supplied
// domain; the domain decides which contract the resulting digests bind to.

// EIP712DomainType is the full five-field domain definition. Most domains
// use a subset; see Domain.Fields for per-message synthesis.
var EIP712DomainType = []Field{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
	{Name: "salt", Type: "bytes32"},
}

// PermitType is the EIP-2612 ERC-20 permit struct.
var PermitType = []Field{
	{Name: "owner", Type: "address"},
	{Name: "spender", Type: "address"},
	{Name: "value", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "deadline", Type: "uint256"},
}

// NFTPermitType is the EIP-4494 ERC-721 permit struct.
var NFTPermitType = []Field{
	{Name: "spender", Type: "address"},
	{Name: "tokenId", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "deadline", Type: "uint256"},
}

// SafeTxV1Type is the Gnosis Safe transaction struct used by Safe contracts
// before 1.3.0 (the refund field is called dataGas there).
var SafeTxV1Type = []Field{
	{Name: "to", Type: "address"},
	{Name: "value", Type: "uint256"},
	{Name: "data", Type: "bytes"},
	{Name: "operation", Type: "uint8"},
	{Name: "safeTxGas", Type: "uint256"},
	{Name: "dataGas", Type: "uint256"},
	{Name: "gasPrice", Type: "uint256"},
	{Name: "gasToken", Type: "address"},
	{Name: "refundReceiver", Type: "address"},
	{Name: "nonce", Type: "uint256"},
}

// SafeTxV2Type is the Safe transaction struct from 1.3.0 onwards.
var SafeTxV2Type = []Field{
	{Name: "to", Type: "address"},
	{Name: "value", Type: "uint256"},
	{Name: "data", Type: "bytes"},
	{Name: "operation", Type: "uint8"},
	{Name: "safeTxGas", Type: "uint256"},
	{Name: "baseGas", Type: "uint256"},
	{Name: "gasPrice", Type: "uint256"},
	{Name: "gasToken", Type: "address"},
	{Name: "refundReceiver", Type: "address"},
	{Name: "nonce", Type: "uint256"},
}

var safeTxVersions = map[string][]Field{
	"1.0.0": SafeTxV1Type,
	"1.1.0": SafeTxV1Type,
	"1.1.1": SafeTxV1Type,
	"1.2.0": SafeTxV1Type,
	"1.3.0": SafeTxV2Type,
}

// SafeTxType returns the SafeTx struct definition matching a Safe contract
// version.
func SafeTxType(version string) ([]Field, error) {
	fields, ok := safeTxVersions[version]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported Safe version %q", ErrUnsupportedType, version)
	}
	return fields, nil
}

// NewPermitTypedData builds ready-to-hash typed data for an EIP-2612 permit
// message under the given domain.
func NewPermitTypedData(domain Domain, msg Message) *TypedData {
	return &TypedData{
		Types:       Types{"Permit": PermitType},
		PrimaryType: "Permit",
		Domain:      domain,
		Message:     msg,
	}
}

// NewSafeTxTypedData builds ready-to-hash typed data for a Safe transaction
// under the given domain and Safe contract version.
func NewSafeTxTypedData(version string, domain Domain, msg Message) (*TypedData, error) {
	fields, err := SafeTxType(version)
	if err != nil {
		return nil, err
	}
	return &TypedData{
		Types:       Types{"SafeTx": fields},
		PrimaryType: "SafeTx",
		Domain:      domain,
		Message:     msg,
	}, nil
}
