package eip712

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EncodeForSigning assembles the EIP-191 pre-image for a typed-data digest:
// 0x19 0x01 || domainSeparator || messageHash. The two prefix bytes are fixed
// by the standard.
func EncodeForSigning(domainSeparator, messageHash ethcommon.Hash) []byte {
	return []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator.Bytes()), string(messageHash.Bytes())))
}

// SignableDigest computes the final 32-byte digest handed to a signer:
// keccak256 of the EncodeForSigning pre-image.
func SignableDigest(domainSeparator, messageHash ethcommon.Hash) ethcommon.Hash {
	return crypto.Keccak256Hash(EncodeForSigning(domainSeparator, messageHash))
}

// TypedData bundles a schema, a signing domain and one message instance:
// everything needed to produce a signable digest.
type TypedData struct {
	Types       Types   `json:"types"`
	PrimaryType string  `json:"primaryType"`
	Domain      Domain  `json:"domain"`
	Message     Message `json:"message"`
}

// Digest computes the signable digest for the typed data, returning the
// domain separator and message hashStruct alongside it so callers can
// publish them as externally verifiable intermediates.
func (td *TypedData) Digest() (digest, domainSeparator, messageHash ethcommon.Hash, err error) {
	registry, err := NewRegistry(td.Types)
	if err != nil {
		return ethcommon.Hash{}, ethcommon.Hash{}, ethcommon.Hash{}, err
	}

	domainSeparator, err = td.Domain.Separator()
	if err != nil {
		return ethcommon.Hash{}, ethcommon.Hash{}, ethcommon.Hash{}, err
	}

	messageHash, err = registry.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return ethcommon.Hash{}, ethcommon.Hash{}, ethcommon.Hash{}, err
	}

	return SignableDigest(domainSeparator, messageHash), domainSeparator, messageHash, nil
}
