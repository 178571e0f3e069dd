package common

import (
	"typedsign/internal/eip712"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/google/uuid"
)

// SchemaSubmission is the body of a schema registration request: the struct
// definitions, the primary type digests will be computed for, and the
// signing domain the schema binds to.
type SchemaSubmission struct {
	Types       eip712.Types  `json:"types"`
	PrimaryType string        `json:"primaryType"`
	Domain      eip712.Domain `json:"domain"`
}

// SchemaRegistered is returned once a schema session has been created. The
// encodeType string and typeHash are included so external verifiers can
// cross-check the canonical type encoding without recomputing it.
type SchemaRegistered struct {
	SchemaID    uuid.UUID `json:"schemaId"`
	PrimaryType string    `json:"primaryType"`
	EncodeType  string    `json:"encodeType"`
	TypeHash    string    `json:"typeHash"`
}

// DigestRequest carries one message instance to hash against a registered
// schema.
type DigestRequest struct {
	Message eip712.Message `json:"message"`
}

// DigestResponse carries the final signable digest together with the two
// intermediates a relying party needs to reproduce it.
type DigestResponse struct {
	SchemaID        uuid.UUID `json:"schemaId"`
	PrimaryType     string    `json:"primaryType"`
	DomainSeparator string    `json:"domainSeparator"`
	MessageHash     string    `json:"messageHash"`
	Digest          string    `json:"digest"`
}

// TypeStringResponse exposes the canonical encodeType artifact for a
// registered schema.
type TypeStringResponse struct {
	SchemaID    uuid.UUID `json:"schemaId"`
	PrimaryType string    `json:"primaryType"`
	EncodeType  string    `json:"encodeType"`
	TypeHash    string    `json:"typeHash"`
}

// SignatureRecord is one signature reported back by a downstream signing
// collaborator over the websocket feed.
type SignatureRecord struct {
	Digest    string `json:"digest"`
	Signature string `json:"signature"`
}

// SignatureList is the drainable set of signatures reported for a schema
// session since the last poll.
type SignatureList struct {
	Signatures []SignatureRecord `json:"signatures"`
}

// DomainParams is the query-string form of a signing domain, decoded with
// gorilla/schema. A zero chainId means the field is absent.
type DomainParams struct {
	Name              string  `schema:"name"`
	Version           string  `schema:"version"`
	ChainID           ChainID `schema:"chainId"`
	VerifyingContract string  `schema:"verifyingContract"`
	Salt              string  `schema:"salt"`
}

// Domain converts the decoded query parameters into an engine domain.
func (p DomainParams) Domain() eip712.Domain {
	domain := eip712.Domain{
		Name:              p.Name,
		Version:           p.Version,
		VerifyingContract: p.VerifyingContract,
		Salt:              p.Salt,
	}
	if p.ChainID != 0 {
		domain.ChainID = math.NewHexOrDecimal256(int64(p.ChainID))
	}
	return domain
}
