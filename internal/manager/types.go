package manager

import (
	"sync"

	"typedsign/internal/common"
	"typedsign/internal/eip712"

	"github.com/google/uuid"
)

const (
	// Service -> signer feed

	// Digest broadcast event: DIGEST <SCHEMA_ID> <DIGEST_HEX>
	DIGEST_EVENT = "DIGEST"
	// Schema registration event: SCHEMA <SCHEMA_ID> <PRIMARY_TYPE>
	SCHEMA_EVENT = "SCHEMA"

	// Signer feed -> service
	// Signature report event: SIGNED <SCHEMA_ID> <DIGEST_HEX> <SIGNATURE_HEX>
	SIGNED_EVENT = "SIGNED"
)

// SchemaEntry is one registered schema session: the validated registry, the
// signing domain it binds to, and the signatures reported back for its
// digests so far.
type SchemaEntry struct {
	SchemaID    uuid.UUID
	PrimaryType string
	Registry    *eip712.Registry
	Domain      *eip712.Domain

	Signatures *common.SignatureList
	SigMutex   *sync.Mutex
}
