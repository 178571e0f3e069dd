package manager

import (
	"fmt"
	"strings"

	"typedsign/internal/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// HandleSchemaEvent announces a newly registered schema session on the feed
// so signing collaborators can start watching for its digests.
func (m *Manager) HandleSchemaEvent(entry *SchemaEntry) {
	m.Broadcast([]byte(SCHEMA_EVENT + " " + entry.SchemaID.String() + " " + entry.PrimaryType))
}

// HandleDigestEvent pushes a freshly computed signable digest to the feed.
func (m *Manager) HandleDigestEvent(schemaID uuid.UUID, digest ethcommon.Hash) {
	m.Broadcast([]byte(DIGEST_EVENT + " " + schemaID.String() + " " + digest.Hex()))
}

// HandleReceiveEvent dispatches a raw event arriving from a websocket
// client. Only SIGNED reports are expected upstream.
func (m *Manager) HandleReceiveEvent(event []byte) error {
	msg := string(event)
	m.logger.Printf("Received event: %s", msg)

	parts := strings.Split(msg, " ")
	switch parts[0] {
	case SIGNED_EVENT:
		m.recordSignature(parts[1:])
	default:
		return fmt.Errorf("unknown event type: %s", parts[0])
	}

	return nil
}

func (m *Manager) recordSignature(parts []string) {
	if len(parts) != 3 {
		m.logger.Printf("invalid signed event format, expected 3 parts, got %d", len(parts))
		return
	}

	schemaID, digest, signature := parts[0], parts[1], parts[2]

	entry, err := m.GetSchema(schemaID)
	if err != nil {
		m.logger.Printf("Error getting schema %s: %v", schemaID, err)
		return
	}

	entry.SigMutex.Lock()
	defer entry.SigMutex.Unlock()

	entry.Signatures.Signatures = append(entry.Signatures.Signatures, common.SignatureRecord{
		Digest:    digest,
		Signature: signature,
	})

	m.logger.Printf("Recorded signature for schema %s digest %s", schemaID, digest)
}
