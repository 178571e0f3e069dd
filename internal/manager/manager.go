package manager

import (
	"fmt"
	"log"

	"typedsign/internal/common"

	"github.com/imkira/go-ttlmap"
)

// Manager owns the registered schema sessions and the broadcast channel the
// websocket feed drains. Sessions expire after SchemaTTL.
type Manager struct {
	schemas     *ttlmap.Map
	broadcaster *common.Broadcaster
	logger      *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	options := &ttlmap.Options{
		InitialCapacity: 32,
		OnWillExpire: func(key string, item ttlmap.Item) {
			logger.Printf("schema session expired: %s", key)
		},
		OnWillEvict: func(key string, item ttlmap.Item) {
			logger.Printf("schema session evicted: %s", key)
		},
	}

	return &Manager{
		schemas:     ttlmap.New(options),
		broadcaster: common.NewBroadcaster(),
		logger:      logger,
	}
}

func (m *Manager) SetSchema(entry *SchemaEntry) error {
	return m.schemas.Set(entry.SchemaID.String(), ttlmap.NewItem(entry, ttlmap.WithTTL(SchemaTTL)), nil)
}

func (m *Manager) GetSchema(schemaID string) (*SchemaEntry, error) {
	item, err := m.schemas.Get(schemaID)
	if err != nil {
		return nil, fmt.Errorf("schema not found: %s", schemaID)
	}

	entry := (item.Value()).(*SchemaEntry)
	if entry == nil {
		return nil, fmt.Errorf("invalid schema entry for ID: %s", schemaID)
	}

	return entry, nil
}

// Broadcast forwards a raw event to every websocket subscriber.
func (m *Manager) Broadcast(message []byte) {
	m.broadcaster.Broadcast(message)
}

func (m *Manager) RegisterReceiver(receiver chan []byte) uint64 {
	return m.broadcaster.RegisterReceiver(receiver)
}

func (m *Manager) UnregisterReceiver(id uint64) {
	m.broadcaster.UnregisterReceiver(id)
}

func (m *Manager) Close() {
	m.broadcaster.Close()
	m.schemas.Drain()
}
