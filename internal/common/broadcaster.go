package common

import "sync"

// Broadcaster fans messages out to every registered receiver channel.
// Receivers that cannot keep up are skipped rather than blocking the
// producer.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    uint64
	receivers map[uint64]chan []byte
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		receivers: make(map[uint64]chan []byte),
	}
}

// RegisterReceiver adds a channel to the fan-out set and returns its handle
// for later removal.
func (b *Broadcaster) RegisterReceiver(receiver chan []byte) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.receivers[id] = receiver
	b.nextID++

	return id
}

// UnregisterReceiver removes and closes the channel registered under id.
func (b *Broadcaster) UnregisterReceiver(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if receiver, exists := b.receivers[id]; exists {
		close(receiver)
		delete(b.receivers, id)
	}
}

// Broadcast delivers message to every receiver that has channel capacity.
func (b *Broadcaster) Broadcast(message []byte) {
	go func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for _, receiver := range b.receivers {
			select {
			case receiver <- message:
			default:
				// Full channel: drop for this receiver instead of
				// stalling every other one.
			}
		}
	}()
}

// Receivers reports how many subscribers are currently registered.
func (b *Broadcaster) Receivers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.receivers)
}

// Close shuts every receiver channel and empties the set.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, receiver := range b.receivers {
		close(receiver)
		delete(b.receivers, id)
	}

	b.nextID = 0
}
