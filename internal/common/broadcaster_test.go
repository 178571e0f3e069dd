package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesAllReceivers(t *testing.T) {
	b := NewBroadcaster()

	first := make(chan []byte, 1)
	second := make(chan []byte, 1)
	b.RegisterReceiver(first)
	b.RegisterReceiver(second)
	require.Equal(t, 2, b.Receivers())

	b.Broadcast([]byte("hello"))

	for _, ch := range []chan []byte{first, second} {
		select {
		case msg := <-ch:
			require.Equal(t, []byte("hello"), msg)
		case <-time.After(time.Second):
			t.Fatal("receiver did not get the message")
		}
	}
}

func TestBroadcastSkipsFullReceivers(t *testing.T) {
	b := NewBroadcaster()

	full := make(chan []byte) // unbuffered, nobody reading
	open := make(chan []byte, 1)
	b.RegisterReceiver(full)
	b.RegisterReceiver(open)

	b.Broadcast([]byte("hello"))

	select {
	case msg := <-open:
		require.Equal(t, []byte("hello"), msg)
	case <-time.After(time.Second):
		t.Fatal("open receiver did not get the message")
	}
}

func TestUnregisterClosesChannel(t *testing.T) {
	b := NewBroadcaster()

	ch := make(chan []byte, 1)
	id := b.RegisterReceiver(ch)
	b.UnregisterReceiver(id)

	_, ok := <-ch
	require.False(t, ok)
	require.Equal(t, 0, b.Receivers())

	// Double unregister is a no-op.
	b.UnregisterReceiver(id)
}

func TestCloseDrainsEverything(t *testing.T) {
	b := NewBroadcaster()

	first := make(chan []byte, 1)
	second := make(chan []byte, 1)
	b.RegisterReceiver(first)
	b.RegisterReceiver(second)

	b.Close()

	_, ok := <-first
	require.False(t, ok)
	_, ok = <-second
	require.False(t, ok)
	require.Equal(t, 0, b.Receivers())
}
