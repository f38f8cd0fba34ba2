package mailbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_LatestWins(t *testing.T) {
	mb := New[string]()
	mb.Put("a.txt")
	mb.Put("b.txt")

	v := mb.TryTake()
	require.NotNil(t, v)
	assert.Equal(t, "b.txt", *v)

	assert.Nil(t, mb.TryTake())
}

func TestMailbox_ReadySignalled(t *testing.T) {
	mb := New[int]()
	mb.Put(1)
	mb.Put(2)

	select {
	case <-mb.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready not signalled")
	}

	// Repeated puts coalesce into one signal.
	select {
	case <-mb.Ready():
		t.Fatal("unexpected second signal")
	default:
	}
}

func TestMailbox_TryTakeClearsPendingSignal(t *testing.T) {
	mb := New[int]()
	mb.Put(1)
	<-mb.Ready()

	// A put after the wake-up refills the signal; taking the item must drain it.
	mb.Put(2)
	v := mb.TryTake()
	require.NotNil(t, v)
	assert.Equal(t, 2, *v)

	select {
	case <-mb.Ready():
		t.Fatal("stale signal left after TryTake")
	default:
	}
}

func TestMailbox_PutAfterTakeSignalsAgain(t *testing.T) {
	mb := New[int]()
	mb.Put(1)
	mb.TryTake()
	mb.Put(2)

	select {
	case <-mb.Ready():
	default:
		t.Fatal("ready not signalled for new item")
	}
}
