package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/stateflow"
	"github.com/comalice/stateflow/testutil"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan stateflow.TransitionRecord, 10)
	p := NewChannelPublisher(ch)

	rec := stateflow.TransitionRecord{
		ID:        uuid.New(),
		MachineID: "test-machine",
		From:      stateflow.ID(1),
		To:        stateflow.ID(2),
		Event:     7,
		Timestamp: time.Now(),
	}
	require.NoError(t, p.Publish(context.Background(), rec))

	select {
	case got := <-ch:
		assert.Equal(t, rec, got)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no record delivered")
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan stateflow.TransitionRecord, 1)
	p := NewChannelPublisher(ch)
	ch <- stateflow.TransitionRecord{} // Fill buffer

	assert.NoError(t, p.Publish(context.Background(), stateflow.TransitionRecord{MachineID: "drop"}))
	assert.Equal(t, uint64(1), p.Dropped())
}

func TestChannelPublisher_CancelledContext(t *testing.T) {
	p := NewChannelPublisher(make(chan stateflow.TransitionRecord))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// An unbuffered channel with no reader leaves only ctx.Done ready.
	assert.ErrorIs(t, p.Publish(ctx, stateflow.TransitionRecord{}), context.Canceled)
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan stateflow.TransitionRecord, 1)
	p := NewChannelPublisher(ch)
	require.NoError(t, p.Close())
	_, ok := <-ch
	assert.False(t, ok)
}

func TestChannelPublisher_Integration(t *testing.T) {
	ch := make(chan stateflow.TransitionRecord, 10)
	m, err := stateflow.New(testutil.NewState(1, nil),
		stateflow.WithMachineID("pub"),
		stateflow.WithPublisher(NewChannelPublisher(ch)),
	)
	require.NoError(t, err)
	require.NoError(t, m.RegisterState(testutil.NewState(2, nil)))
	require.NoError(t, m.AddTransition(stateflow.Any, 3, stateflow.ID(2)))

	ctx := context.Background()
	require.NoError(t, m.ProcessEvent(ctx, 3))
	require.NoError(t, m.ProcessEvent(ctx, 3))
	require.NoError(t, m.ProcessEvent(ctx, 4))

	require.Len(t, ch, 2)
	first, second := <-ch, <-ch
	assert.Equal(t, stateflow.ID(1), first.From)
	assert.Equal(t, stateflow.ID(2), second.From)
	assert.Equal(t, "pub", second.MachineID)
	assert.NotEqual(t, first.ID, second.ID)
}
