package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailTracker_Success(t *testing.T) {
	var tr DetailTracker
	_, ticket := tr.Begin(context.Background(), "3")

	assert.Equal(t, DetailState{ID: "3", Status: DetailPending}, tr.State())

	settled, applied := tr.Complete(ticket, &Product{ID: 3, Title: "Bracelet"}, nil)
	require.True(t, applied)
	assert.Equal(t, settled, tr.State())

	state := tr.State()
	assert.Equal(t, DetailSuccess, state.Status)
	require.NotNil(t, state.Product)
	assert.Equal(t, "Bracelet", state.Product.Title)
	assert.Empty(t, state.Message)
}

func TestDetailTracker_Failure(t *testing.T) {
	var tr DetailTracker
	_, ticket := tr.Begin(context.Background(), "999")

	tr.Complete(ticket, nil, errors.New("boom"))

	state := tr.State()
	assert.Equal(t, DetailFailure, state.Status)
	assert.Equal(t, "Failed to fetch product details", state.Message)
	assert.Nil(t, state.Product)
}

func TestDetailTracker_NilProductIsFailure(t *testing.T) {
	var tr DetailTracker
	_, ticket := tr.Begin(context.Background(), "1")
	tr.Complete(ticket, nil, nil)

	assert.Equal(t, DetailFailure, tr.State().Status)
}

func TestDetailTracker_StaleResponseDropped(t *testing.T) {
	var tr DetailTracker
	oldCtx, oldTicket := tr.Begin(context.Background(), "1")
	_, newTicket := tr.Begin(context.Background(), "2")

	assert.ErrorIs(t, oldCtx.Err(), context.Canceled, "superseded fetch is cancelled")

	tr.Complete(newTicket, &Product{ID: 2, Title: "New"}, nil)
	own, applied := tr.Complete(oldTicket, &Product{ID: 1, Title: "Old"}, nil)

	assert.False(t, applied)
	assert.Equal(t, DetailState{ID: "1", Status: DetailPending}, own, "a stale fetch only ever reports its own id")
	state := tr.State()
	assert.Equal(t, "2", state.ID)
	assert.Equal(t, "New", state.Product.Title)
}

func TestDetailTracker_StaleResponseBeforeNewerSettles(t *testing.T) {
	var tr DetailTracker
	_, oldTicket := tr.Begin(context.Background(), "1")
	_, _ = tr.Begin(context.Background(), "2")

	own, applied := tr.Complete(oldTicket, &Product{ID: 1}, nil)

	assert.False(t, applied)
	assert.Equal(t, "1", own.ID)
	assert.Nil(t, own.Product)
	assert.Equal(t, DetailState{ID: "2", Status: DetailPending}, tr.State())
}

func TestDetailTracker_Stop(t *testing.T) {
	var tr DetailTracker
	ctx, _ := tr.Begin(context.Background(), "1")
	tr.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
