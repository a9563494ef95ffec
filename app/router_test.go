package app

import (
	"context"
	"testing"

	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	h := &writeHandler{}
	r.Handle(&testMsg{}, h)

	assert.Panics(t, func() { r.Handle(&testMsg{}, h) })
	assert.Panics(t, func() { r.Handle(&badPathMsg{}, h) })

	db := store.MemStore()
	ctx := context.Background()
	res, err := r.Deliver(ctx, db, &testMsg{Key: "a", Value: "1"})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Events))
	assert.Equal(t, 1, h.calls)

	_, err = r.Deliver(ctx, db, &otherMsg{})
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.IsErr(t, errors.ErrNotFound, r.Check(ctx, db, &otherMsg{}))

	msg, err := r.NewMsg("test/write")
	assert.Nil(t, err)
	if _, ok := msg.(*testMsg); !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	_, err = r.NewMsg("other/path")
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, []string{"test/write"}, r.Paths())
}

type badPathMsg struct{}

func (badPathMsg) Path() string    { return "bad path!" }
func (badPathMsg) Validate() error { return nil }

type otherMsg struct{}

func (otherMsg) Path() string    { return "other/path" }
func (otherMsg) Validate() error { return nil }
