package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

type testMsg struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (testMsg) Path() string { return "test/write" }

func (m *testMsg) Validate() error {
	if m.Key == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

// writeHandler writes the message key and value to the store before
// returning the configured error, or panicking if requested.
type writeHandler struct {
	err   error
	panic bool
	calls int
}

func (h *writeHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.Deliver(ctx, db, m)
	return err
}

func (h *writeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	h.calls++
	var msg testMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, err
	}
	if err := db.Set([]byte(msg.Key), []byte(msg.Value)); err != nil {
		return nil, err
	}
	if h.panic {
		panic("boom")
	}
	if h.err != nil {
		return nil, h.err
	}
	return &ledger.DeliverResult{
		Events: []ledger.Event{ledger.NewEvent("written", "key", msg.Key)},
	}, nil
}
