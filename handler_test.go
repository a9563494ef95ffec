package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string
}

func (m *pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type pongMsg struct{}

func (pongMsg) Path() string    { return "test/pong" }
func (pongMsg) Validate() error { return nil }

func TestLoadMsg(t *testing.T) {
	var dst pingMsg
	require.NoError(t, ledger.LoadMsg(&pingMsg{Text: "hi"}, &dst))
	assert.Equal(t, "hi", dst.Text)

	err := ledger.LoadMsg(&pingMsg{}, &dst)
	assert.True(t, errors.ErrEmpty.Is(err))

	err = ledger.LoadMsg(pongMsg{}, &dst)
	assert.True(t, errors.ErrInvalidType.Is(err))

	err = ledger.LoadMsg(nil, &dst)
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestEvent(t *testing.T) {
	e := ledger.NewEvent("seat-created", "seat", "1", "owner", "AB")
	v, ok := e.Attr("owner")
	assert.True(t, ok)
	assert.Equal(t, "AB", v)
	_, ok = e.Attr("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { ledger.NewEvent("broken", "key") })
}

func TestOptionsStream(t *testing.T) {
	opts := ledger.Options{
		"items": json.RawMessage(`[{"text": "a"}, {"text": "b"}]`),
		"bad":   json.RawMessage(`{"text": "a"}`),
	}

	next, err := opts.Stream("items")
	require.NoError(t, err)
	var got []string
	for {
		var m pingMsg
		err := next(&m)
		if errors.ErrEmpty.Is(err) {
			break
		}
		require.NoError(t, err)
		got = append(got, m.Text)
	}
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = opts.Stream("missing")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = opts.Stream("bad")
	assert.True(t, errors.ErrInvalidInput.Is(err))

	var m pingMsg
	require.NoError(t, opts.ReadOptions("missing", &m))
	assert.True(t, errors.ErrInvalidInput.Is(opts.ReadOptions("items", &m)))
}
