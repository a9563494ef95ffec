package asset

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, m)
	return err
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount.Ticker, msg.Amount.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{
		Events: []ledger.Event{
			ledger.NewEvent("transfer",
				"source", msg.Source.String(),
				"destination", msg.Destination.String(),
				"amount", msg.Amount.String()),
		},
	}
	return res, nil
}

func (h SendHandler) validate(ctx ledger.Context, m ledger.Msg) (*SendMsg, error) {
	var msg SendMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
