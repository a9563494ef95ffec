package role

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, authz Authorizer) {
	r.Handle(&GrantMsg{}, &grantHandler{authz: authz})
	r.Handle(&RevokeMsg{}, &revokeHandler{authz: authz})
}

type grantHandler struct {
	authz Authorizer
}

var _ ledger.Handler = (*grantHandler)(nil)

func (h *grantHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h *grantHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.authz.ctrl.Grant(db, msg.Role, msg.Address); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Events: []ledger.Event{
			ledger.NewEvent("role-granted", "role", msg.Role, "address", msg.Address.String()),
		},
	}, nil
}

func (h *grantHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*GrantMsg, error) {
	var msg GrantMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.authz.IsAuthorized(ctx, db, AdminRole) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin role required")
	}
	return &msg, nil
}

type revokeHandler struct {
	authz Authorizer
}

var _ ledger.Handler = (*revokeHandler)(nil)

func (h *revokeHandler) Check(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) error {
	_, err := h.validate(ctx, db, m)
	return err
}

func (h *revokeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	if err := h.authz.ctrl.Revoke(db, msg.Role, msg.Address); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Events: []ledger.Event{
			ledger.NewEvent("role-revoked", "role", msg.Role, "address", msg.Address.String()),
		},
	}, nil
}

func (h *revokeHandler) validate(ctx ledger.Context, db ledger.KVStore, m ledger.Msg) (*RevokeMsg, error) {
	var msg RevokeMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.authz.IsAuthorized(ctx, db, AdminRole) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin role required")
	}
	return &msg, nil
}
