package role

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
)

// Controller manages role grants.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller using the default grant bucket.
func NewController() Controller {
	return Controller{bucket: NewGrantBucket()}
}

// Grant gives the role to the address. Granting an already held role fails
// with ErrDuplicate.
func (c Controller) Grant(db ledger.KVStore, role string, addr ledger.Address) error {
	key := GrantKey(role, addr)
	switch err := c.bucket.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s already has %q role", addr, role)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	_, err := c.bucket.Put(db, key, &Grant{Role: role, Address: addr})
	return err
}

// Revoke takes the role away from the address. The last admin cannot be
// revoked, otherwise grants could never be managed again.
func (c Controller) Revoke(db ledger.KVStore, role string, addr ledger.Address) error {
	key := GrantKey(role, addr)
	if err := c.bucket.Has(db, key); err != nil {
		return errors.Wrapf(err, "%s does not have %q role", addr, role)
	}
	if role == AdminRole {
		admins, err := c.Members(db, AdminRole)
		if err != nil {
			return err
		}
		if len(admins) == 1 {
			return errors.Wrap(errors.ErrInvalidState, "cannot revoke the last admin")
		}
	}
	return c.bucket.Delete(db, key)
}

// Has returns true if the address holds the role.
func (c Controller) Has(db ledger.ReadOnlyKVStore, role string, addr ledger.Address) (bool, error) {
	switch err := c.bucket.Has(db, GrantKey(role, addr)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Members returns all addresses holding the role.
func (c Controller) Members(db ledger.ReadOnlyKVStore, role string) ([]ledger.Address, error) {
	keys, err := c.bucket.ByIndex(db, roleIndex, []byte(role))
	if err != nil {
		return nil, err
	}
	addrs := make([]ledger.Address, 0, len(keys))
	for _, k := range keys {
		var g Grant
		if err := c.bucket.One(db, k, &g); err != nil {
			return nil, err
		}
		addrs = append(addrs, g.Address)
	}
	return addrs, nil
}

// Authorizer checks the roles of the authenticated conditions.
type Authorizer struct {
	auth x.Authenticator
	ctrl Controller
}

// NewAuthorizer returns an authorizer that resolves roles of the
// conditions returned by auth.
func NewAuthorizer(auth x.Authenticator, ctrl Controller) Authorizer {
	return Authorizer{auth: auth, ctrl: ctrl}
}

// IsAuthorized returns true if any of the authenticated conditions holds
// the role. Store failures deny the access.
func (a Authorizer) IsAuthorized(ctx ledger.Context, db ledger.ReadOnlyKVStore, role string) bool {
	for _, addr := range x.GetAddresses(ctx, a.auth) {
		ok, err := a.ctrl.Has(db, role, addr)
		if err != nil {
			ledger.GetLogger(ctx).Error("role lookup", "role", role, "err", err)
			return false
		}
		if ok {
			return true
		}
	}
	return false
}
