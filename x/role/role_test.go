package role

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

func TestController(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := counciltest.NewCondition().Address()
	bob := counciltest.NewCondition().Address()

	assert.Nil(t, ctrl.Grant(db, AdminRole, alice))
	assert.IsErr(t, errors.ErrDuplicate, ctrl.Grant(db, AdminRole, alice))
	assert.IsErr(t, errors.ErrInvalidInput, ctrl.Grant(db, "Bad Role", alice))
	assert.Nil(t, ctrl.Grant(db, "governance", bob))

	ok, err := ctrl.Has(db, "governance", bob)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	ok, err = ctrl.Has(db, "governance", alice)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	admins, err := ctrl.Members(db, AdminRole)
	assert.Nil(t, err)
	assert.Equal(t, []ledger.Address{alice}, admins)

	assert.IsErr(t, errors.ErrInvalidState, ctrl.Revoke(db, AdminRole, alice))
	assert.IsErr(t, errors.ErrNotFound, ctrl.Revoke(db, "support", alice))

	assert.Nil(t, ctrl.Grant(db, AdminRole, bob))
	assert.Nil(t, ctrl.Revoke(db, AdminRole, alice))
	admins, err = ctrl.Members(db, AdminRole)
	assert.Nil(t, err)
	assert.Equal(t, []ledger.Address{bob}, admins)
}

func TestAuthorizer(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	gov := counciltest.NewCondition()
	other := counciltest.NewCondition()
	assert.Nil(t, ctrl.Grant(db, "governance", gov.Address()))

	cases := map[string]struct {
		auth *counciltest.Auth
		role string
		want bool
	}{
		"role holder": {
			auth: &counciltest.Auth{Signer: gov},
			role: "governance",
			want: true,
		},
		"one of many signers": {
			auth: &counciltest.Auth{Signers: []ledger.Condition{other, gov}},
			role: "governance",
			want: true,
		},
		"other role": {
			auth: &counciltest.Auth{Signer: gov},
			role: "support",
		},
		"not a role holder": {
			auth: &counciltest.Auth{Signer: other},
			role: "governance",
		},
		"no signers": {
			auth: &counciltest.Auth{},
			role: "governance",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := NewAuthorizer(tc.auth, ctrl).IsAuthorized(context.Background(), db, tc.role)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandlers(t *testing.T) {
	admin := counciltest.NewCondition()
	other := counciltest.NewCondition()

	cases := map[string]struct {
		signer    ledger.Condition
		msg       ledger.Msg
		wantErr   *errors.Error
		wantEvent string
		wantGov   bool
	}{
		"admin grants": {
			signer:    admin,
			msg:       &GrantMsg{Role: "governance", Address: other.Address()},
			wantEvent: "role-granted",
			wantGov:   true,
		},
		"non admin cannot grant": {
			signer:  other,
			msg:     &GrantMsg{Role: "governance", Address: other.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid role name": {
			signer:  admin,
			msg:     &GrantMsg{Role: "x", Address: other.Address()},
			wantErr: errors.ErrInvalidInput,
		},
		"admin revokes": {
			signer:    admin,
			msg:       &RevokeMsg{Role: "support", Address: admin.Address()},
			wantEvent: "role-revoked",
		},
		"revoke missing grant": {
			signer:  admin,
			msg:     &RevokeMsg{Role: "governance", Address: other.Address()},
			wantErr: errors.ErrNotFound,
		},
		"last admin stays": {
			signer:  admin,
			msg:     &RevokeMsg{Role: AdminRole, Address: admin.Address()},
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Grant(db, AdminRole, admin.Address()))
			assert.Nil(t, ctrl.Grant(db, "support", admin.Address()))

			r := app.NewRouter()
			RegisterRoutes(r, NewAuthorizer(&counciltest.Auth{Signer: tc.signer}, ctrl))
			ctx := context.Background()

			res, err := r.Deliver(ctx, db, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantEvent, res.Events[0].Type)
			}
			ok, err := ctrl.Has(db, "governance", other.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantGov, ok)
		})
	}
}

func TestGenesis(t *testing.T) {
	alice := counciltest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantGov bool
	}{
		"no grants": {
			genesis: `{}`,
		},
		"governance grant": {
			genesis: `{"role": [{"role": "governance", "address": "` + alice.String() + `"}]}`,
			wantGov: true,
		},
		"duplicated grant": {
			genesis: `{"role": [
				{"role": "governance", "address": "` + alice.String() + `"},
				{"role": "governance", "address": "` + alice.String() + `"}
			]}`,
			wantErr: errors.ErrDuplicate,
		},
		"invalid address": {
			genesis: `{"role": [{"role": "governance", "address": ""}]}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if err != nil {
				return
			}
			ok, err := NewController().Has(db, "governance", alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantGov, ok)
		})
	}
}
