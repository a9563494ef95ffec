package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

type testConf struct {
	Owner ledger.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Limit uint64         `protobuf:"varint,2,opt,name=limit,proto3" json:"limit,omitempty"`
	Label string         `protobuf:"bytes,3,opt,name=label,proto3" json:"label,omitempty"`
}

func (m *testConf) Reset()         { *m = testConf{} }
func (m *testConf) String() string { return proto.CompactTextString(m) }
func (*testConf) ProtoMessage()    {}

func (m *testConf) Validate() error {
	return errors.Field("Owner", m.Owner.Validate(), "invalid owner")
}

func TestSaveLoad(t *testing.T) {
	owner := counciltest.NewCondition().Address()

	cases := map[string]struct {
		Conf        *testConf
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid configuration": {
			Conf: &testConf{Owner: owner, Limit: 7, Label: "council"},
		},
		"invalid address cannot be saved": {
			Conf:        &testConf{Owner: ledger.Address("too short")},
			WantSaveErr: errors.ErrInvalidInput,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "pkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got testConf
			if err := Load(db, "pkg", &got); !tc.WantLoadErr.Is(err) {
				t.Fatalf("unexpected load error: %s", err)
			}
			if tc.WantLoadErr == nil {
				assert.Equal(t, tc.Conf, &got)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := counciltest.NewCondition().Address()
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"pkg": map[string]interface{}{
				"owner": owner.String(),
				"limit": 3,
			},
		},
	})
	assert.Nil(t, err)
	var opts ledger.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "pkg", &testConf{}))

	var got testConf
	assert.Nil(t, Load(db, "pkg", &got))
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, uint64(3), got.Limit)

	err = InitConfig(db, opts, "other", &testConf{})
	assert.IsErr(t, errors.ErrNotFound, err)
}
