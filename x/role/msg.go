package role

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// GrantMsg gives the role to the address.
type GrantMsg struct {
	Role    string         `protobuf:"bytes,1,opt,name=role,proto3" json:"role"`
	Address ledger.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address"`
}

var _ ledger.Msg = (*GrantMsg)(nil)

func (m *GrantMsg) Reset()         { *m = GrantMsg{} }
func (m *GrantMsg) String() string { return proto.CompactTextString(m) }
func (*GrantMsg) ProtoMessage()    {}

func (GrantMsg) Path() string {
	return "role/grant"
}

func (m *GrantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", ValidateName(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

// RevokeMsg takes the role away from the address.
type RevokeMsg struct {
	Role    string         `protobuf:"bytes,1,opt,name=role,proto3" json:"role"`
	Address ledger.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address"`
}

var _ ledger.Msg = (*RevokeMsg)(nil)

func (m *RevokeMsg) Reset()         { *m = RevokeMsg{} }
func (m *RevokeMsg) String() string { return proto.CompactTextString(m) }
func (*RevokeMsg) ProtoMessage()    {}

func (RevokeMsg) Path() string {
	return "role/revoke"
}

func (m *RevokeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", ValidateName(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}
