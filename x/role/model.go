package role

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// AdminRole is required to manage grants.
const AdminRole = "admin"

var isRoleName = regexp.MustCompile(`^[a-z][a-z_]{2,31}$`).MatchString

// ValidateName returns an error if the role name is not well formed.
func ValidateName(name string) error {
	if !isRoleName(name) {
		return errors.Wrapf(errors.ErrInvalidInput, "role name %q", name)
	}
	return nil
}

// Grant binds a role to an address.
type Grant struct {
	Role    string         `protobuf:"bytes,1,opt,name=role,proto3" json:"role"`
	Address ledger.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address"`
}

var _ orm.Model = (*Grant)(nil)

func (m *Grant) Reset()         { *m = Grant{} }
func (m *Grant) String() string { return proto.CompactTextString(m) }
func (*Grant) ProtoMessage()    {}

func (m *Grant) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", ValidateName(m.Role))
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

// GrantKey returns the primary key of the grant of role to addr.
func GrantKey(role string, addr ledger.Address) []byte {
	key := make([]byte, 0, len(role)+1+len(addr))
	key = append(key, role...)
	key = append(key, ':')
	return append(key, addr...)
}

const roleIndex = "role"

func roleIndexer(obj orm.Object) ([]byte, error) {
	g, ok := obj.Value().(*Grant)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return []byte(g.Role), nil
}

// NewGrantBucket returns a bucket for storing grants, indexed by the role
// name.
func NewGrantBucket() orm.ModelBucket {
	return orm.NewModelBucket("grant", &Grant{},
		orm.WithIndex(roleIndex, roleIndexer, false))
}
