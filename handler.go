package ledger

import (
	"encoding/json"
	"reflect"

	"github.com/iov-one/ledger/errors"
)

// Msg is a single instruction handled by one of the extensions. Each message
// knows which handler it belongs to and can verify its own consistency
// before any state is accessed.
type Msg interface {
	// Path returns the routing path for this message.
	Path() string

	// Validate performs a sanity check of the message content. It must not
	// access the database.
	Validate() error
}

// LoadMsg copies the content of msg into the destination, that must be a
// pointer to the same message type, and validates it.
func LoadMsg(msg Msg, destination interface{}) error {
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	src := reflect.ValueOf(msg)
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrInvalidType, "cannot load %T into %T", msg, destination)
	}
	dst.Elem().Set(src.Elem())
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// Handler is a core engine that can process a few specific messages.
// This could represent "issue a seat", or "claim revenue".
type Handler interface {
	// Check verifies that the message can be processed without
	// modifying the state in a way that is visible to others.
	Check(ctx Context, db KVStore, msg Msg) error

	// Deliver processes the message. Any returned error must be
	// treated as if none of the changes done to the store happened.
	Deliver(ctx Context, db KVStore, msg Msg) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(m Msg, h Handler)
}

// DeliverResult captures any non-error result of a message delivery.
type DeliverResult struct {
	// Data is a machine readable result of the operation, for example
	// the ID of a created entity.
	Data []byte
	// Log is a human readable information.
	Log string
	// Events contains all observations emitted while the message was
	// processed.
	Events []Event
}

// Event is an observation emitted by a state changing operation. Its
// attributes carry the key parameters of the operation.
type Event struct {
	Type       string
	Attributes []EventAttribute
}

// EventAttribute is a single key-value entry of an Event.
type EventAttribute struct {
	Key   string
	Value string
}

// NewEvent returns an event of a given type. Attributes are provided as key
// value pairs and must be of even length.
func NewEvent(typ string, keyvals ...string) Event {
	if len(keyvals)%2 != 0 {
		panic("event attributes must be key value pairs")
	}
	e := Event{Type: typ}
	for i := 0; i < len(keyvals); i += 2 {
		e.Attributes = append(e.Attributes, EventAttribute{Key: keyvals[i], Value: keyvals[i+1]})
	}
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Options are the app options.
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under the given key and returns a
// function that decodes the next element into given destination on each call.
// ErrEmpty is returned when all elements were consumed.
func (o Options) Stream(key string) (func(dst interface{}) error, error) {
	var raw []json.RawMessage
	if err := o.ReadOptions(key, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q elements", key)
	}
	return func(dst interface{}) error {
		if len(raw) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "all %q elements consumed", key)
		}
		next := raw[0]
		raw = raw[1:]
		if err := json.Unmarshal(next, dst); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "cannot decode %q element: %s", key, err)
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
