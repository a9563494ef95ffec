package app

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]ledger.Handler
	protos map[string]reflect.Type
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 10),
		protos: make(map[string]reflect.Type, 10),
	}
}

// Handle adds a new Handler for the given message type.
//
// Panics on duplicate or invalid path.
func (r *Router) Handle(msg ledger.Msg, h ledger.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("message %s must be registered as a pointer", path))
	}
	r.routes[path] = h
	r.protos[path] = t.Elem()
}

// Handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler
// Always returns a non-nil Handler
func (r *Router) Handler(path string) ledger.Handler {
	h, ok := r.routes[path]
	if !ok {
		return notFoundHandler(path)
	}
	return h
}

// NewMsg returns a new, empty message instance registered under given path.
// It is used to decode messages from their serialized form.
func (r *Router) NewMsg(path string) (ledger.Msg, error) {
	t, ok := r.protos[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message registered for %q", path)
	}
	return reflect.New(t).Interface().(ledger.Msg), nil
}

// Paths returns all registered message paths.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx ledger.Context, db ledger.KVStore, msg ledger.Msg) error {
	return r.Handler(msg.Path()).Check(ctx, db, msg)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx ledger.Context, db ledger.KVStore, msg ledger.Msg) (*ledger.DeliverResult, error) {
	return r.Handler(msg.Path()).Deliver(ctx, db, msg)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(ledger.Context, ledger.KVStore, ledger.Msg) error {
	return errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}

func (path notFoundHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Msg) (*ledger.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}
