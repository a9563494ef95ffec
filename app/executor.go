package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
	"github.com/sasha-s/go-deadlock"
)

// CacheStore is a store that can create isolated scratch pads of its
// state.
type CacheStore interface {
	CacheWrap() ledger.KVCacheWrap
}

// Executor applies messages one at a time. Each message is processed in
// its own cache wrap of the store, which is written back only if the
// message was delivered without an error. A failed message leaves no
// trace in the store.
type Executor struct {
	mu      deadlock.Mutex
	store   CacheStore
	handler ledger.Handler
	sink    EventSink
}

// NewExecutor returns an executor that dispatches all messages to given
// handler, usually a Router. sink may be nil.
func NewExecutor(store CacheStore, handler ledger.Handler, sink EventSink) *Executor {
	return &Executor{
		store:   store,
		handler: handler,
		sink:    sink,
	}
}

// Check runs the message check without changing the state.
func (e *Executor) Check(ctx ledger.Context, signers []ledger.Condition, msg ledger.Msg) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx = e.context(ctx, "check", signers, msg)
	cache := e.store.CacheWrap()
	defer cache.Discard()
	defer errors.Recover(&err)

	return e.handler.Check(ctx, cache, msg)
}

// Deliver processes the message and persists all changes it made if no
// error was returned.
func (e *Executor) Deliver(ctx ledger.Context, signers []ledger.Condition, msg ledger.Msg) (*ledger.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx = e.context(ctx, "deliver", signers, msg)
	logger := ledger.GetLogger(ctx)

	cache := e.store.CacheWrap()
	res, err := e.deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		logger.Error("message rejected", "err", err, "code", errors.Code(err))
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write state")
	}
	if res == nil {
		res = &ledger.DeliverResult{}
	}
	logger.Info("message delivered", "events", len(res.Events))
	if e.sink != nil && len(res.Events) > 0 {
		e.sink.Emit(ctx, msg.Path(), res.Events)
	}
	return res, nil
}

func (e *Executor) deliver(ctx ledger.Context, db ledger.KVStore, msg ledger.Msg) (res *ledger.DeliverResult, err error) {
	defer errors.Recover(&err)
	return e.handler.Deliver(ctx, db, msg)
}

func (e *Executor) context(ctx ledger.Context, call string, signers []ledger.Condition, msg ledger.Msg) ledger.Context {
	ctx = x.WithSigners(ctx, signers...)
	return ledger.WithLogInfo(ctx, "call", call, "path", msg.Path())
}
