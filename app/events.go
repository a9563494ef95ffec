package app

import (
	"github.com/iov-one/ledger"
	"github.com/sasha-s/go-deadlock"
	"github.com/tendermint/tendermint/libs/log"
)

// EventSink receives all events emitted by successfully delivered
// messages.
type EventSink interface {
	Emit(ctx ledger.Context, path string, events []ledger.Event)
}

// LoggingSink writes every event as a single log line.
type LoggingSink struct {
	logger log.Logger
}

var _ EventSink = LoggingSink{}

// NewLoggingSink returns a sink that writes events to given logger.
func NewLoggingSink(logger log.Logger) LoggingSink {
	return LoggingSink{logger: logger.With("module", "events")}
}

func (s LoggingSink) Emit(ctx ledger.Context, path string, events []ledger.Event) {
	for _, e := range events {
		keyvals := make([]interface{}, 0, 4+2*len(e.Attributes))
		keyvals = append(keyvals, "path", path, "type", e.Type)
		for _, a := range e.Attributes {
			keyvals = append(keyvals, a.Key, a.Value)
		}
		s.logger.Info("event", keyvals...)
	}
}

// RecordingSink keeps all received events in memory.
type RecordingSink struct {
	mu     deadlock.Mutex
	events []ledger.Event
}

var _ EventSink = (*RecordingSink)(nil)

func (s *RecordingSink) Emit(ctx ledger.Context, path string, events []ledger.Event) {
	s.mu.Lock()
	s.events = append(s.events, events...)
	s.mu.Unlock()
}

// Events returns all events recorded so far.
func (s *RecordingSink) Events() []ledger.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Event(nil), s.events...)
}

// ByType returns recorded events of given type.
func (s *RecordingSink) ByType(typ string) []ledger.Event {
	var res []ledger.Event
	for _, e := range s.Events() {
		if e.Type == typ {
			res = append(res, e)
		}
	}
	return res
}

// MultiSink forwards events to all sinks.
type MultiSink []EventSink

func (m MultiSink) Emit(ctx ledger.Context, path string, events []ledger.Event) {
	for _, s := range m {
		s.Emit(ctx, path, events)
	}
}
