package store

// SliceIterator iterates over an in-memory list of models.
type SliceIterator struct {
	data []Model
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over data, which must already be
// sorted in the iteration order.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return len(s.data) > 0
}

// Next panics when the iterator is exhausted.
func (s *SliceIterator) Next() error {
	s.current()
	s.data = s.data[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if len(s.data) == 0 {
		panic("iterator exhausted")
	}
	return s.data[0]
}

// EmptyKVStore holds no data and ignores all writes. It is the base layer
// of the in-memory store.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error)  { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)    { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error         { return nil }
func (e EmptyKVStore) NewBatch() Batch           { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failing write leaves the previous ones applied, so it must only be used
// on top of stores that are themselves discarded on failure.
type NonAtomicBatch struct {
	out SetDeleter
	ops []func(SetDeleter) error
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, func(db SetDeleter) error { return db.Set(key, value) })
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, func(db SetDeleter) error { return db.Delete(key) })
	return nil
}

// Write applies all recorded operations and clears the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}
