package splitio

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
)

// MemProvider holds named blobs in memory. With EOFOnSeekToEnd set its
// streams reject a seek to the exact end of a blob, like some object-store
// clients do. Open and Close calls are counted so callers can check that
// every stream is released.
type MemProvider struct {
	EOFOnSeekToEnd bool

	mu    sync.RWMutex
	blobs map[string][]byte

	opened atomic.Int64
	closed atomic.Int64
}

// NewMemProvider returns an empty provider.
func NewMemProvider() *MemProvider {
	return &MemProvider{blobs: make(map[string][]byte)}
}

// Put stores data under name, replacing any previous blob.
func (m *MemProvider) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[name] = data
}

func (m *MemProvider) get(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b, nil
}

func (m *MemProvider) Open(name string) (Stream, error) {
	b, err := m.get(name)
	if err != nil {
		return nil, err
	}
	m.opened.Add(1)
	return newSectionStream(bytes.NewReader(b), int64(len(b)), closeFunc(func() error {
		m.closed.Add(1)
		return nil
	}), m.EOFOnSeekToEnd), nil
}

func (m *MemProvider) Size(name string) (int64, error) {
	b, err := m.get(name)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// OpenStreams reports how many streams are open and not yet closed.
func (m *MemProvider) OpenStreams() int64 { return m.opened.Load() - m.closed.Load() }

type closeFunc func() error

func (f closeFunc) Close() error { return f() }
