// Package cache implements a process-wide, concurrency-safe read-through
// cache: at most one miss per blob identity triggers a backing read,
// concurrent requests for the same key await that read's result, and a
// remote backend is disabled after a run of consecutive failures. No
// third-party single-flight or cache library fit this without pulling in
// a distributed-cache client this module has no backend for, so this is a
// deliberate stdlib (sync.Mutex + map) implementation.
package cache

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Backend is the minimal contract a concrete cache storage (memory,
// memcached, distributed KV) must satisfy.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Loader fetches the value for key on a cache miss.
type Loader func(key string) ([]byte, error)

// ReadThrough wraps a Backend with single-flight deduplication of
// concurrent misses and a consecutive-failure circuit breaker.
type ReadThrough struct {
	backend Backend
	maxFail int
	log     *logrus.Entry

	mu       sync.Mutex
	inflight map[string]*call
	fails    int
	disabled bool
}

type call struct {
	wg    sync.WaitGroup
	value []byte
	err   error
}

// NewReadThrough wraps backend. maxConsecutiveFailures <= 0 uses the
// default of 10.
func NewReadThrough(backend Backend, maxConsecutiveFailures int, log *logrus.Entry) *ReadThrough {
	if maxConsecutiveFailures <= 0 {
		maxConsecutiveFailures = 10
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ReadThrough{
		backend:  backend,
		maxFail:  maxConsecutiveFailures,
		log:      log,
		inflight: make(map[string]*call),
	}
}

// Get returns the cached value for key, invoking load on a miss. If the
// backend has been disabled by the failure circuit breaker, load is called
// directly without consulting or populating the backend.
func (r *ReadThrough) Get(key string, load Loader) ([]byte, error) {
	r.mu.Lock()
	if r.disabled {
		r.mu.Unlock()
		return load(key)
	}
	if v, ok := r.backend.Get(key); ok {
		r.mu.Unlock()
		return v, nil
	}
	if c, ok := r.inflight[key]; ok {
		r.mu.Unlock()
		c.wg.Wait()
		return c.value, c.err
	}

	c := &call{}
	c.wg.Add(1)
	r.inflight[key] = c
	r.mu.Unlock()

	v, err := load(key)
	c.value, c.err = v, err
	c.wg.Done()

	r.mu.Lock()
	delete(r.inflight, key)
	if err != nil {
		r.fails++
		if r.fails >= r.maxFail {
			r.disabled = true
			r.log.WithField("consecutive_failures", r.fails).Warn("remote cache disabled after repeated failures")
		}
	} else {
		r.fails = 0
		r.backend.Set(key, v)
	}
	r.mu.Unlock()

	return v, err
}

// Disabled reports whether the circuit breaker has tripped.
func (r *ReadThrough) Disabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled
}

// MemoryBackend is a trivial in-process Backend, used for the built-in
// connector and in tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryBackend) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
