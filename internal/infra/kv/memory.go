package kv

import (
	"context"
	"errors"
	"path"
	"strconv"
	"sync"
	"time"
)

var errWrongType = errors.New("kv: operation against a key holding the wrong kind of value")

// Memory is an in-process Store. Expired keys are removed lazily on access.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	strings map[string]string
	lists   map[string][]string
	hashes  map[string]map[string]string
	expiry  map[string]time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithNow overrides the clock used for expiry.
func WithNow(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		now:     time.Now,
		strings: make(map[string]string),
		lists:   make(map[string][]string),
		hashes:  make(map[string]map[string]string),
		expiry:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// expire drops key if its deadline has passed. Caller holds mu.
func (m *Memory) expire(key string) {
	if deadline, ok := m.expiry[key]; ok && !m.now().Before(deadline) {
		m.delete(key)
	}
}

// delete removes key of any kind. Caller holds mu.
func (m *Memory) delete(key string) {
	delete(m.strings, key)
	delete(m.lists, key)
	delete(m.hashes, key)
	delete(m.expiry, key)
}

// exists reports whether key holds any value. Caller holds mu.
func (m *Memory) exists(key string) bool {
	if _, ok := m.strings[key]; ok {
		return true
	}
	if _, ok := m.lists[key]; ok {
		return true
	}
	_, ok := m.hashes[key]
	return ok
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if _, ok := m.lists[key]; ok {
		return "", false, errWrongType
	}
	if _, ok := m.hashes[key]; ok {
		return "", false, errWrongType
	}
	v, ok := m.strings[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.delete(key)
	m.strings[key] = value
	if ttl > 0 {
		m.expiry[key] = m.now().Add(ttl)
	}
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		m.delete(key)
	}
	return nil
}

func (m *Memory) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if _, ok := m.lists[key]; ok {
		return 0, errWrongType
	}
	if _, ok := m.hashes[key]; ok {
		return 0, errWrongType
	}

	var n int64
	if raw, ok := m.strings[key]; ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		n = parsed
	}
	n++
	m.strings[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *Memory) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if !m.exists(key) {
		return nil
	}
	if ttl <= 0 {
		m.delete(key)
		return nil
	}
	m.expiry[key] = m.now().Add(ttl)
	return nil
}

func (m *Memory) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if !m.exists(key) {
		return -2, nil
	}
	deadline, ok := m.expiry[key]
	if !ok {
		return -1, nil
	}
	return deadline.Sub(m.now()), nil
}

func (m *Memory) LPush(_ context.Context, key string, values ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if _, ok := m.strings[key]; ok {
		return errWrongType
	}
	if _, ok := m.hashes[key]; ok {
		return errWrongType
	}

	list := m.lists[key]
	for _, v := range values {
		list = append([]string{v}, list...)
	}
	m.lists[key] = list
	return nil
}

// LRange follows Redis semantics: negative indexes count from the end and
// out-of-range bounds are clamped.
func (m *Memory) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if _, ok := m.strings[key]; ok {
		return nil, errWrongType
	}

	list := m.lists[key]
	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop {
		return []string{}, nil
	}

	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out, nil
}

func (m *Memory) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	if _, ok := m.strings[key]; ok {
		return errWrongType
	}

	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expire(key)
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for key := range m.keySet() {
		m.expire(key)
		if !m.exists(key) {
			continue
		}
		ok, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// keySet snapshots every key of every kind. Caller holds mu.
func (m *Memory) keySet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.strings)+len(m.lists)+len(m.hashes))
	for k := range m.strings {
		set[k] = struct{}{}
	}
	for k := range m.lists {
		set[k] = struct{}{}
	}
	for k := range m.hashes {
		set[k] = struct{}{}
	}
	return set
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
