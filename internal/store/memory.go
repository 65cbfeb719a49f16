package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used for tests and single-node runs. It
// honors the same semantics as the Redis store: full-document overwrite,
// field-level merge, and change notification per path.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
	subs map[int]*subscription
	next int
}

type subscription struct {
	prefix string
	fn     func(changed string)
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]json.RawMessage),
		subs: make(map[int]*subscription),
	}
}

func (m *Memory) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *Memory) Set(ctx context.Context, path string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[path] = raw
	m.mu.Unlock()
	m.notify(path)
	return nil
}

func (m *Memory) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	m.mu.Lock()
	merged := map[string]json.RawMessage{}
	if raw, ok := m.docs[path]; ok {
		if err := json.Unmarshal(raw, &merged); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		merged[k] = raw
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.docs[path] = raw
	m.mu.Unlock()
	m.notify(path)
	return nil
}

func (m *Memory) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	delete(m.docs, path)
	prefix := path + "/"
	for p := range m.docs {
		if strings.HasPrefix(p, prefix) {
			delete(m.docs, p)
		}
	}
	m.mu.Unlock()
	m.notify(path)
	return nil
}

func (m *Memory) Push(ctx context.Context, path string, value interface{}) (string, error) {
	key := uuid.NewString()
	if err := m.Set(ctx, path+"/"+key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (m *Memory) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	prefix := path + "/"
	out := make(map[string]json.RawMessage)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for p, raw := range m.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		child := strings.TrimPrefix(p, prefix)
		if strings.Contains(child, "/") {
			continue
		}
		cp := make(json.RawMessage, len(raw))
		copy(cp, raw)
		out[child] = cp
	}
	return out, nil
}

func (m *Memory) Subscribe(path string, fn func(changed string)) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = &subscription{prefix: path, fn: fn}
	m.mu.Unlock()

	// Initial delivery with the current value, matching the replicated
	// store's subscribe contract.
	fn(path)

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// notify runs callbacks outside the lock so subscribers may call back
// into the store.
func (m *Memory) notify(changed string) {
	m.mu.RLock()
	var fns []func(string)
	for _, s := range m.subs {
		if pathMatches(s.prefix, changed) {
			fns = append(fns, s.fn)
		}
	}
	m.mu.RUnlock()
	for _, fn := range fns {
		fn(changed)
	}
}

// pathMatches reports whether a change at changed is visible to a
// subscription rooted at prefix. A subscription sees its own path, any
// descendant, and any ancestor (an ancestor Remove wipes the subtree).
func pathMatches(prefix, changed string) bool {
	if prefix == "" || prefix == changed {
		return true
	}
	if strings.HasPrefix(changed, prefix+"/") {
		return true
	}
	return strings.HasPrefix(prefix, changed+"/")
}
