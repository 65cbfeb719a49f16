package store

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "slimste:"
	changeChannel = "slimste:changes"
)

// Redis is a Store backed by a Redis instance. Documents are JSON strings
// under slimste:<path>; every mutation publishes the changed path on a
// pub/sub channel so other processes' subscribers observe it.
type Redis struct {
	client *redis.Client

	mu   sync.RWMutex
	subs map[int]*subscription
	next int

	cancel context.CancelFunc
}

// NewRedis creates a Redis-backed store and starts its change listener
func NewRedis(client *redis.Client) *Redis {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Redis{
		client: client,
		subs:   make(map[int]*subscription),
		cancel: cancel,
	}
	go r.listen(ctx)
	return r
}

// Close stops the change listener
func (r *Redis) Close() {
	r.cancel()
}

func (r *Redis) key(path string) string {
	return keyPrefix + path
}

func (r *Redis) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	data, err := r.client.Get(ctx, r.key(path)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), out)
}

func (r *Redis) Set(ctx context.Context, path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(path), data, 0).Err(); err != nil {
		return err
	}
	return r.publish(ctx, path)
}

func (r *Redis) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	// Read-merge-write; last writer wins per path, which is the store's
	// documented consistency level.
	merged := map[string]json.RawMessage{}
	data, err := r.client.Get(ctx, r.key(path)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if err == nil {
		if err := json.Unmarshal([]byte(data), &merged); err != nil {
			return err
		}
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		merged[k] = raw
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(path), out, 0).Err(); err != nil {
		return err
	}
	return r.publish(ctx, path)
}

func (r *Redis) Remove(ctx context.Context, path string) error {
	keys := []string{r.key(path)}
	iter := r.client.Scan(ctx, 0, r.key(path)+"/*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return r.publish(ctx, path)
}

func (r *Redis) Push(ctx context.Context, path string, value interface{}) (string, error) {
	key := uuid.NewString()
	if err := r.Set(ctx, path+"/"+key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (r *Redis) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	prefix := r.key(path) + "/"
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		k := iter.Val()
		child := strings.TrimPrefix(k, prefix)
		if strings.Contains(child, "/") {
			continue
		}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[strings.TrimPrefix(keys[i], prefix)] = json.RawMessage(s)
	}
	return out, nil
}

func (r *Redis) Subscribe(path string, fn func(changed string)) func() {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = &subscription{prefix: path, fn: fn}
	r.mu.Unlock()

	fn(path)

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

func (r *Redis) publish(ctx context.Context, path string) error {
	return r.client.Publish(ctx, changeChannel, path).Err()
}

func (r *Redis) listen(ctx context.Context) {
	pubsub := r.client.Subscribe(ctx, changeChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.dispatch(msg.Payload)
		}
	}
}

func (r *Redis) dispatch(changed string) {
	r.mu.RLock()
	var fns []func(string)
	for _, s := range r.subs {
		if pathMatches(s.prefix, changed) {
			fns = append(fns, s.fn)
		}
	}
	r.mu.RUnlock()
	for _, fn := range fns {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("store subscriber panic on %s: %v", changed, rec)
				}
			}()
			fn(changed)
		}()
	}
}
