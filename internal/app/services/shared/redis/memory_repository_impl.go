package redis

import (
	"context"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryRepository mirrors the redis repository semantics, including JSON encoded values
// and key expiry, for local runs and tests.
type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	sets    map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemoryRepository() contracts.RedisRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		sets:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	delete(r.sets, key)
	return nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = r.newEntry(string(jsonValue), exp)
	return nil
}

func (r *memoryRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lookup(key)
	if !ok {
		return "", nil
	}
	return entry.value, nil
}

func (r *memoryRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookup(key); ok {
		return true, nil
	}
	return len(r.sets[key]) > 0, nil
}

func (r *memoryRepository) AddToSet(ctx context.Context, key string, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[key]
	if !ok {
		set = make(map[string]struct{})
		r.sets[key] = set
	}
	for _, value := range values {
		set[toMember(value)] = struct{}{}
	}
	return nil
}

func (r *memoryRepository) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]string, 0, len(r.sets[key]))
	for member := range r.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

func (r *memoryRepository) RemoveFromSet(ctx context.Context, key string, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, value := range values {
		delete(r.sets[key], toMember(value))
	}
	return nil
}

func (r *memoryRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookup(key); ok {
		return false, nil
	}
	r.entries[key] = r.newEntry(string(jsonValue), exp)
	return true, nil
}

func (r *memoryRepository) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lookup(key)
	if !ok || entry.value != string(jsonValue) {
		return false, nil
	}
	delete(r.entries, key)
	return true, nil
}

func (r *memoryRepository) ExpireIfEquals(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lookup(key)
	if !ok || entry.value != string(jsonValue) {
		return false, nil
	}
	r.entries[key] = r.newEntry(entry.value, exp)
	return true, nil
}

// lookup must be called with mu held. Expired entries are evicted lazily.
func (r *memoryRepository) lookup(key string) (memoryEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		delete(r.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (r *memoryRepository) newEntry(value string, exp time.Duration) memoryEntry {
	entry := memoryEntry{value: value}
	if exp > 0 {
		entry.expiresAt = r.now().Add(exp)
	}
	return entry
}

func toMember(value interface{}) string {
	if member, ok := value.(string); ok {
		return member
	}
	jsonValue, _ := json.Marshal(value)
	return string(jsonValue)
}
