package userstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the backing table for the user tools.
// Implementations must be safe for concurrent use.
type Store interface {
	// Add creates a user and returns the stored record.
	Add(ctx context.Context, u NewUser) (User, error)

	// Get returns the user with id, or ErrNotFound.
	Get(ctx context.Context, id string) (User, error)

	// Update applies changes keyed by field name and refreshes updated_at.
	// Keys that are not record fields are ignored. It returns ErrNotFound for an unknown id and *ErrInvalidField for a
	// bad change, in which case the record is left untouched.
	Update(ctx context.Context, id string, changes map[string]any) (User, error)

	// Delete removes the user with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns the users whose fields equal every filter entry,
	// sorted by id. A nil or empty filter matches all users.
	List(ctx context.Context, filter map[string]any) ([]User, error)
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithIDGenerator sets the id source. Generated ids that collide with an
// existing record are drawn again.
func WithIDGenerator(next func() string) Option {
	return func(s *MemoryStore) {
		s.nextID = next
	}
}

// MemoryStore is an in-memory Store. Every operation holds one mutex, so
// tool calls from concurrent runs never interleave.
type MemoryStore struct {
	mu     sync.Mutex
	users  map[string]User
	now    func() time.Time
	nextID func() string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:  make(map[string]User),
		now:    time.Now,
		nextID: randomID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomID returns "user_" plus the first 8 hex digits of a random UUID.
func randomID() string {
	id := uuid.New()
	return "user_" + hex.EncodeToString(id[:4])
}

// SequentialIDs returns an id generator yielding user_00000001,
// user_00000002 and so on. It makes runs reproducible.
func SequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("user_%08d", n)
	}
}

func (s *MemoryStore) Add(_ context.Context, nu NewUser) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	for {
		if _, taken := s.users[id]; !taken {
			break
		}
		id = s.nextID()
	}

	status := nu.Status
	if status == "" {
		status = StatusActive
	}
	ts := formatTime(s.now())
	u := User{
		ID:        id,
		Name:      nu.Name,
		Age:       nu.Age,
		Email:     nu.Email,
		Phone:     nu.Phone,
		Status:    status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.users[id] = u
	return u, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, changes map[string]any) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	// u is a copy; the stored record only changes if every field applies.
	for _, field := range sortedKeys(changes) {
		if err := u.apply(field, changes[field]); err != nil {
			return User{}, err
		}
	}
	u.UpdatedAt = formatTime(s.now())
	s.users[id] = u
	return u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, filter map[string]any) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		ok, err := u.matches(filter)
		if err != nil {
			return nil, err
		}
		if ok {
			users = append(users, u)
		}
	}
	slices.SortFunc(users, func(a, b User) int { return strings.Compare(a.ID, b.ID) })
	return users, nil
}

// Len returns the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Snapshot returns every user sorted by id. It is the state shown to the
// model in goal checks.
func (s *MemoryStore) Snapshot(ctx context.Context) (any, error) {
	return Snapshot(ctx, s)
}

// Snapshot lists all users of any Store, sorted by id.
func Snapshot(ctx context.Context, store Store) ([]User, error) {
	return store.List(ctx, nil)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var _ Store = (*MemoryStore)(nil)
