// internal/store/memory.go
//
// In-memory implementation of the UsernameRegistry.
// Usernames are held for the lifetime of the process only.
//
// Characteristics:
//   - Check-and-register is a single atomic step under the write lock.
//   - Comparison is case-insensitive ("Ada" and "ada" collide).
//   - Names are trimmed before validation and storage.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUsernameTaken is returned when the name is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidUsername wraps every validation failure.
	ErrInvalidUsername = errors.New("invalid username")
)

// UsernameRegistry reserves player names.
// Implementations may be backed by memory (this package), SQL, etc.
type UsernameRegistry interface {
	// Register reserves name, returning ErrUsernameTaken if it is in use.
	Register(ctx context.Context, name string) (string, error)

	// Taken reports whether name is already reserved.
	Taken(ctx context.Context, name string) (bool, error)
}

// memory is a map-based UsernameRegistry.
type memory struct {
	mu    sync.RWMutex        // guards names
	names map[string]struct{} // keyed by lower-cased name
}

// NewMemoryRegistry constructs an empty in-memory registry.
func NewMemoryRegistry() UsernameRegistry {
	return &memory{names: make(map[string]struct{})}
}

// Register validates and reserves name. It returns the normalized name.
func (m *memory) Register(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = Normalize(name)
	if err := Validate(name); err != nil {
		return "", err
	}
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.names[key]; ok {
		return "", fmt.Errorf("%w: %q", ErrUsernameTaken, name)
	}
	m.names[key] = struct{}{}
	return name, nil
}

// Taken looks the name up under the read lock.
func (m *memory) Taken(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := strings.ToLower(Normalize(name))
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.names[key]
	return ok, nil
}

// Normalize trims surrounding whitespace.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// Validate enforces 3–24 characters of letters, digits and underscore.
func Validate(name string) error {
	if len(name) < 3 || len(name) > 24 {
		return fmt.Errorf("%w: must be 3-24 chars", ErrInvalidUsername)
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: letters, numbers, underscore only", ErrInvalidUsername)
		}
	}
	return nil
}
