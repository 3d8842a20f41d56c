// Package prefs persists the small set of per-profile user preferences.
//
// Writes are best-effort: when the backend fails, the value still holds for
// the lifetime of the Store and the failure is only logged.
package prefs

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

type Key string

const (
	KeyRegion   Key = "selectedCountry"
	KeyLanguage Key = "selectedLanguage"
	KeyDarkMode Key = "darkMode"
	KeyPremium  Key = "isPremium"
)

const (
	DefaultRegion   = "US"
	DefaultLanguage = "en"
)

const backendTimeout = 2 * time.Second

// Backend stores JSON-encoded values per profile and key.
type Backend interface {
	Load(ctx context.Context, profile string, key Key) (string, bool, error)
	Save(ctx context.Context, profile string, key Key, value string) error
}

// Preferences is a snapshot of everything the page needs.
type Preferences struct {
	Region   string
	Language string
	DarkMode bool
	Premium  bool
}

// Store gives typed access to one profile's preferences.
type Store struct {
	backend Backend
	profile string

	mu  sync.Mutex
	mem map[Key]string
}

func NewStore(backend Backend, profile string) *Store {
	return &Store{
		backend: backend,
		profile: profile,
		mem:     make(map[Key]string),
	}
}

func (s *Store) Profile() string {
	return s.profile
}

func (s *Store) load(key Key) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.mem[key]; ok {
		return raw, true
	}
	if s.backend == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	raw, ok, err := s.backend.Load(ctx, s.profile, key)
	if err != nil {
		log.Printf("prefs: load %s for %s: %v", key, s.profile, err)
		return "", false
	}
	if ok {
		s.mem[key] = raw
	}
	return raw, ok
}

func (s *Store) save(key Key, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem[key] = raw
	if s.backend == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	if err := s.backend.Save(ctx, s.profile, key, raw); err != nil {
		log.Printf("prefs: save %s for %s (kept in memory): %v", key, s.profile, err)
	}
}

// Get returns the stored value for key, or def when nothing was stored or the
// stored value cannot be decoded.
func Get[T any](s *Store, key Key, def T) T {
	raw, ok := s.load(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Set stores value for key. It never fails from the caller's point of view.
func Set[T any](s *Store, key Key, value T) {
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("prefs: encode %s: %v", key, err)
		return
	}
	s.save(key, string(b))
}

func (s *Store) Region() string          { return Get(s, KeyRegion, DefaultRegion) }
func (s *Store) SetRegion(code string)   { Set(s, KeyRegion, code) }
func (s *Store) Language() string        { return Get(s, KeyLanguage, DefaultLanguage) }
func (s *Store) SetLanguage(code string) { Set(s, KeyLanguage, code) }
func (s *Store) DarkMode() bool          { return Get(s, KeyDarkMode, false) }
func (s *Store) SetDarkMode(on bool)     { Set(s, KeyDarkMode, on) }
func (s *Store) Premium() bool           { return Get(s, KeyPremium, false) }
func (s *Store) SetPremium(on bool)      { Set(s, KeyPremium, on) }

func (s *Store) Snapshot() Preferences {
	return Preferences{
		Region:   s.Region(),
		Language: s.Language(),
		DarkMode: s.DarkMode(),
		Premium:  s.Premium(),
	}
}
