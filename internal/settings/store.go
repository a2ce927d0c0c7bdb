package settings

import (
	"sync"

	"github.com/alkime/vaultlaunch/internal/editor"
)

// Store holds the current settings for concurrent readers. It is updated by
// the watcher and the CLI setters.
type Store struct {
	mu      sync.RWMutex
	current Settings
}

// NewStore creates a Store holding s.
func NewStore(s Settings) *Store {
	return &Store{current: s.clone()}
}

// Get returns a copy of the current settings.
func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.current.clone()
}

// Set replaces the current settings.
func (st *Store) Set(s Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.current = s.clone()
}

func (s Settings) clone() Settings {
	out := s
	out.EnabledEditors = make(map[editor.Editor]bool, len(s.EnabledEditors))
	for e, on := range s.EnabledEditors {
		out.EnabledEditors[e] = on
	}

	return out
}
