package config

import "sync"

// Store is the mutable configuration shared between the UI and the fetch
// loop. Writers go through the setters; readers take a Snapshot.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store seeded with the given settings
func NewStore(s Settings) *Store {
	return &Store{settings: s}
}

// Snapshot returns a copy of the current settings
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// Credential returns the configured API key, or "" if none
func (st *Store) Credential() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings.APIKey
}

// CustomRelay returns the custom relay URL template
func (st *Store) CustomRelay() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings.CustomRelay
}

// SimulationMode reports whether live fetching is switched off
func (st *Store) SimulationMode() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings.Simulation
}

// SetAPIKey replaces the API key
func (st *Store) SetAPIKey(key string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings.APIKey = key
}

// SetCustomRelay replaces the custom relay template
func (st *Store) SetCustomRelay(template string, envelope bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings.CustomRelay = template
	st.settings.CustomRelayEnvelope = envelope
}

// SetSimulation switches simulation mode on or off
func (st *Store) SetSimulation(enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings.Simulation = enabled
}

// ToggleSimulation flips simulation mode and returns the new value
func (st *Store) ToggleSimulation() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings.Simulation = !st.settings.Simulation
	return st.settings.Simulation
}
