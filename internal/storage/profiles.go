package storage

import (
	"sync"

	"hyperassist/internal/rules"
	"hyperassist/pkg"
)

// ProfileStore owns all customer profiles for the process lifetime. It is
// an explicit service object injected into the pipeline rather than ambient
// global state. Different customer ids update concurrently; updates for the
// same id serialize on a per-profile mutex because every update is a
// read-modify-write over shared profile state.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*profileEntry
}

type profileEntry struct {
	mu      sync.Mutex
	profile pkg.CustomerProfile
}

// NewProfileStore creates an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]*profileEntry),
	}
}

// GetOrCreate creates the profile on first access and applies the per-message
// update sequence: name extraction (set at most once), location refresh,
// bounded history append, interest extraction. The redacted message is the
// only message text that ever reaches the profile. Returns a snapshot copy
// that is safe to read outside the store's locks.
func (s *ProfileStore) GetOrCreate(customerID, location, redactedMessage string) *pkg.CustomerProfile {
	entry := s.entry(customerID, location)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	profile := &entry.profile

	if profile.Name == "" {
		if name := rules.MaybeExtractName(redactedMessage); name != "" {
			profile.Name = name
		}
	}

	if location != "" {
		profile.LastLocation = location
		// Extraction failure leaves CurrentCity unchanged rather than
		// reverting it to a stale or empty value.
		if city := rules.ExtractCity(location); city != "" {
			profile.CurrentCity = city
		}
	}

	profile.History = appendBounded(profile.History, redactedMessage, pkg.HistoryLimit)
	profile.FavoriteTopics = rules.ExtractInterests(profile.FavoriteTopics, redactedMessage)

	return snapshot(profile)
}

// RecordSignals increments the intent counter and, when a mood was actually
// detected, appends it to the bounded mood history. Applied once per request
// after GetOrCreate, under the same per-profile lock.
func (s *ProfileStore) RecordSignals(customerID, intent, mood string) *pkg.CustomerProfile {
	entry := s.entry(customerID, "")

	entry.mu.Lock()
	defer entry.mu.Unlock()
	profile := &entry.profile

	profile.FrequentIntents[intent]++
	if mood != "" {
		profile.MoodHistory = appendBounded(profile.MoodHistory, mood, pkg.HistoryLimit)
	}

	return snapshot(profile)
}

// Get returns a snapshot of an existing profile, or nil when the customer
// has never been seen.
func (s *ProfileStore) Get(customerID string) *pkg.CustomerProfile {
	s.mu.RLock()
	entry, exists := s.profiles[customerID]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshot(&entry.profile)
}

// Count returns the number of known profiles.
func (s *ProfileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// entry returns the profile entry for the customer, creating it with
// defaults seeded from the request location on first access.
func (s *ProfileStore) entry(customerID, location string) *profileEntry {
	s.mu.RLock()
	entry, exists := s.profiles[customerID]
	s.mu.RUnlock()
	if exists {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, exists = s.profiles[customerID]; exists {
		return entry
	}
	entry = &profileEntry{profile: defaultProfile(customerID, location)}
	s.profiles[customerID] = entry
	return entry
}

// defaultProfile seeds a new profile. The request location feeds
// HomeLocation only at creation time.
func defaultProfile(customerID, location string) pkg.CustomerProfile {
	city := rules.ExtractCity(location)
	if location == "" {
		location = "Unknown"
	}
	if city == "" {
		city = "Unknown"
	}
	return pkg.CustomerProfile{
		ID:              customerID,
		LoyaltyTier:     "Guest",
		FavoriteTopics:  []string{},
		HomeLocation:    location,
		CurrentCity:     city,
		LastLocation:    location,
		History:         []string{},
		MoodHistory:     []string{},
		FrequentIntents: make(map[string]int),
		Notes:           "New customer, no prior history.",
	}
}

func appendBounded(items []string, item string, limit int) []string {
	items = append(items, item)
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items
}

func snapshot(profile *pkg.CustomerProfile) *pkg.CustomerProfile {
	copied := *profile
	copied.FavoriteTopics = append([]string(nil), profile.FavoriteTopics...)
	copied.History = append([]string(nil), profile.History...)
	copied.MoodHistory = append([]string(nil), profile.MoodHistory...)
	copied.FrequentIntents = make(map[string]int, len(profile.FrequentIntents))
	for k, v := range profile.FrequentIntents {
		copied.FrequentIntents[k] = v
	}
	return &copied
}
