package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperassist/pkg"
)

func TestGetOrCreateSeedsDefaults(t *testing.T) {
	store := NewProfileStore()

	profile := store.GetOrCreate("c1", "Bangalore, Karnataka", "my name is Asha I love coffee")

	assert.Equal(t, "c1", profile.ID)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "Guest", profile.LoyaltyTier)
	assert.Equal(t, "Bangalore, Karnataka", profile.HomeLocation)
	assert.Equal(t, "Karnataka", profile.CurrentCity)
	assert.Contains(t, profile.FavoriteTopics, "coffee")
	assert.Equal(t, []string{"my name is Asha I love coffee"}, profile.History)
	assert.Equal(t, "New customer, no prior history.", profile.Notes)

	// Re-fetch sees the same state.
	again := store.Get("c1")
	require.NotNil(t, again)
	assert.Equal(t, "Asha", again.Name)
	assert.Equal(t, "Karnataka", again.CurrentCity)
}

func TestGetOrCreateUnknownDefaultsForEmptyLocation(t *testing.T) {
	store := NewProfileStore()

	profile := store.GetOrCreate("c1", "", "hello")

	assert.Equal(t, "Unknown", profile.HomeLocation)
	assert.Equal(t, "Unknown", profile.CurrentCity)
	assert.Equal(t, "Unknown", profile.LastLocation)
}

func TestNameIsSetAtMostOnce(t *testing.T) {
	store := NewProfileStore()

	store.GetOrCreate("c1", "", "my name is Asha")
	profile := store.GetOrCreate("c1", "", "my name is Ravi")

	assert.Equal(t, "Asha", profile.Name)
}

func TestHistoryIsBoundedFIFO(t *testing.T) {
	store := NewProfileStore()

	for i := 1; i <= 12; i++ {
		store.GetOrCreate("c1", "", fmt.Sprintf("message %d", i))
	}

	profile := store.Get("c1")
	require.NotNil(t, profile)
	require.Len(t, profile.History, 10)
	assert.Equal(t, "message 3", profile.History[0])
	assert.Equal(t, "message 12", profile.History[9])
}

func TestEmptyLocationLeavesCityUnchanged(t *testing.T) {
	store := NewProfileStore()

	first := store.GetOrCreate("c1", "Bangalore, Karnataka", "hello")
	second := store.GetOrCreate("c1", "", "hello again")

	assert.Equal(t, first.CurrentCity, second.CurrentCity)
	assert.Equal(t, first.LastLocation, second.LastLocation)
}

func TestNonEmptyLocationRefreshesCity(t *testing.T) {
	store := NewProfileStore()

	store.GetOrCreate("c1", "Bangalore, Karnataka", "hello")
	profile := store.GetOrCreate("c1", "Mumbai, Maharashtra", "hello again")

	assert.Equal(t, "Mumbai, Maharashtra", profile.LastLocation)
	assert.Equal(t, "Maharashtra", profile.CurrentCity)
	// HomeLocation is only seeded at creation time.
	assert.Equal(t, "Bangalore, Karnataka", profile.HomeLocation)
}

func TestRecordSignals(t *testing.T) {
	store := NewProfileStore()

	store.GetOrCreate("c1", "", "hello")
	store.RecordSignals("c1", pkg.IntentChitChat, "")
	store.RecordSignals("c1", pkg.IntentChitChat, pkg.MoodHappy)
	profile := store.RecordSignals("c1", pkg.IntentOrderStatus, "")

	assert.Equal(t, 2, profile.FrequentIntents[pkg.IntentChitChat])
	assert.Equal(t, 1, profile.FrequentIntents[pkg.IntentOrderStatus])
	// No "unknown" entries: empty moods are not stored.
	assert.Equal(t, []string{pkg.MoodHappy}, profile.MoodHistory)
}

func TestMoodHistoryIsBounded(t *testing.T) {
	store := NewProfileStore()

	store.GetOrCreate("c1", "", "hello")
	for i := 0; i < 15; i++ {
		store.RecordSignals("c1", pkg.IntentChitChat, pkg.MoodHappy)
	}
	store.RecordSignals("c1", pkg.IntentChitChat, pkg.MoodSad)

	profile := store.Get("c1")
	require.Len(t, profile.MoodHistory, 10)
	assert.Equal(t, pkg.MoodSad, profile.MoodHistory[9])
}

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	store := NewProfileStore()

	profile := store.GetOrCreate("c1", "", "I love coffee")
	profile.FavoriteTopics[0] = "mutated"
	profile.FrequentIntents["fake"] = 99

	fresh := store.Get("c1")
	assert.Equal(t, []string{"coffee"}, fresh.FavoriteTopics)
	assert.Zero(t, fresh.FrequentIntents["fake"])
}

func TestConcurrentUpdatesSameCustomer(t *testing.T) {
	store := NewProfileStore()

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.GetOrCreate("c1", "Delhi", "another message")
				store.RecordSignals("c1", pkg.IntentChitChat, pkg.MoodHappy)
			}
		}()
	}
	wg.Wait()

	profile := store.Get("c1")
	require.NotNil(t, profile)
	// No lost updates: every increment lands, histories stay bounded.
	assert.Equal(t, workers*perWorker, profile.FrequentIntents[pkg.IntentChitChat])
	assert.Len(t, profile.History, 10)
	assert.Len(t, profile.MoodHistory, 10)
	assert.Equal(t, 1, store.Count())
}

func TestConcurrentCreatesDistinctCustomers(t *testing.T) {
	store := NewProfileStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.GetOrCreate(fmt.Sprintf("c%d", n), "Pune", "hello")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, store.Count())
}
