package session

import (
	"sync"
	"testing"
	"time"

	"gotips/domain/core"
	"gotips/domain/tips"

	"github.com/stretchr/testify/assert"
)

func TestStore_DefaultsToEverything(t *testing.T) {
	s := NewStore(time.Hour)
	assert.Equal(t, tips.AllSelection(), s.Selection(core.NewSessionID()))
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := NewStore(time.Hour)
	a, b := core.NewSessionID(), core.NewSessionID()

	s.Save(a, tips.Selection{Days: []tips.Day{tips.Sat}, Times: []tips.MealTime{tips.Dinner}})
	s.Save(b, tips.Selection{})

	assert.Equal(t, []tips.Day{tips.Sat}, s.Selection(a).Days)
	assert.True(t, s.Selection(b).IsEmpty())
	assert.Equal(t, 2, s.Len())

	got := s.Selection(a)
	got.Days[0] = tips.Sun
	assert.Equal(t, []tips.Day{tips.Sat}, s.Selection(a).Days)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(time.Minute)
	s.now = func() time.Time { return now }

	id := core.NewSessionID()
	s.Save(id, tips.Selection{Days: []tips.Day{tips.Fri}, Times: tips.Times})

	now = now.Add(30 * time.Second)
	assert.Equal(t, []tips.Day{tips.Fri}, s.Selection(id).Days)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, tips.AllSelection(), s.Selection(id))
	assert.Equal(t, 0, s.Len())

	s.Save(core.NewSessionID(), tips.AllSelection())
	assert.Len(t, s.entries, 1)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := core.NewSessionID()
			day := tips.Days[i%len(tips.Days)]
			s.Save(id, tips.Selection{Days: []tips.Day{day}, Times: tips.Times})
			assert.Equal(t, []tips.Day{day}, s.Selection(id).Days)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, s.Len())
}
