package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/timetravel/internal/cache"
	"github.com/pkordes/timetravel/internal/domain"
)

const travelID = "507f191e810c19729de860ea"

func viewFixture() domain.TravelView {
	return domain.TravelView{
		Code:  "A12345",
		Place: "London",
		Date:  time.Date(2020, 10, 11, 0, 0, 0, 0, time.UTC),
	}
}

// compile-time checks: both backends satisfy cache.TravelCache.
var (
	_ cache.TravelCache = (*cache.Memory)(nil)
	_ cache.TravelCache = (*cache.Redis)(nil)
)

func TestMemory_SetGetDelete(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, travelID)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	require.NoError(t, c.Set(ctx, travelID, viewFixture()))

	got, ok, err := c.Get(ctx, travelID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, viewFixture(), got)

	require.NoError(t, c.Delete(ctx, travelID))

	_, ok, err = c.Get(ctx, travelID)
	require.NoError(t, err)
	assert.False(t, ok, "deleted entry must miss")
	assert.Equal(t, 0, c.Len())
}

func TestMemory_DeleteMissing(t *testing.T) {
	c := cache.NewMemory()

	assert.NoError(t, c.Delete(context.Background(), travelID))
}

// TestMemory_ConcurrentPopulate mirrors two requests missing on the same id
// and both populating it. Run with -race.
func TestMemory_ConcurrentPopulate(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := c.Get(ctx, travelID); !ok {
				_ = c.Set(ctx, travelID, viewFixture())
			}
		}()
	}
	wg.Wait()

	got, ok, err := c.Get(ctx, travelID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, viewFixture(), got)
	assert.Equal(t, 1, c.Len())
}
