package dataset

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mr1hm/quake-predictor/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore_CurrentWithoutData(t *testing.T) {
	store := NewStore(clockwork.NewFakeClockAt(testNow), nil)

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestStore_ReplaceVersions(t *testing.T) {
	store := NewStore(clockwork.NewFakeClockAt(testNow), nil)

	first, err := store.Replace(OriginSample, magnitudes(4.5, 5.5))
	require.NoError(t, err)
	second, err := store.Replace(OriginUpload, magnitudes(6.5))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Version())
	assert.Equal(t, int64(2), second.Version())
	assert.NotEqual(t, first.Info().ID, second.Info().ID)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, second, current)
	assert.Equal(t, OriginUpload, current.Origin())
	assert.Equal(t, 1, current.Len())

	info := current.Info()
	assert.Equal(t, info.ID+":2", info.Label)
	assert.Equal(t, testNow, info.LoadedAt)

	// the earlier snapshot is untouched by the reload
	assert.Equal(t, 2, first.Len())
}

func TestStore_EmptyLoadKeepsCurrent(t *testing.T) {
	store := NewStore(clockwork.NewFakeClockAt(testNow), nil)
	loaded, err := store.Replace(OriginSample, magnitudes(4.5))
	require.NoError(t, err)

	_, err = store.Replace(OriginUpload, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, loaded, current)
}

func TestSnapshot_RecordsAreCopies(t *testing.T) {
	input := magnitudes(4.5, 5.5)
	store := NewStore(clockwork.NewFakeClockAt(testNow), nil)
	snap, err := store.Replace(OriginSample, input)
	require.NoError(t, err)

	input[0].Magnitude = models.Number(9)
	got := snap.Records()
	got[1].Magnitude = models.Number(9)

	again := snap.Records()
	assert.Equal(t, 4.5, again[0].Magnitude.Num)
	assert.Equal(t, 5.5, again[1].Magnitude.Num)
}

func TestStore_ReplaceBroadcasts(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	store := NewStore(clockwork.NewFakeClockAt(testNow), b)
	snap, err := store.Replace(OriginUSGS, magnitudes(5.1))
	require.NoError(t, err)

	select {
	case info := <-ch:
		assert.Equal(t, snap.Info(), info)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for snapshot broadcast")
	}
}

func TestStore_ConcurrentReplaceAndRead(t *testing.T) {
	store := NewStore(clockwork.NewRealClock(), nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Replace(OriginSample, magnitudes(5))
		}()
		go func() {
			defer wg.Done()
			if snap, err := store.Current(); err == nil {
				_ = Histogram(snap.Records())
			}
		}()
	}
	wg.Wait()

	current, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(50), current.Version())
}
