package memo_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/memo"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counter(calls *atomic.Int32, result int) func() (int, error) {
	return func() (int, error) {
		calls.Add(1)
		return result, nil
	}
}

func TestDoMemoizesPerKey(t *testing.T) {
	c := memo.New()
	var calls atomic.Int32
	key := memo.Key{Version: 1, Operation: "summary"}

	v, err := memo.Do(c, key, counter(&calls, 42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = memo.Do(c, key, counter(&calls, 99))
	require.NoError(t, err)
	assert.Equal(t, 42, v, "second call is served from the cache")
	assert.EqualValues(t, 1, calls.Load())

	_, err = memo.Do(c, memo.Key{Version: 1, Operation: "summary", Params: "other"}, counter(&calls, 7))
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestNewVersionNeverServesStale(t *testing.T) {
	c := memo.New()
	var calls atomic.Int32

	_, err := memo.Do(c, memo.Key{Version: 1, Operation: "summary"}, counter(&calls, 1))
	require.NoError(t, err)

	v, err := memo.Do(c, memo.Key{Version: 2, Operation: "summary"}, counter(&calls, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len(), "older version entries are dropped")

	v, err = memo.Do(c, memo.Key{Version: 1, Operation: "summary"}, counter(&calls, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, v, "older versions are recomputed")
	assert.Equal(t, 1, c.Len(), "older versions are not stored")
	assert.EqualValues(t, 3, calls.Load())
}

func TestAdvancingInstantReplacesEntry(t *testing.T) {
	c := memo.New()
	var calls atomic.Int32
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for i := range 1000 {
		key := memo.Key{Version: 1, Operation: "summary", Instant: start.Add(time.Duration(i) * time.Millisecond).UnixNano()}
		_, err := memo.Do(c, key, counter(&calls, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, c.Len(), "one entry per slot however many instants were seen")
	assert.EqualValues(t, 1000, calls.Load())

	latest := memo.Key{Version: 1, Operation: "summary", Instant: start.Add(999 * time.Millisecond).UnixNano()}
	v, err := memo.Do(c, latest, counter(&calls, -1))
	require.NoError(t, err)
	assert.Equal(t, 999, v, "the most recent instant is still served")

	earlier := memo.Key{Version: 1, Operation: "summary", Instant: start.UnixNano()}
	v, err = memo.Do(c, earlier, counter(&calls, -2))
	require.NoError(t, err)
	assert.Equal(t, -2, v, "a replaced instant is recomputed, never served from another instant")
}

func TestInvalidate(t *testing.T) {
	c := memo.New()
	var calls atomic.Int32
	key := memo.Key{Version: 3, Operation: "facets", Params: "CERTIFICATION"}

	_, err := memo.Do(c, key, counter(&calls, 1))
	require.NoError(t, err)

	c.Invalidate(3)
	assert.Equal(t, 1, c.Len(), "invalidating the current version keeps its entries")

	c.Invalidate(4)
	assert.Zero(t, c.Len())

	c.Invalidate(2)
	_, err = memo.Do(c, key, counter(&calls, 1))
	require.NoError(t, err)
	assert.Zero(t, c.Len(), "version 3 is now stale")
}

func TestClear(t *testing.T) {
	c := memo.New()
	_, err := memo.Do(c, memo.Key{Version: 1, Operation: "x"}, func() (string, error) { return "v", nil })
	require.NoError(t, err)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestErrorsAreNotCached(t *testing.T) {
	c := memo.New()
	key := memo.Key{Version: 1, Operation: "summary"}
	boom := errors.New("boom")

	_, err := memo.Do(c, key, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())

	v, err := memo.Do(c, key, func() (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestConcurrentCallersShareOneComputation(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c := memo.New(memo.WithMetrics(m))
	key := memo.Key{Version: 1, Operation: "summary"}

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func() (int, error) {
		calls.Add(1)
		<-release
		return 11, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := memo.Do(c, key, fn)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 11, v)
	}
	assert.LessOrEqual(t, calls.Load(), int32(callers))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))

	total := testutil.ToFloat64(m.MemoLookups.WithLabelValues("summary", "miss")) +
		testutil.ToFloat64(m.MemoLookups.WithLabelValues("summary", "shared")) +
		testutil.ToFloat64(m.MemoLookups.WithLabelValues("summary", "hit"))
	assert.Equal(t, float64(callers), total)
}
