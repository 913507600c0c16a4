package filterstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/memofilter/pkg/filter"
)

var (
	tagA = filter.Tag("A")
	tagB = filter.Tag("B")
	tagC = filter.Tag("C")
)

// recorder collects every notification.
type recorder struct {
	mu    sync.Mutex
	calls [][]filter.Filter
}

func (r *recorder) listen(fs []filter.Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fs)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) last() []filter.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func TestAddFilter(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec.listen)

	require.NoError(t, s.AddFilter(tagA))
	require.NoError(t, s.AddFilter(tagA))

	assert.Equal(t, []filter.Filter{tagA, tagA}, s.Filters(), "duplicates are kept")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, rec.count())
	assert.Equal(t, []filter.Filter{tagA, tagA}, rec.last())
}

func TestRemoveFilterNotifiesOnce(t *testing.T) {
	s := New(tagA, tagB, tagA, tagC)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	n, err := s.RemoveFilter(filter.Is(tagA))
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []filter.Filter{tagB, tagC}, s.Filters())
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, []filter.Filter{tagB, tagC}, rec.last())
}

func TestRemoveFilterNoMatch(t *testing.T) {
	s := New(tagA, tagB)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	n, err := s.RemoveFilter(filter.Is(tagC))
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Equal(t, []filter.Filter{tagA, tagB}, s.Filters())
	assert.Equal(t, 1, rec.count(), "notify even when nothing matched")
}

func TestSetFiltersAndClear(t *testing.T) {
	s := New(tagA)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	in := []filter.Filter{tagC, tagB}
	require.NoError(t, s.SetFilters(in))
	in[0] = tagA
	assert.Equal(t, []filter.Filter{tagC, tagB}, s.Filters(), "input is copied")

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Filters())
	assert.NotNil(t, s.Filters())
	assert.Equal(t, 2, rec.count())
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(tagA, tagB)

	snap := s.Filters()
	snap[0] = tagC
	assert.Equal(t, []filter.Filter{tagA, tagB}, s.Filters())

	var got []filter.Filter
	s.Subscribe(func(fs []filter.Filter) {
		fs[0] = tagC
	})
	s.Subscribe(func(fs []filter.Filter) {
		got = fs
	})
	require.NoError(t, s.AddFilter(tagC))

	assert.Equal(t, []filter.Filter{tagA, tagB, tagC}, got, "listeners get private copies")
	assert.Equal(t, []filter.Filter{tagA, tagB, tagC}, s.Filters())
}

func TestUpdateGroupsEdits(t *testing.T) {
	s := New(tagA)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	err := s.Update(func(cur []filter.Filter) []filter.Filter {
		cur = append(cur, tagB, tagC)
		return cur[1:]
	})
	require.NoError(t, err)

	assert.Equal(t, []filter.Filter{tagB, tagC}, s.Filters())
	assert.Equal(t, 1, rec.count())
}

func TestUnsubscribe(t *testing.T) {
	s := New()
	first, second := &recorder{}, &recorder{}
	stop := s.Subscribe(first.listen)
	s.Subscribe(second.listen)

	require.NoError(t, s.AddFilter(tagA))
	stop()
	stop()
	require.NoError(t, s.AddFilter(tagB))

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 2, second.count())
}

func TestListenerMayMutate(t *testing.T) {
	s := New()
	s.Subscribe(func(fs []filter.Filter) {
		if len(fs) == 1 {
			require.NoError(t, s.AddFilter(tagB))
		}
	})

	require.NoError(t, s.AddFilter(tagA))
	assert.Equal(t, []filter.Filter{tagA, tagB}, s.Filters())
}

func TestNestedMutationDeliveredInOrder(t *testing.T) {
	s := New()
	before, after := &recorder{}, &recorder{}
	s.Subscribe(before.listen)
	s.Subscribe(func(fs []filter.Filter) {
		if len(fs) == 1 {
			require.NoError(t, s.AddFilter(tagB))
		}
	})
	s.Subscribe(after.listen)

	require.NoError(t, s.AddFilter(tagA))

	want := [][]filter.Filter{{tagA}, {tagA, tagB}}
	assert.Equal(t, want, before.calls)
	assert.Equal(t, want, after.calls, "listeners after the mutating one see the same order")
	assert.Equal(t, s.Filters(), after.last())
}

func TestListenerPanicDoesNotStallDelivery(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(func(fs []filter.Filter) {
		if len(fs) == 1 {
			panic("boom")
		}
	})
	s.Subscribe(rec.listen)

	assert.Panics(t, func() { _ = s.AddFilter(tagA) })
	require.NoError(t, s.AddFilter(tagB))

	assert.Equal(t, []filter.Filter{tagA, tagB}, rec.last())
}

func TestClose(t *testing.T) {
	s := New(tagA)
	rec := &recorder{}
	s.Subscribe(rec.listen)

	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.AddFilter(tagB), ErrClosed)
	_, err := s.RemoveFilter(filter.Is(tagA))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.SetFilters(nil), ErrClosed)
	assert.ErrorIs(t, s.Clear(), ErrClosed)

	assert.Equal(t, []filter.Filter{tagA}, s.Filters(), "reads still work")
	assert.Zero(t, rec.count())

	s.Subscribe(rec.listen)()
}

func TestConcurrentAdds(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec.listen)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AddFilter(tagA))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 50, rec.count())
}

func TestConcurrentDeliveryOrder(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Subscribe(rec.listen)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, s.AddFilter(tagA))
			} else {
				assert.NoError(t, s.AddFilter(tagB))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 50, rec.count())
	for i, snap := range rec.calls {
		assert.Len(t, snap, i+1, "snapshot %d delivered out of commit order", i)
	}
	assert.Equal(t, s.Filters(), rec.last())
}
