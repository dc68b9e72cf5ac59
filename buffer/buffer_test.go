// File: buffer/buffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/pagebuf/buffer"
	"github.com/momentics/pagebuf/fake"
	"github.com/momentics/pagebuf/internal/alloc"
	"github.com/momentics/pagebuf/internal/assert"
	"github.com/momentics/pagebuf/pool"
)

func newTestPool(t *testing.T) *pool.Pool {
	t.Helper()
	pl := pool.New(pool.WithPageSize(64 * 1024))
	t.Cleanup(func() { pl.Close() })
	return pl
}

func fill(b *buffer.Buffer, seed byte) {
	w := b.WritePointer()
	for i := range w {
		w[i] = seed + byte(i%13)
	}
}

func TestEmptyConstruction(t *testing.T) {
	b := buffer.New()
	require.Equal(t, 0, b.Size())
	require.Equal(t, 0, b.Reserved())
	require.Nil(t, b.ReadPointer(true))
	require.Nil(t, b.WritePointer())
}

func TestNewWithSizeBookkeeping(t *testing.T) {
	b := buffer.NewWithSize(4096)
	require.Equal(t, 4096, b.Size())
	require.GreaterOrEqual(t, b.Reserved(), b.Size())
	require.Len(t, b.ReadPointer(true), 4096)
}

func TestSetSizeWithinReserved(t *testing.T) {
	b := buffer.NewWithSize(1000)
	b.SetSize(10)
	require.Equal(t, 10, b.Size())
	require.Equal(t, 1000, b.Reserved())
	b.SetSize(1000)
	require.Equal(t, 1000, b.Size())
}

func TestSetSizeBeyondReservedIsFatal(t *testing.T) {
	if !assert.Enabled {
		t.Skip("assertions compiled out; run with -tags pagebufdebug")
	}
	b := buffer.NewWithSize(16)
	require.Panics(t, func() { b.SetSize(17) })
}

func TestCleanReallocPreservesContent(t *testing.T) {
	b := buffer.NewWithSize(256)
	fill(b, 7)
	want := append([]byte(nil), b.ReadPointer(true)...)

	b.CleanRealloc(1024)
	require.Equal(t, 256, b.Size())
	require.Equal(t, 1024, b.Reserved())
	require.True(t, bytes.Equal(want, b.ReadPointer(true)))

	b.SetSize(100)
	b.CleanRealloc(100)
	require.Equal(t, 100, b.Reserved())
	require.True(t, bytes.Equal(want[:100], b.ReadPointer(true)))
}

func TestUncleanReallocBookkeepingOnly(t *testing.T) {
	b := buffer.NewWithSize(64)
	b.SetSize(0)
	b.UncleanRealloc(512)
	require.Equal(t, 0, b.Size())
	require.Equal(t, 512, b.Reserved())
	b.UncleanRealloc(0)
	require.Equal(t, 0, b.Reserved())
}

func TestClear(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(2048)
	fill(b, 3)
	require.NoError(t, b.PageOut(pl))
	b.Clear()
	require.Equal(t, 0, b.Size())
	require.Equal(t, 0, b.Reserved())
}

func TestPageOutRoundTrip(t *testing.T) {
	pl := newTestPool(t)
	for _, n := range []int{0, 1, 4096, 1 << 20} {
		b := buffer.NewWithSize(n)
		fill(b, byte(n))
		want := append([]byte(nil), b.ReadPointer(true)...)

		require.NoError(t, b.PageOut(pl))
		got := b.ReadPointer(true)
		require.Equal(t, n, len(got), "size %d", n)
		require.True(t, bytes.Equal(want, got), "size %d", n)
		require.Equal(t, n, b.Size())
		b.Close()
	}
}

func TestPageOutIdempotent(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(1024)
	fill(b, 42)
	want := append([]byte(nil), b.ReadPointer(true)...)

	require.NoError(t, b.PageOut(pl))
	require.NoError(t, b.PageOut(pl))
	require.Equal(t, 1024, b.Size())
	require.True(t, bytes.Equal(want, b.ReadPointer(true)))

	// A second page-out must not have minted a second slot.
	require.EqualValues(t, 1, pl.Stats().SlotsLive)
}

func TestWritePointerPagesIn(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(1024)
	fill(b, 9)
	want := append([]byte(nil), b.ReadPointer(true)...)

	require.NoError(t, b.PageOut(pl))
	w := b.WritePointer()
	require.True(t, bytes.Equal(want, w))

	// The slot went back to the pool; the buffer owns its bytes again and
	// writes must not be visible to anyone else.
	require.EqualValues(t, 0, pl.Stats().SlotsLive)
	w[0] ^= 0xAA
	require.Equal(t, w[0], b.ReadPointer(true)[0])
}

func TestResizePagesIn(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(512)
	fill(b, 21)
	want := append([]byte(nil), b.ReadPointer(true)...)

	require.NoError(t, b.PageOut(pl))
	b.SetSize(256)
	require.Equal(t, 256, b.Size())
	require.True(t, bytes.Equal(want[:256], b.ReadPointer(true)))
	require.EqualValues(t, 0, pl.Stats().SlotsLive)
}

func TestAlignment(t *testing.T) {
	pl := newTestPool(t)
	for _, n := range []int{1, 3, 16, 100, 4096} {
		b := buffer.NewWithSize(n)
		require.True(t, alloc.Aligned(b.ReadPointer(true)), "resident size %d", n)
		require.True(t, alloc.Aligned(b.WritePointer()), "write size %d", n)
		require.NoError(t, b.PageOut(pl))
		require.True(t, alloc.Aligned(b.ReadPointer(true)), "paged size %d", n)
	}
}

func TestClone(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(777)
	fill(b, 5)
	want := append([]byte(nil), b.ReadPointer(true)...)
	require.NoError(t, b.PageOut(pl))

	c := b.Clone()
	require.Equal(t, b.Size(), c.Size())
	require.Equal(t, b.Reserved(), c.Reserved())
	require.True(t, bytes.Equal(want, c.ReadPointer(true)))

	// The clone owns independent storage: mutating it leaves the source
	// untouched, and it needed no slot of its own.
	c.WritePointer()[0] ^= 0xFF
	require.True(t, bytes.Equal(want, b.ReadPointer(true)))
	require.EqualValues(t, 1, pl.Stats().SlotsLive)
}

func TestNonForcedReadAfterEviction(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(1024)
	fill(b, 77)
	require.NoError(t, b.PageOut(pl))

	pl.EvictAll()
	require.Nil(t, b.ReadPointer(false))

	// The miss filed a prefetch hint; the page comes back without forcing.
	deadline := time.Now().Add(5 * time.Second)
	for b.ReadPointer(false) == nil {
		if time.Now().After(deadline) {
			t.Fatal("prefetch never restored the page")
		}
		time.Sleep(time.Millisecond)
	}
}

// The fake pool pins residency, making the miss/hit contract deterministic.
func TestNonForcedContractWithFakePool(t *testing.T) {
	fp := fake.NewPool()
	b := buffer.NewWithSize(128)
	fill(b, 1)
	want := append([]byte(nil), b.ReadPointer(true)...)
	require.NoError(t, b.PageOut(fp))

	fp.SetEvicted(true)
	require.Nil(t, b.ReadPointer(false))
	require.True(t, bytes.Equal(want, b.ReadPointer(true)))
	require.GreaterOrEqual(t, fp.Stats().PrefetchHints, int64(1))

	fp.SetEvicted(false)
	require.True(t, bytes.Equal(want, b.ReadPointer(false)))
}

// Full lifecycle: construct, page out, lazy then forced read, write-in, clear.
func TestPagingScenario(t *testing.T) {
	pl := newTestPool(t)
	b := buffer.NewWithSize(1024)
	w := b.WritePointer()
	for i := range w {
		w[i] = 0xA5
	}

	require.NoError(t, b.PageOut(pl))
	pl.EvictAll()

	require.Nil(t, b.ReadPointer(false))
	p := b.ReadPointer(true)
	require.Len(t, p, 1024)
	for i := range p {
		require.EqualValues(t, 0xA5, p[i])
	}

	w = b.WritePointer()
	require.Len(t, w, 1024)
	for i := range w {
		require.EqualValues(t, 0xA5, w[i])
	}

	b.Clear()
	require.Equal(t, 0, b.Size())
	require.Equal(t, 0, b.Reserved())
}

// Two independent buffers paging through one pool concurrently must never
// deadlock or observe each other's bytes.
func TestConcurrentBufferIsolation(t *testing.T) {
	pl := newTestPool(t)

	const iters = 200
	var wg sync.WaitGroup
	for _, seed := range []byte{0x11, 0x22, 0x33, 0x44} {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			b := buffer.NewWithSize(4096)
			w := b.WritePointer()
			for i := range w {
				w[i] = seed
			}
			for i := 0; i < iters; i++ {
				if err := b.PageOut(pl); err != nil {
					t.Errorf("page out: %v", err)
					return
				}
				if i%3 == 0 {
					pl.EvictAll()
				}
				// Page back in before inspecting: an owned region cannot be
				// invalidated by another goroutine's eviction.
				p := b.WritePointer()
				for j := range p {
					if p[j] != seed {
						t.Errorf("buffer %#x observed foreign byte %#x", seed, p[j])
						return
					}
				}
				p[i%len(p)] = seed
			}
		}(seed)
	}
	wg.Wait()
}
