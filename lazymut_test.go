package lazymut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/coder/lazymut"
)

func counting(counter *int) func() int {
	return func() int {
		*counter++
		return *counter
	}
}

func TestLazyMut(t *testing.T) {
	t.Parallel()

	t.Run("MutationsPersist", func(t *testing.T) {
		t.Parallel()

		l := lazymut.New(func() []int { return []int{1} })
		require.Equal(t, []int{1}, *l.Get())

		v := l.Get()
		*v = append(*v, 2)
		require.Equal(t, []int{1, 2}, *l.Get())
	})

	t.Run("InitOnce", func(t *testing.T) {
		t.Parallel()

		counter := 0
		l := lazymut.New(counting(&counter))
		for i := 0; i < 3; i++ {
			assert.Equal(t, 1, *l.Get())
		}
		require.Equal(t, 1, counter)
	})

	t.Run("SamePointer", func(t *testing.T) {
		t.Parallel()

		l := lazymut.New(func() int { return 7 })
		a := l.Get()
		b := l.Get()
		require.Same(t, a, b)

		*a = 8
		require.Equal(t, 8, *l.Get())
	})

	t.Run("NeverCalled", func(t *testing.T) {
		t.Parallel()

		counter := 0
		l := lazymut.New(counting(&counter))
		require.False(t, l.Initialized())
		require.Equal(t, 0, counter)
	})

	t.Run("ManyCalls", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{1, 2, 10, 100} {
			counter := 0
			l := lazymut.New(counting(&counter))
			for i := 0; i < n; i++ {
				*l.Get() += 10
			}
			assert.Equal(t, 1, counter, "calls=%d", n)
			assert.Equal(t, 1+10*n, *l.Get(), "calls=%d", n)
		}
	})

	t.Run("NilInitializer", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			_ = lazymut.New[int](nil)
		})
	})
}

func TestLazyMutPanickingInit(t *testing.T) {
	t.Parallel()

	t.Run("Propagates", func(t *testing.T) {
		t.Parallel()

		l := lazymut.New(func() int {
			panic(xerrors.New("initializer exploded"))
		})
		require.PanicsWithError(t, "initializer exploded", func() {
			_ = l.Get()
		})
	})

	t.Run("Poisons", func(t *testing.T) {
		t.Parallel()

		counter := 0
		l := lazymut.New(func() int {
			counter++
			panic("no value")
		})
		require.PanicsWithValue(t, "no value", func() {
			_ = l.Get()
		})
		require.True(t, l.Poisoned())
		require.False(t, l.Initialized())

		require.PanicsWithError(t, lazymut.ErrPoisoned.Error(), func() {
			_ = l.Get()
		})
		require.PanicsWithError(t, lazymut.ErrPoisoned.Error(), func() {
			_, _ = l.Inner()
		})
		require.Equal(t, 1, counter)

		v, ok := l.TryGet()
		require.False(t, ok)
		require.Nil(t, v)
	})

	t.Run("Reentrant", func(t *testing.T) {
		t.Parallel()

		var l *lazymut.LazyMut[int]
		l = lazymut.New(func() int {
			return *l.Get() + 1
		})

		var recovered any
		func() {
			defer func() { recovered = recover() }()
			_ = l.Get()
		}()
		err, ok := recovered.(error)
		require.True(t, ok)
		require.True(t, xerrors.Is(err, lazymut.ErrPoisoned))
		require.True(t, l.Poisoned())
	})
}

func TestLazyMutTryGet(t *testing.T) {
	t.Parallel()

	counter := 0
	l := lazymut.New(counting(&counter))

	v, ok := l.TryGet()
	require.False(t, ok)
	require.Nil(t, v)
	require.Equal(t, 0, counter)

	_ = l.Get()
	v, ok = l.TryGet()
	require.True(t, ok)
	require.Equal(t, 1, *v)

	*v = 5
	require.Equal(t, 5, *l.Get())
	require.Equal(t, 1, counter)
}

func TestLazyMutInner(t *testing.T) {
	t.Parallel()

	l := lazymut.New(func() string { return "hello" })
	v, ok := l.Inner()
	require.False(t, ok)
	require.Empty(t, v)

	*l.Get() += " world"
	v, ok = l.Inner()
	require.True(t, ok)
	require.Equal(t, "hello world", v)
}

func TestLazyMutZeroValue(t *testing.T) {
	t.Parallel()

	var l lazymut.LazyMut[[]string]
	require.True(t, l.Initialized())
	require.False(t, l.Poisoned())

	v, ok := l.TryGet()
	require.True(t, ok)
	require.Nil(t, *v)

	*l.Get() = append(*l.Get(), "a")
	require.Equal(t, []string{"a"}, *l.Get())
}

func TestLazyMutString(t *testing.T) {
	t.Parallel()

	l := lazymut.New(func() int { return 3 })
	assert.Equal(t, "LazyMut(<uninit>)", l.String())
	_ = l.Get()
	assert.Equal(t, "LazyMut(3)", l.String())

	var zero lazymut.LazyMut[int]
	assert.Equal(t, "LazyMut(0)", zero.String())

	p := lazymut.New(func() int { panic("x") })
	assert.Panics(t, func() { _ = p.Get() })
	assert.Equal(t, "LazyMut(<poisoned>)", p.String())
}
