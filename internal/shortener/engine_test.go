package shortener_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SemBeacon/shortener/internal/shortener"
	"github.com/SemBeacon/shortener/internal/store"
	"github.com/SemBeacon/shortener/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURI = "https://long.example/some/deep/path?q=1"

func newEngine(kv shortener.KV) *shortener.Engine {
	return shortener.NewEngine(kv, shortener.NewAllocator(kv, nil, 0), zap.NewNop())
}

func TestEngine_Shorten(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		mem := store.NewMemoryStore()
		engine := newEngine(mem)
		app := demoApp()

		code, err := engine.Shorten(context.Background(), app, testURI)
		require.NoError(t, err)
		require.NotEmpty(t, code)

		uri, err := engine.Resolve(context.Background(), app, code)
		require.NoError(t, err)
		assert.Equal(t, testURI, uri)
	})

	t.Run("writes forward and reverse entries", func(t *testing.T) {
		mem := store.NewMemoryStore()
		engine := newEngine(mem)

		code, err := engine.Shorten(context.Background(), demoApp(), testURI)
		require.NoError(t, err)

		uri, err := mem.Get(context.Background(), "demo:short:"+code)
		require.NoError(t, err)
		assert.Equal(t, testURI, uri)

		stored, err := mem.Get(context.Background(), "demo:uri:"+testURI)
		require.NoError(t, err)
		assert.Equal(t, code, stored)
	})

	t.Run("is idempotent per uri", func(t *testing.T) {
		kv := &countingKV{KV: store.NewMemoryStore()}
		engine := newEngine(kv)
		app := demoApp()

		first, err := engine.Shorten(context.Background(), app, testURI)
		require.NoError(t, err)

		second, err := engine.Shorten(context.Background(), app, testURI)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, kv.sets, "fast path must not write again")
		assert.Equal(t, 1, kv.setNXs)
	})

	t.Run("losing a concurrent claim returns the winner's code", func(t *testing.T) {
		mem := store.NewMemoryStore()
		kv := &racingKV{
			KV:           mem,
			contestedKey: "demo:uri:" + testURI,
			winnerCode:   "WiNnEr",
		}
		engine := newEngine(kv)

		code, err := engine.Shorten(context.Background(), demoApp(), testURI)

		require.NoError(t, err)
		assert.Equal(t, "WiNnEr", code)

		stored, err := mem.Get(context.Background(), "demo:uri:"+testURI)
		require.NoError(t, err)
		assert.Equal(t, "WiNnEr", stored)
	})

	t.Run("propagates forward write failure", func(t *testing.T) {
		kv := &failingKV{KV: store.NewMemoryStore(), setErr: errStore}
		engine := newEngine(kv)

		code, err := engine.Shorten(context.Background(), demoApp(), testURI)

		assert.Empty(t, code)
		assert.ErrorIs(t, err, errStore)
	})

	t.Run("propagates reverse lookup failure", func(t *testing.T) {
		kv := &failingKV{KV: store.NewMemoryStore(), getErr: errStore}
		engine := newEngine(kv)

		_, err := engine.Shorten(context.Background(), demoApp(), testURI)

		assert.ErrorIs(t, err, errStore)
	})

	t.Run("codes are unique across uris", func(t *testing.T) {
		mem := store.NewMemoryStore()
		engine := newEngine(mem)
		app := demoApp()

		seen := make(map[string]bool)

		for i := range 50 {
			uri := fmt.Sprintf("https://long.example/page/%d", i)

			code, err := engine.Shorten(context.Background(), app, uri)
			require.NoError(t, err)
			assert.False(t, seen[code], "code %q issued twice", code)
			seen[code] = true

			resolved, err := engine.Resolve(context.Background(), app, code)
			require.NoError(t, err)
			assert.Equal(t, uri, resolved)
		}
	})
}

func TestEngine_Resolve(t *testing.T) {
	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		engine := newEngine(store.NewMemoryStore())

		uri, err := engine.Resolve(context.Background(), demoApp(), "doesnotexist")

		assert.Empty(t, uri)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("tenants are isolated", func(t *testing.T) {
		mem := store.NewMemoryStore()
		engine := newEngine(mem)

		appA := demoApp()
		appB := &tenant.Application{
			ID:         "other",
			Key:        "xyz",
			URL:        "https://o.example.com",
			Characters: tenant.DefaultCharacters,
			MaxLength:  5,
		}

		code, err := engine.Shorten(context.Background(), appA, testURI)
		require.NoError(t, err)

		_, err = engine.Resolve(context.Background(), appB, code)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

// The four-element keyspace scenario: alphabet AB, length 2.
func TestEngine_SmallKeyspace(t *testing.T) {
	app := &tenant.Application{
		ID:         "demo",
		Key:        "abc",
		URL:        "https://s.example.com",
		Characters: "AB",
		MaxLength:  2,
	}

	mem := store.NewMemoryStore()
	engine := newEngine(mem)

	code, err := engine.Shorten(context.Background(), app, "https://long.example/x")
	require.NoError(t, err)
	assert.Contains(t, []string{"AA", "AB", "BA", "BB"}, code)

	again, err := engine.Shorten(context.Background(), app, "https://long.example/x")
	require.NoError(t, err)
	assert.Equal(t, code, again)

	for _, unused := range []string{"AA", "AB", "BA", "BB"} {
		if unused == code {
			continue
		}

		_, err := engine.Resolve(context.Background(), app, unused)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	}
}

func TestShortURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		code     string
		expected string
	}{
		{
			name:     "base url without trailing slash",
			baseURL:  "https://s.example.com",
			code:     "aB3x9",
			expected: "https://s.example.com/aB3x9",
		},
		{
			name:     "base url with trailing slash",
			baseURL:  "https://s.example.com/",
			code:     "aB3x9",
			expected: "https://s.example.com/aB3x9",
		},
		{
			name:     "base url with path",
			baseURL:  "https://example.com/s/",
			code:     "x",
			expected: "https://example.com/s/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &tenant.Application{ID: "demo", URL: tt.baseURL}

			assert.Equal(t, tt.expected, shortener.ShortURL(app, tt.code))
		})
	}
}
