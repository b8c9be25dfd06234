package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mizman/internal/records"
	"mizman/internal/spirit"
	"mizman/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	s := NewService(storage.NewMemoryStore())
	assert.Equal(t, Defaults(), s.Load(context.Background()))
	assert.Equal(t, "$", s.Current().CurrencySymbol())
}

func TestLoadStoredValues(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, records.NationalityKey, "India"))
	require.NoError(t, kv.Set(ctx, records.ThemeKey, "light"))
	require.NoError(t, kv.Set(ctx, records.PreferredReligionKey, "Hinduism"))

	snap := NewService(kv).Load(ctx)
	assert.Equal(t, Snapshot{Nationality: India, Currency: "INR", Theme: Light, Tradition: spirit.Hinduism}, snap)
}

func TestLoadIgnoresUnknownValues(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, records.NationalityKey, "Atlantis"))
	require.NoError(t, kv.Set(ctx, records.CurrencyKey, "EUR"))
	require.NoError(t, kv.Set(ctx, records.ThemeKey, "sepia"))

	assert.Equal(t, Defaults(), NewService(kv).Load(ctx))
}

func TestSetNationalitySwitchesCurrency(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := NewService(kv)
	s.Load(ctx)

	snap, err := s.SetNationality(ctx, Pakistan)
	require.NoError(t, err)
	assert.Equal(t, "PKR", snap.Currency)
	assert.Equal(t, "PKR", snap.CurrencySymbol())

	snap, err = s.SetCurrency(ctx, "aed")
	require.NoError(t, err)
	assert.Equal(t, "AED", snap.Currency)
	assert.Equal(t, Pakistan, snap.Nationality)

	reloaded := NewService(kv).Load(ctx)
	assert.Equal(t, Pakistan, reloaded.Nationality)
	assert.Equal(t, "AED", reloaded.Currency)

	_, err = s.SetNationality(ctx, "Atlantis")
	assert.ErrorIs(t, err, ErrUnknownNationality)
	_, err = s.SetCurrency(ctx, "EUR")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewService(storage.NewMemoryStore())
	s.Load(ctx)

	ch, cancel := s.Subscribe()
	_, err := s.SetTheme(ctx, Light)
	require.NoError(t, err)
	_, err = s.SetTradition(ctx, spirit.Christian)
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, Light, got.Theme)
	assert.Equal(t, spirit.Christian, got.Tradition, "only the latest snapshot is kept")

	cancel()
	_, open := <-ch
	assert.False(t, open)
	cancel()

	_, err = s.SetTheme(ctx, Dark)
	require.NoError(t, err)
}

func TestParsers(t *testing.T) {
	n, err := ParseNationality("dubai")
	require.NoError(t, err)
	assert.Equal(t, Dubai, n)

	th, err := ParseTheme(" DARK ")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)

	_, err = ParseTheme("blue")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	assert.Equal(t, []string{"PKR", "INR", "USD", "AED"}, Currencies())
}
