package linkedin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveKeyHeaderWins(t *testing.T) {
	key, err := ResolveKey("header-key", "default-key")
	require.NoError(t, err)
	require.Equal(t, "header-key", key)
}

func TestResolveKeyFallsBackToDefault(t *testing.T) {
	key, err := ResolveKey("", "default-key")
	require.NoError(t, err)
	require.Equal(t, "default-key", key)

	key, err = ResolveKey("   ", "default-key")
	require.NoError(t, err)
	require.Equal(t, "default-key", key)
}

func TestResolveKeyTrimsHeaderValue(t *testing.T) {
	key, err := ResolveKey("  header-key  ", "default-key")
	require.NoError(t, err)
	require.Equal(t, "header-key", key)
}

func TestResolveKeyMissing(t *testing.T) {
	_, err := ResolveKey("", "")
	require.ErrorIs(t, err, ErrMissingKey)

	_, err = ResolveKey("   ", "\t")
	require.ErrorIs(t, err, ErrMissingKey)
}
