package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRingRoundTrip(t *testing.T) {
	r := NewFile(t.TempDir(), "test-pass")

	v, err := r.Lookup(WalletTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = r.Get(WalletTokenKey)
	assert.Error(t, err)

	require.NoError(t, r.Set(WalletTokenKey, "s3cret"))
	v, err = r.Get(WalletTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	require.NoError(t, r.Set(WalletTokenKey, "rotated"))
	v, err = r.Lookup(WalletTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "rotated", v)

	require.NoError(t, r.Delete(WalletTokenKey))
	v, err = r.Lookup(WalletTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}
