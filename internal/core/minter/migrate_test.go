package minter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"2.0.0", "1.9.9", 1},
		{"0.9", "1.0.0", -1},
		{"1.10.0", "1.9.0", 1},
	}
	for _, tc := range cases {
		got, err := compareVersions(tc.a, tc.b)
		require.NoError(t, err, "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)
	}

	_, err := compareVersions("1.x", "1.0")
	require.Error(t, err)
}

func TestSanitizeNftData(t *testing.T) {
	data, err := sanitizeNftData(NftData{Type: OffChainMetadata, TokenURI: "  ipfs://QmHash  "})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmHash", data.TokenURI)

	_, err = sanitizeNftData(NftData{Type: OffChainMetadata, TokenURI: "https://gateway.io/QmHash"})
	require.ErrorIs(t, err, ErrInvalidBaseTokenURI)

	_, err = sanitizeNftData(NftData{Type: OffChainMetadata})
	require.ErrorIs(t, err, ErrInvalidBaseTokenURI)

	// On-chain metadata may omit the extension entirely.
	data, err = sanitizeNftData(NftData{Type: OnChainMetadata})
	require.NoError(t, err)
	assert.Nil(t, data.Extension)

	data, err = sanitizeNftData(NftData{
		Type:      OnChainMetadata,
		Extension: &NftExtension{Image: "ipfs://QmImage"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmImage", data.Extension.Image)
}
