package mkey

import (
	"testing"

	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

const (
	compressedHex   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	uncompressedHex = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	xonlyHex = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func TestParseCompressed(t *testing.T) {
	key, err := Parse(compressedHex)
	require.NoError(t, err)
	require.Equal(t, compressedHex, key.String())
	testutil.RequireEqualHexBytes(t, compressedHex, key.Serialize(33))
	testutil.RequireEqualHexBytes(t, xonlyHex, key.Serialize(32))
	require.True(t, key.IsConcrete())
	require.False(t, key.IsXOnly())
}

func TestParseUncompressed(t *testing.T) {
	key, err := Parse(uncompressedHex)
	require.NoError(t, err)
	// Keys are normalized to their compressed form.
	require.Equal(t, compressedHex, key.String())
}

func TestParseXOnly(t *testing.T) {
	key, err := Parse(xonlyHex)
	require.NoError(t, err)
	require.Equal(t, xonlyHex, key.String())
	testutil.RequireEqualHexBytes(t, xonlyHex, key.Serialize(32))
	require.True(t, key.IsXOnly())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "zz", "0279be66", "A"} {
		_, err := Parse(s)
		require.Error(t, err, s)
	}
}

func TestFromBytes(t *testing.T) {
	raw, err := Parse(compressedHex)
	require.NoError(t, err)
	back, err := FromBytes(raw.Serialize(33))
	require.NoError(t, err)
	require.True(t, raw.Equal(back))
}

func TestPlaceholder(t *testing.T) {
	p, err := ParsePlaceholder("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", p.String())
	require.Nil(t, p.Serialize(33))
	require.False(t, p.IsConcrete())

	for _, s := range []string{"", "a,b", "a(b", "1@2", "a b"} {
		_, err := ParsePlaceholder(s)
		require.Error(t, err, s)
	}
}

func TestParseAsAndTypeOf(t *testing.T) {
	key, err := ParseAs(compressedHex, KeyTypePublic)
	require.NoError(t, err)
	require.Equal(t, KeyTypePublic, TypeOf(key))

	p, err := ParseAs("A", KeyTypeString)
	require.NoError(t, err)
	require.Equal(t, KeyTypeString, TypeOf(p))

	_, err = ParseAs("A", KeyTypePublic)
	require.Error(t, err)
}

func TestEqualAndLess(t *testing.T) {
	a, err := Parse(compressedHex)
	require.NoError(t, err)
	b, err := Parse("02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5")
	require.NoError(t, err)
	require.True(t, a.Equal(a))
	require.False(t, a.Equal(b))
	require.True(t, a.Less(b))
	require.False(t, a.Equal(Placeholder("A")))
}
