package miniscript

import (
	"encoding/hex"
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	return raw
}

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		expr string
		hex  string
	}{
		{"pk(" + testKeyA + ")", "21" + testKeyA + "ac"},
		{"pkh(" + testKeyA + ")", "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"},
		{"older(10)", "5ab2"},
		{"and_v(v:pk(" + testKeyA + "),older(10))", "21" + testKeyA + "ad5ab2"},
		{"andor(pk(" + testKeyA + "),older(10),pk(" + testKeyB + "))",
			"21" + testKeyA + "ac" + "64" + "21" + testKeyB + "ac" + "67" + "5ab2" + "68"},
		{"or_d(pk(" + testKeyA + "),and_v(v:pk(" + testKeyB + "),older(10)))",
			"21" + testKeyA + "ac" + "7364" + "21" + testKeyB + "ad" + "5ab2" + "68"},
		{"multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")",
			"52" + "21" + testKeyA + "21" + testKeyB + "21" + testKeyC + "53ae"},
		{"thresh(2,pk(" + testKeyA + "),s:pk(" + testKeyB + "),s:pk(" + testKeyC + "))",
			"21" + testKeyA + "ac" + "7c21" + testKeyB + "ac93" + "7c21" + testKeyC + "ac93" + "5287"},
	}
	for _, tt := range tests {
		n := mustParseInsane(t, tt.expr, script.SegwitV0)
		sc, ok := n.Encode()
		require.True(t, ok, tt.expr)
		testutil.RequireEqualHexBytes(t, tt.hex, sc.Bytes())
	}
}

func TestEncodeMultiA(t *testing.T) {
	n, err := ParseInsane("multi_a(1,"+testXKeyA+")", script.Tapscript, mkey.KeyTypePublic)
	require.NoError(t, err)
	sc, ok := n.Encode()
	require.True(t, ok)
	testutil.RequireEqualHexBytes(t, "20"+testXKeyA+"ac519c", sc.Bytes())
}

func TestEncodePlaceholders(t *testing.T) {
	n, err := ParseInsane("pk(A)", script.SegwitV0, mkey.KeyTypeString)
	require.NoError(t, err)
	_, ok := n.Encode()
	require.False(t, ok)
}

func TestDecodeRoundTrip(t *testing.T) {
	exprs := []string{
		"pk(" + testKeyA + ")",
		"older(4194305)",
		"after(500000000)",
		"sha256(" + testEmptySha256 + ")",
		"and_v(v:pk(" + testKeyA + "),older(10))",
		"and_b(pk(" + testKeyA + "),s:pk(" + testKeyB + "))",
		"andor(pk(" + testKeyA + "),older(10),pk(" + testKeyB + "))",
		"or_b(pk(" + testKeyA + "),sdv:older(10))",
		"and_v(or_c(pk(" + testKeyA + "),v:older(10)),1)",
		"or_d(pk(" + testKeyA + "),and_v(v:pk(" + testKeyB + "),older(10)))",
		"or_i(pk(" + testKeyA + "),pk(" + testKeyB + "))",
		"multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")",
		"thresh(2,pk(" + testKeyA + "),s:pk(" + testKeyB + "),a:pk(" + testKeyC + "))",
		"j:pk(" + testKeyA + ")",
		"and_v(v:pk(" + testKeyA + "),and_v(v:pk(" + testKeyB + "),older(10)))",
		"andor(pk(" + testKeyA + "),older(10),0)",
	}
	for _, expr := range exprs {
		n := mustParseInsane(t, expr, script.SegwitV0)
		sc, ok := n.Encode()
		require.True(t, ok, expr)
		back, err := DecodeInsane(sc.Bytes(), script.SegwitV0)
		require.NoError(t, err, expr)
		require.Equal(t, n.String(), back.String(), expr)
	}
}

func TestDecodeRoundTripTapscript(t *testing.T) {
	exprs := []string{
		"pk(" + testXKeyA + ")",
		"multi_a(1," + testXKeyA + ")",
	}
	for _, expr := range exprs {
		n, err := ParseInsane(expr, script.Tapscript, mkey.KeyTypePublic)
		require.NoError(t, err, expr)
		sc, ok := n.Encode()
		require.True(t, ok, expr)
		back, err := DecodeInsane(sc.Bytes(), script.Tapscript)
		require.NoError(t, err, expr)
		require.Equal(t, n.String(), back.String(), expr)
	}
}

func TestDecodeAmbiguousWrapN(t *testing.T) {
	// n:and_v(X,Y) and and_v(X,n:Y) produce identical scripts; the
	// decoder settles on the innermost placement.
	n := mustParseInsane(t, "n:and_v(v:pk("+testKeyA+"),older(10))", script.SegwitV0)
	sc, ok := n.Encode()
	require.True(t, ok)
	back, err := DecodeInsane(sc.Bytes(), script.SegwitV0)
	require.NoError(t, err)
	require.Equal(t, "and_v(v:pk("+testKeyA+"),n:older(10))", back.String())
}

func TestDecodeRawPkH(t *testing.T) {
	// A bare key-hash check decodes to the raw pkh form.
	raw := "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"
	n, err := DecodeInsane(mustHex(t, raw), script.SegwitV0)
	require.NoError(t, err)
	require.Equal(t, "pkh(751e76e8199196d454941c45d1b3a323f1433bd6)", n.String())
	sc, ok := n.Encode()
	require.True(t, ok)
	testutil.RequireEqualHexBytes(t, raw, sc.Bytes())
}

func TestDecodeRejectsNonMiniscript(t *testing.T) {
	bad := []string{
		"ac",            // CHECKSIG with no key
		"6868",          // unbalanced ENDIF
		"21" + testKeyA, // bare key push
	}
	for _, s := range bad {
		_, err := DecodeInsane(mustHex(t, s), script.SegwitV0)
		require.Error(t, err, s)
	}
}

func TestDecodeSanity(t *testing.T) {
	// Decode applies the full sanity check, DecodeInsane does not.
	n := mustParseInsane(t, "older(10)", script.SegwitV0)
	sc, ok := n.Encode()
	require.True(t, ok)
	_, err := DecodeInsane(sc.Bytes(), script.SegwitV0)
	require.NoError(t, err)
	_, err = Decode(sc.Bytes(), script.SegwitV0)
	require.Error(t, err)
}
