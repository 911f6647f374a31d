package miniscript

import (
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
	"github.com/stretchr/testify/require"
)

const (
	testKeyA = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	testKeyB = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	testKeyC = "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"

	// 32-byte x-only form of testKeyA for tapscript.
	testXKeyA = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	testEmptySha256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func TestParseRoundTrip(t *testing.T) {
	exprs := []string{
		"pk(" + testKeyA + ")",
		"pkh(" + testKeyA + ")",
		"older(10)",
		"after(100)",
		"sha256(" + testEmptySha256 + ")",
		"and_v(v:pk(" + testKeyA + "),pk(" + testKeyB + "))",
		"and_b(pk(" + testKeyA + "),s:pk(" + testKeyB + "))",
		"or_d(pk(" + testKeyA + "),and_v(v:pk(" + testKeyB + "),older(10)))",
		"or_i(pk(" + testKeyA + "),pk(" + testKeyB + "))",
		"andor(pk(" + testKeyA + "),older(10),pk(" + testKeyB + "))",
		"thresh(2,pk(" + testKeyA + "),s:pk(" + testKeyB + "),s:pk(" + testKeyC + "))",
		"multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")",
		"j:and_v(v:pkh(" + testKeyA + "),older(10))",
		"dv:older(144)",
	}
	for _, expr := range exprs {
		node, err := ParseInsane(expr, script.SegwitV0, mkey.KeyTypePublic)
		require.NoError(t, err, expr)
		require.Equal(t, expr, node.String())
	}
}

func TestParseSugar(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"and_n(pk(" + testKeyA + "),older(10))", "andor(pk(" + testKeyA + "),older(10),0)"},
		{"t:or_c(pk(" + testKeyA + "),v:pk(" + testKeyB + "))", "and_v(or_c(pk(" + testKeyA + "),v:pk(" + testKeyB + ")),1)"},
		{"l:pk(" + testKeyA + ")", "or_i(0,pk(" + testKeyA + "))"},
		{"u:pk(" + testKeyA + ")", "or_i(pk(" + testKeyA + "),0)"},
		{"c:pk_k(" + testKeyA + ")", "pk(" + testKeyA + ")"},
		{"c:pk_h(" + testKeyA + ")", "pkh(" + testKeyA + ")"},
	}
	for _, tt := range tests {
		node, err := ParseInsane(tt.in, script.SegwitV0, mkey.KeyTypePublic)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.out, node.String())
	}
}

func TestParsePlaceholderKeys(t *testing.T) {
	node, err := ParseInsane("or_d(pk(A),and_v(v:pk(B),older(10)))", script.SegwitV0, mkey.KeyTypeString)
	require.NoError(t, err)
	require.Equal(t, "or_d(pk(A),and_v(v:pk(B),older(10)))", node.String())

	// Placeholders carry no serialization, so concrete parsing rejects them.
	_, err = ParseInsane("pk(A)", script.SegwitV0, mkey.KeyTypePublic)
	require.Error(t, err)
}

func TestParseContextRestrictions(t *testing.T) {
	multi := "multi(2," + testKeyA + "," + testKeyB + ")"
	for _, ctx := range []*script.Context{script.Bare, script.Legacy, script.SegwitV0} {
		_, err := ParseInsane(multi, ctx, mkey.KeyTypePublic)
		require.NoError(t, err, ctx.Name)
	}
	_, err := ParseInsane(multi, script.Tapscript, mkey.KeyTypePublic)
	require.Error(t, err)

	multiA := "multi_a(2," + testXKeyA + "," + testXKeyA + ")"
	_, err = ParseInsane(multiA, script.SegwitV0, mkey.KeyTypePublic)
	require.Error(t, err)

	// Tapscript wants 32-byte keys, everything else 33.
	_, err = ParseInsane("pk("+testXKeyA+")", script.Tapscript, mkey.KeyTypePublic)
	require.NoError(t, err)
	_, err = ParseInsane("pk("+testKeyA+")", script.Tapscript, mkey.KeyTypePublic)
	require.Error(t, err)
}

func TestParseTypeErrors(t *testing.T) {
	bad := []string{
		"",
		"pk()",
		"older(0)",
		"older(2147483648)",
		"v:pk(" + testKeyA + ")", // top level must be B
		"and_v(pk(" + testKeyA + "),pk(" + testKeyB + "))",      // left arg must be V
		"or_b(pk(" + testKeyA + "),pk(" + testKeyB + "))",       // right arg must be W
		"thresh(3,pk(" + testKeyA + "),s:pk(" + testKeyB + "))", // k > n
		"multi(0," + testKeyA + ")",
		"pk(" + testKeyA + ")trailing",
	}
	for _, expr := range bad {
		_, err := ParseInsane(expr, script.SegwitV0, mkey.KeyTypePublic)
		require.Error(t, err, expr)
	}
}

func TestParseSanity(t *testing.T) {
	// No signature requirement anywhere.
	_, err := Parse("older(10)", script.SegwitV0, mkey.KeyTypePublic)
	require.Error(t, err)

	// Same key on both branches.
	_, err = Parse("or_i(pk("+testKeyA+"),pk("+testKeyA+"))", script.SegwitV0, mkey.KeyTypePublic)
	require.Error(t, err)

	_, err = Parse("and_v(v:pk("+testKeyA+"),older(10))", script.SegwitV0, mkey.KeyTypePublic)
	require.NoError(t, err)
}

func TestNodeEqual(t *testing.T) {
	a, err := ParseInsane("and_v(v:pk("+testKeyA+"),older(10))", script.SegwitV0, mkey.KeyTypePublic)
	require.NoError(t, err)
	b, err := ParseInsane("and_v(v:pk("+testKeyA+"),older(10))", script.SegwitV0, mkey.KeyTypePublic)
	require.NoError(t, err)
	c, err := ParseInsane("and_v(v:pk("+testKeyB+"),older(10))", script.SegwitV0, mkey.KeyTypePublic)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
