package miniscript

import (
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
	"github.com/stretchr/testify/require"
)

func mustParseInsane(t *testing.T, s string, ctx *script.Context) *Node {
	t.Helper()
	n, err := ParseInsane(s, ctx, mkey.KeyTypePublic)
	require.NoError(t, err)
	return n
}

func TestScriptSize(t *testing.T) {
	tests := []struct {
		expr string
		size int
	}{
		{"pk(" + testKeyA + ")", 35},
		{"pkh(" + testKeyA + ")", 25},
		{"older(10)", 2},
		{"after(100)", 3},
		{"after(1000)", 4},
		{"sha256(" + testEmptySha256 + ")", 39},
		{"multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")", 105},
		{"and_v(v:pk(" + testKeyA + "),older(10))", 37},
	}
	for _, tt := range tests {
		n := mustParseInsane(t, tt.expr, script.SegwitV0)
		require.Equal(t, tt.size, n.ScriptSize(), tt.expr)
		sc, ok := n.Encode()
		require.True(t, ok, tt.expr)
		require.Equal(t, tt.size, sc.Size(), tt.expr)
	}
}

func TestMaxSatisfaction(t *testing.T) {
	tests := []struct {
		expr  string
		elems int
		size  int
	}{
		// One signature element of at most 73 bytes.
		{"pk(" + testKeyA + ")", 1, 73},
		// Signature plus the 34-byte key push.
		{"pkh(" + testKeyA + ")", 2, 107},
		// Dummy element plus two signatures.
		{"multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")", 3, 147},
	}
	for _, tt := range tests {
		n := mustParseInsane(t, tt.expr, script.SegwitV0)
		elems, err := n.MaxSatisfactionWitnessElements()
		require.NoError(t, err, tt.expr)
		require.Equal(t, tt.elems, elems, tt.expr)
		size, err := n.MaxSatisfactionSize()
		require.NoError(t, err, tt.expr)
		require.Equal(t, tt.size, size, tt.expr)
	}
}

func TestMaxSatisfactionUnsatisfiable(t *testing.T) {
	n := mustParseInsane(t, "0", script.SegwitV0)
	_, err := n.MaxSatisfactionWitnessElements()
	require.Error(t, err)
	_, err = n.MaxSatisfactionSize()
	require.Error(t, err)
}

func TestRequiresSig(t *testing.T) {
	require.True(t, mustParseInsane(t, "pk("+testKeyA+")", script.SegwitV0).RequiresSig())
	require.True(t, mustParseInsane(t, "and_v(v:pk("+testKeyA+"),older(10))", script.SegwitV0).RequiresSig())
	require.True(t, mustParseInsane(t, "or_b(pk("+testKeyA+"),s:pk("+testKeyB+"))", script.SegwitV0).RequiresSig())
	require.False(t, mustParseInsane(t, "older(10)", script.SegwitV0).RequiresSig())
	require.False(t, mustParseInsane(t, "or_b(pk("+testKeyA+"),sdv:older(10))", script.SegwitV0).RequiresSig())
}

func TestHasMixedTimelocks(t *testing.T) {
	mixed := "and_v(v:after(100),and_v(v:older(10),pk(" + testKeyA + ")))"
	require.True(t, mustParseInsane(t, mixed, script.SegwitV0).HasMixedTimelocks())

	// The locks live on different branches, so either can be used alone.
	split := "or_i(and_v(v:after(100),pk(" + testKeyA + ")),and_v(v:older(10),pk(" + testKeyB + ")))"
	require.False(t, mustParseInsane(t, split, script.SegwitV0).HasMixedTimelocks())

	same := "and_v(v:after(100),and_v(v:after(200),pk(" + testKeyA + ")))"
	require.False(t, mustParseInsane(t, same, script.SegwitV0).HasMixedTimelocks())
}

func TestHasRepeatedKeys(t *testing.T) {
	require.True(t, mustParseInsane(t, "and_v(v:pk("+testKeyA+"),pk("+testKeyA+"))", script.SegwitV0).HasRepeatedKeys())
	require.False(t, mustParseInsane(t, "and_v(v:pk("+testKeyA+"),pk("+testKeyB+"))", script.SegwitV0).HasRepeatedKeys())
}

func TestSanityCheck(t *testing.T) {
	good := mustParseInsane(t, "andor(pk("+testKeyA+"),older(10),pk("+testKeyB+"))", script.SegwitV0)
	require.NoError(t, good.SanityCheck())

	noSig := mustParseInsane(t, "older(10)", script.SegwitV0)
	require.Error(t, noSig.SanityCheck())

	repeated := mustParseInsane(t, "or_i(pk("+testKeyA+"),pk("+testKeyA+"))", script.SegwitV0)
	require.Error(t, repeated.SanityCheck())

	mixed := mustParseInsane(t, "and_v(v:after(100),and_v(v:older(10),pk("+testKeyA+")))", script.SegwitV0)
	require.Error(t, mixed.SanityCheck())
}

func TestWithinResourceLimits(t *testing.T) {
	expr := "and_v(v:pk(" + testKeyA + "),and_v(v:pk(" + testKeyB + "),pk(" + testKeyC + ")))"
	n := mustParseInsane(t, expr, script.SegwitV0)
	require.True(t, n.WithinResourceLimits())

	// 105 script bytes fit in legacy's 520-byte ceiling.
	multi := "multi(2," + testKeyA + "," + testKeyB + "," + testKeyC + ")"
	require.True(t, mustParseInsane(t, multi, script.Legacy).WithinResourceLimits())
}
