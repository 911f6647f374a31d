package bento

import (
	"encoding/hex"
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

const (
	inspKeyA = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	inspKeyB = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	inspKeyC = "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"
)

func TestInspectMulti(t *testing.T) {
	r, err := Inspect("multi(2," + inspKeyA + "," + inspKeyB + "," + inspKeyC + ")")
	require.NoError(t, err)

	require.Equal(t, mkey.KeyTypePublic, r.KeyType)
	require.Equal(t, ScriptContexts{Bare: true, Legacy: true, SegwitV0: true}, r.ValidScriptContexts)
	require.Equal(t, ScriptContexts{Bare: true, Legacy: true, SegwitV0: true}, r.SaneMiniscript)
	require.Equal(t, 105, r.ScriptSize)
	require.True(t, r.RequiresSig)
	require.False(t, r.HasMixedTimelocks)
	require.False(t, r.HasRepeatedKeys)

	require.NotNil(t, r.MaxSatisfactionWitnessElements)
	require.Equal(t, 3, *r.MaxSatisfactionWitnessElements)
	require.NotNil(t, r.MaxSatisfactionSizeNonSegwit)
	require.NotNil(t, r.MaxSatisfactionSizeSegwit)

	require.Equal(t,
		"52"+"21"+inspKeyA+"21"+inspKeyB+"21"+inspKeyC+"53ae",
		hex.EncodeToString(r.Script))
	require.NotNil(t, r.Policy)
	require.Equal(t, "thresh(2,pk("+inspKeyA+"),pk("+inspKeyB+"),pk("+inspKeyC+"))", *r.Policy)
}

func TestInspectMultiJSON(t *testing.T) {
	r, err := Inspect("multi(2," + inspKeyA + "," + inspKeyB + "," + inspKeyC + ")")
	require.NoError(t, err)
	testutil.RequireEqualJSONFile(t, "inspect_multi.json", r)
}

func TestInspectTimelockBranches(t *testing.T) {
	r, err := Inspect("andor(pk(" + inspKeyB + "),older(10),pk(" + inspKeyA + "))")
	require.NoError(t, err)
	require.True(t, r.RequiresSig)
	require.False(t, r.HasMixedTimelocks)
	require.True(t, r.NonMalleable.SegwitV0)
	require.True(t, r.SaneMiniscript.SegwitV0)
	require.Equal(t, "thresh(1,thresh(2,pk("+inspKeyB+"),older(10)),pk("+inspKeyA+"))", *r.Policy)
}

func TestInspectPlaceholderFallback(t *testing.T) {
	r, err := Inspect("or_d(pk(alice),and_v(v:pk(bob),older(144)))")
	require.NoError(t, err)
	require.Equal(t, mkey.KeyTypeString, r.KeyType)
	// Placeholder keys have no byte form, so there is no script.
	require.Empty(t, r.Script)
	require.True(t, r.RequiresSig)
	require.True(t, r.ValidScriptContexts.SegwitV0)
}

func TestInspectInvalid(t *testing.T) {
	_, err := Inspect("not a miniscript")
	require.ErrorIs(t, err, ErrInvalidEverywhere)
}

func TestParseScript(t *testing.T) {
	raw, err := hex.DecodeString("52" + "21" + inspKeyA + "21" + inspKeyB + "21" + inspKeyC + "53ae")
	require.NoError(t, err)
	r, err := ParseScript(raw)
	require.NoError(t, err)
	require.Equal(t, ScriptContexts{Bare: true, Legacy: true, SegwitV0: true}, r.ValidScriptContexts)
	require.Equal(t, 105, r.ScriptSize)

	_, err = ParseScript([]byte{0xfe})
	require.ErrorIs(t, err, ErrInvalidEverywhere)
}

func TestDescribePolicyConcrete(t *testing.T) {
	r, err := DescribePolicy("or(pk(alice),and(pk(bob),older(10)))")
	require.NoError(t, err)
	require.True(t, r.IsConcrete)
	require.Equal(t, mkey.KeyTypeString, r.KeyType)
	require.False(t, r.IsTrivial)
	require.False(t, r.IsUnsatisfiable)
	require.Equal(t, []uint32{10}, r.RelativeTimelocks)
	require.Equal(t, 2, r.NKeys)
	require.Equal(t, 1, r.MinimumNKeys)

	require.NotNil(t, r.Miniscript)
	require.NotNil(t, r.Miniscript.SegwitV0)
	require.Equal(t, "andor(pk(bob),older(10),pk(alice))", *r.Miniscript.SegwitV0)
}

func TestDescribePolicySemantic(t *testing.T) {
	r, err := DescribePolicy("and(pk(alice),TRIVIAL)")
	require.NoError(t, err)
	require.False(t, r.IsConcrete)
	require.Nil(t, r.Miniscript)
	require.Equal(t, "pk(alice)", r.Normalized)

	r, err = DescribePolicy("and(after(100),after(50))")
	require.NoError(t, err)
	require.True(t, r.IsUnsatisfiable)

	_, err = DescribePolicy("frob(1)")
	require.Error(t, err)
}

func TestCompilePolicy(t *testing.T) {
	cs, err := Compile("pk("+inspKeyA+")", script.SegwitV0)
	require.NoError(t, err)
	require.Equal(t, "21"+inspKeyA+"ac", hex.EncodeToString(cs.Hex))
	require.Equal(t, inspKeyA+" OP_CHECKSIG", cs.Asm)

	_, err = Compile("pk(alice)", script.SegwitV0)
	require.Error(t, err)
}

func TestReportCombine(t *testing.T) {
	size := 10
	a := &Report{
		KeyType:             mkey.KeyTypePublic,
		ValidScriptContexts: ScriptContexts{Bare: true},
		ScriptSize:          35,
	}
	b := &Report{
		KeyType:                   mkey.KeyTypePublic,
		ValidScriptContexts:       ScriptContexts{SegwitV0: true},
		ScriptSize:                40,
		MaxSatisfactionSizeSegwit: &size,
	}
	var c *Report
	c = c.Combine(a).Combine(b)
	require.Equal(t, ScriptContexts{Bare: true, SegwitV0: true}, c.ValidScriptContexts)
	// Scalars keep the first report's value.
	require.Equal(t, 35, c.ScriptSize)
	require.Equal(t, &size, c.MaxSatisfactionSizeSegwit)
}
