package script

import (
	"testing"

	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

func TestScriptBuilder(t *testing.T) {
	sc := new(Script)
	sc.PushOp(OP_DUP).PushOp(OP_HASH160)
	sc.PushData(make([]byte, 20))
	sc.PushOp(OP_EQUALVERIFY).PushOp(OP_CHECKSIG)
	testutil.RequireEqualHexBytes(t,
		"76a914000000000000000000000000000000000000000088ac", sc.Bytes())
	require.Equal(t, 25, sc.Size())
}

func TestPushNumMinimal(t *testing.T) {
	tests := []struct {
		n   int64
		hex string
	}{
		{0, "00"},
		{1, "51"},
		{16, "60"},
		{17, "0111"},
		{100, "0164"},
		{127, "017f"},
		{128, "028000"},
		{1000, "02e803"},
		{65535, "03ffff00"},
		{500000000, "040065cd1d"},
	}
	for _, tt := range tests {
		sc := new(Script)
		sc.PushNum(tt.n)
		testutil.RequireEqualHexBytes(t, tt.hex, sc.Bytes())
	}
}

func TestPushDataPrefixes(t *testing.T) {
	sc := new(Script)
	sc.PushData(make([]byte, 75))
	require.Equal(t, byte(75), sc.Bytes()[0])

	sc = new(Script)
	sc.PushData(make([]byte, 76))
	require.Equal(t, byte(OP_PUSHDATA1), sc.Bytes()[0])
	require.Equal(t, byte(76), sc.Bytes()[1])

	sc = new(Script)
	sc.PushData(make([]byte, 300))
	require.Equal(t, byte(OP_PUSHDATA2), sc.Bytes()[0])
}

func TestParseTokens(t *testing.T) {
	sc := new(Script)
	sc.PushNum(2)
	sc.PushData(make([]byte, 33))
	sc.PushOp(OP_CHECKMULTISIG)
	toks, err := Parse(sc.Bytes())
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, OP_2, toks[0].Op)
	require.Len(t, toks[1].Data, 33)
	require.Equal(t, OP_CHECKMULTISIG, toks[2].Op)
}

func TestParseTruncatedPush(t *testing.T) {
	_, err := Parse([]byte{0x21, 0x00})
	require.Error(t, err)
	_, err = Parse([]byte{byte(OP_PUSHDATA1)})
	require.Error(t, err)
}

func TestTokenNum(t *testing.T) {
	toks, err := Parse([]byte{byte(OP_0), byte(OP_16), 0x01, 0x64, 0x02, 0xe8, 0x03})
	require.NoError(t, err)
	require.Len(t, toks, 4)

	n, ok := toks[0].Num()
	require.True(t, ok)
	require.Equal(t, int64(0), n)

	n, ok = toks[1].Num()
	require.True(t, ok)
	require.Equal(t, int64(16), n)

	n, ok = toks[2].Num()
	require.True(t, ok)
	require.Equal(t, int64(100), n)

	n, ok = toks[3].Num()
	require.True(t, ok)
	require.Equal(t, int64(1000), n)

	// 0x05 0x00 is a non-minimal encoding of 5.
	toks, err = Parse([]byte{0x02, 0x05, 0x00})
	require.NoError(t, err)
	_, ok = toks[0].Num()
	require.False(t, ok)
}

func TestScriptString(t *testing.T) {
	sc := new(Script)
	sc.PushOp(OP_DUP).PushOp(OP_HASH160)
	sc.PushData([]byte{0xab, 0xcd})
	sc.PushOp(OP_EQUALVERIFY)
	require.Equal(t, "OP_DUP OP_HASH160 abcd OP_EQUALVERIFY", sc.String())
}

func TestOpcodeCheckSigAdd(t *testing.T) {
	require.Equal(t, OP_NOP10, OP_CHECKSIGADD)
	require.Equal(t, "OP_CHECKSIGADD", OP_CHECKSIGADD.String())
}

func TestContextFromName(t *testing.T) {
	for _, name := range []string{"bare", "legacy", "segwitv0", "tapscript"} {
		ctx, ok := FromName(name)
		require.True(t, ok)
		require.Equal(t, name, ctx.Name)
	}
	ctx, ok := FromName("p2sh")
	require.True(t, ok)
	require.Equal(t, Legacy, ctx)
	_, ok = FromName("segwit")
	require.False(t, ok)
}

func TestContextProperties(t *testing.T) {
	require.Equal(t, 34, Legacy.KeyPushSize())
	require.Equal(t, 33, Tapscript.KeyPushSize())
	require.True(t, Legacy.MultiAllowed())
	require.False(t, Tapscript.MultiAllowed())
	require.True(t, Tapscript.MultiAAllowed())
	require.False(t, SegwitV0.MultiAAllowed())
}
