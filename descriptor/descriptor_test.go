package descriptor

import (
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

const (
	descKeyA = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	descKeyB = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"

	descKeyAHash = "751e76e8199196d454941c45d1b3a323f1433bd6"

	// BIP32 test vector 1, the public key at M/0h.
	descXpub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"
	// Its child at index 1.
	descXpubChild1 = "03501e454bf00751f24b1b489aa925215d66af2234e3891c3b21a52bedb3cd711c"
)

func mustParseDesc(t *testing.T, s string) *Descriptor {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestParseRoundTrip(t *testing.T) {
	descs := []string{
		"pk(" + descKeyA + ")",
		"pkh(" + descKeyA + ")",
		"wpkh(" + descKeyA + ")",
		"sh(wpkh(" + descKeyA + "))",
		"sh(wsh(pk(" + descKeyA + ")))",
		"wsh(and_v(v:pk(" + descKeyA + "),older(10)))",
		"sh(multi(2," + descKeyA + "," + descKeyB + "))",
		"sh(pkh(" + descKeyA + "))",
	}
	for _, desc := range descs {
		require.Equal(t, desc, mustParseDesc(t, desc).String(), desc)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"pk(" + descKeyA + "",
		"sh(sh(pk(" + descKeyA + ")))",
		"frob(" + descKeyA + ")",
		"wsh(older(0))",
	}
	for _, desc := range bad {
		_, err := Parse(desc)
		require.Error(t, err, desc)
	}
}

func TestScriptPubKey(t *testing.T) {
	tests := []struct {
		desc string
		spk  string
	}{
		{"pk(" + descKeyA + ")", "21" + descKeyA + "ac"},
		{"pkh(" + descKeyA + ")", "76a914" + descKeyAHash + "88ac"},
		{"wpkh(" + descKeyA + ")", "0014" + descKeyAHash},
		{"wsh(pk(" + descKeyA + "))",
			"00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262"},
		{"sh(wpkh(" + descKeyA + "))", "a914bcfeb728b584253d5f3f70bcb780e9ef218a68f487"},
		{"sh(pkh(" + descKeyA + "))", "a914cd7b44d0b03f2d026d1e586d7ae18903b0d385f687"},
	}
	for _, tt := range tests {
		spk, err := mustParseDesc(t, tt.desc).ScriptPubKey()
		require.NoError(t, err, tt.desc)
		testutil.RequireEqualHexBytes(t, tt.spk, spk.Bytes())
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		desc string
		addr string
	}{
		{"pkh(" + descKeyA + ")", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"},
		{"wpkh(" + descKeyA + ")", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{"wsh(pk(" + descKeyA + "))",
			"bc1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3qccfmv3"},
		{"sh(wpkh(" + descKeyA + "))", "3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN"},
	}
	for _, tt := range tests {
		addr, err := mustParseDesc(t, tt.desc).Address(NetworkMain)
		require.NoError(t, err, tt.desc)
		require.Equal(t, tt.addr, addr, tt.desc)
	}

	_, err := mustParseDesc(t, "pk("+descKeyA+")").Address(NetworkMain)
	require.Error(t, err)
}

func TestAddressTestnet(t *testing.T) {
	addr, err := mustParseDesc(t, "wpkh("+descKeyA+")").Address(NetworkTest)
	require.NoError(t, err)
	require.Equal(t, "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", addr)
}

func TestUnsignedScriptSig(t *testing.T) {
	ss, err := mustParseDesc(t, "sh(wpkh("+descKeyA+"))").UnsignedScriptSig()
	require.NoError(t, err)
	testutil.RequireEqualHexBytes(t, "160014"+descKeyAHash, ss.Bytes())

	ss, err = mustParseDesc(t, "wpkh("+descKeyA+")").UnsignedScriptSig()
	require.NoError(t, err)
	require.Equal(t, 0, ss.Size())
}

func TestWitnessScript(t *testing.T) {
	ws, err := mustParseDesc(t, "wsh(pk("+descKeyA+"))").WitnessScript()
	require.NoError(t, err)
	testutil.RequireEqualHexBytes(t, "21"+descKeyA+"ac", ws.Bytes())

	_, err = mustParseDesc(t, "wpkh("+descKeyA+")").WitnessScript()
	require.Error(t, err)
}

func TestMaxSatisfactionWeight(t *testing.T) {
	tests := []struct {
		desc   string
		weight int
	}{
		{"pk(" + descKeyA + ")", 296},
		{"pkh(" + descKeyA + ")", 436},
		{"wpkh(" + descKeyA + ")", 109},
		{"wsh(pk(" + descKeyA + "))", 109},
	}
	for _, tt := range tests {
		w, err := mustParseDesc(t, tt.desc).MaxSatisfactionWeight()
		require.NoError(t, err, tt.desc)
		require.Equal(t, tt.weight, w, tt.desc)
	}
}

func TestDescriptorPolicy(t *testing.T) {
	pol, err := mustParseDesc(t, "wsh(and_v(v:pk("+descKeyA+"),older(10)))").Policy()
	require.NoError(t, err)
	require.Equal(t, "thresh(2,pk("+descKeyA+"),older(10))", pol.String())

	pol, err = mustParseDesc(t, "wpkh("+descKeyA+")").Policy()
	require.NoError(t, err)
	require.Equal(t, "pk("+descKeyA+")", pol.String())
}

func TestKeyDerivation(t *testing.T) {
	d := mustParseDesc(t, "pkh("+descXpub+"/1)")
	require.Equal(t, "pkh("+descXpubChild1+")", d.String())

	d = mustParseDesc(t, "wsh(pk("+descXpub+"/1))")
	require.Equal(t, "wsh(pk("+descXpubChild1+"))", d.String())

	// Hardened steps cannot be derived from a public key.
	_, err := Parse("pkh(" + descXpub + "/1h)")
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	info, err := Describe("wpkh("+descKeyA+")", NetworkMain)
	require.NoError(t, err)
	require.Equal(t, mkey.KeyTypePublic, info.KeyType)
	require.NotNil(t, info.Address)
	require.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", *info.Address)
	testutil.RequireEqualHexBytes(t, "0014"+descKeyAHash, info.ScriptPubKey)
	require.NotNil(t, info.MaxSatisfactionWeight)
	require.Equal(t, 109, *info.MaxSatisfactionWeight)
	require.NotNil(t, info.Policy)
	require.Equal(t, "pk("+descKeyA+")", *info.Policy)
}

func TestDescribePlaceholders(t *testing.T) {
	info, err := Describe("wsh(and_v(v:pk(alice),older(144)))", NetworkMain)
	require.NoError(t, err)
	require.Equal(t, mkey.KeyTypeString, info.KeyType)
	require.Nil(t, info.Address)
	require.Empty(t, info.ScriptPubKey)
	require.NotNil(t, info.Policy)
	require.Equal(t, "thresh(2,pk(alice),older(144))", *info.Policy)
}

func TestNetworkFromName(t *testing.T) {
	for _, name := range []string{"mainnet", "testnet", "regtest"} {
		n, err := NetworkFromName(name)
		require.NoError(t, err)
		require.Equal(t, name, n.Name)
	}
	_, err := NetworkFromName("signet")
	require.Error(t, err)
}
