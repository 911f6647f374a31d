package bcrypto

import (
	"encoding/hex"
	"testing"

	"github.com/mirukoto/bento/testutil"
	"github.com/stretchr/testify/require"
)

const genPointHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestSHA256(t *testing.T) {
	testutil.RequireEqualHexBytes(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256(nil))
	testutil.RequireEqualHexBytes(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		SHA256([]byte("abc")))
}

func TestHash256(t *testing.T) {
	testutil.RequireEqualHexBytes(t,
		"5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
		Hash256(nil))
}

func TestHash160(t *testing.T) {
	raw, err := hex.DecodeString(genPointHex)
	require.NoError(t, err)
	testutil.RequireEqualHexBytes(t,
		"751e76e8199196d454941c45d1b3a323f1433bd6", Hash160(raw))
}

func TestRipemd160(t *testing.T) {
	testutil.RequireEqualHexBytes(t,
		"9c1185a5c5e9fc54612808977ee8f548b2258d31", Ripemd160(nil))
}
