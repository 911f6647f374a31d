// Package testutil holds assertion helpers shared by package tests.
package testutil

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireEqualHexBytes asserts that act encodes to the expected hex
// string.
func RequireEqualHexBytes(t *testing.T, exp string, act []byte) {
	require.Equal(t, exp, hex.EncodeToString(act))
}

// RequireEqualJSONFile asserts that act marshals to the same JSON
// value as the golden file testdata/<expFilename>. Both sides are
// decoded before comparing, so formatting and key order do not
// matter.
func RequireEqualJSONFile(t *testing.T, expFilename string, actRaw interface{}) {
	expData, err := ioutil.ReadFile(path.Join("testdata", expFilename))
	require.NoError(t, err)
	var exp interface{}
	require.NoError(t, json.Unmarshal(expData, &exp))

	actJ, err := json.Marshal(actRaw)
	require.NoError(t, err)
	var act interface{}
	require.NoError(t, json.Unmarshal(actJ, &act))
	require.Equal(t, exp, act)
}
