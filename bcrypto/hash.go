package bcrypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

type Hash []byte

func (h Hash) IsZero() bool {
	for _, b := range h {
		if b != 0x00 {
			return false
		}
	}
	return true
}

func (h Hash) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h)
	return int64(n), err
}

func (h Hash) String() string {
	return hex.EncodeToString(h)
}

func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h, other)
}

func (h Hash) MarshalJSON() ([]byte, error) {
	if len(h) == 0 {
		return json.Marshal(nil)
	}
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	var hexStr string
	if err := json.Unmarshal(b, &hexStr); err != nil {
		return errors.WithStack(err)
	}
	buf, err := hex.DecodeString(hexStr)
	if err != nil {
		return errors.WithStack(err)
	}
	*h = buf
	return nil
}

func NewHashFromHex(in string) (Hash, error) {
	buf, err := hex.DecodeString(in)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hash hex")
	}
	return buf, nil
}

func MustHashFromHex(in string) Hash {
	h, err := NewHashFromHex(in)
	if err != nil {
		panic(err)
	}
	return h
}

// SHA256 returns the single SHA-256 digest of b.
func SHA256(b []byte) Hash {
	h := sha256.Sum256(b)
	return h[:]
}

// Hash256 returns SHA256(SHA256(b)).
func Hash256(b []byte) Hash {
	return SHA256(SHA256(b))
}

// Ripemd160 returns the RIPEMD-160 digest of b.
func Ripemd160(b []byte) Hash {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// Hash160 returns RIPEMD160(SHA256(b)), the digest used for key and
// script hashes.
func Hash160(b []byte) Hash {
	return Ripemd160(SHA256(b))
}
