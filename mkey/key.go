package mkey

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

var ErrBadKey = errors.New("malformed public key")

// KeyType distinguishes the two key representations an expression can
// be built over.
type KeyType string

const (
	KeyTypePublic KeyType = "public_key"
	KeyTypeString KeyType = "string"
)

// Key abstracts over concrete public keys and structural placeholder
// names. Fragments never look inside a key beyond what this interface
// exposes.
type Key interface {
	// String renders the key the way it appeared in the source
	// expression.
	String() string

	// Serialize returns the key bytes for a script push of the given
	// width (33 for compressed, 32 for x-only). Placeholder keys have
	// no byte form and return nil.
	Serialize(keySize int) []byte

	Equal(other Key) bool
	Less(other Key) bool
	IsConcrete() bool
}

// PublicKey is a concrete secp256k1 point supplied by the crypto
// collaborator.
type PublicKey struct {
	pk    *btcec.PublicKey
	xonly bool
}

func NewPublicKey(pk *btcec.PublicKey) *PublicKey {
	return &PublicKey{pk: pk}
}

func (p *PublicKey) String() string {
	if p.xonly {
		return hex.EncodeToString(p.pk.SerializeCompressed()[1:])
	}
	return hex.EncodeToString(p.pk.SerializeCompressed())
}

func (p *PublicKey) Serialize(keySize int) []byte {
	ser := p.pk.SerializeCompressed()
	if keySize == 32 {
		return ser[1:]
	}
	return ser
}

func (p *PublicKey) Equal(other Key) bool {
	o, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	return p.pk.IsEqual(o.pk)
}

func (p *PublicKey) Less(other Key) bool {
	return p.String() < other.String()
}

func (p *PublicKey) IsConcrete() bool {
	return true
}

// IsXOnly reports whether the key was supplied in the 32-byte x-only
// form used by tapscript.
func (p *PublicKey) IsXOnly() bool {
	return p.xonly
}

// Placeholder is an opaque key name used for structural analysis when
// no real key material is available.
type Placeholder string

func (p Placeholder) String() string {
	return string(p)
}

func (p Placeholder) Serialize(int) []byte {
	return nil
}

func (p Placeholder) Equal(other Key) bool {
	o, ok := other.(Placeholder)
	return ok && o == p
}

func (p Placeholder) Less(other Key) bool {
	return p.String() < other.String()
}

func (p Placeholder) IsConcrete() bool {
	return false
}

// Parse decodes a concrete public key from hex: 33-byte compressed,
// 65-byte uncompressed, or 32-byte x-only.
func Parse(s string) (*PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrBadKey, "not hex")
	}
	switch len(raw) {
	case 33, 65:
		pk, err := btcec.ParsePubKey(raw, btcec.S256())
		if err != nil {
			return nil, errors.Wrap(ErrBadKey, err.Error())
		}
		return &PublicKey{pk: pk}, nil
	case 32:
		// X-only keys assume the even-Y point.
		pk, err := btcec.ParsePubKey(append([]byte{0x02}, raw...), btcec.S256())
		if err != nil {
			return nil, errors.Wrap(ErrBadKey, err.Error())
		}
		return &PublicKey{pk: pk, xonly: true}, nil
	default:
		return nil, errors.Wrapf(ErrBadKey, "bad key length %d", len(raw))
	}
}

// FromBytes decodes a serialized public key as it appears in a script
// push: 33-byte compressed, 65-byte uncompressed or 32-byte x-only.
func FromBytes(raw []byte) (*PublicKey, error) {
	return Parse(hex.EncodeToString(raw))
}

// ParsePlaceholder validates a structural key name.
func ParsePlaceholder(s string) (Placeholder, error) {
	if s == "" || strings.ContainsAny(s, "(),:@ \t\n") {
		return "", errors.Wrapf(ErrBadKey, "bad placeholder %q", s)
	}
	return Placeholder(s), nil
}

// ParseAs parses s as the requested key representation.
func ParseAs(s string, typ KeyType) (Key, error) {
	if typ == KeyTypePublic {
		return Parse(s)
	}
	return ParsePlaceholder(s)
}

// TypeOf reports the representation a key uses.
func TypeOf(k Key) KeyType {
	if k.IsConcrete() {
		return KeyTypePublic
	}
	return KeyTypeString
}
