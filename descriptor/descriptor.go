// Package descriptor parses output descriptors: the thin wrappers
// (pk, pkh, wpkh, sh, wsh and the sh-nested segwit forms) that place a
// key or script expression into an actual output type.
package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/pkg/errors"
	bip32 "github.com/tyler-smith/go-bip32"

	"github.com/mirukoto/bento/bcrypto"
	"github.com/mirukoto/bento/bjson"
	"github.com/mirukoto/bento/miniscript"
	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/policy"
	"github.com/mirukoto/bento/script"
)

var ErrDescriptorSyntax = errors.New("malformed descriptor")

// Kind is the outer wrapper of a descriptor.
type Kind int

const (
	KindPk Kind = iota
	KindPkh
	KindWpkh
	KindSh
	KindWsh
)

var kindNames = [...]string{"pk", "pkh", "wpkh", "sh", "wsh"}

func (k Kind) String() string {
	return kindNames[k]
}

// Descriptor is a parsed output descriptor. Key is set for the key
// wrappers, Script for wsh around a script expression, and Inner for
// sh around a segwit form.
type Descriptor struct {
	Kind   Kind
	Key    mkey.Key
	Script *miniscript.Node
	Inner  *Descriptor
}

// Parse reads a descriptor with concrete keys; key positions accept
// hex keys and xpub derivation paths. ParseAs with the string key type
// accepts placeholder names instead.
func Parse(desc string) (*Descriptor, error) {
	return ParseAs(desc, mkey.KeyTypePublic)
}

func ParseAs(desc string, keyType mkey.KeyType) (*Descriptor, error) {
	return parseDescriptor(desc, keyType, false)
}

func parseDescriptor(desc string, keyType mkey.KeyType, nested bool) (*Descriptor, error) {
	open := strings.IndexByte(desc, '(')
	if open < 0 || !strings.HasSuffix(desc, ")") {
		return nil, errors.Wrapf(ErrDescriptorSyntax, "no wrapper in %q", desc)
	}
	name := desc[:open]
	body := desc[open+1 : len(desc)-1]

	switch name {
	case "pk", "pkh", "wpkh":
		key, err := parseKey(body, keyType)
		if err != nil {
			return nil, err
		}
		kind := KindPk
		switch name {
		case "pkh":
			kind = KindPkh
		case "wpkh":
			kind = KindWpkh
		}
		return &Descriptor{Kind: kind, Key: key}, nil

	case "sh":
		if nested {
			return nil, errors.Wrap(ErrDescriptorSyntax, "sh cannot nest under sh")
		}
		if strings.HasPrefix(body, "wsh(") || strings.HasPrefix(body, "wpkh(") {
			inner, err := parseDescriptor(body, keyType, true)
			if err != nil {
				return nil, err
			}
			return &Descriptor{Kind: KindSh, Inner: inner}, nil
		}
		n, err := parseScript(body, script.Legacy, keyType)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindSh, Script: n}, nil

	case "wsh":
		n, err := parseScript(body, script.SegwitV0, keyType)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: KindWsh, Script: n}, nil
	}
	return nil, errors.Wrapf(ErrDescriptorSyntax, "unknown wrapper %q", name)
}

func parseScript(body string, ctx *script.Context, keyType mkey.KeyType) (*miniscript.Node, error) {
	resolved, err := resolveKeyPaths(body, keyType)
	if err != nil {
		return nil, err
	}
	return miniscript.ParseInsane(resolved, ctx, keyType)
}

// parseKey resolves one descriptor key: a literal key, a placeholder
// name, or an xpub followed by a /i/j derivation path.
func parseKey(raw string, keyType mkey.KeyType) (mkey.Key, error) {
	if keyType == mkey.KeyTypeString {
		return mkey.ParsePlaceholder(raw)
	}
	if strings.ContainsRune(raw, '/') {
		return deriveKey(raw)
	}
	return mkey.Parse(raw)
}

// resolveKeyPaths rewrites every xpub/i/j occurrence inside a script
// expression into the hex key it derives to, so the expression parser
// only ever sees literal keys.
func resolveKeyPaths(body string, keyType mkey.KeyType) (string, error) {
	if keyType == mkey.KeyTypeString || !strings.Contains(body, "pub") {
		return body, nil
	}
	var out strings.Builder
	for i := 0; i < len(body); {
		start := i
		for i < len(body) && !strings.ContainsRune("(),", rune(body[i])) {
			i++
		}
		arg := body[start:i]
		if strings.ContainsRune(arg, '/') {
			key, err := deriveKey(arg)
			if err != nil {
				return "", err
			}
			out.WriteString(key.String())
		} else {
			out.WriteString(arg)
		}
		if i < len(body) {
			out.WriteByte(body[i])
			i++
		}
	}
	return out.String(), nil
}

func deriveKey(raw string) (mkey.Key, error) {
	parts := strings.Split(raw, "/")
	xkey, err := bip32.B58Deserialize(parts[0])
	if err != nil {
		return nil, errors.Wrapf(err, "bad extended key %q", parts[0])
	}
	for _, part := range parts[1:] {
		idx, err := strconv.ParseUint(strings.TrimSuffix(part, "h"), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrDescriptorSyntax, "bad child index %q", part)
		}
		if strings.HasSuffix(part, "h") {
			idx += uint64(bip32.FirstHardenedChild)
		}
		xkey, err = xkey.NewChildKey(uint32(idx))
		if err != nil {
			return nil, errors.Wrap(err, "cannot derive child")
		}
	}
	return mkey.FromBytes(xkey.PublicKey().Key)
}

func (d *Descriptor) String() string {
	switch d.Kind {
	case KindPk, KindPkh, KindWpkh:
		return fmt.Sprintf("%s(%s)", d.Kind, d.Key)
	case KindWsh:
		return fmt.Sprintf("wsh(%s)", d.Script)
	}
	if d.Inner != nil {
		return fmt.Sprintf("sh(%s)", d.Inner)
	}
	return fmt.Sprintf("sh(%s)", d.Script)
}

// KeyType reports the key representation used anywhere in the
// descriptor.
func (d *Descriptor) KeyType() mkey.KeyType {
	if d.Key != nil {
		return mkey.TypeOf(d.Key)
	}
	if d.Inner != nil {
		return d.Inner.KeyType()
	}
	t := mkey.KeyTypePublic
	d.Script.ForEachKey(func(k mkey.Key) {
		t = mkey.TypeOf(k)
	})
	return t
}

// ScriptPubKey builds the output script. It fails for placeholder
// keys, which cannot be serialized.
func (d *Descriptor) ScriptPubKey() (*script.Script, error) {
	switch d.Kind {
	case KindPk:
		key, err := d.keyBytes()
		if err != nil {
			return nil, err
		}
		return new(script.Script).PushData(key).PushOp(script.OP_CHECKSIG), nil

	case KindPkh:
		key, err := d.keyBytes()
		if err != nil {
			return nil, err
		}
		return new(script.Script).
			PushOp(script.OP_DUP).
			PushOp(script.OP_HASH160).
			PushData(bcrypto.Hash160(key)).
			PushOp(script.OP_EQUALVERIFY).
			PushOp(script.OP_CHECKSIG), nil

	case KindWpkh:
		key, err := d.keyBytes()
		if err != nil {
			return nil, err
		}
		return new(script.Script).PushOp(script.OP_0).PushData(bcrypto.Hash160(key)), nil

	case KindWsh:
		witness, err := d.WitnessScript()
		if err != nil {
			return nil, err
		}
		return new(script.Script).PushOp(script.OP_0).PushData(bcrypto.SHA256(witness.Bytes())), nil
	}

	redeem, err := d.redeemScript()
	if err != nil {
		return nil, err
	}
	return new(script.Script).
		PushOp(script.OP_HASH160).
		PushData(bcrypto.Hash160(redeem.Bytes())).
		PushOp(script.OP_EQUAL), nil
}

// redeemScript is what a spender reveals for an sh output.
func (d *Descriptor) redeemScript() (*script.Script, error) {
	if d.Kind != KindSh {
		return nil, errors.Wrap(ErrDescriptorSyntax, "not a script hash descriptor")
	}
	if d.Inner != nil {
		return d.Inner.ScriptPubKey()
	}
	return d.encodeScript()
}

// UnsignedScriptSig is the script sig without any signatures: empty
// for everything except the sh-nested segwit forms, which reveal the
// redeem script up front.
func (d *Descriptor) UnsignedScriptSig() (*script.Script, error) {
	if d.Kind == KindSh && d.Inner != nil {
		redeem, err := d.redeemScript()
		if err != nil {
			return nil, err
		}
		return new(script.Script).PushData(redeem.Bytes()), nil
	}
	return new(script.Script), nil
}

// WitnessScript is the last witness element of a wsh spend, or the
// redeem script of a plain sh.
func (d *Descriptor) WitnessScript() (*script.Script, error) {
	switch {
	case d.Kind == KindWsh:
		return d.encodeScript()
	case d.Kind == KindSh && d.Inner != nil && d.Inner.Kind == KindWsh:
		return d.Inner.encodeScript()
	case d.Kind == KindSh && d.Inner == nil:
		return d.encodeScript()
	}
	return nil, errors.Wrapf(ErrDescriptorSyntax, "%s has no witness script", d.Kind)
}

func (d *Descriptor) encodeScript() (*script.Script, error) {
	sc, ok := d.Script.Encode()
	if !ok {
		return nil, errors.Wrap(ErrDescriptorSyntax, "placeholder keys cannot be encoded")
	}
	return sc, nil
}

// Address renders the canonical address for the output script, when
// the output type has one.
func (d *Descriptor) Address(network *Network) (string, error) {
	switch d.Kind {
	case KindPk:
		return "", errors.Wrap(ErrDescriptorSyntax, "bare pk outputs have no address")

	case KindPkh:
		key, err := d.keyBytes()
		if err != nil {
			return "", err
		}
		return base58.CheckEncode(bcrypto.Hash160(key), network.P2PKHVersion), nil

	case KindWpkh:
		key, err := d.keyBytes()
		if err != nil {
			return "", err
		}
		return segwitAddress(network, bcrypto.Hash160(key))

	case KindWsh:
		witness, err := d.WitnessScript()
		if err != nil {
			return "", err
		}
		return segwitAddress(network, bcrypto.SHA256(witness.Bytes()))
	}

	redeem, err := d.redeemScript()
	if err != nil {
		return "", err
	}
	return base58.CheckEncode(bcrypto.Hash160(redeem.Bytes()), network.P2SHVersion), nil
}

func segwitAddress(network *Network, program []byte) (string, error) {
	data, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "error converting bits")
	}
	return bech32.Encode(network.AddressHRP, append([]byte{0x00}, data...))
}

// MaxSatisfactionWeight is the worst-case weight-unit cost of spending
// the output: script sig bytes count four weight units each, witness
// bytes one.
func (d *Descriptor) MaxSatisfactionWeight() (int, error) {
	sigPush := script.SegwitV0.MaxSigSize + 1
	keyPush := script.SegwitV0.KeyPushSize() + 1

	switch d.Kind {
	case KindPk:
		return 4 * sigPush, nil
	case KindPkh:
		return 4 * (sigPush + keyPush), nil
	case KindWpkh:
		return sigPush + keyPush, nil
	case KindWsh:
		return d.witnessWeight(0)
	}

	if d.Inner != nil {
		redeem, err := d.redeemScript()
		if err != nil {
			return 0, err
		}
		redeemPush := 4 * (redeem.Size() + 1)
		if d.Inner.Kind == KindWpkh {
			return redeemPush + sigPush + keyPush, nil
		}
		return d.Inner.witnessWeight(redeemPush)
	}

	redeem, err := d.redeemScript()
	if err != nil {
		return 0, err
	}
	sat, err := d.Script.MaxSatisfactionSize()
	if err != nil {
		return 0, err
	}
	return 4 * (sat + redeem.Size() + 1), nil
}

func (d *Descriptor) witnessWeight(base int) (int, error) {
	witness, err := d.encodeScript()
	if err != nil {
		return 0, err
	}
	sat, err := d.Script.MaxSatisfactionSize()
	if err != nil {
		return 0, err
	}
	return base + sat + witness.Size() + 1, nil
}

// Policy lifts the descriptor's spending condition.
func (d *Descriptor) Policy() (*policy.Semantic, error) {
	if d.Key != nil {
		return &policy.Semantic{Kind: policy.SemKey, Key: d.Key}, nil
	}
	if d.Inner != nil {
		return d.Inner.Policy()
	}
	return policy.Lift(d.Script)
}

func (d *Descriptor) keyBytes() ([]byte, error) {
	if !d.Key.IsConcrete() {
		return nil, errors.Wrap(ErrDescriptorSyntax, "placeholder keys cannot be serialized")
	}
	return d.Key.Serialize(33), nil
}

// Info is the JSON description of a descriptor. Script and address
// fields are omitted for placeholder keys.
type Info struct {
	Descriptor            string           `json:"descriptor"`
	KeyType               mkey.KeyType     `json:"key_type"`
	Address               *string          `json:"address,omitempty"`
	ScriptPubKey          bjson.ByteString `json:"script_pubkey,omitempty"`
	UnsignedScriptSig     bjson.ByteString `json:"unsigned_script_sig,omitempty"`
	WitnessScript         bjson.ByteString `json:"witness_script,omitempty"`
	MaxSatisfactionWeight *int             `json:"max_satisfaction_weight,omitempty"`
	Policy                *string          `json:"policy,omitempty"`
}

// Describe parses and fully analyzes a descriptor, falling back to
// placeholder keys when concrete ones do not parse.
func Describe(desc string, network *Network) (*Info, error) {
	d, err := Parse(desc)
	if err != nil {
		d, err = ParseAs(desc, mkey.KeyTypeString)
	}
	if err != nil {
		return nil, err
	}

	info := &Info{
		Descriptor: d.String(),
		KeyType:    d.KeyType(),
	}
	if addr, err := d.Address(network); err == nil {
		info.Address = &addr
	}
	if spk, err := d.ScriptPubKey(); err == nil {
		info.ScriptPubKey = spk.Bytes()
	}
	if ss, err := d.UnsignedScriptSig(); err == nil {
		info.UnsignedScriptSig = ss.Bytes()
	}
	if ws, err := d.WitnessScript(); err == nil {
		info.WitnessScript = ws.Bytes()
	}
	if w, err := d.MaxSatisfactionWeight(); err == nil {
		info.MaxSatisfactionWeight = &w
	}
	if pol, err := d.Policy(); err == nil {
		s := pol.String()
		info.Policy = &s
	}
	return info, nil
}
