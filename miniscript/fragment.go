package miniscript

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
)

// Kind identifies a fragment or combinator in the expression tree.
type Kind int

const (
	KindFalse Kind = iota
	KindTrue
	KindPkK
	KindPkH
	// KindRawPkH only appears when decoding a script: the key behind
	// the hash is unknown, so the node carries the 20-byte digest.
	KindRawPkH
	KindOlder
	KindAfter
	KindSha256
	KindHash256
	KindRipemd160
	KindHash160
	KindMulti
	KindMultiA
	KindAndV
	KindAndB
	KindAndOr
	KindOrB
	KindOrC
	KindOrD
	KindOrI
	KindThresh
	KindWrapA
	KindWrapS
	KindWrapC
	KindWrapD
	KindWrapV
	KindWrapJ
	KindWrapN
)

var kindNames = map[Kind]string{
	KindFalse:     "0",
	KindTrue:      "1",
	KindPkK:       "pk_k",
	KindPkH:       "pk_h",
	KindRawPkH:    "expr_raw_pkh",
	KindOlder:     "older",
	KindAfter:     "after",
	KindSha256:    "sha256",
	KindHash256:   "hash256",
	KindRipemd160: "ripemd160",
	KindHash160:   "hash160",
	KindMulti:     "multi",
	KindMultiA:    "multi_a",
	KindAndV:      "and_v",
	KindAndB:      "and_b",
	KindAndOr:     "andor",
	KindOrB:       "or_b",
	KindOrC:       "or_c",
	KindOrD:       "or_d",
	KindOrI:       "or_i",
	KindThresh:    "thresh",
	KindWrapA:     "a",
	KindWrapS:     "s",
	KindWrapC:     "c",
	KindWrapD:     "d",
	KindWrapV:     "v",
	KindWrapJ:     "j",
	KindWrapN:     "n",
}

func (k Kind) String() string {
	return kindNames[k]
}

// IsWrapper reports whether the kind is one of the single-letter
// wrappers.
func (k Kind) IsWrapper() bool {
	switch k {
	case KindWrapA, KindWrapS, KindWrapC, KindWrapD, KindWrapV, KindWrapJ, KindWrapN:
		return true
	}
	return false
}

// Node is one type-checked fragment. Nodes are immutable after
// construction; an ill-typed combination is unconstructable.
type Node struct {
	Kind Kind
	Ctx  *script.Context
	Args []*Node

	Key   mkey.Key   // pk_k, pk_h
	Keys  []mkey.Key // multi, multi_a
	Hash  []byte     // hash fragments and raw pkh
	Value uint32     // older, after
	K     int        // multi, multi_a, thresh

	Typ Properties
	Ext ExtData
}

// finish runs the context checks, the type checker and the bottom-up
// analysis passes. Every constructor funnels through here.
func finish(n *Node) (*Node, error) {
	if err := checkContext(n); err != nil {
		return nil, err
	}
	typ, err := computeProperties(n)
	if err != nil {
		return nil, err
	}
	n.Typ = typ
	n.Ext = computeExtData(n)
	return n, nil
}

func checkContext(n *Node) error {
	ctx := n.Ctx
	switch n.Kind {
	case KindPkK, KindPkH:
		return checkKeyForm(ctx, n.Kind.String(), n.Key)
	case KindMulti:
		if !ctx.MultiAllowed() {
			return contextErrorf(ctx.Name, "multi", "use multi_a threshold trees instead")
		}
		if len(n.Keys) > ctx.MaxMultiKeys {
			return contextErrorf(ctx.Name, "multi", "%d keys exceeds limit of %d", len(n.Keys), ctx.MaxMultiKeys)
		}
		for _, k := range n.Keys {
			if err := checkKeyForm(ctx, "multi", k); err != nil {
				return err
			}
		}
	case KindMultiA:
		if !ctx.MultiAAllowed() {
			return contextErrorf(ctx.Name, "multi_a", "CHECKSIGADD is tapscript-only")
		}
		for _, k := range n.Keys {
			if err := checkKeyForm(ctx, "multi_a", k); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkKeyForm rejects concrete keys whose serialization does not
// match the context: x-only keys belong to tapscript, compressed keys
// to everything else. Placeholder keys pass; they have no byte form.
func checkKeyForm(ctx *script.Context, fragment string, k mkey.Key) error {
	pk, ok := k.(*mkey.PublicKey)
	if !ok {
		return nil
	}
	if pk.IsXOnly() != (ctx.KeySize == 32) {
		return contextErrorf(ctx.Name, fragment, "want %d-byte keys, got %s", ctx.KeySize, pk)
	}
	return nil
}

func NewFalse(ctx *script.Context) (*Node, error) {
	return finish(&Node{Kind: KindFalse, Ctx: ctx})
}

func NewTrue(ctx *script.Context) (*Node, error) {
	return finish(&Node{Kind: KindTrue, Ctx: ctx})
}

func NewPkK(ctx *script.Context, key mkey.Key) (*Node, error) {
	return finish(&Node{Kind: KindPkK, Ctx: ctx, Key: key})
}

func NewPkH(ctx *script.Context, key mkey.Key) (*Node, error) {
	return finish(&Node{Kind: KindPkH, Ctx: ctx, Key: key})
}

func NewRawPkH(ctx *script.Context, hash []byte) (*Node, error) {
	if len(hash) != 20 {
		return nil, typeErrorf("expr_raw_pkh", "key hash must be 20 bytes, got %d", len(hash))
	}
	return finish(&Node{Kind: KindRawPkH, Ctx: ctx, Hash: hash})
}

func NewOlder(ctx *script.Context, value uint32) (*Node, error) {
	if value == 0 || value >= 1<<31 {
		return nil, typeErrorf("older", "relative locktime %d out of range", value)
	}
	return finish(&Node{Kind: KindOlder, Ctx: ctx, Value: value})
}

func NewAfter(ctx *script.Context, value uint32) (*Node, error) {
	if value == 0 || value >= 1<<31 {
		return nil, typeErrorf("after", "absolute locktime %d out of range", value)
	}
	return finish(&Node{Kind: KindAfter, Ctx: ctx, Value: value})
}

func NewHash(ctx *script.Context, kind Kind, hash []byte) (*Node, error) {
	var want int
	switch kind {
	case KindSha256, KindHash256:
		want = 32
	case KindRipemd160, KindHash160:
		want = 20
	default:
		panic("not a hash fragment kind")
	}
	if len(hash) != want {
		return nil, typeErrorf(kind.String(), "digest must be %d bytes, got %d", want, len(hash))
	}
	return finish(&Node{Kind: kind, Ctx: ctx, Hash: hash})
}

func NewMulti(ctx *script.Context, k int, keys []mkey.Key) (*Node, error) {
	if k < 1 || k > len(keys) || len(keys) == 0 {
		return nil, typeErrorf("multi", "threshold %d of %d keys", k, len(keys))
	}
	return finish(&Node{Kind: KindMulti, Ctx: ctx, K: k, Keys: keys})
}

func NewMultiA(ctx *script.Context, k int, keys []mkey.Key) (*Node, error) {
	if k < 1 || k > len(keys) || len(keys) == 0 {
		return nil, typeErrorf("multi_a", "threshold %d of %d keys", k, len(keys))
	}
	return finish(&Node{Kind: KindMultiA, Ctx: ctx, K: k, Keys: keys})
}

func NewWrapper(ctx *script.Context, kind Kind, sub *Node) (*Node, error) {
	if !kind.IsWrapper() {
		panic("not a wrapper kind")
	}
	return finish(&Node{Kind: kind, Ctx: ctx, Args: []*Node{sub}})
}

func NewAndV(ctx *script.Context, x, y *Node) (*Node, error) {
	return finish(&Node{Kind: KindAndV, Ctx: ctx, Args: []*Node{x, y}})
}

func NewAndB(ctx *script.Context, x, y *Node) (*Node, error) {
	return finish(&Node{Kind: KindAndB, Ctx: ctx, Args: []*Node{x, y}})
}

func NewAndOr(ctx *script.Context, x, y, z *Node) (*Node, error) {
	return finish(&Node{Kind: KindAndOr, Ctx: ctx, Args: []*Node{x, y, z}})
}

func NewOrB(ctx *script.Context, x, z *Node) (*Node, error) {
	return finish(&Node{Kind: KindOrB, Ctx: ctx, Args: []*Node{x, z}})
}

func NewOrC(ctx *script.Context, x, z *Node) (*Node, error) {
	return finish(&Node{Kind: KindOrC, Ctx: ctx, Args: []*Node{x, z}})
}

func NewOrD(ctx *script.Context, x, z *Node) (*Node, error) {
	return finish(&Node{Kind: KindOrD, Ctx: ctx, Args: []*Node{x, z}})
}

func NewOrI(ctx *script.Context, x, z *Node) (*Node, error) {
	return finish(&Node{Kind: KindOrI, Ctx: ctx, Args: []*Node{x, z}})
}

func NewThresh(ctx *script.Context, k int, subs []*Node) (*Node, error) {
	if k < 1 || k > len(subs) || len(subs) == 0 {
		return nil, typeErrorf("thresh", "threshold %d of %d", k, len(subs))
	}
	return finish(&Node{Kind: KindThresh, Ctx: ctx, K: k, Args: subs})
}

// ForEachKey walks every key in the tree in source order.
func (n *Node) ForEachKey(fn func(k mkey.Key)) {
	if n.Key != nil {
		fn(n.Key)
	}
	for _, k := range n.Keys {
		fn(k)
	}
	for _, arg := range n.Args {
		arg.ForEachKey(fn)
	}
}

// KeyType reports the key representation the tree was built over.
// Trees never mix representations.
func (n *Node) KeyType() mkey.KeyType {
	typ := mkey.KeyTypePublic
	n.ForEachKey(func(k mkey.Key) {
		if !k.IsConcrete() {
			typ = mkey.KeyTypeString
		}
	})
	return typ
}

// String renders the canonical textual form, using the pk/pkh sugar
// for the common checksig wrappers.
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	// Fold runs of wrappers into a single letter prefix.
	var wrappers []byte
	cur := n
	for cur.Kind.IsWrapper() {
		if cur.Kind == KindWrapC {
			if sub := cur.Args[0]; sub.Kind == KindPkK || sub.Kind == KindPkH || sub.Kind == KindRawPkH {
				break
			}
		}
		wrappers = append(wrappers, kindNames[cur.Kind][0])
		cur = cur.Args[0]
	}
	if len(wrappers) > 0 {
		sb.Write(wrappers)
		sb.WriteByte(':')
	}
	cur.formatBase(sb)
}

func (n *Node) formatBase(sb *strings.Builder) {
	switch n.Kind {
	case KindFalse, KindTrue:
		sb.WriteString(n.Kind.String())
	case KindPkK, KindPkH:
		sb.WriteString(n.Kind.String())
		sb.WriteByte('(')
		sb.WriteString(n.Key.String())
		sb.WriteByte(')')
	case KindRawPkH:
		fmt.Fprintf(sb, "expr_raw_pkh(%s)", hex.EncodeToString(n.Hash))
	case KindOlder, KindAfter:
		fmt.Fprintf(sb, "%s(%d)", n.Kind, n.Value)
	case KindSha256, KindHash256, KindRipemd160, KindHash160:
		fmt.Fprintf(sb, "%s(%s)", n.Kind, hex.EncodeToString(n.Hash))
	case KindMulti, KindMultiA:
		fmt.Fprintf(sb, "%s(%d", n.Kind, n.K)
		for _, k := range n.Keys {
			sb.WriteByte(',')
			sb.WriteString(k.String())
		}
		sb.WriteByte(')')
	case KindThresh:
		fmt.Fprintf(sb, "thresh(%d", n.K)
		for _, arg := range n.Args {
			sb.WriteByte(',')
			arg.format(sb)
		}
		sb.WriteByte(')')
	case KindWrapC:
		// Reached only through the pk/pkh sugar.
		sub := n.Args[0]
		switch sub.Kind {
		case KindPkK:
			fmt.Fprintf(sb, "pk(%s)", sub.Key.String())
		case KindPkH:
			fmt.Fprintf(sb, "pkh(%s)", sub.Key.String())
		default:
			fmt.Fprintf(sb, "pkh(%s)", hex.EncodeToString(sub.Hash))
		}
	default:
		sb.WriteString(n.Kind.String())
		sb.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			arg.format(sb)
		}
		sb.WriteByte(')')
	}
}

// Equal compares two trees structurally.
func (n *Node) Equal(other *Node) bool {
	return other != nil && n.String() == other.String()
}
