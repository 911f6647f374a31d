package miniscript

import (
	"github.com/mirukoto/bento/bcrypto"
	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
)

// Encode emits the opcode stream for the expression. Placeholder keys
// have no byte form, so encoding is only available for concrete trees.
func (n *Node) Encode() (*script.Script, bool) {
	if n.KeyType() != mkey.KeyTypePublic {
		return nil, false
	}
	sc := new(script.Script)
	n.encode(sc)
	return sc, true
}

func (n *Node) pushKey(sc *script.Script, k mkey.Key) {
	sc.PushData(k.Serialize(n.Ctx.KeySize))
}

func (n *Node) encode(sc *script.Script) {
	switch n.Kind {
	case KindFalse:
		sc.PushOp(script.OP_0)
	case KindTrue:
		sc.PushOp(script.OP_1)
	case KindPkK:
		n.pushKey(sc, n.Key)
	case KindPkH:
		sc.PushOp(script.OP_DUP).PushOp(script.OP_HASH160)
		sc.PushData(bcrypto.Hash160(n.Key.Serialize(n.Ctx.KeySize)))
		sc.PushOp(script.OP_EQUALVERIFY)
	case KindRawPkH:
		sc.PushOp(script.OP_DUP).PushOp(script.OP_HASH160)
		sc.PushData(n.Hash)
		sc.PushOp(script.OP_EQUALVERIFY)
	case KindOlder:
		sc.PushNum(int64(n.Value)).PushOp(script.OP_CHECKSEQUENCEVERIFY)
	case KindAfter:
		sc.PushNum(int64(n.Value)).PushOp(script.OP_CHECKLOCKTIMEVERIFY)
	case KindSha256, KindHash256, KindRipemd160, KindHash160:
		n.encodeHash(sc, script.OP_EQUAL)
	case KindMulti:
		sc.PushNum(int64(n.K))
		for _, k := range n.Keys {
			n.pushKey(sc, k)
		}
		sc.PushNum(int64(len(n.Keys)))
		sc.PushOp(script.OP_CHECKMULTISIG)
	case KindMultiA:
		for i, k := range n.Keys {
			n.pushKey(sc, k)
			if i == 0 {
				sc.PushOp(script.OP_CHECKSIG)
			} else {
				sc.PushOp(script.OP_CHECKSIGADD)
			}
		}
		sc.PushNum(int64(n.K))
		sc.PushOp(script.OP_NUMEQUAL)
	case KindAndV:
		n.Args[0].encode(sc)
		n.Args[1].encode(sc)
	case KindAndB:
		n.Args[0].encode(sc)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_BOOLAND)
	case KindAndOr:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_NOTIF)
		n.Args[2].encode(sc)
		sc.PushOp(script.OP_ELSE)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindOrB:
		n.Args[0].encode(sc)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_BOOLOR)
	case KindOrC:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_NOTIF)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindOrD:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_IFDUP).PushOp(script.OP_NOTIF)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindOrI:
		sc.PushOp(script.OP_IF)
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_ELSE)
		n.Args[1].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindThresh:
		n.Args[0].encode(sc)
		for _, arg := range n.Args[1:] {
			arg.encode(sc)
			sc.PushOp(script.OP_ADD)
		}
		sc.PushNum(int64(n.K))
		sc.PushOp(script.OP_EQUAL)
	case KindWrapA:
		sc.PushOp(script.OP_TOALTSTACK)
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_FROMALTSTACK)
	case KindWrapS:
		sc.PushOp(script.OP_SWAP)
		n.Args[0].encode(sc)
	case KindWrapC:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_CHECKSIG)
	case KindWrapD:
		sc.PushOp(script.OP_DUP).PushOp(script.OP_IF)
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindWrapV:
		n.Args[0].encodeVerify(sc)
	case KindWrapJ:
		sc.PushOp(script.OP_SIZE).PushOp(script.OP_0NOTEQUAL).PushOp(script.OP_IF)
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_ENDIF)
	case KindWrapN:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_0NOTEQUAL)
	default:
		panic("unhandled fragment kind")
	}
}

// encodeVerify emits the node under a v: wrapper, folding the VERIFY
// into the final opcode when a verify form exists.
func (n *Node) encodeVerify(sc *script.Script) {
	switch n.Kind {
	case KindSha256, KindHash256, KindRipemd160, KindHash160:
		n.encodeHash(sc, script.OP_EQUALVERIFY)
	case KindMulti:
		sc.PushNum(int64(n.K))
		for _, k := range n.Keys {
			n.pushKey(sc, k)
		}
		sc.PushNum(int64(len(n.Keys)))
		sc.PushOp(script.OP_CHECKMULTISIGVERIFY)
	case KindMultiA:
		for i, k := range n.Keys {
			n.pushKey(sc, k)
			if i == 0 {
				sc.PushOp(script.OP_CHECKSIG)
			} else {
				sc.PushOp(script.OP_CHECKSIGADD)
			}
		}
		sc.PushNum(int64(n.K))
		sc.PushOp(script.OP_NUMEQUALVERIFY)
	case KindWrapC:
		n.Args[0].encode(sc)
		sc.PushOp(script.OP_CHECKSIGVERIFY)
	case KindThresh:
		n.Args[0].encode(sc)
		for _, arg := range n.Args[1:] {
			arg.encode(sc)
			sc.PushOp(script.OP_ADD)
		}
		sc.PushNum(int64(n.K))
		sc.PushOp(script.OP_EQUALVERIFY)
	case KindAndV:
		n.Args[0].encode(sc)
		n.Args[1].encodeVerify(sc)
	default:
		n.encode(sc)
		sc.PushOp(script.OP_VERIFY)
	}
}

func (n *Node) encodeHash(sc *script.Script, final script.Opcode) {
	sc.PushOp(script.OP_SIZE).PushData([]byte{32}).PushOp(script.OP_EQUALVERIFY)
	switch n.Kind {
	case KindSha256:
		sc.PushOp(script.OP_SHA256)
	case KindHash256:
		sc.PushOp(script.OP_HASH256)
	case KindRipemd160:
		sc.PushOp(script.OP_RIPEMD160)
	case KindHash160:
		sc.PushOp(script.OP_HASH160)
	}
	sc.PushData(n.Hash)
	sc.PushOp(final)
}
