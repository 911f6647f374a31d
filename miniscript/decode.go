package miniscript

import (
	"github.com/pkg/errors"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
)

// Decode parses a raw script back into a fragment tree and runs the
// full sanity check on the result.
func Decode(raw []byte, ctx *script.Context) (*Node, error) {
	node, err := DecodeInsane(raw, ctx)
	if err != nil {
		return nil, err
	}
	if err := node.SanityCheck(); err != nil {
		return nil, err
	}
	return node, nil
}

// DecodeInsane parses a raw script into a fragment tree, requiring
// only that the tree type checks as a top-level B expression. Safety
// and malleability checks are skipped.
func DecodeInsane(raw []byte, ctx *script.Context) (*Node, error) {
	toks, err := script.Parse(raw)
	if err != nil {
		return nil, err
	}
	d := &decoder{ctx: ctx, toks: toks, pos: len(toks) - 1}
	node, err := d.stmt(stopNone)
	if err != nil {
		return nil, err
	}
	if d.pos >= 0 {
		return nil, errors.Wrapf(ErrSyntax, "trailing script before %s", d.toks[d.pos])
	}
	if node.Typ.Base != TypeB {
		return nil, typeErrorf(node.String(), "top level must be type B, got %s", node.Typ.Base)
	}
	return node, nil
}

// decoder consumes a token stream back to front. Fragments are fully
// determined by their trailing opcodes, so reading in reverse lets
// each production dispatch on a single token; the only search needed
// is the and_v extension in stmt, which backtracks on failure.
type decoder struct {
	ctx  *script.Context
	toks []script.Token
	pos  int
}

func (d *decoder) next() (script.Token, bool) {
	if d.pos < 0 {
		return script.Token{}, false
	}
	t := d.toks[d.pos]
	d.pos--
	return t, true
}

// at returns the token i positions before the read head without
// consuming anything.
func (d *decoder) at(i int) (script.Token, bool) {
	if d.pos-i < 0 {
		return script.Token{}, false
	}
	return d.toks[d.pos-i], true
}

type stopFunc func(script.Token) bool

func stopNone(script.Token) bool { return false }

func stopAt(ops ...script.Opcode) stopFunc {
	return func(t script.Token) bool {
		if len(t.Data) > 0 {
			return false
		}
		for _, op := range ops {
			if t.Op == op {
				return true
			}
		}
		return false
	}
}

// stmt parses an expression and then greedily extends it into and_v
// chains: in "[X] [Y]" the verify-typed X sits immediately before Y
// with no connective opcode, so after parsing Y we keep trying to
// parse another expression and combine until the types stop working
// out or a delimiter of the enclosing construct is reached.
func (d *decoder) stmt(stop stopFunc) (*Node, error) {
	node, err := d.expr()
	if err != nil {
		return nil, err
	}
	for d.pos >= 0 && !stop(d.toks[d.pos]) {
		save := d.pos
		x, err := d.expr()
		if err != nil {
			d.pos = save
			break
		}
		combined, err := NewAndV(d.ctx, x, node)
		if err != nil {
			d.pos = save
			break
		}
		node = combined
	}
	return node, nil
}

func (d *decoder) expr() (*Node, error) {
	tok, ok := d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unexpected start of script")
	}

	if len(tok.Data) > 0 {
		if len(tok.Data) == d.ctx.KeySize {
			key, err := mkey.FromBytes(tok.Data)
			if err != nil {
				return nil, err
			}
			return NewPkK(d.ctx, key)
		}
		return nil, errors.Wrapf(ErrSyntax, "unexpected %d-byte push", len(tok.Data))
	}

	switch tok.Op {
	case script.OP_0:
		return NewFalse(d.ctx)

	case script.OP_1:
		return NewTrue(d.ctx)

	case script.OP_CHECKSIG:
		sub, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapC, sub)

	case script.OP_CHECKSIGVERIFY:
		sub, err := d.expr()
		if err != nil {
			return nil, err
		}
		c, err := NewWrapper(d.ctx, KindWrapC, sub)
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapV, c)

	case script.OP_CHECKMULTISIG:
		return d.multi()

	case script.OP_CHECKMULTISIGVERIFY:
		m, err := d.multi()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapV, m)

	case script.OP_NUMEQUAL:
		return d.multiA()

	case script.OP_NUMEQUALVERIFY:
		m, err := d.multiA()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapV, m)

	case script.OP_CHECKSEQUENCEVERIFY:
		n, err := d.locktime()
		if err != nil {
			return nil, err
		}
		return NewOlder(d.ctx, n)

	case script.OP_CHECKLOCKTIMEVERIFY:
		n, err := d.locktime()
		if err != nil {
			return nil, err
		}
		return NewAfter(d.ctx, n)

	case script.OP_EQUAL:
		return d.equalTail()

	case script.OP_EQUALVERIFY:
		// DUP HASH160 <20> EQUALVERIFY is the pay-to-key-hash
		// head; everything else ending in EQUALVERIFY is a
		// verify-folded hash or thresh fragment.
		t0, ok0 := d.at(0)
		t1, ok1 := d.at(1)
		t2, ok2 := d.at(2)
		if ok0 && ok1 && ok2 &&
			len(t0.Data) == 20 && t1.Op == script.OP_HASH160 && t2.Op == script.OP_DUP {
			d.pos -= 3
			return NewRawPkH(d.ctx, t0.Data)
		}
		sub, err := d.equalTail()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapV, sub)

	case script.OP_VERIFY:
		sub, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapV, sub)

	case script.OP_0NOTEQUAL:
		sub, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapN, sub)

	case script.OP_BOOLAND:
		y, err := d.wexpr()
		if err != nil {
			return nil, err
		}
		x, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewAndB(d.ctx, x, y)

	case script.OP_BOOLOR:
		z, err := d.wexpr()
		if err != nil {
			return nil, err
		}
		x, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewOrB(d.ctx, x, z)

	case script.OP_FROMALTSTACK:
		sub, err := d.expr()
		if err != nil {
			return nil, err
		}
		if err := d.expect(script.OP_TOALTSTACK); err != nil {
			return nil, err
		}
		return NewWrapper(d.ctx, KindWrapA, sub)

	case script.OP_ENDIF:
		return d.endif()
	}

	return nil, errors.Wrapf(ErrSyntax, "unexpected %s", tok.Op)
}

// wexpr parses an expression in a W position: either a:X, which keeps
// its FROMALTSTACK suffix, or s:X, recognized by the SWAP preceding
// the X tokens.
func (d *decoder) wexpr() (*Node, error) {
	if t, ok := d.at(0); ok && len(t.Data) == 0 && t.Op == script.OP_FROMALTSTACK {
		return d.expr()
	}
	sub, err := d.expr()
	if err != nil {
		return nil, err
	}
	if err := d.expect(script.OP_SWAP); err != nil {
		return nil, err
	}
	return NewWrapper(d.ctx, KindWrapS, sub)
}

// endif disambiguates the IF constructs by the shape of their heads.
// The closing ENDIF has already been consumed.
func (d *decoder) endif() (*Node, error) {
	b1, err := d.stmt(stopAt(script.OP_ELSE, script.OP_IF, script.OP_NOTIF))
	if err != nil {
		return nil, err
	}
	tok, ok := d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unterminated conditional")
	}

	switch tok.Op {
	case script.OP_ELSE:
		b0, err := d.stmt(stopAt(script.OP_IF, script.OP_NOTIF))
		if err != nil {
			return nil, err
		}
		head, ok := d.next()
		if !ok {
			return nil, errors.Wrap(ErrSyntax, "unterminated conditional")
		}
		switch head.Op {
		case script.OP_IF:
			return NewOrI(d.ctx, b0, b1)
		case script.OP_NOTIF:
			x, err := d.expr()
			if err != nil {
				return nil, err
			}
			return NewAndOr(d.ctx, x, b1, b0)
		}
		return nil, errors.Wrapf(ErrSyntax, "unexpected %s before conditional", head.Op)

	case script.OP_IF:
		if t, ok := d.at(0); ok && len(t.Data) == 0 {
			switch t.Op {
			case script.OP_DUP:
				d.pos--
				return NewWrapper(d.ctx, KindWrapD, b1)
			case script.OP_0NOTEQUAL:
				d.pos--
				if err := d.expect(script.OP_SIZE); err != nil {
					return nil, err
				}
				return NewWrapper(d.ctx, KindWrapJ, b1)
			}
		}
		return nil, errors.Wrap(ErrSyntax, "bare IF conditional")

	case script.OP_NOTIF:
		if t, ok := d.at(0); ok && len(t.Data) == 0 && t.Op == script.OP_IFDUP {
			d.pos--
			x, err := d.expr()
			if err != nil {
				return nil, err
			}
			return NewOrD(d.ctx, x, b1)
		}
		x, err := d.expr()
		if err != nil {
			return nil, err
		}
		return NewOrC(d.ctx, x, b1)
	}
	return nil, errors.Wrapf(ErrSyntax, "unexpected %s in conditional", tok.Op)
}

// equalTail parses the productions that end in EQUAL or its folded
// EQUALVERIFY form: the four hash fragments and thresh. The inner
// pattern is the same either way; the caller applies the v wrapper
// when the terminal opcode was EQUALVERIFY.
func (d *decoder) equalTail() (*Node, error) {
	if t0, ok := d.at(0); ok && (len(t0.Data) == 20 || len(t0.Data) == 32) {
		return d.hashFragment()
	}
	tok, ok := d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unexpected start of script")
	}
	k, ok := tok.Num()
	if !ok || k < 1 {
		return nil, errors.Wrapf(ErrSyntax, "bad threshold %s", tok)
	}

	var subs []*Node
	for {
		t, ok := d.at(0)
		if !ok || len(t.Data) > 0 || t.Op != script.OP_ADD {
			break
		}
		d.pos--
		w, err := d.wexpr()
		if err != nil {
			return nil, err
		}
		subs = append([]*Node{w}, subs...)
	}
	first, err := d.expr()
	if err != nil {
		return nil, err
	}
	subs = append([]*Node{first}, subs...)
	return NewThresh(d.ctx, int(k), subs)
}

// hashFragment matches SIZE <32> EQUALVERIFY <hashop> <digest> from
// the digest push backwards. The terminal EQUAL or EQUALVERIFY has
// already been consumed.
func (d *decoder) hashFragment() (*Node, error) {
	digest, _ := d.next()
	op, ok := d.next()
	if !ok || len(op.Data) > 0 {
		return nil, errors.Wrap(ErrSyntax, "bad hash fragment")
	}

	var kind Kind
	switch {
	case op.Op == script.OP_SHA256 && len(digest.Data) == 32:
		kind = KindSha256
	case op.Op == script.OP_HASH256 && len(digest.Data) == 32:
		kind = KindHash256
	case op.Op == script.OP_RIPEMD160 && len(digest.Data) == 20:
		kind = KindRipemd160
	case op.Op == script.OP_HASH160 && len(digest.Data) == 20:
		kind = KindHash160
	default:
		return nil, errors.Wrapf(ErrSyntax, "bad hash fragment %s", op.Op)
	}

	if err := d.expect(script.OP_EQUALVERIFY); err != nil {
		return nil, err
	}
	size, ok := d.next()
	if n, numOK := size.Num(); !ok || !numOK || n != 32 {
		return nil, errors.Wrap(ErrSyntax, "bad hash fragment size guard")
	}
	if err := d.expect(script.OP_SIZE); err != nil {
		return nil, err
	}
	return NewHash(d.ctx, kind, digest.Data)
}

// multi matches <k> <key...> <n> with the trailing CHECKMULTISIG
// already consumed.
func (d *decoder) multi() (*Node, error) {
	tok, ok := d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unexpected start of script")
	}
	n, numOK := tok.Num()
	if !numOK || n < 1 || n > int64(d.ctx.MaxMultiKeys) {
		return nil, errors.Wrapf(ErrSyntax, "bad key count %s", tok)
	}

	keys := make([]mkey.Key, n)
	for i := int(n) - 1; i >= 0; i-- {
		t, ok := d.next()
		if !ok || len(t.Data) != d.ctx.KeySize {
			return nil, errors.Wrap(ErrSyntax, "bad key push in multisig")
		}
		key, err := mkey.FromBytes(t.Data)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	tok, ok = d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unexpected start of script")
	}
	k, numOK := tok.Num()
	if !numOK || k < 1 || k > n {
		return nil, errors.Wrapf(ErrSyntax, "bad threshold %s", tok)
	}
	return NewMulti(d.ctx, int(k), keys)
}

// multiA matches <key> CHECKSIG (<key> CHECKSIGADD)* <k> with the
// trailing NUMEQUAL already consumed.
func (d *decoder) multiA() (*Node, error) {
	tok, ok := d.next()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "unexpected start of script")
	}
	k, numOK := tok.Num()
	if !numOK || k < 1 {
		return nil, errors.Wrapf(ErrSyntax, "bad threshold %s", tok)
	}

	var keys []mkey.Key
	for {
		op, ok := d.next()
		if !ok || len(op.Data) > 0 {
			return nil, errors.Wrap(ErrSyntax, "bad key aggregation")
		}
		if op.Op != script.OP_CHECKSIGADD && op.Op != script.OP_CHECKSIG {
			return nil, errors.Wrapf(ErrSyntax, "unexpected %s in key aggregation", op.Op)
		}
		push, ok := d.next()
		if !ok || len(push.Data) != d.ctx.KeySize {
			return nil, errors.Wrap(ErrSyntax, "bad key push in key aggregation")
		}
		key, err := mkey.FromBytes(push.Data)
		if err != nil {
			return nil, err
		}
		keys = append([]mkey.Key{key}, keys...)
		if op.Op == script.OP_CHECKSIG {
			break
		}
	}
	return NewMultiA(d.ctx, int(k), keys)
}

func (d *decoder) locktime() (uint32, error) {
	tok, ok := d.next()
	if !ok {
		return 0, errors.Wrap(ErrSyntax, "unexpected start of script")
	}
	n, numOK := tok.Num()
	if !numOK || n < 1 || n >= 1<<31 {
		return 0, errors.Wrapf(ErrSyntax, "bad locktime %s", tok)
	}
	return uint32(n), nil
}

func (d *decoder) expect(op script.Opcode) error {
	tok, ok := d.next()
	if !ok {
		return errors.Wrapf(ErrSyntax, "expected %s at start of script", op)
	}
	if len(tok.Data) > 0 || tok.Op != op {
		return errors.Wrapf(ErrSyntax, "expected %s, got %s", op, tok)
	}
	return nil
}
