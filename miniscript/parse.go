package miniscript

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
	"github.com/pkg/errors"
)

// Parse builds a type-checked expression from its textual form and
// requires it to pass the full sanity check for the context.
func Parse(s string, ctx *script.Context, keyType mkey.KeyType) (*Node, error) {
	n, err := ParseInsane(s, ctx, keyType)
	if err != nil {
		return nil, err
	}
	if err := n.SanityCheck(); err != nil {
		return nil, err
	}
	return n, nil
}

// ParseInsane builds a type-checked expression without the sanity
// check, so unsafe but structurally sound expressions can still be
// inspected.
func ParseInsane(s string, ctx *script.Context, keyType mkey.KeyType) (*Node, error) {
	p := &parser{s: s, ctx: ctx, keyType: keyType}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing input at offset %d", p.pos)
	}
	if n.Typ.Base != TypeB {
		return nil, typeErrorf(s, "top-level expression must be B, got %s", n.Typ.Base)
	}
	return n, nil
}

type parser struct {
	s       string
	pos     int
	ctx     *script.Context
	keyType mkey.KeyType
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSyntax, format, args...)
}

func (p *parser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

// ident reads a fragment or argument name up to the next delimiter.
func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("():,", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) expr() (*Node, error) {
	name := p.ident()
	if p.peek() == ':' {
		p.pos++
		sub, err := p.expr()
		if err != nil {
			return nil, err
		}
		return p.applyWrappers(name, sub)
	}

	switch name {
	case "0":
		return NewFalse(p.ctx)
	case "1":
		return NewTrue(p.ctx)
	}

	if err := p.expect('('); err != nil {
		return nil, p.errorf("unknown fragment %q at offset %d", name, p.pos)
	}
	n, err := p.fragment(name)
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) fragment(name string) (*Node, error) {
	switch name {
	case "pk":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		inner, err := NewPkK(p.ctx, key)
		if err != nil {
			return nil, err
		}
		return NewWrapper(p.ctx, KindWrapC, inner)
	case "pkh":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		inner, err := NewPkH(p.ctx, key)
		if err != nil {
			return nil, err
		}
		return NewWrapper(p.ctx, KindWrapC, inner)
	case "pk_k":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		return NewPkK(p.ctx, key)
	case "pk_h":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		return NewPkH(p.ctx, key)
	case "expr_raw_pkh":
		hash, err := p.hexArg(20)
		if err != nil {
			return nil, err
		}
		return NewRawPkH(p.ctx, hash)
	case "older", "after":
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		if name == "older" {
			return NewOlder(p.ctx, uint32(v))
		}
		return NewAfter(p.ctx, uint32(v))
	case "sha256":
		hash, err := p.hexArg(32)
		if err != nil {
			return nil, err
		}
		return NewHash(p.ctx, KindSha256, hash)
	case "hash256":
		hash, err := p.hexArg(32)
		if err != nil {
			return nil, err
		}
		return NewHash(p.ctx, KindHash256, hash)
	case "ripemd160":
		hash, err := p.hexArg(20)
		if err != nil {
			return nil, err
		}
		return NewHash(p.ctx, KindRipemd160, hash)
	case "hash160":
		hash, err := p.hexArg(20)
		if err != nil {
			return nil, err
		}
		return NewHash(p.ctx, KindHash160, hash)
	case "multi", "multi_a":
		k, err := p.number()
		if err != nil {
			return nil, err
		}
		var keys []mkey.Key
		for p.peek() == ',' {
			p.pos++
			key, err := p.key()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		if name == "multi" {
			return NewMulti(p.ctx, int(k), keys)
		}
		return NewMultiA(p.ctx, int(k), keys)
	case "thresh":
		k, err := p.number()
		if err != nil {
			return nil, err
		}
		var subs []*Node
		for p.peek() == ',' {
			p.pos++
			sub, err := p.expr()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return NewThresh(p.ctx, int(k), subs)
	case "and_v", "and_b", "and_n", "or_b", "or_c", "or_d", "or_i":
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		y, err := p.expr()
		if err != nil {
			return nil, err
		}
		switch name {
		case "and_v":
			return NewAndV(p.ctx, x, y)
		case "and_b":
			return NewAndB(p.ctx, x, y)
		case "and_n":
			f, err := NewFalse(p.ctx)
			if err != nil {
				return nil, err
			}
			return NewAndOr(p.ctx, x, y, f)
		case "or_b":
			return NewOrB(p.ctx, x, y)
		case "or_c":
			return NewOrC(p.ctx, x, y)
		case "or_d":
			return NewOrD(p.ctx, x, y)
		default:
			return NewOrI(p.ctx, x, y)
		}
	case "andor":
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		y, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		z, err := p.expr()
		if err != nil {
			return nil, err
		}
		return NewAndOr(p.ctx, x, y, z)
	}
	return nil, p.errorf("unknown fragment %q", name)
}

// applyWrappers wraps sub with the letters of prefix, rightmost letter
// innermost.
func (p *parser) applyWrappers(prefix string, sub *Node) (*Node, error) {
	n := sub
	var err error
	for i := len(prefix) - 1; i >= 0; i-- {
		switch prefix[i] {
		case 'a':
			n, err = NewWrapper(p.ctx, KindWrapA, n)
		case 's':
			n, err = NewWrapper(p.ctx, KindWrapS, n)
		case 'c':
			n, err = NewWrapper(p.ctx, KindWrapC, n)
		case 'd':
			n, err = NewWrapper(p.ctx, KindWrapD, n)
		case 'v':
			n, err = NewWrapper(p.ctx, KindWrapV, n)
		case 'j':
			n, err = NewWrapper(p.ctx, KindWrapJ, n)
		case 'n':
			n, err = NewWrapper(p.ctx, KindWrapN, n)
		case 't':
			var one *Node
			one, err = NewTrue(p.ctx)
			if err == nil {
				n, err = NewAndV(p.ctx, n, one)
			}
		case 'l':
			var zero *Node
			zero, err = NewFalse(p.ctx)
			if err == nil {
				n, err = NewOrI(p.ctx, zero, n)
			}
		case 'u':
			var zero *Node
			zero, err = NewFalse(p.ctx)
			if err == nil {
				n, err = NewOrI(p.ctx, n, zero)
			}
		default:
			return nil, p.errorf("unknown wrapper %q", string(prefix[i]))
		}
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *parser) key() (mkey.Key, error) {
	name := p.ident()
	key, err := mkey.ParseAs(name, p.keyType)
	if err != nil {
		return nil, errors.Wrapf(err, "bad key %q", name)
	}
	return key, nil
}

func (p *parser) number() (uint32, error) {
	name := p.ident()
	v, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, p.errorf("bad number %q", name)
	}
	return uint32(v), nil
}

func (p *parser) hexArg(size int) ([]byte, error) {
	name := p.ident()
	raw, err := hex.DecodeString(name)
	if err != nil {
		return nil, p.errorf("bad hex %q", name)
	}
	if len(raw) != size {
		return nil, p.errorf("expected %d hex bytes, got %d", size, len(raw))
	}
	return raw, nil
}
