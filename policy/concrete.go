package policy

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/mirukoto/bento/mkey"
)

// ConcreteKind enumerates the node kinds of the concrete policy
// language. Unlike the abstract language it keeps and/or as distinct
// combinators, because the compiler weighs or branches by the
// probabilities attached to them.
type ConcreteKind int

const (
	ConKey ConcreteKind = iota
	ConAfter
	ConOlder
	ConSha256
	ConHash256
	ConRipemd160
	ConHash160
	ConAnd
	ConOr
	ConThresh
)

var concreteNames = [...]string{
	"pk", "after", "older", "sha256", "hash256",
	"ripemd160", "hash160", "and", "or", "thresh",
}

func (k ConcreteKind) String() string {
	return concreteNames[k]
}

// Concrete is a compilable policy tree. Or nodes carry one relative
// probability weight per branch, written as "N@" in the source.
type Concrete struct {
	Kind  ConcreteKind
	Key   mkey.Key
	Value uint32
	Hash  []byte
	K     int
	Subs  []*Concrete
	Probs []int
}

// ParseConcrete parses the weighted policy grammar. And/or take
// exactly two subpolicies; or branches accept an optional "N@" weight
// that defaults to 1.
func ParseConcrete(s string, keyType mkey.KeyType) (*Concrete, error) {
	p := &policyParser{s: s, keyType: keyType}
	n, err := p.concrete()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing input at offset %d", p.pos)
	}
	return n, nil
}

func (p *Concrete) String() string {
	var b strings.Builder
	p.format(&b)
	return b.String()
}

func (p *Concrete) format(b *strings.Builder) {
	switch p.Kind {
	case ConKey:
		fmt.Fprintf(b, "pk(%s)", p.Key)
	case ConAfter, ConOlder:
		fmt.Fprintf(b, "%s(%d)", p.Kind, p.Value)
	case ConSha256, ConHash256, ConRipemd160, ConHash160:
		fmt.Fprintf(b, "%s(%s)", p.Kind, hex.EncodeToString(p.Hash))
	case ConAnd, ConOr, ConThresh:
		b.WriteString(p.Kind.String())
		b.WriteByte('(')
		if p.Kind == ConThresh {
			fmt.Fprintf(b, "%d,", p.K)
		}
		for i, sub := range p.Subs {
			if i > 0 {
				b.WriteByte(',')
			}
			if p.Kind == ConOr && p.Probs[i] != 1 {
				fmt.Fprintf(b, "%d@", p.Probs[i])
			}
			sub.format(b)
		}
		b.WriteByte(')')
	}
}

// Lift maps the concrete policy to its abstract form, dropping
// probabilities and rewriting and/or as thresholds.
func (p *Concrete) Lift() *Semantic {
	switch p.Kind {
	case ConKey:
		return &Semantic{Kind: SemKey, Key: p.Key}
	case ConAfter:
		return &Semantic{Kind: SemAfter, Value: p.Value}
	case ConOlder:
		return &Semantic{Kind: SemOlder, Value: p.Value}
	case ConSha256:
		return &Semantic{Kind: SemSha256, Hash: p.Hash}
	case ConHash256:
		return &Semantic{Kind: SemHash256, Hash: p.Hash}
	case ConRipemd160:
		return &Semantic{Kind: SemRipemd160, Hash: p.Hash}
	case ConHash160:
		return &Semantic{Kind: SemHash160, Hash: p.Hash}
	}

	subs := make([]*Semantic, len(p.Subs))
	for i, sub := range p.Subs {
		subs[i] = sub.Lift()
	}
	k := p.K
	switch p.Kind {
	case ConAnd:
		k = len(subs)
	case ConOr:
		k = 1
	}
	return &Semantic{Kind: SemThresh, K: k, Subs: subs}
}

// ForEachKey visits every key leaf in source order.
func (p *Concrete) ForEachKey(fn func(mkey.Key)) {
	if p.Kind == ConKey {
		fn(p.Key)
	}
	for _, sub := range p.Subs {
		sub.ForEachKey(fn)
	}
}

// KeyType reports the key representation used by the policy, or the
// empty string for keyless policies.
func (p *Concrete) KeyType() mkey.KeyType {
	var t mkey.KeyType
	p.ForEachKey(func(k mkey.Key) {
		t = mkey.TypeOf(k)
	})
	return t
}

func (p *policyParser) concrete() (*Concrete, error) {
	name := p.ident()
	if err := p.expect('('); err != nil {
		return nil, p.errorf("unknown policy %q at offset %d", name, p.pos)
	}
	n, err := p.concreteBody(name)
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *policyParser) concreteBody(name string) (*Concrete, error) {
	switch name {
	case "pk":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		return &Concrete{Kind: ConKey, Key: key}, nil

	case "after", "older":
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		kind := ConAfter
		if name == "older" {
			kind = ConOlder
		}
		return &Concrete{Kind: kind, Value: v}, nil

	case "sha256", "hash256", "ripemd160", "hash160":
		semKind, size := hashKind(name)
		h, err := p.hash(size)
		if err != nil {
			return nil, err
		}
		return &Concrete{Kind: concreteHashKind(semKind), Hash: h}, nil

	case "and", "or":
		kind := ConAnd
		if name == "or" {
			kind = ConOr
		}
		var subs []*Concrete
		var probs []int
		for {
			prob, err := p.weight(kind == ConOr)
			if err != nil {
				return nil, err
			}
			sub, err := p.concrete()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
			probs = append(probs, prob)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
		if len(subs) != 2 {
			return nil, p.errorf("%s takes exactly two subpolicies, got %d", name, len(subs))
		}
		return &Concrete{Kind: kind, Subs: subs, Probs: probs}, nil

	case "thresh":
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		k := int(v)
		var subs []*Concrete
		for p.peek() == ',' {
			p.pos++
			sub, err := p.concrete()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		if len(subs) < 2 || k > len(subs) {
			return nil, p.errorf("bad threshold %d of %d", k, len(subs))
		}
		probs := make([]int, len(subs))
		for i := range probs {
			probs[i] = 1
		}
		return &Concrete{Kind: ConThresh, K: k, Subs: subs, Probs: probs}, nil
	}
	return nil, p.errorf("unknown policy %q", name)
}

// weight reads an optional "N@" probability prefix.
func (p *policyParser) weight(allowed bool) (int, error) {
	at := strings.IndexByte(p.s[p.pos:], '@')
	if at < 0 {
		return 1, nil
	}
	raw := p.s[p.pos : p.pos+at]
	if strings.ContainsAny(raw, "(),:") {
		return 1, nil
	}
	if !allowed {
		return 0, p.errorf("probability weight at offset %d outside or", p.pos)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, p.errorf("bad probability %q at offset %d", raw, p.pos)
	}
	p.pos += at + 1
	return n, nil
}

func concreteHashKind(k SemanticKind) ConcreteKind {
	switch k {
	case SemSha256:
		return ConSha256
	case SemHash256:
		return ConHash256
	case SemRipemd160:
		return ConRipemd160
	}
	return ConHash160
}
