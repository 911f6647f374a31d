// Package policy implements the abstract spending-policy language that
// sits above the script expression grammar: a Concrete policy with
// branch probabilities feeds the compiler, and a Semantic policy is
// what analysis lifts expressions back into.
package policy

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mirukoto/bento/mkey"
)

// ErrPolicySyntax marks a malformed policy string.
var ErrPolicySyntax = errors.New("malformed policy")

// SemanticKind enumerates the node kinds of the abstract policy
// language. And/or have no independent existence here: both are
// thresholds.
type SemanticKind int

const (
	SemTrivial SemanticKind = iota
	SemUnsatisfiable
	SemKey
	SemAfter
	SemOlder
	SemSha256
	SemHash256
	SemRipemd160
	SemHash160
	SemThresh
)

var semanticNames = [...]string{
	"TRIVIAL", "UNSATISFIABLE", "pk", "after", "older",
	"sha256", "hash256", "ripemd160", "hash160", "thresh",
}

func (k SemanticKind) String() string {
	return semanticNames[k]
}

// Semantic is an abstract policy tree. It has no probabilities and no
// preferred script encoding; it answers questions about what a policy
// requires, not how to spend it.
type Semantic struct {
	Kind  SemanticKind
	Key   mkey.Key
	Value uint32
	Hash  []byte
	K     int
	Subs  []*Semantic
}

// ParseSemantic parses the abstract policy grammar. And/or spellings
// are accepted as sugar for their threshold forms.
func ParseSemantic(s string, keyType mkey.KeyType) (*Semantic, error) {
	p := &policyParser{s: s, keyType: keyType}
	n, err := p.semantic()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing input at offset %d", p.pos)
	}
	return n, nil
}

func (p *Semantic) String() string {
	var b strings.Builder
	p.format(&b)
	return b.String()
}

func (p *Semantic) format(b *strings.Builder) {
	switch p.Kind {
	case SemTrivial, SemUnsatisfiable:
		b.WriteString(p.Kind.String())
	case SemKey:
		fmt.Fprintf(b, "pk(%s)", p.Key)
	case SemAfter, SemOlder:
		fmt.Fprintf(b, "%s(%d)", p.Kind, p.Value)
	case SemSha256, SemHash256, SemRipemd160, SemHash160:
		fmt.Fprintf(b, "%s(%s)", p.Kind, hex.EncodeToString(p.Hash))
	case SemThresh:
		fmt.Fprintf(b, "thresh(%d", p.K)
		for _, sub := range p.Subs {
			b.WriteByte(',')
			sub.format(b)
		}
		b.WriteByte(')')
	}
}

func (p *Semantic) Equal(o *Semantic) bool {
	return p.String() == o.String()
}

// Normalize flattens nested thresholds of the same flavor (an or
// inside an or, an and inside an and), folds trivial and unsatisfiable
// children into the threshold arithmetic, and collapses degenerate
// thresholds. The result is a fixed point: normalizing twice changes
// nothing.
func (p *Semantic) Normalize() *Semantic {
	if p.Kind != SemThresh {
		return p
	}

	k := p.K
	var subs []*Semantic
	for _, raw := range p.Subs {
		sub := raw.Normalize()
		switch sub.Kind {
		case SemTrivial:
			k--
		case SemUnsatisfiable:
		default:
			subs = append(subs, sub)
		}
	}

	if k <= 0 {
		return &Semantic{Kind: SemTrivial}
	}
	if k > len(subs) {
		return &Semantic{Kind: SemUnsatisfiable}
	}
	if len(subs) == 1 {
		return subs[0]
	}

	isOr := k == 1
	isAnd := k == len(subs)
	flat := make([]*Semantic, 0, len(subs))
	for _, sub := range subs {
		if sub.Kind == SemThresh &&
			((isOr && sub.K == 1) || (isAnd && sub.K == len(sub.Subs))) {
			flat = append(flat, sub.Subs...)
		} else {
			flat = append(flat, sub)
		}
	}
	if isAnd {
		k = len(flat)
	}
	return &Semantic{Kind: SemThresh, K: k, Subs: flat}
}

// Sorted returns the canonical ordering of the tree: every threshold's
// children appear in a total order, so two structurally equal policies
// render to the same string no matter how their source was ordered.
func (p *Semantic) Sorted() *Semantic {
	if p.Kind != SemThresh {
		return p
	}
	subs := make([]*Semantic, len(p.Subs))
	for i, sub := range p.Subs {
		subs[i] = sub.Sorted()
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return compareSemantic(subs[i], subs[j]) < 0
	})
	return &Semantic{Kind: SemThresh, K: p.K, Subs: subs}
}

// compareSemantic is the total order behind Sorted: kind rank first,
// then the payload, then the rendered subtree.
func compareSemantic(a, b *Semantic) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case SemKey:
		return strings.Compare(a.Key.String(), b.Key.String())
	case SemAfter, SemOlder:
		if a.Value != b.Value {
			if a.Value < b.Value {
				return -1
			}
			return 1
		}
		return 0
	case SemSha256, SemHash256, SemRipemd160, SemHash160:
		return bytes.Compare(a.Hash, b.Hash)
	case SemThresh:
		if a.K != b.K {
			if a.K < b.K {
				return -1
			}
			return 1
		}
		if len(a.Subs) != len(b.Subs) {
			if len(a.Subs) < len(b.Subs) {
				return -1
			}
			return 1
		}
		for i := range a.Subs {
			if c := compareSemantic(a.Subs[i], b.Subs[i]); c != 0 {
				return c
			}
		}
	}
	return 0
}

// IsTrivial reports whether the policy reduces to an unconditional
// pass.
func (p *Semantic) IsTrivial() bool {
	return p.Normalize().Kind == SemTrivial
}

// IsUnsatisfiable conservatively reports whether no assignment of
// signatures, preimages and locktimes can satisfy the policy. Two
// distinct absolute locks, or two distinct relative locks, demanded on
// the same conjunctive path count as contradictory, matching the
// exclusive reading of the lock leaves. False only means no
// contradiction was found.
func (p *Semantic) IsUnsatisfiable() bool {
	return p.Normalize().unsatisfiable()
}

func (p *Semantic) unsatisfiable() bool {
	if p.Kind != SemThresh {
		return p.Kind == SemUnsatisfiable
	}
	dead := 0
	for _, sub := range p.Subs {
		if sub.unsatisfiable() {
			dead++
		}
	}
	if p.K > len(p.Subs)-dead {
		return true
	}
	if p.K == len(p.Subs) {
		if len(p.requiredLocks(SemAfter)) > 1 || len(p.requiredLocks(SemOlder)) > 1 {
			return true
		}
	}
	return false
}

// requiredLocks collects the lock values of the given flavor that
// appear on every satisfying path of the policy.
func (p *Semantic) requiredLocks(kind SemanticKind) map[uint32]bool {
	switch p.Kind {
	case kind:
		return map[uint32]bool{p.Value: true}
	case SemThresh:
		if p.K == len(p.Subs) {
			out := make(map[uint32]bool)
			for _, sub := range p.Subs {
				for v := range sub.requiredLocks(kind) {
					out[v] = true
				}
			}
			return out
		}
		// A disjunction only requires what every branch requires.
		out := p.Subs[0].requiredLocks(kind)
		for _, sub := range p.Subs[1:] {
			next := sub.requiredLocks(kind)
			for v := range out {
				if !next[v] {
					delete(out, v)
				}
			}
		}
		return out
	}
	return nil
}

// NKeys counts the distinct keys reachable anywhere in the policy.
func (p *Semantic) NKeys() int {
	seen := make(map[string]bool)
	p.walkKeys(func(k mkey.Key) {
		seen[k.String()] = true
	})
	return len(seen)
}

// MinimumNKeys returns the smallest number of key leaves any single
// satisfying path has to cross, or 0 when a keyless path exists.
func (p *Semantic) MinimumNKeys() int {
	switch p.Kind {
	case SemKey:
		return 1
	case SemThresh:
		mins := make([]int, len(p.Subs))
		for i, sub := range p.Subs {
			mins[i] = sub.MinimumNKeys()
		}
		sort.Ints(mins)
		total := 0
		for _, m := range mins[:p.K] {
			total += m
		}
		return total
	}
	return 0
}

// RelativeTimelocks returns the distinct older values in ascending
// order.
func (p *Semantic) RelativeTimelocks() []uint32 {
	seen := make(map[uint32]bool)
	var walk func(*Semantic)
	walk = func(n *Semantic) {
		if n.Kind == SemOlder {
			seen[n.Value] = true
		}
		for _, sub := range n.Subs {
			walk(sub)
		}
	}
	walk(p)

	out := make([]uint32, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KeyType reports the key representation used by the policy, or the
// empty string for keyless policies.
func (p *Semantic) KeyType() mkey.KeyType {
	var t mkey.KeyType
	p.walkKeys(func(k mkey.Key) {
		t = mkey.TypeOf(k)
	})
	return t
}

func (p *Semantic) walkKeys(fn func(mkey.Key)) {
	if p.Kind == SemKey {
		fn(p.Key)
	}
	for _, sub := range p.Subs {
		sub.walkKeys(fn)
	}
}

// policyParser is shared by the concrete and semantic grammars; they
// differ only in the combinators they admit.
type policyParser struct {
	s       string
	pos     int
	keyType mkey.KeyType
}

func (p *policyParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrPolicySyntax, format, args...)
}

func (p *policyParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *policyParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *policyParser) ident() string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("():,@", rune(p.s[p.pos])) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *policyParser) number() (uint32, error) {
	raw := p.ident()
	n, err := strconv.ParseUint(raw, 10, 31)
	if err != nil || n == 0 {
		return 0, p.errorf("bad number %q at offset %d", raw, p.pos)
	}
	return uint32(n), nil
}

func (p *policyParser) key() (mkey.Key, error) {
	raw := p.ident()
	key, err := mkey.ParseAs(raw, p.keyType)
	if err != nil {
		return nil, errors.Wrapf(err, "at offset %d", p.pos)
	}
	return key, nil
}

func (p *policyParser) hash(size int) ([]byte, error) {
	raw := p.ident()
	h, err := hex.DecodeString(raw)
	if err != nil || len(h) != size {
		return nil, p.errorf("bad %d-byte digest %q at offset %d", size, raw, p.pos)
	}
	return h, nil
}

func (p *policyParser) semantic() (*Semantic, error) {
	name := p.ident()
	switch name {
	case "TRIVIAL":
		return &Semantic{Kind: SemTrivial}, nil
	case "UNSATISFIABLE":
		return &Semantic{Kind: SemUnsatisfiable}, nil
	}

	if err := p.expect('('); err != nil {
		return nil, p.errorf("unknown policy %q at offset %d", name, p.pos)
	}
	n, err := p.semanticBody(name)
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *policyParser) semanticBody(name string) (*Semantic, error) {
	switch name {
	case "pk":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		return &Semantic{Kind: SemKey, Key: key}, nil

	case "after", "older":
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		kind := SemAfter
		if name == "older" {
			kind = SemOlder
		}
		return &Semantic{Kind: kind, Value: v}, nil

	case "sha256", "hash256", "ripemd160", "hash160":
		kind, size := hashKind(name)
		h, err := p.hash(size)
		if err != nil {
			return nil, err
		}
		return &Semantic{Kind: kind, Hash: h}, nil

	case "and", "or", "thresh":
		k := 1
		if name == "thresh" {
			v, err := p.number()
			if err != nil {
				return nil, err
			}
			k = int(v)
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
		var subs []*Semantic
		for {
			sub, err := p.semantic()
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
		switch name {
		case "and":
			k = len(subs)
		case "thresh":
			if k > len(subs) {
				return nil, p.errorf("threshold %d exceeds %d subpolicies", k, len(subs))
			}
		}
		if len(subs) < 2 {
			return nil, p.errorf("%s needs at least two subpolicies", name)
		}
		return &Semantic{Kind: SemThresh, K: k, Subs: subs}, nil
	}
	return nil, p.errorf("unknown policy %q", name)
}

func hashKind(name string) (SemanticKind, int) {
	switch name {
	case "sha256":
		return SemSha256, 32
	case "hash256":
		return SemHash256, 32
	case "ripemd160":
		return SemRipemd160, 20
	}
	return SemHash160, 20
}
