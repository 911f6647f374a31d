package policy

import (
	"github.com/pkg/errors"

	"github.com/mirukoto/bento/miniscript"
)

// ErrNoLift is returned for expressions with no policy reading, which
// in practice means a raw key hash whose preimage key is unknown.
var ErrNoLift = errors.New("expression has no policy equivalent")

// Lift translates a script expression into the abstract policy it
// enforces. Wrappers vanish, key checks and locks become leaves, and
// every combinator becomes a threshold. The result is not normalized.
func Lift(n *miniscript.Node) (*Semantic, error) {
	switch n.Kind {
	case miniscript.KindFalse:
		return &Semantic{Kind: SemUnsatisfiable}, nil

	case miniscript.KindTrue:
		return &Semantic{Kind: SemTrivial}, nil

	case miniscript.KindPkK, miniscript.KindPkH:
		return &Semantic{Kind: SemKey, Key: n.Key}, nil

	case miniscript.KindRawPkH:
		return nil, errors.Wrap(ErrNoLift, "raw key hash")

	case miniscript.KindAfter:
		return &Semantic{Kind: SemAfter, Value: n.Value}, nil

	case miniscript.KindOlder:
		return &Semantic{Kind: SemOlder, Value: n.Value}, nil

	case miniscript.KindSha256:
		return &Semantic{Kind: SemSha256, Hash: n.Hash}, nil
	case miniscript.KindHash256:
		return &Semantic{Kind: SemHash256, Hash: n.Hash}, nil
	case miniscript.KindRipemd160:
		return &Semantic{Kind: SemRipemd160, Hash: n.Hash}, nil
	case miniscript.KindHash160:
		return &Semantic{Kind: SemHash160, Hash: n.Hash}, nil

	case miniscript.KindMulti, miniscript.KindMultiA:
		subs := make([]*Semantic, len(n.Keys))
		for i, key := range n.Keys {
			subs[i] = &Semantic{Kind: SemKey, Key: key}
		}
		return &Semantic{Kind: SemThresh, K: n.K, Subs: subs}, nil

	case miniscript.KindAndV, miniscript.KindAndB:
		x, err := Lift(n.Args[0])
		if err != nil {
			return nil, err
		}
		y, err := Lift(n.Args[1])
		if err != nil {
			return nil, err
		}
		return &Semantic{Kind: SemThresh, K: 2, Subs: []*Semantic{x, y}}, nil

	case miniscript.KindAndOr:
		x, err := Lift(n.Args[0])
		if err != nil {
			return nil, err
		}
		y, err := Lift(n.Args[1])
		if err != nil {
			return nil, err
		}
		z, err := Lift(n.Args[2])
		if err != nil {
			return nil, err
		}
		both := &Semantic{Kind: SemThresh, K: 2, Subs: []*Semantic{x, y}}
		return &Semantic{Kind: SemThresh, K: 1, Subs: []*Semantic{both, z}}, nil

	case miniscript.KindOrB, miniscript.KindOrC, miniscript.KindOrD, miniscript.KindOrI:
		x, err := Lift(n.Args[0])
		if err != nil {
			return nil, err
		}
		z, err := Lift(n.Args[1])
		if err != nil {
			return nil, err
		}
		return &Semantic{Kind: SemThresh, K: 1, Subs: []*Semantic{x, z}}, nil

	case miniscript.KindThresh:
		subs := make([]*Semantic, len(n.Args))
		for i, arg := range n.Args {
			sub, err := Lift(arg)
			if err != nil {
				return nil, err
			}
			subs[i] = sub
		}
		return &Semantic{Kind: SemThresh, K: n.K, Subs: subs}, nil

	case miniscript.KindWrapA, miniscript.KindWrapS, miniscript.KindWrapC,
		miniscript.KindWrapD, miniscript.KindWrapV, miniscript.KindWrapJ,
		miniscript.KindWrapN:
		return Lift(n.Args[0])
	}
	return nil, errors.Wrapf(ErrNoLift, "fragment %s", n.Kind)
}
