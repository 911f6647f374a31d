package miniscript

import (
	"sort"

	"github.com/mirukoto/bento/script"
)

// WitnessSize is the shape of one satisfaction or dissatisfaction: how
// many stack elements it pushes and their total encoded size including
// one length byte per element.
type WitnessSize struct {
	Elements int
	Size     int
}

func wsSum(parts ...*WitnessSize) *WitnessSize {
	out := &WitnessSize{}
	for _, p := range parts {
		if p == nil {
			return nil
		}
		out.Elements += p.Elements
		out.Size += p.Size
	}
	return out
}

func wsMax(a, b *WitnessSize) *WitnessSize {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Size > a.Size {
		return b
	}
	return a
}

func ws(elements, size int) *WitnessSize {
	return &WitnessSize{Elements: elements, Size: size}
}

// ExtData is the bottom-up analysis data computed for every node at
// construction time.
type ExtData struct {
	// ScriptSize is the exact encoded script size in bytes.
	ScriptSize int

	// Ops counts non-push opcodes toward the legacy 201-op limit,
	// including the worst-case key count of CHECKMULTISIG.
	Ops int

	// HasFreeVerify is set when the fragment's last opcode has a
	// VERIFY form, letting a v: wrapper come for free.
	HasFreeVerify bool

	// Sat and Dissat are the maximum canonical satisfaction and
	// dissatisfaction shapes; nil when none exists.
	Sat    *WitnessSize
	Dissat *WitnessSize

	// Timelock tracking for the mixed-timelock footgun: an absolute
	// and a relative lock required on the same conjunctive branch.
	HasRelTimelock bool
	HasAbsTimelock bool
	MixedTimelocks bool
}

func computeExtData(n *Node) ExtData {
	ctx := n.Ctx
	sig := ctx.MaxSigSize
	keyPush := ctx.KeyPushSize()

	var e ExtData
	switch n.Kind {
	case KindFalse:
		e = ExtData{ScriptSize: 1, Dissat: ws(0, 0)}
	case KindTrue:
		e = ExtData{ScriptSize: 1, Sat: ws(0, 0)}
	case KindPkK:
		e = ExtData{ScriptSize: keyPush, Sat: ws(1, sig), Dissat: ws(1, 1)}
	case KindPkH, KindRawPkH:
		e = ExtData{
			ScriptSize: 24, Ops: 3,
			Sat:    ws(2, sig+keyPush),
			Dissat: ws(2, 1+keyPush),
		}
	case KindOlder, KindAfter:
		e = ExtData{
			ScriptSize: script.NumPushSize(int64(n.Value)) + 1,
			Ops:        1,
			Sat:        ws(0, 0),
		}
	case KindSha256, KindHash256:
		e = ExtData{ScriptSize: 39, Ops: 4, HasFreeVerify: true, Sat: ws(1, 33), Dissat: ws(1, 33)}
	case KindRipemd160, KindHash160:
		e = ExtData{ScriptSize: 27, Ops: 4, HasFreeVerify: true, Sat: ws(1, 33), Dissat: ws(1, 33)}
	case KindMulti:
		nKeys := len(n.Keys)
		e = ExtData{
			ScriptSize: script.NumPushSize(int64(n.K)) +
				script.NumPushSize(int64(nKeys)) +
				nKeys*keyPush + 1,
			Ops:           1 + nKeys,
			HasFreeVerify: true,
			// The leading empty push absorbs the CHECKMULTISIG
			// off-by-one.
			Sat:    ws(1+n.K, 1+n.K*sig),
			Dissat: ws(1+n.K, 1+n.K),
		}
	case KindMultiA:
		nKeys := len(n.Keys)
		e = ExtData{
			ScriptSize:    nKeys*(keyPush+1) + script.NumPushSize(int64(n.K)) + 1,
			Ops:           nKeys + 1,
			HasFreeVerify: true,
			Sat:           ws(nKeys, n.K*sig+(nKeys-n.K)),
			Dissat:        ws(nKeys, nKeys),
		}
	case KindAndV:
		x, y := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize:    x.ScriptSize + y.ScriptSize,
			Ops:           x.Ops + y.Ops,
			HasFreeVerify: y.HasFreeVerify,
			Sat:           wsSum(x.Sat, y.Sat),
			Dissat:        wsSum(x.Sat, y.Dissat),
		}
	case KindAndB:
		x, y := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + y.ScriptSize + 1,
			Ops:        x.Ops + y.Ops + 1,
			Sat:        wsSum(x.Sat, y.Sat),
			Dissat:     wsSum(x.Dissat, y.Dissat),
		}
	case KindAndOr:
		x, y, z := n.Args[0].Ext, n.Args[1].Ext, n.Args[2].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + y.ScriptSize + z.ScriptSize + 3,
			Ops:        x.Ops + y.Ops + z.Ops + 3,
			Sat:        wsMax(wsSum(x.Sat, y.Sat), wsSum(x.Dissat, z.Sat)),
			Dissat:     wsSum(x.Dissat, z.Dissat),
		}
	case KindOrB:
		x, z := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + z.ScriptSize + 1,
			Ops:        x.Ops + z.Ops + 1,
			Sat:        wsMax(wsSum(x.Sat, z.Dissat), wsSum(x.Dissat, z.Sat)),
			Dissat:     wsSum(x.Dissat, z.Dissat),
		}
	case KindOrC:
		x, z := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + z.ScriptSize + 2,
			Ops:        x.Ops + z.Ops + 2,
			Sat:        wsMax(x.Sat, wsSum(x.Dissat, z.Sat)),
		}
	case KindOrD:
		x, z := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + z.ScriptSize + 3,
			Ops:        x.Ops + z.Ops + 3,
			Sat:        wsMax(x.Sat, wsSum(x.Dissat, z.Sat)),
			Dissat:     wsSum(x.Dissat, z.Dissat),
		}
	case KindOrI:
		x, z := n.Args[0].Ext, n.Args[1].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + z.ScriptSize + 3,
			Ops:        x.Ops + z.Ops + 3,
			Sat:        wsMax(wsSum(x.Sat, ws(1, 2)), wsSum(z.Sat, ws(1, 1))),
			Dissat:     wsMax(wsSum(x.Dissat, ws(1, 2)), wsSum(z.Dissat, ws(1, 1))),
		}
	case KindThresh:
		e = threshExtData(n)
	case KindWrapA:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + 2,
			Ops:        x.Ops + 2,
			Sat:        x.Sat,
			Dissat:     x.Dissat,
		}
	case KindWrapS:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + 1,
			Ops:        x.Ops + 1,
			Sat:        x.Sat,
			Dissat:     x.Dissat,
		}
	case KindWrapC:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize:    x.ScriptSize + 1,
			Ops:           x.Ops + 1,
			HasFreeVerify: true,
			Sat:           x.Sat,
			Dissat:        x.Dissat,
		}
	case KindWrapD:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + 3,
			Ops:        x.Ops + 3,
			Sat:        wsSum(x.Sat, ws(1, 2)),
			Dissat:     ws(1, 1),
		}
	case KindWrapV:
		x := n.Args[0].Ext
		verify := 1
		if x.HasFreeVerify {
			verify = 0
		}
		e = ExtData{
			ScriptSize: x.ScriptSize + verify,
			Ops:        x.Ops + verify,
			Sat:        x.Sat,
		}
	case KindWrapJ:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + 4,
			Ops:        x.Ops + 4,
			Sat:        x.Sat,
			Dissat:     ws(1, 1),
		}
	case KindWrapN:
		x := n.Args[0].Ext
		e = ExtData{
			ScriptSize: x.ScriptSize + 1,
			Ops:        x.Ops + 1,
			Sat:        x.Sat,
			Dissat:     x.Dissat,
		}
	default:
		panic("unhandled fragment kind")
	}

	computeTimelocks(n, &e)
	return e
}

// threshExtData solves the pick-K-costliest-of-N subproblem: the
// maximum satisfaction dissatisfies every branch and flips the K
// branches with the largest satisfaction deltas.
func threshExtData(n *Node) ExtData {
	e := ExtData{HasFreeVerify: true}
	e.ScriptSize = script.NumPushSize(int64(n.K)) + 1 + (len(n.Args) - 1)
	e.Ops = len(n.Args)

	dissat := &WitnessSize{}
	type delta struct {
		elements, size int
		ok             bool
	}
	deltas := make([]delta, 0, len(n.Args))
	for _, arg := range n.Args {
		e.ScriptSize += arg.Ext.ScriptSize
		e.Ops += arg.Ext.Ops
		d := arg.Ext.Dissat
		if d == nil || dissat == nil {
			dissat = nil
		} else {
			dissat.Elements += d.Elements
			dissat.Size += d.Size
		}
		if s := arg.Ext.Sat; s != nil && d != nil {
			deltas = append(deltas, delta{
				elements: s.Elements - d.Elements,
				size:     s.Size - d.Size,
				ok:       true,
			})
		}
	}
	e.Dissat = dissat

	if dissat == nil || len(deltas) < n.K {
		return e
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].size > deltas[j].size
	})
	sat := *dissat
	for i := 0; i < n.K; i++ {
		sat.Elements += deltas[i].elements
		sat.Size += deltas[i].size
	}
	e.Sat = &sat
	return e
}

func computeTimelocks(n *Node, e *ExtData) {
	switch n.Kind {
	case KindOlder:
		e.HasRelTimelock = true
		return
	case KindAfter:
		e.HasAbsTimelock = true
		return
	}

	for _, arg := range n.Args {
		e.HasRelTimelock = e.HasRelTimelock || arg.Ext.HasRelTimelock
		e.HasAbsTimelock = e.HasAbsTimelock || arg.Ext.HasAbsTimelock
		e.MixedTimelocks = e.MixedTimelocks || arg.Ext.MixedTimelocks
	}

	switch n.Kind {
	case KindAndV, KindAndB:
		x, y := n.Args[0].Ext, n.Args[1].Ext
		if (x.HasRelTimelock && y.HasAbsTimelock) || (x.HasAbsTimelock && y.HasRelTimelock) {
			e.MixedTimelocks = true
		}
	case KindAndOr:
		// Only the X-and-Y path is conjunctive.
		x, y := n.Args[0].Ext, n.Args[1].Ext
		if (x.HasRelTimelock && y.HasAbsTimelock) || (x.HasAbsTimelock && y.HasRelTimelock) {
			e.MixedTimelocks = true
		}
	case KindThresh:
		if n.K > 1 {
			var rel, abs bool
			for _, arg := range n.Args {
				rel = rel || arg.Ext.HasRelTimelock
				abs = abs || arg.Ext.HasAbsTimelock
			}
			if rel && abs {
				e.MixedTimelocks = true
			}
		}
	}
}
