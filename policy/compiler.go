package policy

import (
	"math"

	"github.com/pkg/errors"

	"github.com/mirukoto/bento/miniscript"
	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/script"
)

// ErrCompilerImpossible is returned when a policy has no legal
// encoding under the requested context.
var ErrCompilerImpossible = errors.New("policy is not representable in this context")

// Compile finds the cheapest expression implementing the policy under
// the given context. Cost is script bytes plus the expected witness
// bytes of a satisfaction, with or branches weighted by their
// probability annotations. Sibling subtrees are minimized
// independently of each other, so the result is the canonical output
// of this search, not a global optimum.
func Compile(p *Concrete, ctx *script.Context) (*miniscript.Node, error) {
	c := &compiler{
		ctx:   ctx,
		memo:  make(map[*Concrete][]*miniscript.Node),
		probs: make(map[*miniscript.Node][2]float64),
	}

	var best *miniscript.Node
	bestCost := math.Inf(1)
	for _, n := range c.compile(p) {
		if n.Typ.Base != miniscript.TypeB {
			continue
		}
		if !n.IsNonMalleable() || !n.WithinResourceLimits() {
			continue
		}
		if cost := c.cost(n); cost < bestCost {
			best, bestCost = n, cost
		}
	}
	if best == nil {
		return nil, errors.Wrapf(ErrCompilerImpossible, "policy %s under %s", p, ctx.Name)
	}
	return best, nil
}

// compiler carries the candidate memo and the or-branch probabilities
// of every or-shaped node built during the search. Probabilities
// attach to assembled nodes rather than policy nodes because one
// policy node yields many encodings.
type compiler struct {
	ctx   *script.Context
	memo  map[*Concrete][]*miniscript.Node
	probs map[*miniscript.Node][2]float64
}

// compile returns the deduplicated candidate encodings of a policy
// node across all base types. Construction errors mean an encoding is
// ill-typed for these children and are skipped, not reported; the
// caller only cares whether any candidate survives.
func (c *compiler) compile(p *Concrete) []*miniscript.Node {
	if cached, ok := c.memo[p]; ok {
		return cached
	}

	var raw []*miniscript.Node
	add := func(n *miniscript.Node, err error) {
		if err == nil {
			raw = append(raw, n)
		}
	}

	switch p.Kind {
	case ConKey:
		add(miniscript.NewPkK(c.ctx, p.Key))
		add(miniscript.NewPkH(c.ctx, p.Key))

	case ConAfter:
		add(miniscript.NewAfter(c.ctx, p.Value))

	case ConOlder:
		add(miniscript.NewOlder(c.ctx, p.Value))

	case ConSha256:
		add(miniscript.NewHash(c.ctx, miniscript.KindSha256, p.Hash))
	case ConHash256:
		add(miniscript.NewHash(c.ctx, miniscript.KindHash256, p.Hash))
	case ConRipemd160:
		add(miniscript.NewHash(c.ctx, miniscript.KindRipemd160, p.Hash))
	case ConHash160:
		add(miniscript.NewHash(c.ctx, miniscript.KindHash160, p.Hash))

	case ConAnd:
		c.compileAnd(p, add)

	case ConOr:
		c.compileOr(p, add)

	case ConThresh:
		c.compileThresh(p, add)
	}

	cands := c.closure(raw)
	c.memo[p] = cands
	return cands
}

func (c *compiler) compileAnd(p *Concrete, add func(*miniscript.Node, error)) {
	left := c.compile(p.Subs[0])
	right := c.compile(p.Subs[1])

	for _, order := range [2][2][]*miniscript.Node{{left, right}, {right, left}} {
		xs, ys := order[0], order[1]
		for _, x := range xs {
			for _, y := range ys {
				add(miniscript.NewAndV(c.ctx, x, y))
				add(miniscript.NewAndB(c.ctx, x, y))
				if n, err := c.andN(x, y); err == nil {
					add(n, nil)
				}
			}
		}
	}
}

// andN builds andor(x,y,0), the and that fails soft instead of
// aborting.
func (c *compiler) andN(x, y *miniscript.Node) (*miniscript.Node, error) {
	f, err := miniscript.NewFalse(c.ctx)
	if err != nil {
		return nil, err
	}
	n, err := miniscript.NewAndOr(c.ctx, x, y, f)
	if err != nil {
		return nil, err
	}
	c.probs[n] = [2]float64{1, 0}
	return n, nil
}

func (c *compiler) compileOr(p *Concrete, add func(*miniscript.Node, error)) {
	total := float64(p.Probs[0] + p.Probs[1])

	for _, order := range [2][2]int{{0, 1}, {1, 0}} {
		a, b := p.Subs[order[0]], p.Subs[order[1]]
		pa := float64(p.Probs[order[0]]) / total
		weights := [2]float64{pa, 1 - pa}

		tag := func(n *miniscript.Node, err error) {
			if err == nil {
				c.probs[n] = weights
			}
			add(n, err)
		}

		// or(and(x,y),z) has a dedicated three-way encoding that
		// shares x's signature check between both branches. It goes
		// in first so it wins cost ties against the generic
		// combinators.
		if a.Kind == ConAnd {
			for _, aOrder := range [2][2]int{{0, 1}, {1, 0}} {
				for _, x := range c.compile(a.Subs[aOrder[0]]) {
					for _, y := range c.compile(a.Subs[aOrder[1]]) {
						for _, z := range c.compile(b) {
							tag(miniscript.NewAndOr(c.ctx, x, y, z))
						}
					}
				}
			}
		}
	}

	for _, order := range [2][2]int{{0, 1}, {1, 0}} {
		a, b := p.Subs[order[0]], p.Subs[order[1]]
		pa := float64(p.Probs[order[0]]) / total
		weights := [2]float64{pa, 1 - pa}

		tag := func(n *miniscript.Node, err error) {
			if err == nil {
				c.probs[n] = weights
			}
			add(n, err)
		}

		for _, x := range c.compile(a) {
			for _, z := range c.compile(b) {
				tag(miniscript.NewOrB(c.ctx, x, z))
				tag(miniscript.NewOrC(c.ctx, x, z))
				tag(miniscript.NewOrD(c.ctx, x, z))
				tag(miniscript.NewOrI(c.ctx, x, z))
			}
		}
	}
}

func (c *compiler) compileThresh(p *Concrete, add func(*miniscript.Node, error)) {
	if n, err := c.threshKeys(p); err == nil {
		add(n, nil)
	}

	subs := make([]*miniscript.Node, len(p.Subs))
	for i, sub := range p.Subs {
		base := miniscript.TypeW
		if i == 0 {
			base = miniscript.TypeB
		}
		best := c.cheapestDissatisfiable(c.compile(sub), base)
		if best == nil {
			return
		}
		subs[i] = best
	}
	add(miniscript.NewThresh(c.ctx, p.K, subs))
}

// threshKeys encodes an all-key threshold through the aggregate
// checkers when the context has one.
func (c *compiler) threshKeys(p *Concrete) (*miniscript.Node, error) {
	keys := make([]mkey.Key, len(p.Subs))
	for i, sub := range p.Subs {
		if sub.Kind != ConKey {
			return nil, errors.Wrap(ErrCompilerImpossible, "non-key subpolicy")
		}
		keys[i] = sub.Key
	}
	if c.ctx.Tapscript {
		return miniscript.NewMultiA(c.ctx, p.K, keys)
	}
	return miniscript.NewMulti(c.ctx, p.K, keys)
}

// closure expands a candidate set with every applicable wrapper until
// no new type signature appears, keeping only the cheapest candidate
// per signature.
func (c *compiler) closure(raw []*miniscript.Node) []*miniscript.Node {
	bySig := make(map[miniscript.Properties]*miniscript.Node)
	var order []miniscript.Properties

	var queue []*miniscript.Node
	admit := func(n *miniscript.Node) {
		sig := n.Typ
		old, ok := bySig[sig]
		if !ok {
			bySig[sig] = n
			order = append(order, sig)
			queue = append(queue, n)
			return
		}
		if c.cost(n) < c.cost(old) {
			bySig[sig] = n
			queue = append(queue, n)
		}
	}
	for _, n := range raw {
		admit(n)
	}

	wrappers := []miniscript.Kind{
		miniscript.KindWrapA, miniscript.KindWrapS, miniscript.KindWrapC,
		miniscript.KindWrapD, miniscript.KindWrapV, miniscript.KindWrapJ,
		miniscript.KindWrapN,
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, w := range wrappers {
			if wrapped, err := miniscript.NewWrapper(c.ctx, w, n); err == nil {
				admit(wrapped)
			}
		}
		// t: turns a non-dissatisfiable B into a V-friendly form.
		if t, err := miniscript.NewTrue(c.ctx); err == nil {
			if wrapped, err := miniscript.NewAndV(c.ctx, n, t); err == nil {
				admit(wrapped)
			}
		}
	}

	out := make([]*miniscript.Node, 0, len(order))
	for _, sig := range order {
		out = append(out, bySig[sig])
	}
	return out
}

// cheapestDissatisfiable picks the cheapest candidate of the wanted
// base that a threshold can also dissatisfy, which the combinator
// requires of every branch.
func (c *compiler) cheapestDissatisfiable(cands []*miniscript.Node, base miniscript.Base) *miniscript.Node {
	var best *miniscript.Node
	bestCost := math.Inf(1)
	for _, n := range cands {
		if n.Typ.Base != base || !n.Typ.Dissatisfiable || !n.Typ.Unit {
			continue
		}
		if cost := c.cost(n); cost < bestCost {
			best, bestCost = n, cost
		}
	}
	return best
}

func (c *compiler) cost(n *miniscript.Node) float64 {
	return float64(n.Ext.ScriptSize) + c.expectedSat(n)
}

// expectedSat is the probability-weighted satisfaction size in witness
// bytes. It mirrors the analyzer's worst-case accounting but resolves
// or branches by their annotated weights instead of taking the
// maximum.
func (c *compiler) expectedSat(n *miniscript.Node) float64 {
	switch n.Kind {
	case miniscript.KindAndV, miniscript.KindAndB:
		return c.expectedSat(n.Args[0]) + c.expectedSat(n.Args[1])

	case miniscript.KindAndOr:
		x, y, z := n.Args[0], n.Args[1], n.Args[2]
		px := c.branchProbs(n)[0]
		return weighted(px, c.expectedSat(x)+c.expectedSat(y)) +
			weighted(1-px, dissatSize(x)+c.expectedSat(z))

	case miniscript.KindOrB:
		x, z := n.Args[0], n.Args[1]
		w := c.branchProbs(n)
		return weighted(w[0], c.expectedSat(x)+dissatSize(z)) +
			weighted(w[1], dissatSize(x)+c.expectedSat(z))

	case miniscript.KindOrC, miniscript.KindOrD:
		x, z := n.Args[0], n.Args[1]
		w := c.branchProbs(n)
		return weighted(w[0], c.expectedSat(x)) +
			weighted(w[1], dissatSize(x)+c.expectedSat(z))

	case miniscript.KindOrI:
		x, z := n.Args[0], n.Args[1]
		w := c.branchProbs(n)
		return weighted(w[0], c.expectedSat(x)+2) +
			weighted(w[1], c.expectedSat(z)+1)

	case miniscript.KindWrapA, miniscript.KindWrapS, miniscript.KindWrapC,
		miniscript.KindWrapD, miniscript.KindWrapV, miniscript.KindWrapJ,
		miniscript.KindWrapN:
		sub := n.Args[0]
		if n.Ext.Sat == nil || sub.Ext.Sat == nil {
			return math.Inf(1)
		}
		delta := float64(n.Ext.Sat.Size - sub.Ext.Sat.Size)
		return delta + c.expectedSat(sub)
	}

	if n.Ext.Sat == nil {
		return math.Inf(1)
	}
	return float64(n.Ext.Sat.Size)
}

// branchProbs returns the or weights recorded for a node, defaulting
// to even odds for or shapes the search did not build itself.
func (c *compiler) branchProbs(n *miniscript.Node) [2]float64 {
	if w, ok := c.probs[n]; ok {
		return w
	}
	return [2]float64{0.5, 0.5}
}

// weighted scales a branch size by the probability of taking it. A
// branch that is never taken contributes nothing even when its size is
// infinite, as with and_n whose else arm has no satisfaction at all.
func weighted(p, size float64) float64 {
	if p == 0 {
		return 0
	}
	return p * size
}

func dissatSize(n *miniscript.Node) float64 {
	if n.Ext.Dissat == nil {
		return math.Inf(1)
	}
	return float64(n.Ext.Dissat.Size)
}
