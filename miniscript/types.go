package miniscript

// Base is one of the four base types of the fragment type system.
type Base int

const (
	// TypeB pushes a boolean on the stack.
	TypeB Base = iota
	// TypeV leaves nothing; it aborts the script on failure.
	TypeV
	// TypeK pushes a public key for a later CHECKSIG.
	TypeK
	// TypeW is a B that consumes its input one deep in the stack.
	TypeW
)

var baseNames = [...]string{"B", "V", "K", "W"}

func (b Base) String() string {
	return baseNames[b]
}

// Dissat classifies how an expression can be made to evaluate false.
type Dissat int

const (
	// DissatNone: the expression cannot be dissatisfied.
	DissatNone Dissat = iota
	// DissatUnique: exactly one canonical dissatisfaction exists.
	DissatUnique
	// DissatUnknown: dissatisfactions exist but are not unique, so a
	// third party may substitute one for another.
	DissatUnknown
)

// Properties carries the correctness and malleability type data of a
// node. Correctness violations make a node unconstructable;
// malleability data feeds the analyzer only.
type Properties struct {
	Base Base

	// Correctness properties.
	Zero           bool // consumes no stack items
	One            bool // consumes exactly one stack item
	NonZero        bool // no satisfaction starts with an empty item
	Dissatisfiable bool // a canonical dissatisfaction exists
	Unit           bool // puts exactly 0 or 1 on the stack

	// Malleability properties.
	Dissat       Dissat
	Safe         bool // every satisfaction involves a signature
	NonMalleable bool
}

// Expressive reports the e property: a unique canonical
// dissatisfaction exists.
func (p Properties) Expressive() bool {
	return p.Dissat == DissatUnique
}

// Forced reports the f property: no dissatisfaction exists.
func (p Properties) Forced() bool {
	return p.Dissat == DissatNone
}

func computeProperties(n *Node) (Properties, error) {
	switch n.Kind {
	case KindFalse:
		return Properties{
			Base: TypeB, Zero: true, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnique, Safe: true, NonMalleable: true,
		}, nil

	case KindTrue:
		return Properties{
			Base: TypeB, Zero: true, Unit: true,
			Dissat: DissatNone, NonMalleable: true,
		}, nil

	case KindPkK:
		return Properties{
			Base: TypeK, One: true, NonZero: true, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnique, Safe: true, NonMalleable: true,
		}, nil

	case KindPkH, KindRawPkH:
		return Properties{
			Base: TypeK, NonZero: true, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnique, Safe: true, NonMalleable: true,
		}, nil

	case KindOlder, KindAfter:
		return Properties{
			Base: TypeB, Zero: true,
			Dissat: DissatNone, NonMalleable: true,
		}, nil

	case KindSha256, KindHash256, KindRipemd160, KindHash160:
		return Properties{
			Base: TypeB, One: true, NonZero: true, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnknown, NonMalleable: true,
		}, nil

	case KindMulti:
		return Properties{
			Base: TypeB, NonZero: true, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnique, Safe: true, NonMalleable: true,
		}, nil

	case KindMultiA:
		return Properties{
			Base: TypeB, Dissatisfiable: true, Unit: true,
			Dissat: DissatUnique, Safe: true, NonMalleable: true,
		}, nil

	case KindAndV:
		return andVProperties(n)
	case KindAndB:
		return andBProperties(n)
	case KindAndOr:
		return andOrProperties(n)
	case KindOrB:
		return orBProperties(n)
	case KindOrC:
		return orCProperties(n)
	case KindOrD:
		return orDProperties(n)
	case KindOrI:
		return orIProperties(n)
	case KindThresh:
		return threshProperties(n)
	case KindWrapA, KindWrapS, KindWrapC, KindWrapD, KindWrapV, KindWrapJ, KindWrapN:
		return wrapperProperties(n)
	}
	panic("unhandled fragment kind")
}

func andVProperties(n *Node) (Properties, error) {
	x, y := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != TypeV {
		return Properties{}, typeErrorf("and_v", "left argument must be V, got %s", x.Base)
	}
	if y.Base == TypeW {
		return Properties{}, typeErrorf("and_v", "right argument cannot be W")
	}
	p := Properties{
		Base:    y.Base,
		Zero:    x.Zero && y.Zero,
		One:     (x.Zero && y.One) || (x.One && y.Zero),
		NonZero: x.NonZero || (x.Zero && y.NonZero),
		Unit:    y.Unit,
		Safe:    x.Safe || y.Safe,

		NonMalleable: x.NonMalleable && y.NonMalleable,
	}
	switch {
	case y.Dissat == DissatNone:
		p.Dissat = DissatNone
	case x.Safe:
		// Dissatisfying the right side still requires satisfying the
		// left, which needs a signature.
		p.Dissat = DissatNone
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func andBProperties(n *Node) (Properties, error) {
	x, y := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != TypeB {
		return Properties{}, typeErrorf("and_b", "left argument must be B, got %s", x.Base)
	}
	if y.Base != TypeW {
		return Properties{}, typeErrorf("and_b", "right argument must be W, got %s", y.Base)
	}
	p := Properties{
		Base:           TypeB,
		Zero:           x.Zero && y.Zero,
		One:            (x.Zero && y.One) || (x.One && y.Zero),
		NonZero:        x.NonZero || (x.Zero && y.NonZero),
		Dissatisfiable: x.Dissatisfiable && y.Dissatisfiable,
		Unit:           true,
		Safe:           x.Safe || y.Safe,
		NonMalleable:   x.NonMalleable && y.NonMalleable,
	}
	switch {
	case x.Dissat == DissatNone && y.Dissat == DissatNone:
		p.Dissat = DissatNone
	case x.Dissat == DissatNone && x.Safe:
		p.Dissat = DissatNone
	case y.Dissat == DissatNone && y.Safe:
		p.Dissat = DissatNone
	case x.Dissat == DissatUnique && y.Dissat == DissatUnique && x.Safe && y.Safe:
		p.Dissat = DissatUnique
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func andOrProperties(n *Node) (Properties, error) {
	x, y, z := n.Args[0].Typ, n.Args[1].Typ, n.Args[2].Typ
	if x.Base != TypeB || !x.Dissatisfiable || !x.Unit {
		return Properties{}, typeErrorf("andor", "condition must be Bdu")
	}
	if y.Base != z.Base || y.Base == TypeW {
		return Properties{}, typeErrorf("andor", "branches must share a base type other than W")
	}
	p := Properties{
		Base:           y.Base,
		Zero:           x.Zero && y.Zero && z.Zero,
		One:            (x.Zero && y.One && z.One) || (x.One && y.Zero && z.Zero),
		Dissatisfiable: z.Dissatisfiable,
		Unit:           y.Unit && z.Unit,
		Safe:           (x.Safe || y.Safe) && z.Safe,
		NonMalleable: x.NonMalleable && y.NonMalleable && z.NonMalleable &&
			x.Expressive() && (x.Safe || y.Safe || z.Safe),
	}
	switch {
	case z.Dissat == DissatNone:
		p.Dissat = DissatNone
	case x.Dissat == DissatUnique && z.Dissat == DissatUnique:
		p.Dissat = DissatUnique
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func orBProperties(n *Node) (Properties, error) {
	x, z := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != TypeB || !x.Dissatisfiable {
		return Properties{}, typeErrorf("or_b", "left argument must be Bd")
	}
	if z.Base != TypeW || !z.Dissatisfiable {
		return Properties{}, typeErrorf("or_b", "right argument must be Wd")
	}
	p := Properties{
		Base:           TypeB,
		Zero:           x.Zero && z.Zero,
		One:            (x.Zero && z.One) || (x.One && z.Zero),
		Dissatisfiable: true,
		Unit:           true,
		Safe:           x.Safe && z.Safe,
		NonMalleable: x.NonMalleable && z.NonMalleable &&
			x.Expressive() && z.Expressive() && (x.Safe || z.Safe),
	}
	if x.Dissat == DissatUnique && z.Dissat == DissatUnique {
		p.Dissat = DissatUnique
	} else {
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func orCProperties(n *Node) (Properties, error) {
	x, z := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != TypeB || !x.Dissatisfiable || !x.Unit {
		return Properties{}, typeErrorf("or_c", "left argument must be Bdu")
	}
	if z.Base != TypeV {
		return Properties{}, typeErrorf("or_c", "right argument must be V")
	}
	return Properties{
		Base:   TypeV,
		Zero:   x.Zero && z.Zero,
		One:    x.One && z.Zero,
		Dissat: DissatNone,
		Safe:   x.Safe && z.Safe,
		NonMalleable: x.NonMalleable && z.NonMalleable &&
			x.Expressive() && (x.Safe || z.Safe),
	}, nil
}

func orDProperties(n *Node) (Properties, error) {
	x, z := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != TypeB || !x.Dissatisfiable || !x.Unit {
		return Properties{}, typeErrorf("or_d", "left argument must be Bdu")
	}
	if z.Base != TypeB {
		return Properties{}, typeErrorf("or_d", "right argument must be B")
	}
	p := Properties{
		Base:           TypeB,
		Zero:           x.Zero && z.Zero,
		One:            x.One && z.Zero,
		Dissatisfiable: z.Dissatisfiable,
		Unit:           z.Unit,
		Safe:           x.Safe && z.Safe,
		NonMalleable: x.NonMalleable && z.NonMalleable &&
			x.Expressive() && (x.Safe || z.Safe),
	}
	switch {
	case z.Dissat == DissatNone:
		p.Dissat = DissatNone
	case x.Dissat == DissatUnique && z.Dissat == DissatUnique:
		p.Dissat = DissatUnique
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func orIProperties(n *Node) (Properties, error) {
	x, z := n.Args[0].Typ, n.Args[1].Typ
	if x.Base != z.Base || x.Base == TypeW {
		return Properties{}, typeErrorf("or_i", "branches must share a base type other than W")
	}
	p := Properties{
		Base:           x.Base,
		One:            x.Zero && z.Zero,
		Dissatisfiable: x.Dissatisfiable || z.Dissatisfiable,
		Unit:           x.Unit && z.Unit,
		Safe:           x.Safe && z.Safe,
		NonMalleable:   x.NonMalleable && z.NonMalleable && (x.Safe || z.Safe),
	}
	switch {
	case x.Dissat == DissatNone && z.Dissat == DissatNone:
		p.Dissat = DissatNone
	case x.Dissat == DissatUnique && z.Dissat == DissatNone:
		p.Dissat = DissatUnique
	case x.Dissat == DissatNone && z.Dissat == DissatUnique:
		p.Dissat = DissatUnique
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func threshProperties(n *Node) (Properties, error) {
	var safeCount int
	allZero := true
	oneCount := 0
	nonMall := true
	anyNone := false
	allUnique := true
	allSafe := true
	for i, arg := range n.Args {
		t := arg.Typ
		if i == 0 {
			if t.Base != TypeB || !t.Dissatisfiable || !t.Unit {
				return Properties{}, typeErrorf("thresh", "first argument must be Bdu")
			}
		} else {
			if t.Base != TypeW || !t.Dissatisfiable || !t.Unit {
				return Properties{}, typeErrorf("thresh", "argument %d must be Wdu", i+1)
			}
		}
		if t.Safe {
			safeCount++
		} else {
			allSafe = false
		}
		if !t.Zero {
			allZero = false
			if t.One {
				oneCount++
			}
		}
		nonMall = nonMall && t.NonMalleable
		switch t.Dissat {
		case DissatNone:
			anyNone = true
		case DissatUnknown:
			allUnique = false
		}
	}

	nsubs := len(n.Args)
	p := Properties{
		Base:           TypeB,
		Zero:           allZero,
		One:            !allZero && oneCount == 1,
		Dissatisfiable: true,
		Unit:           true,
		Safe:           safeCount >= nsubs-n.K+1,
		NonMalleable:   nonMall && allUnique && safeCount >= nsubs-n.K,
	}
	switch {
	case anyNone:
		p.Dissat = DissatNone
	case allUnique && allSafe:
		p.Dissat = DissatUnique
	default:
		p.Dissat = DissatUnknown
	}
	return p, nil
}

func wrapperProperties(n *Node) (Properties, error) {
	x := n.Args[0].Typ
	switch n.Kind {
	case KindWrapA:
		if x.Base != TypeB {
			return Properties{}, typeErrorf("a", "argument must be B, got %s", x.Base)
		}
		return Properties{
			Base: TypeW, Dissatisfiable: x.Dissatisfiable, Unit: x.Unit,
			Dissat: x.Dissat, Safe: x.Safe, NonMalleable: x.NonMalleable,
		}, nil

	case KindWrapS:
		if x.Base != TypeB || !x.One {
			return Properties{}, typeErrorf("s", "argument must be Bo")
		}
		return Properties{
			Base: TypeW, Dissatisfiable: x.Dissatisfiable, Unit: x.Unit,
			Dissat: x.Dissat, Safe: x.Safe, NonMalleable: x.NonMalleable,
		}, nil

	case KindWrapC:
		if x.Base != TypeK {
			return Properties{}, typeErrorf("c", "argument must be K, got %s", x.Base)
		}
		return Properties{
			Base: TypeB, One: x.One, NonZero: x.NonZero,
			Dissatisfiable: x.Dissatisfiable, Unit: true,
			Dissat: x.Dissat, Safe: true, NonMalleable: x.NonMalleable,
		}, nil

	case KindWrapD:
		if x.Base != TypeV || !x.Zero {
			return Properties{}, typeErrorf("d", "argument must be Vz")
		}
		return Properties{
			Base: TypeB, One: true, NonZero: true, Dissatisfiable: true,
			// The d: wrapper is only unit under MINIMALIF semantics.
			Unit:   n.Ctx.Tapscript,
			Dissat: DissatUnique, Safe: x.Safe, NonMalleable: x.NonMalleable,
		}, nil

	case KindWrapV:
		if x.Base != TypeB {
			return Properties{}, typeErrorf("v", "argument must be B, got %s", x.Base)
		}
		return Properties{
			Base: TypeV, Zero: x.Zero, One: x.One, NonZero: x.NonZero,
			Dissat: DissatNone, Safe: x.Safe, NonMalleable: x.NonMalleable,
		}, nil

	case KindWrapJ:
		if x.Base != TypeB || !x.NonZero {
			return Properties{}, typeErrorf("j", "argument must be Bn")
		}
		p := Properties{
			Base: TypeB, One: x.One, NonZero: true, Dissatisfiable: true, Unit: x.Unit,
			Safe: x.Safe, NonMalleable: x.NonMalleable,
		}
		if x.Dissat == DissatNone {
			p.Dissat = DissatUnique
		} else {
			p.Dissat = DissatUnknown
		}
		return p, nil

	case KindWrapN:
		if x.Base != TypeB {
			return Properties{}, typeErrorf("n", "argument must be B, got %s", x.Base)
		}
		return Properties{
			Base: TypeB, Zero: x.Zero, One: x.One, NonZero: x.NonZero,
			Dissatisfiable: x.Dissatisfiable, Unit: true,
			Dissat: x.Dissat, Safe: x.Safe, NonMalleable: x.NonMalleable,
		}, nil
	}
	panic("unhandled wrapper kind")
}
