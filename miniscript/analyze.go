package miniscript

import (
	"github.com/mirukoto/bento/mkey"
	"github.com/pkg/errors"
)

// ScriptSize is the exact encoded script size in bytes.
func (n *Node) ScriptSize() int {
	return n.Ext.ScriptSize
}

// MaxSatisfactionWitnessElements is the greatest number of stack
// elements any canonical satisfaction pushes.
func (n *Node) MaxSatisfactionWitnessElements() (int, error) {
	if n.Ext.Sat == nil {
		return 0, errors.WithStack(ErrNoSatisfaction)
	}
	return n.Ext.Sat.Elements, nil
}

// MaxSatisfactionSize is the byte size of the costliest canonical
// satisfaction, counting one length byte per stack element. For
// witness contexts this is the weight contribution of the witness; for
// the others it approximates the scriptSig size.
func (n *Node) MaxSatisfactionSize() (int, error) {
	if n.Ext.Sat == nil {
		return 0, errors.WithStack(ErrNoSatisfaction)
	}
	return n.Ext.Sat.Size, nil
}

// RequiresSig reports whether every satisfaction path includes at
// least one signature check.
func (n *Node) RequiresSig() bool {
	return n.Typ.Safe
}

// IsNonMalleable reports whether every satisfaction path is uniquely
// determined, so no third party can substitute an alternate witness.
func (n *Node) IsNonMalleable() bool {
	return n.Typ.NonMalleable
}

// HasMixedTimelocks reports whether an absolute and a relative
// timelock are required on the same conjunctive branch.
func (n *Node) HasMixedTimelocks() bool {
	return n.Ext.MixedTimelocks
}

// HasRepeatedKeys reports whether any key appears more than once in
// the tree.
func (n *Node) HasRepeatedKeys() bool {
	seen := make(map[string]bool)
	repeated := false
	n.ForEachKey(func(k mkey.Key) {
		s := k.String()
		if seen[s] {
			repeated = true
		}
		seen[s] = true
	})
	return repeated
}

// WithinResourceLimits checks the script and witness against the
// context's ceilings.
func (n *Node) WithinResourceLimits() bool {
	ctx := n.Ctx
	if n.Ext.ScriptSize > ctx.MaxScriptSize {
		return false
	}
	if ctx.MaxOpCount > 0 && n.Ext.Ops > ctx.MaxOpCount {
		return false
	}
	if ctx.MaxStackElements > 0 && n.Ext.Sat != nil &&
		n.Ext.Sat.Elements > ctx.MaxStackElements {
		return false
	}
	return true
}

// SanityCheck runs the full consistency check an expression must pass
// before its script can be trusted for spending.
func (n *Node) SanityCheck() error {
	if n.Typ.Base != TypeB {
		return typeErrorf(n.String(), "top-level expression must be B, got %s", n.Typ.Base)
	}
	if !n.Typ.NonMalleable {
		return errors.Errorf("malleable miniscript: %s", n.String())
	}
	if !n.Typ.Safe {
		return errors.Errorf("miniscript is satisfiable without a signature: %s", n.String())
	}
	if n.HasRepeatedKeys() {
		return errors.Errorf("repeated keys in miniscript: %s", n.String())
	}
	if n.HasMixedTimelocks() {
		return errors.Errorf("mixed absolute and relative timelocks: %s", n.String())
	}
	if !n.WithinResourceLimits() {
		return contextErrorf(n.Ctx.Name, n.String(), "resource limits exceeded")
	}
	return nil
}
