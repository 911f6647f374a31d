// Package bento analyzes bitcoin script expressions, spending policies
// and output descriptors across every script context at once.
package bento

import (
	"github.com/mirukoto/bento/bjson"
	"github.com/mirukoto/bento/mkey"
)

// ScriptContexts is a per-context flag set. Combining reports ORs
// these together, so a flag reads "true in at least one context that
// produced a report".
type ScriptContexts struct {
	Bare      bool `json:"bare"`
	Legacy    bool `json:"legacy"`
	SegwitV0  bool `json:"segwitv0"`
	Tapscript bool `json:"tapscript"`
}

func orContexts(a, b ScriptContexts) ScriptContexts {
	return ScriptContexts{
		Bare:      a.Bare || b.Bare,
		Legacy:    a.Legacy || b.Legacy,
		SegwitV0:  a.SegwitV0 || b.SegwitV0,
		Tapscript: a.Tapscript || b.Tapscript,
	}
}

// Report is the combined analysis of one expression across the
// contexts it is valid under. Size fields that only make sense for
// some contexts are omitted when no valid context produced them.
type Report struct {
	KeyType                        mkey.KeyType     `json:"key_type"`
	ValidScriptContexts            ScriptContexts   `json:"valid_script_contexts"`
	ScriptSize                     int              `json:"script_size"`
	MaxSatisfactionWitnessElements *int             `json:"max_satisfaction_witness_elements,omitempty"`
	MaxSatisfactionSizeSegwit      *int             `json:"max_satisfaction_size_segwit,omitempty"`
	MaxSatisfactionSizeNonSegwit   *int             `json:"max_satisfaction_size_non_segwit,omitempty"`
	Script                         bjson.ByteString `json:"script,omitempty"`
	Policy                         *string          `json:"policy,omitempty"`
	RequiresSig                    bool             `json:"requires_sig"`
	NonMalleable                   ScriptContexts   `json:"non_malleable"`
	WithinResourceLimits           ScriptContexts   `json:"within_resource_limits"`
	HasMixedTimelocks              bool             `json:"has_mixed_timelocks"`
	HasRepeatedKeys                bool             `json:"has_repeated_keys"`
	SaneMiniscript                 ScriptContexts   `json:"sane_miniscript"`
}

// Combine merges two per-context reports into one. For scalar fields
// the first report wins; the per-context flag sets are ORed and
// optional fields fall back to the other report when absent.
func (r *Report) Combine(o *Report) *Report {
	if r == nil {
		return o
	}
	if o == nil {
		return r
	}
	out := *r
	out.ValidScriptContexts = orContexts(r.ValidScriptContexts, o.ValidScriptContexts)
	if out.MaxSatisfactionWitnessElements == nil {
		out.MaxSatisfactionWitnessElements = o.MaxSatisfactionWitnessElements
	}
	if out.MaxSatisfactionSizeSegwit == nil {
		out.MaxSatisfactionSizeSegwit = o.MaxSatisfactionSizeSegwit
	}
	if out.MaxSatisfactionSizeNonSegwit == nil {
		out.MaxSatisfactionSizeNonSegwit = o.MaxSatisfactionSizeNonSegwit
	}
	if out.Policy == nil {
		out.Policy = o.Policy
	}
	out.NonMalleable = orContexts(r.NonMalleable, o.NonMalleable)
	out.WithinResourceLimits = orContexts(r.WithinResourceLimits, o.WithinResourceLimits)
	out.SaneMiniscript = orContexts(r.SaneMiniscript, o.SaneMiniscript)
	return &out
}

// Compilations holds the best expression per context for a concrete
// policy; a nil entry means the compiler found no encoding there.
type Compilations struct {
	Bare      *string `json:"bare"`
	Legacy    *string `json:"legacy"`
	SegwitV0  *string `json:"segwitv0"`
	Tapscript *string `json:"tapscript"`
}

// PolicyReport is the analysis of a policy string.
type PolicyReport struct {
	IsConcrete        bool          `json:"is_concrete"`
	KeyType           mkey.KeyType  `json:"key_type"`
	IsTrivial         bool          `json:"is_trivial"`
	IsUnsatisfiable   bool          `json:"is_unsatisfiable"`
	RelativeTimelocks []uint32      `json:"relative_timelocks"`
	NKeys             int           `json:"n_keys"`
	MinimumNKeys      int           `json:"minimum_n_keys"`
	Sorted            string        `json:"sorted"`
	Normalized        string        `json:"normalized"`
	Miniscript        *Compilations `json:"miniscript,omitempty"`
}

// CompiledScript is the output of a single-context compilation.
type CompiledScript struct {
	Hex bjson.ByteString `json:"hex"`
	Asm string           `json:"asm"`
}
