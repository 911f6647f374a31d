package bento

import (
	"github.com/pkg/errors"

	"github.com/mirukoto/bento/log"
	"github.com/mirukoto/bento/miniscript"
	"github.com/mirukoto/bento/mkey"
	"github.com/mirukoto/bento/policy"
	"github.com/mirukoto/bento/script"
)

var logger = log.ModuleLogger("bento")

// ErrInvalidEverywhere is returned when an input fails under all four
// script contexts. Per-context failures are expected and only logged.
var ErrInvalidEverywhere = errors.New("invalid under every script context")

// Inspect parses a textual expression under every script context and
// combines the per-context analyses into one report. Concrete keys are
// tried first; when no context accepts them the expression is re-read
// with placeholder key names, which drops the script fields but keeps
// the structural analysis.
func Inspect(text string) (*Report, error) {
	combined := inspectAs(text, mkey.KeyTypePublic)
	if combined == nil {
		combined = inspectAs(text, mkey.KeyTypeString)
	}
	if combined == nil {
		return nil, errors.Wrap(ErrInvalidEverywhere, "invalid miniscript")
	}
	return combined, nil
}

func inspectAs(text string, keyType mkey.KeyType) *Report {
	var combined *Report
	for _, ctx := range script.Contexts {
		n, err := miniscript.ParseInsane(text, ctx, keyType)
		if err != nil {
			logParseFailure(ctx, err)
			continue
		}
		combined = combined.Combine(contextReport(n, ctx, keyType))
	}
	return combined
}

// ParseScript decodes raw script bytes under every script context and
// combines the analyses, like Inspect but over the wire encoding.
func ParseScript(raw []byte) (*Report, error) {
	var combined *Report
	for _, ctx := range script.Contexts {
		n, err := miniscript.DecodeInsane(raw, ctx)
		if err != nil {
			logParseFailure(ctx, err)
			continue
		}
		combined = combined.Combine(contextReport(n, ctx, mkey.KeyTypePublic))
	}
	if combined == nil {
		return nil, errors.Wrap(ErrInvalidEverywhere, "invalid script")
	}
	return combined, nil
}

// DescribePolicy analyzes a policy string: concrete grammar first,
// abstract grammar as fallback, each tried with concrete keys before
// placeholder names. Concrete policies additionally get their best
// compilation per context.
func DescribePolicy(text string) (*PolicyReport, error) {
	for _, keyType := range []mkey.KeyType{mkey.KeyTypePublic, mkey.KeyTypeString} {
		if con, err := policy.ParseConcrete(text, keyType); err == nil {
			report := semanticReport(con.Lift(), keyType)
			report.IsConcrete = true
			report.Miniscript = compilations(con)
			return report, nil
		}
		sem, err := policy.ParseSemantic(text, keyType)
		if err != nil {
			logger.Debug("cannot parse policy", "key_type", keyType, "err", err)
			continue
		}
		return semanticReport(sem, keyType), nil
	}
	return nil, errors.Wrap(policy.ErrPolicySyntax, "invalid policy")
}

// Compile compiles a concrete policy for one target context and
// returns the encoded script.
func Compile(text string, ctx *script.Context) (*CompiledScript, error) {
	con, err := policy.ParseConcrete(text, mkey.KeyTypePublic)
	if err != nil {
		return nil, errors.Wrap(err, "invalid concrete policy")
	}
	n, err := policy.Compile(con, ctx)
	if err != nil {
		return nil, err
	}
	sc, ok := n.Encode()
	if !ok {
		return nil, errors.New("compiled expression has no concrete encoding")
	}
	return &CompiledScript{Hex: sc.Bytes(), Asm: sc.String()}, nil
}

func contextReport(n *miniscript.Node, ctx *script.Context, keyType mkey.KeyType) *Report {
	r := &Report{
		KeyType:             keyType,
		ValidScriptContexts: contextFlag(ctx),
		ScriptSize:          n.ScriptSize(),
		RequiresSig:         n.RequiresSig(),
		HasMixedTimelocks:   n.HasMixedTimelocks(),
		HasRepeatedKeys:     n.HasRepeatedKeys(),
	}
	if n.IsNonMalleable() {
		r.NonMalleable = contextFlag(ctx)
	}
	if n.WithinResourceLimits() {
		r.WithinResourceLimits = contextFlag(ctx)
	}
	if n.SanityCheck() == nil {
		r.SaneMiniscript = contextFlag(ctx)
	}

	if elems, err := n.MaxSatisfactionWitnessElements(); err == nil {
		r.MaxSatisfactionWitnessElements = &elems
	}
	if size, err := n.MaxSatisfactionSize(); err == nil {
		if ctx.Witness {
			r.MaxSatisfactionSizeSegwit = &size
		} else {
			r.MaxSatisfactionSizeNonSegwit = &size
		}
	}

	if sc, ok := n.Encode(); ok {
		r.Script = sc.Bytes()
	}

	if pol, err := policy.Lift(n); err == nil {
		s := pol.String()
		r.Policy = &s
	} else {
		logger.Info("lift failed", "context", ctx.Name, "err", err)
	}
	return r
}

func semanticReport(sem *policy.Semantic, keyType mkey.KeyType) *PolicyReport {
	return &PolicyReport{
		KeyType:           keyType,
		IsTrivial:         sem.IsTrivial(),
		IsUnsatisfiable:   sem.IsUnsatisfiable(),
		RelativeTimelocks: sem.RelativeTimelocks(),
		NKeys:             sem.NKeys(),
		MinimumNKeys:      sem.MinimumNKeys(),
		Sorted:            sem.Sorted().String(),
		Normalized:        sem.Normalize().String(),
	}
}

func compilations(con *policy.Concrete) *Compilations {
	out := &Compilations{}
	for _, ctx := range script.Contexts {
		n, err := policy.Compile(con, ctx)
		if err != nil {
			logger.Debug("compiler error", "context", ctx.Name, "err", err)
			continue
		}
		s := n.String()
		switch ctx {
		case script.Bare:
			out.Bare = &s
		case script.Legacy:
			out.Legacy = &s
		case script.SegwitV0:
			out.SegwitV0 = &s
		case script.Tapscript:
			out.Tapscript = &s
		}
	}
	return out
}

func contextFlag(ctx *script.Context) ScriptContexts {
	switch ctx {
	case script.Bare:
		return ScriptContexts{Bare: true}
	case script.Legacy:
		return ScriptContexts{Legacy: true}
	case script.SegwitV0:
		return ScriptContexts{SegwitV0: true}
	}
	return ScriptContexts{Tapscript: true}
}

// Bare and legacy rejections are routine, the expression usually
// targets a witness context; witness rejections are worth surfacing.
func logParseFailure(ctx *script.Context, err error) {
	if ctx == script.Bare || ctx == script.Legacy {
		logger.Debug("cannot parse", "context", ctx.Name, "err", err)
		return
	}
	logger.Info("cannot parse", "context", ctx.Name, "err", err)
}
