package script

// Context describes one of the four mutually exclusive sets of rules a
// script can be evaluated under. All limits and fragment-legality
// decisions in the analyzer and compiler key off of a *Context value
// rather than being special-cased per pass.
type Context struct {
	Name string

	// MaxScriptSize is the hard ceiling on the encoded script in bytes.
	MaxScriptSize int

	// MaxOpCount limits non-push opcodes. Zero means no limit.
	MaxOpCount int

	// MaxStackElements limits the number of satisfaction stack items in
	// witness-based contexts. Zero means no limit.
	MaxStackElements int

	// Witness is set for contexts whose satisfactions live in the
	// witness and are priced in weight units rather than raw bytes.
	Witness bool

	// Tapscript switches key encoding to 32-byte x-only, signatures to
	// Schnorr, and CHECKMULTISIG to the CHECKSIGADD construction.
	Tapscript bool

	// KeySize is the serialized public key size without the push
	// length prefix.
	KeySize int

	// MaxSigSize is the worst-case size of one signature stack element
	// including its length prefix.
	MaxSigSize int

	// MaxMultiKeys caps the keys in a single CHECKMULTISIG.
	MaxMultiKeys int
}

var (
	Bare = &Context{
		Name:          "bare",
		MaxScriptSize: 10000,
		MaxOpCount:    201,
		KeySize:       33,
		MaxSigSize:    73,
		MaxMultiKeys:  20,
	}

	Legacy = &Context{
		Name:          "legacy",
		MaxScriptSize: 520,
		MaxOpCount:    201,
		KeySize:       33,
		MaxSigSize:    73,
		MaxMultiKeys:  20,
	}

	SegwitV0 = &Context{
		Name:             "segwitv0",
		MaxScriptSize:    10000,
		MaxOpCount:       201,
		MaxStackElements: 100,
		Witness:          true,
		KeySize:          33,
		MaxSigSize:       73,
		MaxMultiKeys:     20,
	}

	Tapscript = &Context{
		Name:             "tapscript",
		MaxScriptSize:    10000,
		MaxStackElements: 1000,
		Witness:          true,
		Tapscript:        true,
		KeySize:          32,
		MaxSigSize:       66,
	}
)

// Contexts lists every context in fan-out order. Bare and Legacy come
// first so that the least restrictive failure is the one reported when
// all contexts reject an input.
var Contexts = []*Context{Bare, Legacy, SegwitV0, Tapscript}

// FromName resolves a context by its CLI name.
func FromName(name string) (*Context, bool) {
	for _, ctx := range Contexts {
		if ctx.Name == name {
			return ctx, true
		}
	}
	// p2sh is the historical alias for the legacy context.
	if name == "p2sh" {
		return Legacy, true
	}
	return nil, false
}

// KeyPushSize is the size of a public key push including the length
// prefix.
func (c *Context) KeyPushSize() int {
	return c.KeySize + 1
}

// MultiAllowed reports whether the CHECKMULTISIG fragment is legal.
func (c *Context) MultiAllowed() bool {
	return !c.Tapscript
}

// MultiAAllowed reports whether the CHECKSIGADD threshold fragment is
// legal.
func (c *Context) MultiAAllowed() bool {
	return c.Tapscript
}
