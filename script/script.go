package script

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"strings"

	"github.com/mirukoto/bento/bio"
	"github.com/pkg/errors"
)

var (
	ErrScriptOversize = errors.New("script over max script size")
	ErrBadOpcode      = errors.New("bad opcode")
	ErrTruncatedPush  = errors.New("push past end of script")
)

// Script accumulates an opcode stream. The zero value is an empty
// script ready for use.
type Script struct {
	raw []byte
}

func (c *Script) PushOp(op Opcode) *Script {
	c.raw = append(c.raw, byte(op))
	return c
}

// PushData appends data with its minimal push prefix.
func (c *Script) PushData(data []byte) *Script {
	switch {
	case len(data) <= 75:
		c.raw = append(c.raw, byte(NewDataOpcode(len(data))))
	case len(data) <= 0xff:
		c.raw = append(c.raw, byte(OP_PUSHDATA1), byte(len(data)))
	default:
		c.raw = append(c.raw, byte(OP_PUSHDATA2))
		var l [2]byte
		binary.LittleEndian.PutUint16(l[:], uint16(len(data)))
		c.raw = append(c.raw, l[:]...)
	}
	c.raw = append(c.raw, data...)
	return c
}

// PushNum appends n using the minimal encoding: OP_0/OP_1..OP_16 for
// small values, a script number push otherwise.
func (c *Script) PushNum(n int64) *Script {
	if n == 0 {
		return c.PushOp(OP_0)
	}
	if n >= 1 && n <= 16 {
		return c.PushOp(OP_1 + Opcode(n-1))
	}
	return c.PushData(scriptNumBytes(n))
}

// Concat appends another script verbatim.
func (c *Script) Concat(other *Script) *Script {
	c.raw = append(c.raw, other.raw...)
	return c
}

func (c *Script) Bytes() []byte {
	return c.raw
}

func (c *Script) Size() int {
	return len(c.raw)
}

func (c *Script) Hex() string {
	return hex.EncodeToString(c.raw)
}

func (c *Script) WriteTo(w io.Writer) (int64, error) {
	g := bio.NewGuardWriter(w)
	bio.WriteRawBytes(g, c.raw)
	return g.N, errors.Wrap(g.Err, "error writing script")
}

// String renders the script as assembly, one mnemonic per token.
func (c *Script) String() string {
	tokens, err := Parse(c.raw)
	if err != nil {
		return "[malformed script]"
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " ")
}

// Token is one parsed instruction: an opcode and, for pushes, its
// payload.
type Token struct {
	Op   Opcode
	Data []byte
}

func (t Token) String() string {
	if len(t.Data) > 0 {
		return hex.EncodeToString(t.Data)
	}
	return t.Op.String()
}

// IsPush reports whether the token pushes a value, counting the small
// integer opcodes.
func (t Token) IsPush() bool {
	return t.Op.IsPush()
}

// Num interprets the token as a script number. Small integer opcodes
// and minimally-encoded pushes up to five bytes are accepted, which
// covers every locktime and threshold the fragment grammar produces.
func (t Token) Num() (int64, bool) {
	if t.Op == OP_0 {
		return 0, true
	}
	if t.Op >= OP_1 && t.Op <= OP_16 {
		return int64(t.Op-OP_1) + 1, true
	}
	if t.Op == OP_1NEGATE {
		return -1, true
	}
	if len(t.Data) == 0 || len(t.Data) > 5 {
		return 0, false
	}
	// Reject non-minimal encodings.
	if !bytes.Equal(scriptNumBytes(decodeScriptNum(t.Data)), t.Data) {
		return 0, false
	}
	return decodeScriptNum(t.Data), true
}

// Parse tokenizes a raw script. It rejects truncated pushes and
// unknown opcodes but performs no further validation.
func Parse(raw []byte) ([]Token, error) {
	if len(raw) > Bare.MaxScriptSize {
		return nil, errors.WithStack(ErrScriptOversize)
	}

	r := bio.NewGuardReader(bytes.NewReader(raw))
	var tokens []Token
	for int(r.N) < len(raw) {
		b, err := bio.ReadByte(r)
		if err != nil {
			return nil, errors.Wrap(err, "error reading opcode")
		}
		op := Opcode(b)

		var dataLen int
		switch {
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			dataLen = int(op)
		case op == OP_PUSHDATA1:
			l, err := bio.ReadByte(r)
			if err != nil {
				return nil, errors.WithStack(ErrTruncatedPush)
			}
			dataLen = int(l)
		case op == OP_PUSHDATA2:
			l, err := bio.ReadFixedBytes(r, 2)
			if err != nil {
				return nil, errors.WithStack(ErrTruncatedPush)
			}
			dataLen = int(binary.LittleEndian.Uint16(l))
		case op == OP_PUSHDATA4:
			l, err := bio.ReadFixedBytes(r, 4)
			if err != nil {
				return nil, errors.WithStack(ErrTruncatedPush)
			}
			dataLen = int(binary.LittleEndian.Uint32(l))
		case opcodeArray[op].name == "":
			return nil, errors.Wrapf(ErrBadOpcode, "opcode 0x%02x", b)
		}

		tok := Token{Op: op}
		if dataLen > 0 {
			data, err := bio.ReadFixedBytes(r, dataLen)
			if err != nil {
				return nil, errors.WithStack(ErrTruncatedPush)
			}
			tok.Data = data
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// ScriptNumSize returns the byte length of the minimal script number
// encoding of n, excluding the push opcode.
func ScriptNumSize(n int64) int {
	return len(scriptNumBytes(n))
}

// NumPushSize returns the full encoded size of a minimal number push
// including its opcode.
func NumPushSize(n int64) int {
	if n >= 0 && n <= 16 {
		return 1
	}
	return 1 + ScriptNumSize(n)
}

func scriptNumBytes(n int64) []byte {
	if n == 0 {
		return nil
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var out []byte
	for n > 0 {
		out = append(out, byte(n&0xff))
		n >>= 8
	}
	// A set sign bit in the most significant byte needs an extra
	// padding byte to keep the value positive.
	if out[len(out)-1]&0x80 != 0 {
		if neg {
			out = append(out, 0x80)
		} else {
			out = append(out, 0x00)
		}
	} else if neg {
		out[len(out)-1] |= 0x80
	}
	return out
}

func decodeScriptNum(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	var n int64
	for i, v := range b {
		n |= int64(v) << (8 * i)
	}
	if b[len(b)-1]&0x80 != 0 {
		n &^= int64(0x80) << (8 * (len(b) - 1))
		n = -n
	}
	return n
}
