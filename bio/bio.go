package bio

import (
	"encoding/hex"
	"io"
)

// GuardReader wraps a reader and latches the first error so that a
// sequence of reads can be checked once at the end.
type GuardReader struct {
	r   io.Reader
	N   int64
	Err error
}

func NewGuardReader(r io.Reader) *GuardReader {
	return &GuardReader{
		r: r,
	}
}

func (g *GuardReader) Read(b []byte) (int, error) {
	if g.Err != nil {
		return 0, g.Err
	}

	n, err := g.r.Read(b)
	g.N += int64(n)
	if err != nil {
		g.Err = err
	}
	return n, err
}

type GuardWriter struct {
	w   io.Writer
	N   int64
	Err error
}

func NewGuardWriter(w io.Writer) *GuardWriter {
	return &GuardWriter{
		w: w,
	}
}

func (g *GuardWriter) Write(b []byte) (int, error) {
	if g.Err != nil {
		return 0, g.Err
	}

	n, err := g.w.Write(b)
	g.N += int64(n)
	if err != nil {
		g.Err = err
	}
	return n, err
}

func ReadByte(r io.Reader) (byte, error) {
	b, err := ReadFixedBytes(r, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func ReadFixedBytes(r io.Reader, byteLen int) ([]byte, error) {
	b := make([]byte, byteLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func WriteByte(w io.Writer, b byte) (int, error) {
	return w.Write([]byte{b})
}

func WriteRawBytes(w io.Writer, b []byte) (int, error) {
	return w.Write(b)
}

func MustDecodeHex(in string) []byte {
	out, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return out
}
