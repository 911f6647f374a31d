package policy

import (
	"testing"

	"github.com/mirukoto/bento/mkey"
	"github.com/stretchr/testify/require"
)

const (
	polKeyA = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	polKeyB = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	polKeyC = "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"

	polSha256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func mustSemantic(t *testing.T, s string) *Semantic {
	t.Helper()
	p, err := ParseSemantic(s, mkey.KeyTypeString)
	require.NoError(t, err)
	return p
}

func mustConcrete(t *testing.T, s string) *Concrete {
	t.Helper()
	p, err := ParseConcrete(s, mkey.KeyTypeString)
	require.NoError(t, err)
	return p
}

func TestParseSemantic(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"pk(A)", "pk(A)"},
		{"TRIVIAL", "TRIVIAL"},
		{"UNSATISFIABLE", "UNSATISFIABLE"},
		{"older(10)", "older(10)"},
		{"after(100)", "after(100)"},
		{"sha256(" + polSha256 + ")", "sha256(" + polSha256 + ")"},
		// And/or are sugar for their threshold forms.
		{"and(pk(A),pk(B))", "thresh(2,pk(A),pk(B))"},
		{"or(pk(A),pk(B))", "thresh(1,pk(A),pk(B))"},
		{"thresh(2,pk(A),pk(B),older(10))", "thresh(2,pk(A),pk(B),older(10))"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, mustSemantic(t, tt.in).String(), tt.in)
	}
}

func TestParseSemanticErrors(t *testing.T) {
	bad := []string{
		"",
		"pk()",
		"and(pk(A))",
		"thresh(0,pk(A))",
		"thresh(3,pk(A),pk(B))",
		"older(0)",
		"after(2147483648)",
		"sha256(00)",
		"pk(A)x",
		"frob(pk(A))",
	}
	for _, s := range bad {
		_, err := ParseSemantic(s, mkey.KeyTypeString)
		require.Error(t, err, s)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		// Nested same-flavor thresholds flatten.
		{"or(pk(A),or(pk(B),pk(C)))", "thresh(1,pk(A),pk(B),pk(C))"},
		{"and(pk(A),and(pk(B),pk(C)))", "thresh(3,pk(A),pk(B),pk(C))"},
		// Trivial children decrement the threshold.
		{"and(pk(A),TRIVIAL)", "pk(A)"},
		{"or(pk(A),TRIVIAL)", "TRIVIAL"},
		// Unsatisfiable children are dropped.
		{"or(pk(A),UNSATISFIABLE)", "pk(A)"},
		{"and(pk(A),UNSATISFIABLE)", "UNSATISFIABLE"},
		{"thresh(2,pk(A),pk(B),UNSATISFIABLE)", "thresh(2,pk(A),pk(B))"},
		// Mixed thresholds keep their shape.
		{"thresh(2,pk(A),pk(B),pk(C))", "thresh(2,pk(A),pk(B),pk(C))"},
	}
	for _, tt := range tests {
		norm := mustSemantic(t, tt.in).Normalize()
		require.Equal(t, tt.out, norm.String(), tt.in)
		// Normalizing is a fixed point.
		require.Equal(t, tt.out, norm.Normalize().String(), tt.in)
	}
}

func TestSorted(t *testing.T) {
	a := mustSemantic(t, "or(and(pk(B),older(10)),pk(A))").Normalize().Sorted()
	b := mustSemantic(t, "or(pk(A),and(older(10),pk(B)))").Normalize().Sorted()
	require.Equal(t, a.String(), b.String())

	// Sorting is stable and idempotent.
	require.Equal(t, a.String(), a.Sorted().String())
}

func TestIsTrivialAndUnsatisfiable(t *testing.T) {
	require.True(t, mustSemantic(t, "TRIVIAL").IsTrivial())
	require.True(t, mustSemantic(t, "or(pk(A),TRIVIAL)").IsTrivial())
	require.False(t, mustSemantic(t, "pk(A)").IsTrivial())

	require.True(t, mustSemantic(t, "UNSATISFIABLE").IsUnsatisfiable())
	require.True(t, mustSemantic(t, "and(pk(A),UNSATISFIABLE)").IsUnsatisfiable())
	require.False(t, mustSemantic(t, "pk(A)").IsUnsatisfiable())

	// Two distinct absolute locks on one conjunctive path can never
	// both be the last one checked.
	require.True(t, mustSemantic(t, "and(after(100),after(50))").IsUnsatisfiable())
	require.False(t, mustSemantic(t, "or(after(100),after(50))").IsUnsatisfiable())
	require.False(t, mustSemantic(t, "and(after(100),older(50))").IsUnsatisfiable())
	require.False(t, mustSemantic(t, "and(after(100),after(100))").IsUnsatisfiable())
}

func TestNKeys(t *testing.T) {
	p := mustSemantic(t, "thresh(2,pk(A),pk(B),and(pk(A),older(10)))")
	require.Equal(t, 2, p.NKeys())
	require.Equal(t, 0, mustSemantic(t, "older(10)").NKeys())
}

func TestMinimumNKeys(t *testing.T) {
	require.Equal(t, 1, mustSemantic(t, "pk(A)").MinimumNKeys())
	require.Equal(t, 0, mustSemantic(t, "or(pk(A),older(10))").MinimumNKeys())
	require.Equal(t, 2, mustSemantic(t, "and(pk(A),pk(B))").MinimumNKeys())
	require.Equal(t, 1, mustSemantic(t, "thresh(2,pk(A),pk(B),older(10))").MinimumNKeys())
	require.Equal(t, 2, mustSemantic(t, "thresh(3,pk(A),pk(B),pk(C),older(10))").MinimumNKeys())
}

func TestRelativeTimelocks(t *testing.T) {
	p := mustSemantic(t, "thresh(2,older(100),older(10),older(100),after(50))")
	require.Equal(t, []uint32{10, 100}, p.RelativeTimelocks())
	require.Empty(t, mustSemantic(t, "pk(A)").RelativeTimelocks())
}

func TestParseConcrete(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"pk(A)", "pk(A)"},
		{"and(pk(A),older(10))", "and(pk(A),older(10))"},
		{"or(pk(A),pk(B))", "or(pk(A),pk(B))"},
		{"or(9@pk(A),pk(B))", "or(9@pk(A),pk(B))"},
		{"or(1@pk(A),1@pk(B))", "or(pk(A),pk(B))"},
		{"thresh(2,pk(A),pk(B),pk(C))", "thresh(2,pk(A),pk(B),pk(C))"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, mustConcrete(t, tt.in).String(), tt.in)
	}
}

func TestParseConcreteErrors(t *testing.T) {
	bad := []string{
		"and(pk(A))",
		"and(pk(A),pk(B),pk(C))",
		"or(pk(A))",
		"or(0@pk(A),pk(B))",
		"thresh(1,pk(A))",
		"TRIVIAL",
	}
	for _, s := range bad {
		_, err := ParseConcrete(s, mkey.KeyTypeString)
		require.Error(t, err, s)
	}
}

func TestConcreteLift(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"pk(A)", "pk(A)"},
		{"and(pk(A),older(10))", "thresh(2,pk(A),older(10))"},
		{"or(9@pk(A),pk(B))", "thresh(1,pk(A),pk(B))"},
		{"thresh(2,pk(A),pk(B),pk(C))", "thresh(2,pk(A),pk(B),pk(C))"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, mustConcrete(t, tt.in).Lift().String(), tt.in)
	}
}
