package miniscript

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSyntax marks malformed textual or binary input.
	ErrSyntax = errors.New("malformed miniscript")

	// ErrNoSatisfaction is returned when a satisfaction metric is
	// requested for an expression that cannot be satisfied.
	ErrNoSatisfaction = errors.New("no satisfaction exists")
)

// TypeError reports a fragment composed with the wrong child types.
// It is structural and context-independent.
type TypeError struct {
	Fragment string
	Reason   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: %s", e.Fragment, e.Reason)
}

func typeErrorf(fragment string, format string, args ...interface{}) error {
	return errors.WithStack(&TypeError{
		Fragment: fragment,
		Reason:   fmt.Sprintf(format, args...),
	})
}

// ContextError reports a structurally valid fragment that is forbidden
// under the context it was constructed for. The combiner treats these
// as recoverable by trying another context.
type ContextError struct {
	Context  string
	Fragment string
	Reason   string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s not allowed under %s context: %s", e.Fragment, e.Context, e.Reason)
}

func contextErrorf(ctx string, fragment string, format string, args ...interface{}) error {
	return errors.WithStack(&ContextError{
		Context:  ctx,
		Fragment: fragment,
		Reason:   fmt.Sprintf(format, args...),
	})
}

// IsContextError reports whether err stems from a context restriction
// rather than a structural problem.
func IsContextError(err error) bool {
	var ce *ContextError
	return errors.As(err, &ce)
}
