package values

import (
	"fmt"

	"irkit/internal/native"
)

// ClassifyError reports a handle that cannot be classified into a set. The
// panicking classifiers use it as their panic payload.
type ClassifyError struct {
	Set      string
	TypeKind native.TypeKind
	Handle   native.ValueRef
	Reason   string
}

func (e *ClassifyError) Error() string {
	if e.Handle.IsNil() {
		return fmt.Sprintf("values: cannot classify null handle as %s", e.Set)
	}
	return fmt.Sprintf("values: cannot classify %s (%s) as %s: %s", e.Handle, e.TypeKind, e.Set, e.Reason)
}

// NarrowError reports an As* accessor called on a set whose active member
// has a different kind.
type NarrowError struct {
	Set  string
	Want Kind
	Have Kind
}

func (e *NarrowError) Error() string {
	return fmt.Sprintf("values: %s holds %s, not %s", e.Set, e.Have.WrapperName(), e.Want.WrapperName())
}

// WrapError reports a concrete wrapper constructor given a handle of the
// wrong kind.
type WrapError struct {
	Want   Kind
	Handle native.ValueRef
	Reason string
}

func (e *WrapError) Error() string {
	return fmt.Sprintf("values: %s is not a valid %s: %s", e.Handle, e.Want.WrapperName(), e.Reason)
}
