package element

import (
	"errors"

	"github.com/dshills/textdoc/document/tree"
)

// Sentinel errors for manager and element operations. Tree-level
// sentinels are re-exported so callers match one set with errors.Is.
var (
	// ErrElementNotFound is returned when an id does not resolve.
	ErrElementNotFound = tree.ErrElementNotFound

	// ErrForbiddenOperation is returned for operations the model
	// cannot honor, such as removing the root frame's identity or
	// inserting a sibling of the root.
	ErrForbiddenOperation = tree.ErrForbiddenOperation

	// ErrOutsideElementBounds is returned when an offset falls outside
	// an element's content.
	ErrOutsideElementBounds = errors.New("offset outside element bounds")

	// ErrWrongParent is returned when an insert would give an element
	// a parent of the wrong kind.
	ErrWrongParent = errors.New("wrong parent for element kind")

	// ErrUnknown reports an internal inconsistency that should not
	// occur.
	ErrUnknown = errors.New("unknown internal error")
)
