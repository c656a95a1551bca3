package respread

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrChildNotFound indicates a lookup for a name that is neither a
	// registered child nor a derivable one.
	ErrChildNotFound = errors.New("respread: child not found")

	// ErrDuplicateName indicates a registration under a name that is
	// already taken. Use ReplaceChild to overwrite deliberately.
	ErrDuplicateName = errors.New("respread: duplicate child name")

	// ErrInvalidName indicates a reserved or non-identifier child name.
	ErrInvalidName = errors.New("respread: invalid child name")

	// ErrPathResolution indicates a redirect or navigation path whose
	// hops cannot be satisfied from the starting node.
	ErrPathResolution = errors.New("respread: path resolution failed")

	// ErrNotLeaf indicates a call against a child that is a composite
	// node rather than a callable leaf.
	ErrNotLeaf = errors.New("respread: child is not a leaf")

	// ErrNotNode indicates navigation into a child that is a leaf
	// rather than a composite node.
	ErrNotNode = errors.New("respread: child is not a node")

	// ErrNoData indicates a data-backed child has no value for the
	// requested key. Redirect wrappers commonly designate this error
	// as the fall-back signal.
	ErrNoData = errors.New("respread: no data for key")
)

// PathError reports the hop at which resolving a path failed.
type PathError struct {
	Path []string
	Hop  string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolving path %q at hop %q: %v", strings.Join(e.Path, "."), e.Hop, e.Err)
	}
	return fmt.Sprintf("resolving path %q at hop %q", strings.Join(e.Path, "."), e.Hop)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports a match against ErrPathResolution so callers can test the
// error kind without inspecting the wrapped cause.
func (e *PathError) Is(target error) bool {
	return target == ErrPathResolution
}
