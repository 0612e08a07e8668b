package domain

import "fmt"

// TransportError wraps a failed inference call (network, quota, auth). It is
// propagated to the caller unchanged and its result is never cached.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inference call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StructuralError reports an edge referencing a node id that does not exist
// in the record. Field repair cannot fix a dangling reference, so this is
// surfaced instead of silently patched.
type StructuralError struct {
	From      string
	To        string
	MissingID string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("edge %s -> %s references unknown node %q", e.From, e.To, e.MissingID)
}

// MalformedResponseError reports model output that could not be parsed into
// a record at all. The graph pipeline absorbs it by substituting a fallback
// graph; the raw-record pipeline surfaces it.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model response is not a parsable record: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
