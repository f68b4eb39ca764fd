package remote

import (
	"errors"
	"fmt"
)

// Kind tags a LookupError.
type Kind int

const (
	// Unreachable covers resolve failures, refused connections and timeouts.
	Unreachable Kind = iota + 1
	// RemoteRejected means the downstream answered with a non-2xx status.
	RemoteRejected
	// MalformedResponse means the body could not be decoded.
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case Unreachable:
		return "unreachable"
	case RemoteRejected:
		return "remote_rejected"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// LookupError is returned by every Client call that fails.
type LookupError struct {
	Kind    Kind
	Service string
	URL     string
	Status  int
	Body    []byte
	Err     error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case RemoteRejected:
		return fmt.Sprintf("%s rejected %s with status %d", e.Service, e.URL, e.Status)
	case MalformedResponse:
		return fmt.Sprintf("%s returned a malformed body for %s: %v", e.Service, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// AsLookupError returns the first *LookupError in err's chain.
func AsLookupError(err error) (*LookupError, bool) {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr, true
	}
	return nil, false
}

// IsKind reports whether err carries a LookupError of kind k.
func IsKind(err error, k Kind) bool {
	lookupErr, ok := AsLookupError(err)
	return ok && lookupErr.Kind == k
}
