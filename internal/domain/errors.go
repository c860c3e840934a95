package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrTransport indicates the backend could not be reached or timed out
	ErrTransport = errors.New("backend is unreachable")

	// ErrServer indicates a non-2xx response or a success:false envelope
	ErrServer = errors.New("backend returned an error")

	// ErrProtocol indicates a response that could not be decoded
	ErrProtocol = errors.New("malformed backend response")

	// ErrNotFound indicates the requested item does not exist
	ErrNotFound = errors.New("item not found")

	// ErrSyncFailed indicates the backend reported the sync job ended without completing
	ErrSyncFailed = errors.New("sync failed")

	// ErrSyncTimeout indicates the sync deadline elapsed without a terminal status
	ErrSyncTimeout = errors.New("sync timed out")

	// ErrSyncInProgress indicates a sync was started while another is active
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrInvalidCategory indicates a type filter outside the known enumeration
	ErrInvalidCategory = errors.New("invalid category")
)

// ErrorKind classifies a RequestError.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindServer
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// RequestError is the single failure shape produced by the request client.
type RequestError struct {
	Op      string // e.g. "GET /items"
	Kind    ErrorKind
	Status  int    // HTTP status, 0 for transport failures
	Message string // backend-provided message, if any
	Err     error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, msg)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is matches the kind sentinels so callers can use errors.Is(err, ErrServer).
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrServer:
		return e.Kind == KindServer
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrNotFound:
		return e.Kind == KindServer && e.Status == 404
	}
	return false
}

// UserMessage returns the text to show a user for err: the backend's own
// message when there is one, otherwise the error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return err.Error()
}
