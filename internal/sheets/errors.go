package sheets

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the endpoint URL is empty or still holds
// the placeholder shipped in the default config.
var ErrNotConfigured = errors.New("api url is not configured")

// ErrorKind classifies fetch failures.
type ErrorKind int

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport ErrorKind = iota
	// KindConfiguration means no request was attempted.
	KindConfiguration
	// KindParse means the body was not valid JSON.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindParse:
		return "parse"
	default:
		return "transport"
	}
}

// FetchError describes a failed dataset fetch.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error: api returned status %d", e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return e.Kind.String() + " error"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf reports the ErrorKind of err. Errors that did not come from a fetch
// are treated as transport failures.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindConfiguration
	}
	return KindTransport
}
