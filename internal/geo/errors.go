package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/laporinfra/laporinfra/pkg/i18n"
)

// Kind classifies a geolocation failure
type Kind int

const (
	KindOther Kind = iota
	KindPermissionDenied
	KindPositionUnavailable
	KindTimeout
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindPositionUnavailable:
		return "position_unavailable"
	case KindTimeout:
		return "timeout"
	case KindUnsupported:
		return "unsupported"
	default:
		return "other"
	}
}

// Sentinels for errors.Is; a locator may return these directly
var (
	ErrPermissionDenied    = &Error{Kind: KindPermissionDenied}
	ErrPositionUnavailable = &Error{Kind: KindPositionUnavailable}
	ErrTimeout             = &Error{Kind: KindTimeout}
	ErrUnsupported         = &Error{Kind: KindUnsupported}
)

// Error is a classified geolocation failure
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Kind, e.Err)
	}
	return "geolocation " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Message returns the user-facing message for the failure
func (e *Error) Message(l *i18n.Localizer) string {
	if e.Kind == KindOther {
		detail := ""
		if e.Err != nil {
			detail = e.Err.Error()
		}
		return l.T("geo.other", map[string]string{"message": detail})
	}
	return l.T("geo." + e.Kind.String())
}

// classify maps any locator error to an *Error
func classify(err error) *Error {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindOther, Err: err}
}
