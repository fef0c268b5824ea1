package submission

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/laporinfra/laporinfra/pkg/i18n"
)

// ErrRejected marks a response the API did not accept
var ErrRejected = errors.New("report rejected")

// Error is a failed submission
type Error struct {
	StatusCode int
	// Message is the richest text found in the response body, if any
	Message string
	// Transport is set when no usable response arrived
	Transport bool
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return "submission failed: " + e.Message
	case e.Err != nil:
		return "submission failed: " + e.Err.Error()
	default:
		return "submission failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Localize returns the text shown to the reporter
func (e *Error) Localize(l *i18n.Localizer) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Transport && e.Err != nil {
		return l.T("errors.submission_failed", map[string]string{"message": e.Err.Error()})
	}
	return l.T("errors.submission_generic")
}

// Message returns the reporter-facing text for any submission error
func Message(l *i18n.Localizer, err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Localize(l)
	}
	if errors.Is(err, ErrReporterIncomplete) {
		return l.T("errors.reporter_incomplete")
	}
	return l.T("errors.submission_generic")
}

// extractMessage walks message, then detail, then the raw body
func extractMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if s := text(body["message"]); s != "" {
			return s
		}
		if s := text(body["detail"]); s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(raw))
}

// text renders a JSON value as a message; strings are used as is
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
