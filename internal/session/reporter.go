// Package session holds the reporter identity shared by every report step.
// It is the only durable, serialized form state; photos live in the draft
// store and never reach this package.
package session

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrIdentityRequired means the identity step has not been completed
	ErrIdentityRequired = errors.New("reporter identity required")
	// ErrNotFound means nothing is stored under the key
	ErrNotFound = errors.New("session not found")
)

// DefaultKey is the storage key of the reporter record
const DefaultKey = "reporter-session"

// Key scopes the base key to a form session ID
func Key(base, sessionID string) string {
	if sessionID == "" {
		return base
	}
	return base + ":" + sessionID
}

// Reporter is the identity step output
type Reporter struct {
	ReporterName   string    `json:"reporter_name"`
	PhoneNumber    string    `json:"phone_number"`
	Role           string    `json:"role"`
	Village        string    `json:"village"`
	ReportDatetime time.Time `json:"report_datetime"`
	Latitude       string    `json:"latitude"`
	Longitude      string    `json:"longitude"`
}

// Missing lists the JSON names of empty fields
func (r Reporter) Missing() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("reporter_name", r.ReporterName)
	check("phone_number", r.PhoneNumber)
	check("role", r.Role)
	check("village", r.Village)
	if r.ReportDatetime.IsZero() {
		missing = append(missing, "report_datetime")
	}
	check("latitude", r.Latitude)
	check("longitude", r.Longitude)
	return missing
}

// Complete reports whether every field is filled
func (r Reporter) Complete() bool {
	return len(r.Missing()) == 0
}
