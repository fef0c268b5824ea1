package enum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrUnmapped is returned for a label that has no token in its vocabulary
var ErrUnmapped = errors.New("unmapped label")

// Entry pairs a UI label with the token the reporting API expects
type Entry struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Vocabulary is a closed, ordered label → token table for one form field
type Vocabulary struct {
	name    string
	entries []Entry
	index   map[string]string
}

// NewVocabulary builds a vocabulary. Duplicate labels panic since the tables
// are declared at package level.
func NewVocabulary(name string, entries ...Entry) *Vocabulary {
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, dup := index[e.Label]; dup {
			panic(fmt.Sprintf("enum: duplicate label %q in %s", e.Label, name))
		}
		index[e.Label] = e.Token
	}
	return &Vocabulary{name: name, entries: entries, index: index}
}

// Name returns the vocabulary name
func (v *Vocabulary) Name() string {
	return v.name
}

// Entries returns a copy of the table in declaration order
func (v *Vocabulary) Entries() []Entry {
	return append([]Entry(nil), v.entries...)
}

// Labels returns the selectable labels in declaration order
func (v *Vocabulary) Labels() []string {
	return lo.Map(v.entries, func(e Entry, _ int) string { return e.Label })
}

// Lookup returns the token for label
func (v *Vocabulary) Lookup(label string) (string, bool) {
	token, ok := v.index[strings.TrimSpace(label)]
	return token, ok
}

// Contains reports whether label is selectable
func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.Lookup(label)
	return ok
}

// UnmappedError names the vocabulary and the offending label
type UnmappedError struct {
	Vocabulary string
	Label      string
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("%s: %q has no token in %s", ErrUnmapped, e.Label, e.Vocabulary)
}

// Is matches ErrUnmapped
func (e *UnmappedError) Is(target error) bool {
	return target == ErrUnmapped
}
