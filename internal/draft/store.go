// Package draft keeps the per-session category draft (selected category and
// photo gallery) in memory only. Drafts are never serialized and expire
// after a TTL.
package draft

import (
	"context"
	"sync"
	"time"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// Draft is one in-progress category report
type Draft struct {
	SessionID string
	Category  enum.Category
	Photos    *intake.Gallery
	CreatedAt time.Time
	UpdatedAt time.Time
}

type draftKey struct {
	sessionID string
	category  enum.Category
}

// Store is an in-memory draft store with TTL expiry
type Store struct {
	mu      sync.RWMutex
	drafts  map[draftKey]*Draft
	ttl     time.Duration
	gallery intake.Config
	log     *logger.Logger
	now     func() time.Time
}

// NewStore creates a store whose galleries use cfg
func NewStore(ttl time.Duration, cfg intake.Config, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		drafts:  make(map[draftKey]*Draft),
		ttl:     ttl,
		gallery: cfg,
		log:     log.WithComponent("draft"),
		now:     time.Now,
	}
}

// Run removes expired drafts every ttl/2 until ctx is done
func (s *Store) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				s.log.Debug().Int("expired", n).Msg("drafts expired")
			}
		}
	}
}

// Get returns the draft, creating an empty one when missing
func (s *Store) Get(sessionID string, category enum.Category) *Draft {
	k := draftKey{sessionID, category}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[k]; ok {
		d.UpdatedAt = s.now()
		return d
	}

	now := s.now()
	d := &Draft{
		SessionID: sessionID,
		Category:  category,
		Photos:    intake.NewGallery(s.gallery, s.log),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.drafts[k] = d
	return d
}

// Lookup returns an existing draft
func (s *Store) Lookup(sessionID string, category enum.Category) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[draftKey{sessionID, category}]
	return d, ok
}

// Delete drops one draft
func (s *Store) Delete(sessionID string, category enum.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey{sessionID, category})
}

// DeleteSession drops every draft of a session
func (s *Store) DeleteSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.drafts {
		if k.sessionID == sessionID {
			delete(s.drafts, k)
		}
	}
}

// Len returns the number of drafts held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// Cleanup removes drafts idle for longer than the TTL
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for k, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, k)
			removed++
		}
	}
	return removed
}
