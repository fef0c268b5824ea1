// Package events notifies downstream consumers about accepted reports.
package events

import (
	"context"
	"time"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/messaging"
)

// Notifier is told about every report the API accepted. Implementations
// never fail the submission.
type Notifier interface {
	ReportSubmitted(ctx context.Context, category enum.Category, r session.Reporter, photoCount int)
}

// Publisher is the part of messaging.Publisher the notifier needs
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// RabbitNotifier publishes report.submitted events
type RabbitNotifier struct {
	publisher Publisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewRabbitNotifier creates a notifier over publisher
func NewRabbitNotifier(publisher Publisher, log *logger.Logger) *RabbitNotifier {
	return &RabbitNotifier{
		publisher: publisher,
		logger:    log.WithComponent("events"),
		now:       time.Now,
	}
}

// ReportSubmitted publishes the event. Contact details are not included.
func (n *RabbitNotifier) ReportSubmitted(ctx context.Context, category enum.Category, r session.Reporter, photoCount int) {
	event := messaging.ReportSubmittedEvent{
		Category:     string(category),
		ReporterName: r.ReporterName,
		Village:      r.Village,
		PhotoCount:   photoCount,
		SubmittedAt:  n.now().UTC(),
	}

	if err := n.publisher.Publish(ctx, messaging.EventReportSubmitted, event); err != nil {
		n.logger.Warn().
			Err(err).
			Str("category", string(category)).
			Msg("failed to publish report event")
		return
	}

	n.logger.Debug().Str("category", string(category)).Msg("report event published")
}

// Nop discards notifications
type Nop struct{}

func (Nop) ReportSubmitted(context.Context, enum.Category, session.Reporter, int) {}
