package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/messaging"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRabbitNotifier_ReportSubmitted(t *testing.T) {
	pub := testutil.NewMockPublisher()
	n := NewRabbitNotifier(pub, logger.Nop())
	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	n.ReportSubmitted(context.Background(), enum.CategoryRoad, session.Reporter{
		ReporterName: "Sri",
		PhoneNumber:  "081234567890",
		Village:      "Beran",
	}, 2)

	pub.AssertEventPublished(t, messaging.EventReportSubmitted)
	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, messaging.ReportSubmittedEvent{
		Category:     "jalan",
		ReporterName: "Sri",
		Village:      "Beran",
		PhotoCount:   2,
		SubmittedAt:  fixed,
	}, events[0].Payload)
}

func TestRabbitNotifier_PublishErrorIsSwallowed(t *testing.T) {
	pub := testutil.NewMockPublisher()
	pub.Err = errors.New("channel closed")
	n := NewRabbitNotifier(pub, logger.Nop())

	assert.NotPanics(t, func() {
		n.ReportSubmitted(context.Background(), enum.CategoryBridge, session.Reporter{}, 1)
	})
	assert.Len(t, pub.Events(), 1)
}
