package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrClosed is returned after Close
var ErrClosed = errors.New("rabbitmq connection closed")

var _ Channel = (*RabbitMQ)(nil)

// RabbitMQ is a publish-only connection that redials once when the channel
// has been closed by the broker.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	logger  *logger.Logger
	mu      sync.RWMutex
	closed  bool
}

// New dials RabbitMQ, retrying up to MaxRetries times ReconnectDelay apart
func New(cfg *config.RabbitMQConfig, log *logger.Logger) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		config: cfg,
		logger: log.WithComponent("rabbitmq"),
	}

	attempts := max(cfg.MaxRetries, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if err = rmq.dial(); err == nil {
			return rmq, nil
		}
		rmq.logger.Warn().Err(err).Int("attempt", i+1).Msg("rabbitmq dial failed")
		if i < attempts-1 {
			time.Sleep(cfg.ReconnectDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

// dial opens a connection and channel; callers hold mu or own r exclusively
func (r *RabbitMQ) dial() error {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	r.conn, r.channel = conn, ch
	r.logger.Info().Msg("connected to RabbitMQ")
	return nil
}

// Channel returns the current channel
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

// PublishWithContext publishes on the current channel. A closed channel is
// redialed once before giving up.
func (r *RabbitMQ) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ch, err := r.liveChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
	if !errors.Is(err, amqp.ErrClosed) {
		return err
	}

	r.logger.Warn().Msg("rabbitmq channel closed, redialing")
	if err := r.redial(); err != nil {
		return err
	}
	return r.Channel().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

func (r *RabbitMQ) liveChannel() (*amqp.Channel, error) {
	r.mu.RLock()
	closed, ch := r.closed, r.channel
	r.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if ch == nil || ch.IsClosed() {
		if err := r.redial(); err != nil {
			return nil, err
		}
		return r.Channel(), nil
	}
	return ch, nil
}

func (r *RabbitMQ) redial() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if r.conn != nil && !r.conn.IsClosed() {
		r.conn.Close()
	}
	return r.dial()
}

// Close closes the channel and connection; later publishes return ErrClosed
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.channel != nil {
		if err := r.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			r.logger.Warn().Err(err).Msg("failed to close channel")
		}
	}

	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.logger.Info().Msg("RabbitMQ connection closed")
	return nil
}

// Health returns the health status of RabbitMQ
func (r *RabbitMQ) Health() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := map[string]string{
		"status": "up",
	}

	if r.conn == nil || r.conn.IsClosed() {
		status["status"] = "down"
		status["error"] = "connection closed"
	}

	return status
}

// DeclareExchange declares the durable topic exchange reports are published to
func (r *RabbitMQ) DeclareExchange(name string) error {
	return r.Channel().ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}
