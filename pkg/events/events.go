// Package events publishes listing domain events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/JaimeStill/bizz/pkg/lifecycle"
)

// Routing keys for listing events.
const (
	ListingReviewRequired = "listing.review_required"
	ListingReviewed       = "listing.reviewed"
)

// ErrNotConnected indicates Publish was called before the broker connection was established.
var ErrNotConnected = errors.New("event publisher not connected")

// Event is the envelope published for every message.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// NewEvent wraps data in an Event with a fresh id and timestamp.
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	// Start registers connection and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Publish sends the event using its Type as the routing key.
	Publish(ctx context.Context, event Event) error
}

type rabbit struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New creates a publisher from the given configuration. When events are
// disabled it returns a Publisher that logs and discards every event.
// The broker connection is opened during Start.
func New(cfg *Config, logger *slog.Logger) Publisher {
	logger = logger.With("system", "events")

	if !cfg.Enabled {
		return &discard{logger: logger}
	}

	return &rabbit{
		url:      cfg.URL,
		exchange: cfg.Exchange,
		logger:   logger,
	}
}

func (p *rabbit) Start(lc *lifecycle.Coordinator) error {
	p.logger.Info("starting event publisher")

	lc.OnStartup(func() {
		if err := p.connect(); err != nil {
			p.logger.Error("event broker connection failed", "error", err)
			return
		}
		p.logger.Info("event publisher ready", "exchange", p.exchange)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		p.close()
		p.logger.Info("event publisher closed")
	})

	return nil
}

func (p *rabbit) Publish(ctx context.Context, event Event) error {
	p.mu.RLock()
	ch := p.channel
	p.mu.RUnlock()

	if ch == nil {
		return ErrNotConnected
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		p.exchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			MessageId:    event.ID.String(),
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Info("event published", "type", event.Type, "id", event.ID)
	return nil
}

func (p *rabbit) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.mu.Lock()
	p.conn = conn
	p.channel = ch
	p.mu.Unlock()

	return nil
}

func (p *rabbit) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

type discard struct {
	logger *slog.Logger
}

func (d *discard) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("event publishing disabled")
	return nil
}

func (d *discard) Publish(ctx context.Context, event Event) error {
	d.logger.Debug("event discarded", "type", event.Type, "id", event.ID)
	return nil
}
