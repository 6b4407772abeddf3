package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mapadf/pontos/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream. Map
// clients subscribe to pontos.> to keep rendered layers current.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the PONTOS stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "PONTOS",
		Subjects:  []string{"pontos.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishPointCreated(ctx context.Context, point *domain.Point) error {
	return p.publishPoint("pontos.criado.", point)
}

func (p *Publisher) PublishPointUpdated(ctx context.Context, point *domain.Point) error {
	return p.publishPoint("pontos.atualizado.", point)
}

func (p *Publisher) PublishPointDeleted(ctx context.Context, id int64) error {
	_, err := p.js.Publish("pontos.deletado."+strconv.FormatInt(id, 10), nil)
	return err
}

func (p *Publisher) publishPoint(prefix string, point *domain.Point) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(prefix+strconv.FormatInt(point.ID, 10), data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}
