package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

const (
	subjectStateChanged = "state.changed"
	subjectOrderPlaced  = "orders.placed"
)

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher emits collection change and order events as JSON messages.
type Publisher struct {
	conn   msgPublisher
	prefix string
	owned  *nats.Conn
}

func NewPublisher(conn *nats.Conn, subjectPrefix string) (*Publisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &Publisher{conn: conn, prefix: subjectPrefix}, nil
}

// Connect dials cfg.URL and returns a publisher that owns the connection.
// Events published while disconnected are buffered by the client and flushed
// on reconnect.
func Connect(cfg config.NATSConfig, log logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("sharaya-state"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("Change events paused, NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("Change events resumed on %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("could not connect to NATS at %s: %w", cfg.URL, err)
	}
	p, _ := NewPublisher(nc, cfg.SubjectPrefix)
	p.owned = nc
	return p, nil
}

// Close drains a connection opened by Connect so buffered events go out.
func (p *Publisher) Close() error {
	if p.owned == nil || p.owned.IsClosed() {
		return nil
	}
	return p.owned.Drain()
}

func (p *Publisher) subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

type orderPlacedEvent struct {
	OrderID  string             `json:"orderId"`
	Total    entity.Money       `json:"total"`
	Lines    int                `json:"lines"`
	Status   entity.OrderStatus `json:"status"`
	PlacedAt string             `json:"placedAt"`
}

func (p *Publisher) PublishChange(ctx context.Context, event state.ChangeEvent) error {
	return p.Publish(ctx, p.subject(subjectStateChanged), event)
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order entity.Order) error {
	return p.Publish(ctx, p.subject(subjectOrderPlaced), orderPlacedEvent{
		OrderID:  order.ID,
		Total:    order.Total,
		Lines:    len(order.Lines),
		Status:   order.Status,
		PlacedAt: order.PlacedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (p *Publisher) Publish(ctx context.Context, subject string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message to JSON for subject %s: %w", subject, err)
	}
	return p.PublishRaw(ctx, subject, data)
}

func (p *Publisher) PublishRaw(ctx context.Context, subject string, data []byte) error {
	if p.conn == nil {
		return fmt.Errorf("NATS connection is not initialized")
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish message to NATS subject %s: %w", subject, err)
	}
	return nil
}

// HeaderCarrier adapts nats.Header for OpenTelemetry context propagation.
type HeaderCarrier nats.Header

func (c HeaderCarrier) Get(key string) string {
	return nats.Header(c).Get(key)
}

func (c HeaderCarrier) Set(key string, value string) {
	nats.Header(c).Set(key, value)
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
