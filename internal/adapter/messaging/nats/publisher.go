package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("property-service/nats-publisher")

// Event is the envelope every message on the bus carries.
type Event struct {
	Subject    string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type Publisher struct {
	conn *nats.Conn
	log  *logger.Logger
}

func NewPublisher(url string, log *logger.Logger, appName string) (*Publisher, error) {
	log = log.Named("NATSPublisher")
	log.Info("Connecting to NATS", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Error("NATS error", zap.String("subject", subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("Connected to NATS", zap.String("url", conn.ConnectedUrl()))
	return &Publisher{conn: conn, log: log}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data any) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish", oteltrace.WithAttributes(attribute.String("messaging.destination", subject)))
	defer span.End()

	msg, err := newMessage(ctx, subject, data, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	p.log.Debug("Event published", zap.String("subject", subject), zap.Int("size_bytes", len(msg.Data)))
	return nil
}

func newMessage(ctx context.Context, subject string, data any, at time.Time) (*nats.Msg, error) {
	body, err := json.Marshal(Event{Subject: subject, OccurredAt: at, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", subject, err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = body
	msg.Header = make(nats.Header)
	otel.GetTextMapPropagator().Inject(ctx, NATSHeaderCarrier(msg.Header))
	return msg, nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.log.Error("Failed to drain NATS connection", zap.Error(err))
		p.conn.Close()
	}
}

// NATSHeaderCarrier adapts nats.Header to the OpenTelemetry text map carrier.
type NATSHeaderCarrier nats.Header

func (c NATSHeaderCarrier) Get(key string) string {
	return nats.Header(c).Get(key)
}

func (c NATSHeaderCarrier) Set(key, value string) {
	nats.Header(c).Set(key, value)
}

func (c NATSHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// NoopPublisher is used when no NATS server is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
