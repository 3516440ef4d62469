package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
)

const (
	streamName = "CATALOG"

	SubjectProductCreated = "catalog.product.created"
	SubjectProductUpdated = "catalog.product.updated"
	SubjectProductDeleted = "catalog.product.deleted"
	SubjectWastageCreated = "catalog.wastage.created"
)

// ProductEvent is the lifecycle payload published to JetStream.
type ProductEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	TenantID    string    `json:"tenant_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Config      int       `json:"config"`
	HasVariant  bool      `json:"hasvarient"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// WastageEvent is published when a loss event is recorded.
type WastageEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	TenantID   string    `json:"tenant_id"`
	WastageID  string    `json:"wastage_id"`
	ProductID  string    `json:"product_id"`
	Quantity   string    `json:"quantity"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes catalog lifecycle events over NATS JetStream.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the catalog stream exists.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("catalog-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"catalog.>"},
	}); err != nil {
		logger.WithError(err).Warn("Failed to ensure catalog stream (may already exist)")
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		logger: logger.WithField("component", "catalog-events"),
	}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

func (p *Publisher) PublishProductCreated(tenantID, actorID string, product *models.ProductView) {
	p.publishProduct(SubjectProductCreated, tenantID, actorID, product)
}

func (p *Publisher) PublishProductUpdated(tenantID, actorID string, product *models.ProductView) {
	p.publishProduct(SubjectProductUpdated, tenantID, actorID, product)
}

func (p *Publisher) PublishProductDeleted(tenantID, actorID string, product *models.ProductView) {
	p.publishProduct(SubjectProductDeleted, tenantID, actorID, product)
}

func (p *Publisher) PublishWastageCreated(tenantID, actorID string, wastage *models.WastageView) {
	event := WastageEvent{
		EventID:    uuid.New().String(),
		EventType:  SubjectWastageCreated,
		TenantID:   tenantID,
		WastageID:  wastage.ID,
		ProductID:  wastage.ProductID,
		Quantity:   wastage.Quantity,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	p.publish(SubjectWastageCreated, event)
}

func (p *Publisher) publishProduct(subject, tenantID, actorID string, product *models.ProductView) {
	event := ProductEvent{
		EventID:     uuid.New().String(),
		EventType:   subject,
		TenantID:    tenantID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Config:      product.Config,
		HasVariant:  product.HasVariant,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	}
	p.publish(subject, event)
}

// publish marshals and sends asynchronously so the request path never
// blocks on the broker.
func (p *Publisher) publish(subject string, event interface{}) {
	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to marshal event")
			return
		}
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := p.js.Publish(subject, data, nats.Context(pubCtx)); err != nil {
			p.logger.WithFields(logrus.Fields{
				"subject": subject,
			}).WithError(err).Error("Failed to publish event")
			return
		}
		p.logger.WithField("subject", subject).Debug("Event published")
	}()
}
