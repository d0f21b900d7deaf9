package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"evergrain-service/internal/models"
)

// Event subjects for the catalog audit trail.
const (
	SubjectProductCreated    = "product.created"
	SubjectProductUpdated    = "product.updated"
	SubjectProductDeleted    = "product.deleted"
	SubjectProductHidden     = "product.hidden"
	SubjectCatalogReconciled = "catalog.reconciled"
	SubjectOrderPlaced       = "order.placed"
)

// Event is the audit payload published for catalog and order activity.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProductID   int       `json:"productId,omitempty"`
	Title       string    `json:"title,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	RemovedIDs  []int     `json:"removedIds,omitempty"`
	CustomCount int       `json:"customCount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher publishes catalog audit events over NATS. A nil Publisher is
// valid and drops everything, so callers never guard their publish calls.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS at natsURL.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL, nats.Name("evergrain-service"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events"),
	}, nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// PublishProductCreated publishes a product.created event.
func (p *Publisher) PublishProductCreated(product *models.Product) {
	p.publish(Event{
		Type:      SubjectProductCreated,
		ProductID: product.ID,
		Title:     models.ResolveTitle(product, models.LangEN),
	})
}

// PublishProductUpdated publishes a product.updated event.
func (p *Publisher) PublishProductUpdated(product *models.Product) {
	p.publish(Event{
		Type:      SubjectProductUpdated,
		ProductID: product.ID,
		Title:     models.ResolveTitle(product, models.LangEN),
	})
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Publisher) PublishProductDeleted(productID int) {
	p.publish(Event{
		Type:      SubjectProductDeleted,
		ProductID: productID,
	})
}

// PublishProductHidden publishes a product.hidden event for a seed product
// added to removedIds.
func (p *Publisher) PublishProductHidden(productID int) {
	p.publish(Event{
		Type:      SubjectProductHidden,
		ProductID: productID,
	})
}

// PublishCatalogReconciled publishes a catalog.reconciled event after the
// remote snapshot replaced in-memory state.
func (p *Publisher) PublishCatalogReconciled(snap models.Snapshot) {
	p.publish(Event{
		Type:        SubjectCatalogReconciled,
		RemovedIDs:  snap.RemovedIDs,
		CustomCount: len(snap.CustomProducts),
	})
}

// PublishOrderPlaced publishes an order.placed event after checkout dispatch.
func (p *Publisher) PublishOrderPlaced(orderID string) {
	p.publish(Event{
		Type:    SubjectOrderPlaced,
		OrderID: orderID,
	})
}

// publish sends the event; failures are logged and never escalate.
func (p *Publisher) publish(event Event) {
	if p == nil || p.conn == nil {
		return
	}
	event.ID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(event.Type, data); err != nil {
		p.logger.WithError(err).WithField("subject", event.Type).Warn("Failed to publish event")
	}
}
