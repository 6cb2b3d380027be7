package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/middleware"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure KafkaPublisher implements Publisher
var _ Publisher = (*KafkaPublisher)(nil)
var _ Publisher = (*MockPublisher)(nil)

// EventType represents the type of inventory event.
type EventType string

const (
	EventTypePurchaseOrderCreated       EventType = "purchase_order.created"
	EventTypePurchaseOrderStatusChanged EventType = "purchase_order.status_changed"
	EventTypePurchaseOrderDeleted       EventType = "purchase_order.deleted"
	EventTypeSalesOrderCreated          EventType = "sales_order.created"
	EventTypeSalesOrderStatusChanged    EventType = "sales_order.status_changed"
	EventTypeSalesOrderDeleted          EventType = "sales_order.deleted"
	EventTypeStockAdjusted              EventType = "product.stock_adjusted"
	EventTypeBillPaymentRecorded        EventType = "bill.payment_recorded"
)

// Event is the envelope written to the inventory events topic.
type Event struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	EntityID      string            `json:"entity_id"`
	Data          json.RawMessage   `json:"data"`
	Metadata      map[string]string `json:"metadata"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// Publisher emits inventory lifecycle events for downstream consumers.
type Publisher interface {
	PublishPurchaseOrderCreated(ctx context.Context, order *models.PurchaseOrder) error
	PublishPurchaseOrderStatusChanged(ctx context.Context, order *models.PurchaseOrder, previousStatus models.PurchaseOrderStatus) error
	PublishPurchaseOrderDeleted(ctx context.Context, order *models.PurchaseOrder) error
	PublishSalesOrderCreated(ctx context.Context, order *models.SalesOrder) error
	PublishSalesOrderStatusChanged(ctx context.Context, order *models.SalesOrder, previousStatus models.SalesOrderStatus) error
	PublishSalesOrderDeleted(ctx context.Context, order *models.SalesOrder) error
	PublishStockAdjusted(ctx context.Context, product *models.Product, delta int64, reason string) error
	PublishBillPaymentRecorded(ctx context.Context, bill *models.Bill, payment decimal.Decimal) error
	Close() error
}

// KafkaPublisher publishes inventory events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logging.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.EventsTopic,
		logger: logger,
	}
}

// PublishPurchaseOrderCreated publishes a purchase order created event.
func (p *KafkaPublisher) PublishPurchaseOrderCreated(ctx context.Context, order *models.PurchaseOrder) error {
	p.logger.Debug("Publishing purchase order created event", logging.Fields{
		"purchase_order_id": order.ID,
	})

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypePurchaseOrderCreated, order.ID, data)
	return p.publish(ctx, event)
}

// PublishPurchaseOrderStatusChanged publishes a purchase order status change event.
func (p *KafkaPublisher) PublishPurchaseOrderStatusChanged(ctx context.Context, order *models.PurchaseOrder, previousStatus models.PurchaseOrderStatus) error {
	p.logger.Debug("Publishing purchase order status changed event", logging.Fields{
		"purchase_order_id": order.ID,
		"previous_status":   previousStatus,
		"new_status":        order.Status,
	})

	payload := struct {
		Order          *models.PurchaseOrder      `json:"order"`
		PreviousStatus models.PurchaseOrderStatus `json:"previous_status"`
		NewStatus      models.PurchaseOrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypePurchaseOrderStatusChanged, order.ID, data)
	return p.publish(ctx, event)
}

// PublishPurchaseOrderDeleted publishes a purchase order deleted event.
func (p *KafkaPublisher) PublishPurchaseOrderDeleted(ctx context.Context, order *models.PurchaseOrder) error {
	p.logger.Debug("Publishing purchase order deleted event", logging.Fields{
		"purchase_order_id": order.ID,
	})

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypePurchaseOrderDeleted, order.ID, data)
	return p.publish(ctx, event)
}

// PublishSalesOrderCreated publishes a sales order created event.
func (p *KafkaPublisher) PublishSalesOrderCreated(ctx context.Context, order *models.SalesOrder) error {
	p.logger.Debug("Publishing sales order created event", logging.Fields{
		"sales_order_id": order.ID,
	})

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypeSalesOrderCreated, order.ID, data)
	return p.publish(ctx, event)
}

// PublishSalesOrderStatusChanged publishes a sales order status change event.
func (p *KafkaPublisher) PublishSalesOrderStatusChanged(ctx context.Context, order *models.SalesOrder, previousStatus models.SalesOrderStatus) error {
	p.logger.Debug("Publishing sales order status changed event", logging.Fields{
		"sales_order_id":  order.ID,
		"previous_status": previousStatus,
		"new_status":      order.Status,
	})

	payload := struct {
		Order          *models.SalesOrder      `json:"order"`
		PreviousStatus models.SalesOrderStatus `json:"previous_status"`
		NewStatus      models.SalesOrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypeSalesOrderStatusChanged, order.ID, data)
	return p.publish(ctx, event)
}

// PublishSalesOrderDeleted publishes a sales order deleted event.
func (p *KafkaPublisher) PublishSalesOrderDeleted(ctx context.Context, order *models.SalesOrder) error {
	p.logger.Debug("Publishing sales order deleted event", logging.Fields{
		"sales_order_id": order.ID,
	})

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypeSalesOrderDeleted, order.ID, data)
	return p.publish(ctx, event)
}

// PublishStockAdjusted publishes a stock movement event.
func (p *KafkaPublisher) PublishStockAdjusted(ctx context.Context, product *models.Product, delta int64, reason string) error {
	p.logger.Debug("Publishing stock adjusted event", logging.Fields{
		"product_id": product.ID,
		"delta":      delta,
	})

	payload := struct {
		ProductID string               `json:"product_id"`
		SKU       string               `json:"sku"`
		Delta     int64                `json:"delta"`
		Stock     int64                `json:"stock"`
		Status    models.ProductStatus `json:"status"`
		Reason    string               `json:"reason,omitempty"`
	}{
		ProductID: product.ID,
		SKU:       product.SKU,
		Delta:     delta,
		Stock:     product.Stock,
		Status:    product.Status,
		Reason:    reason,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypeStockAdjusted, product.ID, data)
	return p.publish(ctx, event)
}

// PublishBillPaymentRecorded publishes a bill payment event.
func (p *KafkaPublisher) PublishBillPaymentRecorded(ctx context.Context, bill *models.Bill, payment decimal.Decimal) error {
	p.logger.Debug("Publishing bill payment recorded event", logging.Fields{
		"bill_id": bill.ID,
	})

	payload := struct {
		BillID     string            `json:"bill_id"`
		Payment    decimal.Decimal   `json:"payment"`
		AmountPaid decimal.Decimal   `json:"amount_paid"`
		Status     models.BillStatus `json:"status"`
	}{
		BillID:     bill.ID,
		Payment:    payment,
		AmountPaid: bill.AmountPaid,
		Status:     bill.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := createEvent(ctx, EventTypeBillPaymentRecorded, bill.ID, data)
	return p.publish(ctx, event)
}

func createEvent(ctx context.Context, eventType EventType, entityID string, data []byte) *Event {
	event := &Event{
		ID:        generateEventID(),
		Type:      eventType,
		EntityID:  entityID,
		Data:      data,
		Metadata:  map[string]string{"service": "inventory-service"},
		Timestamp: time.Now(),
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		event.CorrelationID = requestID
	}

	return event
}

func (p *KafkaPublisher) publish(ctx context.Context, event *Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.EventPublishFailures.Inc()
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"entity_id":  event.EntityID,
			"error":      err.Error(),
		})
		return err
	}

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()
	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"entity_id":  event.EntityID,
	})

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher", nil)
	return p.writer.Close()
}

func generateEventID() string {
	return "evt_" + uuid.NewString()
}

// MockPublisher is a mock implementation for testing.
type MockPublisher struct {
	Events []*Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Events: make([]*Event, 0),
	}
}

func (m *MockPublisher) PublishPurchaseOrderCreated(ctx context.Context, order *models.PurchaseOrder) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypePurchaseOrderCreated,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishPurchaseOrderStatusChanged(ctx context.Context, order *models.PurchaseOrder, previousStatus models.PurchaseOrderStatus) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypePurchaseOrderStatusChanged,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishPurchaseOrderDeleted(ctx context.Context, order *models.PurchaseOrder) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypePurchaseOrderDeleted,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishSalesOrderCreated(ctx context.Context, order *models.SalesOrder) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypeSalesOrderCreated,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishSalesOrderStatusChanged(ctx context.Context, order *models.SalesOrder, previousStatus models.SalesOrderStatus) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypeSalesOrderStatusChanged,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishSalesOrderDeleted(ctx context.Context, order *models.SalesOrder) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypeSalesOrderDeleted,
		EntityID: order.ID,
	})
	return nil
}

func (m *MockPublisher) PublishStockAdjusted(ctx context.Context, product *models.Product, delta int64, reason string) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypeStockAdjusted,
		EntityID: product.ID,
	})
	return nil
}

func (m *MockPublisher) PublishBillPaymentRecorded(ctx context.Context, bill *models.Bill, payment decimal.Decimal) error {
	m.Events = append(m.Events, &Event{
		Type:     EventTypeBillPaymentRecorded,
		EntityID: bill.ID,
	})
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
