package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventName identifica um evento do vocabulário de e-commerce
type EventName string

const (
	EventViewItemList    EventName = "view_item_list"
	EventSelectItem      EventName = "select_item"
	EventViewItem        EventName = "view_item"
	EventAddToCart       EventName = "add_to_cart"
	EventViewCart        EventName = "view_cart"
	EventBeginCheckout   EventName = "begin_checkout"
	EventViewPromotion   EventName = "view_promotion"
	EventAddShippingInfo EventName = "add_shipping_info"
	EventAddPaymentInfo  EventName = "add_payment_info"
	EventPurchase        EventName = "purchase"
)

// CommerceItem é o formato fixo de item dos eventos de e-commerce
type CommerceItem struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	Price        int    `json:"price"`
	ItemCategory string `json:"item_category,omitempty"`
	ItemVariant  string `json:"item_variant,omitempty"`
	Index        int    `json:"index,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}

// Payload carrega os parâmetros de um evento; é encaminhado ao sink sem
// validação nem mutação (a forma é responsabilidade dos builders)
type Payload struct {
	Currency      string         `json:"currency,omitempty"`
	Value         int            `json:"value,omitempty"`
	Items         []CommerceItem `json:"items,omitempty"`
	ItemListID    string         `json:"item_list_id,omitempty"`
	ItemListName  string         `json:"item_list_name,omitempty"`
	PromotionID   string         `json:"promotion_id,omitempty"`
	PromotionName string         `json:"promotion_name,omitempty"`
	ShippingTier  string         `json:"shipping_tier,omitempty"`
	PaymentType   string         `json:"payment_type,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Shipping      int            `json:"shipping,omitempty"`
}

// Sink abstrai o receptor externo de analytics
type Sink interface {
	Send(ctx context.Context, name EventName, payload Payload) error
}

// eventEnvelope é o corpo enviado ao coletor HTTP
type eventEnvelope struct {
	Name    EventName `json:"name"`
	Payload Payload   `json:"payload"`
}

// HTTPSink implementa Sink postando eventos em um coletor HTTP
type HTTPSink struct {
	client *resty.Client
	url    string
}

// NewHTTPSink cria um sink apontando para a URL do coletor
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		client: resty.New().SetTimeout(5 * time.Second),
		url:    url,
	}
}

// Send posta o evento; a entrega não é confirmada além do status HTTP
func (s *HTTPSink) Send(ctx context.Context, name EventName, payload Payload) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(eventEnvelope{Name: name, Payload: payload}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("posting event %s: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("posting event %s: unexpected status %s", name, resp.Status())
	}
	return nil
}

// Pipeline encaminha eventos de e-commerce para o sink configurado.
// A ausência de sink é um estado válido, não um erro de configuração.
type Pipeline struct {
	sink  Sink
	fired metric.Int64Counter
}

// NewPipeline cria o pipeline; sink pode ser nil
func NewPipeline(sink Sink) *Pipeline {
	meter := otel.Meter("storefront")
	fired, err := meter.Int64Counter("commerce_events_fired_total",
		metric.WithDescription("Commerce events handed to the analytics pipeline"))
	if err != nil {
		log.Printf("⚠️ Failed to create events counter: %v", err)
	}

	return &Pipeline{sink: sink, fired: fired}
}

// FireEvent forwards the event to the sink, fire-and-forget. It never
// returns or propagates a failure: a missing, failing, or panicking sink
// must not block cart mutation, navigation, or checkout.
func (p *Pipeline) FireEvent(ctx context.Context, name EventName, payload Payload) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Analytics sink panicked on %s: %v", name, r)
		}
	}()

	if p.fired != nil {
		p.fired.Add(ctx, 1, metric.WithAttributes(attribute.String("event", string(name))))
	}

	if p.sink == nil {
		log.Printf("⚠️ No analytics sink configured, dropping event %s", name)
		return
	}

	if err := p.sink.Send(ctx, name, payload); err != nil {
		log.Printf("⚠️ Analytics sink rejected event %s: %v", name, err)
	}
}
