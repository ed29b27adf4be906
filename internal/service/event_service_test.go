package service

import (
	"context"
	"net/http"
	"testing"

	"retail-storefront/internal/dto"
	"retail-storefront/pkg/retail"

	"github.com/stretchr/testify/assert"
)

func TestEventWriteSwallowsFailure(t *testing.T) {
	fake, client := newFakeCatalog(t)
	fake.eventStatus = http.StatusInternalServerError
	svc := NewEventService(client, noopLogger{})

	// Must not panic or surface the error; the page that triggered the
	// event has already been served.
	svc.Write(context.Background(), &retail.UserEvent{
		EventType: "home-page-view",
		VisitorId: "visitor-1",
	})

	assert.Len(t, fake.events, 1, "the write was attempted once, no retry")
}

func TestEventRelay(t *testing.T) {
	fake, client := newFakeCatalog(t)
	svc := NewEventService(client, noopLogger{})

	result := svc.Relay(context.Background(), "visitor-session", []dto.InboundEvent{
		{EventType: "shopping-cart-page-view", ProductId: "sku-1"},
		{ProductId: "sku-2"}, // missing event type
		{EventType: "detail-page-view", ProductId: "sku-3", Quantity: 2},
	})

	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, fake.events, 2, "invalid events never reach the upstream")

	first := fake.events[0]
	assert.Equal(t, "shopping-cart-page-view", first.EventType)
	assert.Equal(t, "visitor-session", first.VisitorId, "visitor id comes from the session, not the payload")
	assert.Equal(t, 1, first.ProductDetails[0].Quantity, "quantity defaults to 1")

	second := fake.events[1]
	assert.Equal(t, 2, second.ProductDetails[0].Quantity)
}

func TestEventRelayUpstreamFailure(t *testing.T) {
	fake, client := newFakeCatalog(t)
	fake.eventStatus = http.StatusBadGateway
	svc := NewEventService(client, noopLogger{})

	result := svc.Relay(context.Background(), "visitor-1", []dto.InboundEvent{
		{EventType: "home-page-view"},
	})

	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, fake.events, 1)
}

func TestEventRelayWithoutProduct(t *testing.T) {
	fake, client := newFakeCatalog(t)
	svc := NewEventService(client, noopLogger{})

	result := svc.Relay(context.Background(), "visitor-1", []dto.InboundEvent{
		{EventType: "search", SearchQuery: "hoodie", AttributionToken: "tok-1"},
	})

	assert.Equal(t, 1, result.Written)
	event := fake.events[0]
	assert.Equal(t, "hoodie", event.SearchQuery)
	assert.Equal(t, "tok-1", event.AttributionToken)
	assert.Empty(t, event.ProductDetails)
}
