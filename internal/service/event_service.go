package service

import (
	"context"
	"log"

	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/logger"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/pkg/retail"
)

// IEventService is the single door to the user-event write API. Server-side
// page events go through Write; the browser relay endpoint goes through Relay.
// Every write is one synchronous attempt, no queue, no retry.
type IEventService interface {
	Write(ctx context.Context, event *retail.UserEvent)
	Relay(ctx context.Context, visitorId string, events []dto.InboundEvent) *dto.EventRelayResponse
}

type eventService struct {
	client    *retail.Client
	sysLogger logger.ILogger
}

func NewEventService(client *retail.Client, sysLogger logger.ILogger) IEventService {
	return &eventService{
		client:    client,
		sysLogger: sysLogger,
	}
}

// Write sends one server-side event. Failures are logged and swallowed: an
// analytics miss must never cost the page that triggered it.
func (s *eventService) Write(ctx context.Context, event *retail.UserEvent) {
	if err := s.client.WriteUserEvent(ctx, event); err != nil {
		log.Printf("[Events] WARN - %s event dropped: %v", event.EventType, err)
		s.sysLogger.Warn("Events", "user event dropped", map[string]interface{}{
			"event_type": event.EventType,
			"visitor_id": event.VisitorId,
			"error":      err.Error(),
		})
	}
}

// Relay validates and forwards events posted by the browser. The visitor id
// always comes from the session; whatever the client claims is discarded.
func (s *eventService) Relay(ctx context.Context, visitorId string, events []dto.InboundEvent) *dto.EventRelayResponse {
	result := &dto.EventRelayResponse{}
	for _, inbound := range events {
		if err := serverutils.ValidateRequest(inbound); err != nil {
			log.Printf("[Events] WARN - invalid relayed event rejected: %v", err)
			result.Failed++
			continue
		}

		event := toUserEvent(visitorId, &inbound)
		if err := s.client.WriteUserEvent(ctx, event); err != nil {
			log.Printf("[Events] WARN - relayed %s event failed: %v", event.EventType, err)
			result.Failed++
			continue
		}

		s.sysLogger.Info("Events", "relayed user event written", map[string]interface{}{
			"event_type": event.EventType,
			"visitor_id": visitorId,
		})
		result.Written++
	}
	return result
}

func toUserEvent(visitorId string, inbound *dto.InboundEvent) *retail.UserEvent {
	event := &retail.UserEvent{
		EventType:        inbound.EventType,
		VisitorId:        visitorId,
		SearchQuery:      inbound.SearchQuery,
		PageCategories:   inbound.PageCategories,
		AttributionToken: inbound.AttributionToken,
	}
	if inbound.ProductId != "" {
		quantity := inbound.Quantity
		if quantity < 1 {
			quantity = 1
		}
		event.ProductDetails = []*retail.ProductDetail{
			{Product: &retail.Product{Id: inbound.ProductId}, Quantity: quantity},
		}
	}
	return event
}
