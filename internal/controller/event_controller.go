package controller

import (
	"bytes"
	"encoding/json"

	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type eventController struct {
	service service.IEventService
}

func NewEventController(service service.IEventService) IEventController {
	return &eventController{service: service}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/events")
	h.Post("", c.Ingest)
}

// Ingest accepts one event object or an array of them in the same body shape
// the client script sends either way.
func (c *eventController) Ingest(ctx *fiber.Ctx) error {
	events, err := decodeEvents(ctx.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if len(events) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no events in payload")
	}

	session := serverutils.SessionFromCtx(ctx)
	res := c.service.Relay(ctx.Context(), session.VisitorId, events)

	return ctx.JSON(serverutils.SuccessResponse("Success ingest events", res))
}

func decodeEvents(body []byte) ([]dto.InboundEvent, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "empty body")
	}

	if trimmed[0] == '[' {
		var events []dto.InboundEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid event array")
		}
		return events, nil
	}

	var event dto.InboundEvent
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid event object")
	}
	return []dto.InboundEvent{event}, nil
}
