package controller

import (
	"log"

	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Page(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat", c.Page)

	h := r.Group("/api/chat")
	h.Post("/message", c.SendMessage)
	h.Post("/clear", c.Clear)
}

func (c *chatController) Page(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	return ctx.Render("chat", pageData(session, fiber.Map{
		"History":        c.service.History(session),
		"ConversationId": session.ConversationId,
	}))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message payload")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session := serverutils.SessionFromCtx(ctx)

	res, err := c.service.SendMessage(ctx.Context(), session, req.Message)
	if err != nil {
		log.Printf("[Chat] ERROR - SendMessage failed: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	c.service.ClearConversation(session)

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear conversation", nil))
}
