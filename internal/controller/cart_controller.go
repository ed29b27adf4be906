package controller

import (
	"log"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	View(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Confirmation(ctx *fiber.Ctx) error
}

type cartController struct {
	service service.ICartService
}

func NewCartController(service service.ICartService) ICartController {
	return &cartController{service: service}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart")
	h.Get("", c.View)
	h.Post("/add", c.Add)
	h.Post("/remove", c.Remove)
	h.Post("/checkout", c.Checkout)

	r.Get("/order/confirmation", c.Confirmation)
}

func (c *cartController) View(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	cart := c.service.View(ctx.Context(), session)

	return ctx.Render("cart", pageData(session, fiber.Map{
		"Cart": cart,
		// The cart page view is the one event the server does not write;
		// the client script relays it through /api/events.
		"Tracking": trackingJSON(dto.TrackingPayload{
			PageType:   constant.EventTypeShoppingCartView,
			ProductIds: cartProductIds(cart),
		}),
	}))
}

// Add takes the product page form. Bad input is normalized or dropped, never
// reported: a cart action must not strand the shopper on an error page.
func (c *cartController) Add(ctx *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := ctx.BodyParser(&req); err != nil {
		log.Printf("[Cart] WARN - unreadable add-to-cart form: %v", err)
		return ctx.Redirect("/")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		log.Printf("[Cart] WARN - add-to-cart form rejected: %v", err)
		return ctx.Redirect("/")
	}

	session := serverutils.SessionFromCtx(ctx)
	c.service.Add(ctx.Context(), session, &req)

	return ctx.Redirect("/cart")
}

func (c *cartController) Remove(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	c.service.Remove(session, ctx.FormValue("product_id"))

	return ctx.Redirect("/cart")
}

func (c *cartController) Checkout(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	c.service.Checkout(ctx.Context(), session)

	return ctx.Redirect("/order/confirmation")
}

func (c *cartController) Confirmation(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	order := c.service.Confirmation(ctx.Context(), session)
	if order == nil {
		// Single-use snapshot already consumed (or never placed).
		return ctx.Redirect("/")
	}

	return ctx.Render("order_confirmation", pageData(session, fiber.Map{
		"Order": order,
	}))
}

func cartProductIds(cart *dto.CartView) []string {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductId)
	}
	return ids
}
