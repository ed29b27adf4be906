// FILE: internal/controller/oauth_controller.go
package controller

import (
	"log"
	"net/url"

	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	LoginPage(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	r.Get("/login", c.LoginPage)
	r.Get("/logout", c.Logout)

	h := r.Group("/auth")
	h.Get("/google", c.Login)
	h.Get("/google/callback", c.Callback)
}

func (c *oauthController) LoginPage(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	if session.User != nil {
		return ctx.Redirect("/")
	}

	return ctx.Render("login", pageData(session, fiber.Map{
		"Error": ctx.Query("error"),
	}))
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	loginURL, state := c.service.BeginLogin()
	session.OAuthState = state

	log.Printf("[OAuth] Login initiated for visitor %s", session.VisitorId)
	return ctx.Redirect(loginURL)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	state := ctx.Query("state")
	expected := session.OAuthState
	session.OAuthState = ""
	if expected == "" || state != expected {
		log.Printf("[OAuth] ERROR - State mismatch on callback")
		return loginFailure(ctx, "login request did not match, please try again")
	}

	code := ctx.Query("code")
	if code == "" {
		log.Printf("[OAuth] ERROR - Missing authorization code")
		return loginFailure(ctx, "authorization was cancelled")
	}

	profile, err := c.service.HandleCallback(ctx.Context(), code)
	if err != nil {
		log.Printf("[OAuth] ERROR - HandleCallback failed: %v", err)
		return loginFailure(ctx, "sign-in failed, please try again")
	}

	session.User = profile
	log.Printf("[OAuth] ✅ %s signed in", profile.Email)

	return ctx.Redirect("/")
}

// Logout drops the profile only. The cart belongs to the browser session and
// survives signing out.
func (c *oauthController) Logout(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	session.User = nil

	return ctx.Redirect("/")
}

func loginFailure(ctx *fiber.Ctx, reason string) error {
	return ctx.Redirect("/login?error=" + url.QueryEscape(reason))
}
