// FILE: internal/pkg/serverutils/session_middleware.go
package serverutils

import (
	"fmt"
	"log"
	"time"

	"retail-storefront/internal/entity"
	"retail-storefront/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionLocalsKey = "session"

type SessionConfig struct {
	Repository contract.SessionRepository
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewSessionMiddleware resolves the browser's session before the handler runs
// and persists it afterwards. The cookie carries only a signed token with the
// session id; a missing, tampered or expired token means a fresh session,
// never an error page.
func NewSessionMiddleware(cfg SessionConfig) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var session *entity.Session

		if cookie := ctx.Cookies(cfg.CookieName); cookie != "" {
			if sessionId, err := ParseSessionToken(cookie, cfg.Secret); err == nil {
				if found, err := cfg.Repository.Get(ctx.Context(), sessionId); err == nil {
					session = found
				}
			}
		}

		isNew := session == nil
		if isNew {
			session = entity.NewSession()
		}
		ctx.Locals(sessionLocalsKey, session)

		err := ctx.Next()

		if saveErr := cfg.Repository.Save(ctx.Context(), session); saveErr != nil {
			// Losing the save degrades the NEXT request, not this response.
			log.Printf("[Session] save failed: %v", saveErr)
		}
		if isNew {
			if token, signErr := SignSessionToken(session.Id, cfg.Secret, cfg.TTL); signErr == nil {
				ctx.Cookie(&fiber.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					Expires:  time.Now().Add(cfg.TTL),
					HTTPOnly: true,
					Secure:   cfg.Secure,
					SameSite: "Lax",
				})
			} else {
				log.Printf("[Session] sign token failed: %v", signErr)
			}
		}
		return err
	}
}

// SessionFromCtx returns the request's session. Handlers run behind
// NewSessionMiddleware, so nil only happens on misconfigured routes.
func SessionFromCtx(ctx *fiber.Ctx) *entity.Session {
	if session, ok := ctx.Locals(sessionLocalsKey).(*entity.Session); ok {
		return session
	}
	return nil
}

func SignSessionToken(sessionId, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionId,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseSessionToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	sessionId, ok := claims["sid"].(string)
	if !ok || sessionId == "" {
		return "", fmt.Errorf("missing session id")
	}
	return sessionId, nil
}
