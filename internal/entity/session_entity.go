package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the whole server-side state for one browser. The cookie only
// carries the session id; everything here lives in the session repository.
type Session struct {
	Id        string       `json:"id"`
	VisitorId string       `json:"visitor_id"`
	User      *UserProfile `json:"user,omitempty"`

	Cart      []CartItem `json:"cart"`
	CartTotal float64    `json:"cart_total"`
	LastOrder *Order     `json:"last_order,omitempty"`

	ChatHistory    []ChatTurn `json:"chat_history"`
	ConversationId string     `json:"conversation_id"`

	OAuthState string    `json:"oauth_state,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func NewSession() *Session {
	return &Session{
		Id:        uuid.NewString(),
		VisitorId: uuid.NewString(),
		Cart:      []CartItem{},
		CreatedAt: time.Now(),
	}
}
