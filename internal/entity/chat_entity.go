package entity

import "time"

type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendChatTurn records one side of an exchange.
func (s *Session) AppendChatTurn(role, content string) {
	s.ChatHistory = append(s.ChatHistory, ChatTurn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// ResetConversation drops the history and the conversation id so the next
// message starts a brand-new conversation upstream.
func (s *Session) ResetConversation() {
	s.ChatHistory = nil
	s.ConversationId = ""
}
