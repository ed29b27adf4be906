package dto

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type ChatMessageResponse struct {
	Reply            string        `json:"reply"`
	FollowupQuestion string        `json:"followup_question,omitempty"`
	ConversationId   string        `json:"conversation_id"`
	Products         []ProductCard `json:"products,omitempty"`
}

type ChatTurnView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
