package dto

// InboundEvent is one behavioral event posted by the client-side script. The
// visitor id is always taken from the session, never trusted from the payload.
type InboundEvent struct {
	EventType        string   `json:"event_type" validate:"required"`
	ProductId        string   `json:"product_id,omitempty"`
	Quantity         int      `json:"quantity,omitempty" validate:"min=0"`
	SearchQuery      string   `json:"search_query,omitempty"`
	PageCategories   []string `json:"page_categories,omitempty"`
	AttributionToken string   `json:"attribution_token,omitempty"`
}

type EventRelayResponse struct {
	Written int `json:"written"`
	Failed  int `json:"failed"`
}
