package constant

const (
	SessionCookieName = "sf_session"

	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// USER EVENT TYPES - names the catalog service understands
	EventTypeHomePageView     = "home-page-view"
	EventTypeSearch           = "search"
	EventTypeCategoryPageView = "category-page-view"
	EventTypeDetailPageView   = "detail-page-view"
	EventTypeAddToCart        = "add-to-cart"
	EventTypeShoppingCartView = "shopping-cart-page-view"
	EventTypePurchaseComplete = "purchase-complete"

	CompletionDataset = "user-data"

	SearchPageSize         = 20
	RecommendationPageSize = 10
	ChatResultPageSize     = 5

	CurrencyCode = "USD"
)

// ReservedSearchParams are query parameters with routing meaning on results
// pages. Everything else in the query string is treated as a facet selection.
var ReservedSearchParams = map[string]bool{
	"query":  true,
	"page":   true,
	"expand": true,
	"at":     true,
}
