package dto

import "retail-storefront/pkg/facet"

// ProductCard is the render-ready slice of a catalog product used on every
// results grid (home, search, browse, chat, recommendations).
type ProductCard struct {
	Id       string  `json:"id"`
	Title    string  `json:"title"`
	Brand    string  `json:"brand,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	Image    string  `json:"image,omitempty"`
}

type FacetOption struct {
	Value    string `json:"value"`
	Count    int64  `json:"count"`
	Selected bool   `json:"selected"`
}

type FacetGroup struct {
	Key     string        `json:"key"`
	Options []FacetOption `json:"options"`
}

type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	PrevURL    string `json:"prev_url,omitempty"`
	NextURL    string `json:"next_url,omitempty"`
}

type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ProductDetailView carries everything the detail page shows; ProductCard is
// its grid-sized cousin.
type ProductDetailView struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Image         string   `json:"image,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	RatingCount   int      `json:"rating_count,omitempty"`
	ColorFamilies []string `json:"color_families,omitempty"`
	Availability  string   `json:"availability,omitempty"`
}

type HomePageData struct {
	Recommendations  []ProductCard
	AttributionToken string
}

type SearchPageData struct {
	Query            string
	CorrectedQuery   string
	Products         []ProductCard
	Facets           []FacetGroup
	Applied          map[string][]string
	TotalSize        int
	Pagination       Pagination
	AttributionToken string
}

type ProductPageData struct {
	Product          ProductDetailView
	Recommendations  []ProductCard
	AttributionToken string
}

// TrackingPayload is serialized into each page for the client-side event
// relay script.
type TrackingPayload struct {
	PageType         string   `json:"page_type"`
	AttributionToken string   `json:"attribution_token,omitempty"`
	ProductIds       []string `json:"product_ids"`
}

// Page requests, assembled by controllers from route and query parameters.
// The facet selection is already split off from the reserved params.

type SearchPageRequest struct {
	VisitorId string
	Query     string
	Page      int
	Expand    bool
	Selection *facet.Selection
	Uri       string
}

type BrowsePageRequest struct {
	VisitorId string
	Category  string
	Page      int
	Selection *facet.Selection
	Uri       string
}

type ProductPageRequest struct {
	VisitorId string
	ProductId string
	// Token handed over by the results page that linked here.
	AttributionToken string
	Uri              string
}
