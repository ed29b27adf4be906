package retail

import "encoding/json"

// Wire types for the catalog service, v2 surface. Field names follow the JSON
// the service speaks; only the fields the storefront touches are declared.

type Product struct {
	Name         string     `json:"name,omitempty"`
	Id           string     `json:"id,omitempty"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	Brands       []string   `json:"brands,omitempty"`
	Uri          string     `json:"uri,omitempty"`
	Images       []*Image   `json:"images,omitempty"`
	PriceInfo    *PriceInfo `json:"priceInfo,omitempty"`
	Rating       *Rating    `json:"rating,omitempty"`
	ColorInfo    *ColorInfo `json:"colorInfo,omitempty"`
	Availability string     `json:"availability,omitempty"`
}

type Image struct {
	Uri string `json:"uri,omitempty"`
}

type PriceInfo struct {
	Price         float64 `json:"price,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	CurrencyCode  string  `json:"currencyCode,omitempty"`
}

type Rating struct {
	AverageRating float64 `json:"averageRating,omitempty"`
	RatingCount   int     `json:"ratingCount,omitempty"`
}

type ColorInfo struct {
	ColorFamilies []string `json:"colorFamilies,omitempty"`
	Colors        []string `json:"colors,omitempty"`
}

const (
	ExpansionAuto     = "AUTO"
	ExpansionDisabled = "DISABLED"
)

type SearchRequest struct {
	Query              string              `json:"query,omitempty"`
	VisitorId          string              `json:"visitorId"`
	Branch             string              `json:"branch,omitempty"`
	PageSize           int                 `json:"pageSize,omitempty"`
	Offset             int                 `json:"offset,omitempty"`
	Filter             string              `json:"filter,omitempty"`
	PageCategories     []string            `json:"pageCategories,omitempty"`
	FacetSpecs         []*FacetSpec        `json:"facetSpecs,omitempty"`
	QueryExpansionSpec *QueryExpansionSpec `json:"queryExpansionSpec,omitempty"`
}

type FacetSpec struct {
	FacetKey *FacetKey `json:"facetKey"`
	Limit    int       `json:"limit,omitempty"`
}

type FacetKey struct {
	Key string `json:"key"`
}

type QueryExpansionSpec struct {
	Condition string `json:"condition,omitempty"`
}

type SearchResponse struct {
	Results          []*SearchResult `json:"results,omitempty"`
	Facets           []*Facet        `json:"facets,omitempty"`
	TotalSize        int             `json:"totalSize,omitempty"`
	CorrectedQuery   string          `json:"correctedQuery,omitempty"`
	AttributionToken string          `json:"attributionToken,omitempty"`
	NextPageToken    string          `json:"nextPageToken,omitempty"`
}

type SearchResult struct {
	Id      string   `json:"id,omitempty"`
	Product *Product `json:"product,omitempty"`
}

type Facet struct {
	Key    string        `json:"key,omitempty"`
	Values []*FacetValue `json:"values,omitempty"`
}

type FacetValue struct {
	Value    string    `json:"value,omitempty"`
	Count    int64     `json:"count,omitempty"`
	Interval *Interval `json:"interval,omitempty"`
}

type Interval struct {
	Minimum float64 `json:"minimum,omitempty"`
	Maximum float64 `json:"maximum,omitempty"`
}

type PredictRequest struct {
	UserEvent *UserEvent     `json:"userEvent"`
	PageSize  int            `json:"pageSize,omitempty"`
	Filter    string         `json:"filter,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
}

type PredictResponse struct {
	Results          []*PredictResult `json:"results,omitempty"`
	AttributionToken string           `json:"attributionToken,omitempty"`
}

type PredictResult struct {
	Id       string                     `json:"id,omitempty"`
	Metadata map[string]json.RawMessage `json:"metadata,omitempty"`
}

// DecodeProduct pulls the full product out of the metadata blob that comes
// back when the request asked for returnProduct.
func (r *PredictResult) DecodeProduct() (*Product, bool) {
	raw, ok := r.Metadata["product"]
	if !ok {
		return nil, false
	}
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

type UserEvent struct {
	EventType           string               `json:"eventType"`
	VisitorId           string               `json:"visitorId"`
	EventTime           string               `json:"eventTime,omitempty"`
	Uri                 string               `json:"uri,omitempty"`
	SearchQuery         string               `json:"searchQuery,omitempty"`
	PageCategories      []string             `json:"pageCategories,omitempty"`
	AttributionToken    string               `json:"attributionToken,omitempty"`
	CartId              string               `json:"cartId,omitempty"`
	ProductDetails      []*ProductDetail     `json:"productDetails,omitempty"`
	PurchaseTransaction *PurchaseTransaction `json:"purchaseTransaction,omitempty"`
}

type ProductDetail struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity,omitempty"`
}

type PurchaseTransaction struct {
	Id           string  `json:"id,omitempty"`
	Revenue      float64 `json:"revenue"`
	CurrencyCode string  `json:"currencyCode"`
}

type CompleteQueryResponse struct {
	CompletionResults []*CompletionResult `json:"completionResults,omitempty"`
	AttributionToken  string              `json:"attributionToken,omitempty"`
}

type CompletionResult struct {
	Suggestion string `json:"suggestion,omitempty"`
}
