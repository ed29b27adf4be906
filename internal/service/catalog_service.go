package service

import (
	"context"
	"fmt"
	"log"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/mapper"
	"retail-storefront/pkg/facet"
	"retail-storefront/pkg/retail"
)

// ICatalogService owns every read path against the catalog: recommendations,
// search, category browse, product detail and typeahead. All ranking and
// relevance lives upstream; this layer only shapes requests and view models.
type ICatalogService interface {
	HomePage(ctx context.Context, visitorId, uri string) (*dto.HomePageData, error)
	Search(ctx context.Context, req *dto.SearchPageRequest) (*dto.SearchPageData, error)
	Browse(ctx context.Context, req *dto.BrowsePageRequest) (*dto.SearchPageData, error)
	ProductDetail(ctx context.Context, req *dto.ProductPageRequest) (*dto.ProductPageData, error)
	Autocomplete(ctx context.Context, visitorId, query string) ([]string, error)
}

type catalogService struct {
	client        *retail.Client
	events        IEventService
	mapper        *mapper.ProductMapper
	searchConfig  string
	recsConfig    string
	facetSpecKeys []string
}

func NewCatalogService(client *retail.Client, events IEventService, searchServingConfig, recommendationServingConfig string) ICatalogService {
	return &catalogService{
		client:       client,
		events:       events,
		mapper:       mapper.NewProductMapper(),
		searchConfig: searchServingConfig,
		recsConfig:   recommendationServingConfig,
		// Textual facets the sidebar shows counts for. Numeric facets
		// (price, rating) filter fine without a spec.
		facetSpecKeys: []string{"brands", "categories", "colorFamilies"},
	}
}

func (s *catalogService) HomePage(ctx context.Context, visitorId, uri string) (*dto.HomePageData, error) {
	event := &retail.UserEvent{
		EventType: constant.EventTypeHomePageView,
		VisitorId: visitorId,
		Uri:       uri,
	}

	resp, err := s.client.Predict(ctx, s.recsConfig, event, constant.RecommendationPageSize)
	if err != nil {
		log.Printf("[Catalog] ERROR - Home recommendations failed: %v", err)
		return nil, fmt.Errorf("get recommendations: %w", err)
	}

	s.events.Write(ctx, event)

	return &dto.HomePageData{
		Recommendations:  s.mapper.PredictResultsToCards(resp.Results),
		AttributionToken: resp.AttributionToken,
	}, nil
}

func (s *catalogService) Search(ctx context.Context, req *dto.SearchPageRequest) (*dto.SearchPageData, error) {
	expansion := retail.ExpansionDisabled
	if req.Expand {
		expansion = retail.ExpansionAuto
	}

	searchReq := &retail.SearchRequest{
		Query:              req.Query,
		VisitorId:          req.VisitorId,
		PageSize:           constant.SearchPageSize,
		Offset:             pageOffset(req.Page),
		Filter:             req.Selection.BuildFilter(),
		FacetSpecs:         s.facetSpecs(),
		QueryExpansionSpec: &retail.QueryExpansionSpec{Condition: expansion},
	}

	resp, err := s.client.Search(ctx, s.searchConfig, searchReq)
	if err != nil {
		log.Printf("[Catalog] ERROR - Search %q failed: %v", req.Query, err)
		return nil, fmt.Errorf("search: %w", err)
	}

	s.events.Write(ctx, &retail.UserEvent{
		EventType:        constant.EventTypeSearch,
		VisitorId:        req.VisitorId,
		Uri:              req.Uri,
		SearchQuery:      req.Query,
		AttributionToken: resp.AttributionToken,
	})

	return s.resultsPage(resp, req.Query, req.Page, req.Selection), nil
}

func (s *catalogService) Browse(ctx context.Context, req *dto.BrowsePageRequest) (*dto.SearchPageData, error) {
	searchReq := &retail.SearchRequest{
		VisitorId:      req.VisitorId,
		PageSize:       constant.SearchPageSize,
		Offset:         pageOffset(req.Page),
		Filter:         req.Selection.BuildFilter(),
		PageCategories: []string{req.Category},
		FacetSpecs:     s.facetSpecs(),
	}

	resp, err := s.client.Search(ctx, s.searchConfig, searchReq)
	if err != nil {
		log.Printf("[Catalog] ERROR - Browse %q failed: %v", req.Category, err)
		return nil, fmt.Errorf("browse category: %w", err)
	}

	s.events.Write(ctx, &retail.UserEvent{
		EventType:        constant.EventTypeCategoryPageView,
		VisitorId:        req.VisitorId,
		Uri:              req.Uri,
		PageCategories:   []string{req.Category},
		AttributionToken: resp.AttributionToken,
	})

	return s.resultsPage(resp, "", req.Page, req.Selection), nil
}

func (s *catalogService) ProductDetail(ctx context.Context, req *dto.ProductPageRequest) (*dto.ProductPageData, error) {
	product, err := s.client.GetProduct(ctx, req.ProductId)
	if err != nil {
		log.Printf("[Catalog] ERROR - Product %s lookup failed: %v", req.ProductId, err)
		return nil, fmt.Errorf("product detail: %w", err)
	}

	event := &retail.UserEvent{
		EventType: constant.EventTypeDetailPageView,
		VisitorId: req.VisitorId,
		Uri:       req.Uri,
		// Threads the token from the results page that linked here, so the
		// upstream service can attribute this view to that response.
		AttributionToken: req.AttributionToken,
		ProductDetails: []*retail.ProductDetail{
			{Product: &retail.Product{Id: product.Id}, Quantity: 1},
		},
	}
	s.events.Write(ctx, event)

	data := &dto.ProductPageData{
		Product: s.mapper.ToDetail(product),
	}

	// Recommendations are a bonus section; losing them never degrades the
	// detail page itself.
	recs, err := s.client.Predict(ctx, s.recsConfig, event, constant.RecommendationPageSize)
	if err != nil {
		log.Printf("[Catalog] WARN - Recommendations for %s failed: %v", req.ProductId, err)
		return data, nil
	}
	data.Recommendations = s.mapper.PredictResultsToCards(recs.Results)
	data.AttributionToken = recs.AttributionToken
	return data, nil
}

func (s *catalogService) Autocomplete(ctx context.Context, visitorId, query string) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}

	resp, err := s.client.CompleteQuery(ctx, query, visitorId, constant.CompletionDataset)
	if err != nil {
		log.Printf("[Catalog] ERROR - Autocomplete %q failed: %v", query, err)
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	suggestions := make([]string, 0, len(resp.CompletionResults))
	for _, r := range resp.CompletionResults {
		if r != nil && r.Suggestion != "" {
			suggestions = append(suggestions, r.Suggestion)
		}
	}
	return suggestions, nil
}

func (s *catalogService) facetSpecs() []*retail.FacetSpec {
	specs := make([]*retail.FacetSpec, 0, len(s.facetSpecKeys))
	for _, key := range s.facetSpecKeys {
		specs = append(specs, &retail.FacetSpec{
			FacetKey: &retail.FacetKey{Key: key},
			Limit:    20,
		})
	}
	return specs
}

func (s *catalogService) resultsPage(resp *retail.SearchResponse, query string, page int, selection *facet.Selection) *dto.SearchPageData {
	totalPages := (resp.TotalSize + constant.SearchPageSize - 1) / constant.SearchPageSize
	return &dto.SearchPageData{
		Query:          query,
		CorrectedQuery: resp.CorrectedQuery,
		Products:       s.mapper.SearchResultsToCards(resp.Results),
		Facets:         s.mapper.FacetsToGroups(resp.Facets, selection),
		Applied:        selection.Values(),
		TotalSize:      resp.TotalSize,
		Pagination: dto.Pagination{
			Page:       page,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
		AttributionToken: resp.AttributionToken,
	}
}

func pageOffset(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * constant.SearchPageSize
}
