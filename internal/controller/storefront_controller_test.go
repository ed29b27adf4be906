package controller

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/pkg/retail"

	"github.com/stretchr/testify/assert"
)

func TestHomePage(t *testing.T) {
	fake := &fakeBackend{
		predictRaw: `{
			"results": [{"id": "sku-9", "metadata": {"product": {"id": "sku-9", "title": "Camp Mug", "priceInfo": {"price": 12.5, "currencyCode": "USD"}}}}],
			"attributionToken": "pred-tok"
		}`,
	}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotNil(t, sessionCookie(t, resp), "first visit sets the session cookie")

	body := readBody(t, resp)
	assert.Contains(t, body, "Camp Mug")
	assert.Contains(t, body, "?at=pred-tok", "product links carry the attribution token")
	assert.Contains(t, body, "tracking-data")

	assert.Len(t, fake.events, 1)
	assert.Equal(t, "home-page-view", fake.events[0].EventType)
}

func TestHomePageDegradesOnUpstreamFailure(t *testing.T) {
	fake := &fakeBackend{predictStatus: 503}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode, "page routes render degraded, never an error status")
	assert.Contains(t, readBody(t, resp), "error-banner")
}

func TestSearchPage(t *testing.T) {
	fake := &fakeBackend{
		searchResp: &retail.SearchResponse{
			Results: []*retail.SearchResult{
				{Id: "sku-1", Product: &retail.Product{Id: "sku-1", Title: "Zip Hoodie", PriceInfo: &retail.PriceInfo{Price: 21.99, CurrencyCode: "USD"}}},
			},
			Facets: []*retail.Facet{
				{Key: "brands", Values: []*retail.FacetValue{{Value: "Acme", Count: 3}}},
			},
			TotalSize:        41,
			AttributionToken: "srch-tok",
		},
	}
	app := newTestApp(t, fake, nil)

	req := httptest.NewRequest("GET", "/search?query=hoodie&page=2&expand=1&brands=Acme&price=10-25", nil)
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Reserved params steer the request; everything else became the filter.
	sent := fake.searches[0]
	assert.Equal(t, "hoodie", sent.Query)
	assert.Equal(t, 20, sent.Offset)
	assert.Equal(t, retail.ExpansionAuto, sent.QueryExpansionSpec.Condition)
	assert.Contains(t, sent.Filter, `brands: ANY("Acme")`)
	assert.Contains(t, sent.Filter, "price >= 10.0")
	assert.NotContains(t, sent.Filter, "expand")

	body := readBody(t, resp)
	assert.Contains(t, body, "Zip Hoodie")
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, "?at=srch-tok")
}

func TestSearchWithoutQueryRedirectsHome(t *testing.T) {
	fake := &fakeBackend{}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?query=++", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Empty(t, fake.searches)
}

func TestSearchPageDegradesOnUpstreamFailure(t *testing.T) {
	fake := &fakeBackend{searchStatus: 502}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?query=hoodie", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "error-banner")
	assert.Contains(t, body, "hoodie", "the query stays in the page for a retry")
}

func TestBrowsePage(t *testing.T) {
	fake := &fakeBackend{
		searchResp: &retail.SearchResponse{
			Results: []*retail.SearchResult{
				{Id: "sku-3", Product: &retail.Product{Id: "sku-3", Title: "Campus Tee"}},
			},
			TotalSize: 1,
		},
	}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/category/Apparel", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"Apparel"}, fake.searches[0].PageCategories)
	assert.Empty(t, fake.searches[0].Query)

	body := readBody(t, resp)
	assert.Contains(t, body, "Apparel")
	assert.Contains(t, body, "Campus Tee")

	assert.Equal(t, "category-page-view", fake.events[0].EventType)
}

func TestProductDetailPage(t *testing.T) {
	fake := &fakeBackend{
		product: &retail.Product{
			Id:        "sku-7",
			Title:     "Canvas Tote",
			Brands:    []string{"Acme"},
			PriceInfo: &retail.PriceInfo{Price: 19.5, CurrencyCode: "USD"},
		},
	}
	app := newTestApp(t, fake, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/product/sku-7?at=results-tok", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Canvas Tote")
	assert.Contains(t, body, `name="product_id" value="sku-7"`)

	assert.Len(t, fake.events, 1)
	assert.Equal(t, "detail-page-view", fake.events[0].EventType)
	assert.Equal(t, "results-tok", fake.events[0].AttributionToken, "the results page token rides into the view event")
}

func TestAutocomplete(t *testing.T) {
	t.Run("suggestions envelope", func(t *testing.T) {
		fake := &fakeBackend{completions: []string{"hoodie", "hoodie zip"}}
		app := newTestApp(t, fake, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/autocomplete?query=hoo", nil), -1)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.AutocompleteResponse]
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, []string{"hoodie", "hoodie zip"}, result.Data.Suggestions)
	})

	t.Run("empty query returns an empty list", func(t *testing.T) {
		fake := &fakeBackend{}
		app := newTestApp(t, fake, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/autocomplete?query=", nil), -1)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.AutocompleteResponse]
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Empty(t, result.Data.Suggestions)
	})

	t.Run("upstream failure becomes 502", func(t *testing.T) {
		fake := &fakeBackend{completeStatus: 500}
		app := newTestApp(t, fake, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/autocomplete?query=hoo", nil), -1)

		assert.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		_ = json.NewDecoder(resp.Body).Decode(&result)
		assert.False(t, result.Success)
		assert.Equal(t, 502, result.Code)
	})
}
