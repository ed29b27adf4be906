package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

func TestIngestSingleEvent(t *testing.T) {
	fake := &fakeBackend{}
	app := newTestApp(t, fake, nil)

	req := httptest.NewRequest("POST", "/api/events",
		strings.NewReader(`{"event_type": "shopping-cart-page-view", "product_id": "sku-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result serverutils.BaseResponse[dto.EventRelayResponse]
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Data.Written)
	assert.Equal(t, 0, result.Data.Failed)

	assert.Len(t, fake.events, 1)
	assert.Equal(t, "shopping-cart-page-view", fake.events[0].EventType)
	assert.NotEmpty(t, fake.events[0].VisitorId, "visitor id is stamped from the session")
}

func TestIngestEventArray(t *testing.T) {
	fake := &fakeBackend{}
	app := newTestApp(t, fake, nil)

	req := httptest.NewRequest("POST", "/api/events", strings.NewReader(`[
		{"event_type": "home-page-view"},
		{"event_type": "detail-page-view", "product_id": "sku-2", "quantity": 1},
		{"product_id": "sku-3"}
	]`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result serverutils.BaseResponse[dto.EventRelayResponse]
	_ = json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, 2, result.Data.Written)
	assert.Equal(t, 1, result.Data.Failed, "the event without a type is rejected, the rest still land")
	assert.Len(t, fake.events, 2)
}

func TestIngestSpoofedVisitorIgnored(t *testing.T) {
	fake := &fakeBackend{}
	app := newTestApp(t, fake, nil)

	req := httptest.NewRequest("POST", "/api/events",
		strings.NewReader(`{"event_type": "home-page-view", "visitorId": "spoofed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEqual(t, "spoofed", fake.events[0].VisitorId)
}

func TestIngestRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"blank body", `   `},
		{"empty array", `[]`},
		{"broken object", `{oops`},
		{"broken array", `[{"event_type": "x"},`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeBackend{}
			app := newTestApp(t, fake, nil)

			req := httptest.NewRequest("POST", "/api/events", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)

			assert.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
			assert.Empty(t, fake.events)
		})
	}
}
