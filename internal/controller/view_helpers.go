package controller

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/entity"
	"retail-storefront/pkg/facet"

	"github.com/gofiber/fiber/v2"
)

// pageData merges the keys every template needs (nav state) with the page's
// own values.
func pageData(session *entity.Session, data fiber.Map) fiber.Map {
	base := fiber.Map{
		"User":     session.User,
		"CartSize": session.CartSize(),
	}
	for k, v := range data {
		base[k] = v
	}
	return base
}

// trackingJSON serializes the payload the client event script reads off the
// page. json.Marshal escapes <, > and & so the blob is safe inside a script
// element; template.JS stops html/template from re-escaping it.
func trackingJSON(payload dto.TrackingPayload) template.JS {
	if payload.ProductIds == nil {
		payload.ProductIds = []string{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(encoded)
}

func cardIds(cards []dto.ProductCard) []string {
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.Id)
	}
	return ids
}

// selectionFromQuery splits the raw query string into the facet selection,
// keeping wire order and skipping the parameters with routing meaning.
func selectionFromQuery(ctx *fiber.Ctx) *facet.Selection {
	selection := facet.NewSelection()
	ctx.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if constant.ReservedSearchParams[string(key)] {
			return
		}
		selection.Add(string(key), string(value))
	})
	return selection
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func isOn(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// resultsURL rebuilds a results-page link for a given page number, keeping
// the query text, the expand toggle and the whole facet selection.
func resultsURL(basePath, query string, expand bool, selection *facet.Selection, page int) string {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if expand {
		params.Set("expand", "1")
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	parts := make([]string, 0, 2)
	if encoded := params.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	if facetQuery := selection.QueryString(); facetQuery != "" {
		parts = append(parts, facetQuery)
	}
	if len(parts) == 0 {
		return basePath
	}
	return basePath + "?" + strings.Join(parts, "&")
}

// paginationLinks fills the prev/next URLs the service left empty; URL shape
// is routing, so it belongs here.
func paginationLinks(p dto.Pagination, basePath, query string, expand bool, selection *facet.Selection) dto.Pagination {
	if p.HasPrev {
		p.PrevURL = resultsURL(basePath, query, expand, selection, p.Page-1)
	}
	if p.HasNext {
		p.NextURL = resultsURL(basePath, query, expand, selection, p.Page+1)
	}
	return p
}
