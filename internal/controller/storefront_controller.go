package controller

import (
	"log"
	"net/url"
	"strings"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/pkg/serverutils"
	"retail-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStorefrontController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Browse(ctx *fiber.Ctx) error
	ProductDetail(ctx *fiber.Ctx) error
	Autocomplete(ctx *fiber.Ctx) error
}

type storefrontController struct {
	service service.ICatalogService
}

func NewStorefrontController(service service.ICatalogService) IStorefrontController {
	return &storefrontController{service: service}
}

func (c *storefrontController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Home)
	r.Get("/search", c.Search)
	r.Get("/category/:name", c.Browse)
	r.Get("/product/:id", c.ProductDetail)

	api := r.Group("/api")
	api.Get("/autocomplete", c.Autocomplete)
}

func (c *storefrontController) Home(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	data, err := c.service.HomePage(ctx.Context(), session.VisitorId, ctx.OriginalURL())
	if err != nil {
		// Degraded home: the shell renders, the grid is empty, the error is
		// visible. Never a hard failure.
		return ctx.Render("index", pageData(session, fiber.Map{
			"Error":    err.Error(),
			"Tracking": trackingJSON(dto.TrackingPayload{PageType: constant.EventTypeHomePageView}),
		}))
	}

	return ctx.Render("index", pageData(session, fiber.Map{
		"Recommendations":  data.Recommendations,
		"AttributionToken": data.AttributionToken,
		"Tracking": trackingJSON(dto.TrackingPayload{
			PageType:         constant.EventTypeHomePageView,
			AttributionToken: data.AttributionToken,
			ProductIds:       cardIds(data.Recommendations),
		}),
	}))
}

func (c *storefrontController) Search(ctx *fiber.Ctx) error {
	query := strings.TrimSpace(ctx.Query("query"))
	if query == "" {
		return ctx.Redirect("/")
	}

	session := serverutils.SessionFromCtx(ctx)
	page := parsePage(ctx.Query("page"))
	expand := isOn(ctx.Query("expand"))
	selection := selectionFromQuery(ctx)

	data, err := c.service.Search(ctx.Context(), &dto.SearchPageRequest{
		VisitorId: session.VisitorId,
		Query:     query,
		Page:      page,
		Expand:    expand,
		Selection: selection,
		Uri:       ctx.OriginalURL(),
	})
	if err != nil {
		return ctx.Render("search_results", pageData(session, fiber.Map{
			"Query": query,
			"Error": err.Error(),
		}))
	}

	return c.renderResults(ctx, "search_results", data, fiber.Map{
		"Query":    query,
		"Expand":   expand,
		"BasePath": "/search",
	})
}

func (c *storefrontController) Browse(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	session := serverutils.SessionFromCtx(ctx)
	page := parsePage(ctx.Query("page"))
	selection := selectionFromQuery(ctx)

	data, err := c.service.Browse(ctx.Context(), &dto.BrowsePageRequest{
		VisitorId: session.VisitorId,
		Category:  name,
		Page:      page,
		Selection: selection,
		Uri:       ctx.OriginalURL(),
	})
	if err != nil {
		return ctx.Render("search_results", pageData(session, fiber.Map{
			"Category": name,
			"Error":    err.Error(),
		}))
	}

	return c.renderResults(ctx, "search_results", data, fiber.Map{
		"Category": name,
		"BasePath": "/category/" + url.PathEscape(name),
	})
}

// renderResults is the shared tail of search and browse: both land on the
// same results template with pagination links and a tracking payload.
func (c *storefrontController) renderResults(ctx *fiber.Ctx, view string, data *dto.SearchPageData, extra fiber.Map) error {
	session := serverutils.SessionFromCtx(ctx)
	basePath, _ := extra["BasePath"].(string)
	expand, _ := extra["Expand"].(bool)

	pageType := constant.EventTypeSearch
	if data.Query == "" {
		pageType = constant.EventTypeCategoryPageView
	}

	values := fiber.Map{
		"Products":         data.Products,
		"Facets":           data.Facets,
		"Applied":          data.Applied,
		"TotalSize":        data.TotalSize,
		"CorrectedQuery":   data.CorrectedQuery,
		"Pagination":       paginationLinks(data.Pagination, basePath, data.Query, expand, selectionFromQuery(ctx)),
		"AttributionToken": data.AttributionToken,
		"Tracking": trackingJSON(dto.TrackingPayload{
			PageType:         pageType,
			AttributionToken: data.AttributionToken,
			ProductIds:       cardIds(data.Products),
		}),
	}
	for k, v := range extra {
		values[k] = v
	}
	return ctx.Render(view, pageData(session, values))
}

func (c *storefrontController) ProductDetail(ctx *fiber.Ctx) error {
	productId := ctx.Params("id")
	if unescaped, err := url.PathUnescape(productId); err == nil {
		productId = unescaped
	}

	session := serverutils.SessionFromCtx(ctx)

	data, err := c.service.ProductDetail(ctx.Context(), &dto.ProductPageRequest{
		VisitorId:        session.VisitorId,
		ProductId:        productId,
		AttributionToken: ctx.Query("at"),
		Uri:              ctx.OriginalURL(),
	})
	if err != nil {
		return ctx.Render("product_detail", pageData(session, fiber.Map{
			"Error": err.Error(),
		}))
	}

	return ctx.Render("product_detail", pageData(session, fiber.Map{
		"Product":          data.Product,
		"Recommendations":  data.Recommendations,
		"AttributionToken": data.AttributionToken,
		"Tracking": trackingJSON(dto.TrackingPayload{
			PageType:         constant.EventTypeDetailPageView,
			AttributionToken: data.AttributionToken,
			ProductIds:       []string{data.Product.Id},
		}),
	}))
}

func (c *storefrontController) Autocomplete(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)
	query := strings.TrimSpace(ctx.Query("query"))

	suggestions, err := c.service.Autocomplete(ctx.Context(), session.VisitorId, query)
	if err != nil {
		log.Printf("[Storefront] ERROR - Autocomplete failed: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success autocomplete", dto.AutocompleteResponse{
		Suggestions: suggestions,
	}))
}
