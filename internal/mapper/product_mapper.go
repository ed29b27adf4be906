package mapper

import (
	"retail-storefront/internal/dto"
	"retail-storefront/pkg/facet"
	"retail-storefront/pkg/retail"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToCard(p *retail.Product) dto.ProductCard {
	if p == nil {
		return dto.ProductCard{}
	}
	card := dto.ProductCard{
		Id:    p.Id,
		Title: p.Title,
	}
	if len(p.Brands) > 0 {
		card.Brand = p.Brands[0]
	}
	if p.PriceInfo != nil {
		card.Price = p.PriceInfo.Price
		card.Currency = p.PriceInfo.CurrencyCode
	}
	if len(p.Images) > 0 && p.Images[0] != nil {
		card.Image = p.Images[0].Uri
	}
	return card
}

func (m *ProductMapper) ToDetail(p *retail.Product) dto.ProductDetailView {
	if p == nil {
		return dto.ProductDetailView{}
	}
	detail := dto.ProductDetailView{
		Id:           p.Id,
		Title:        p.Title,
		Description:  p.Description,
		Categories:   p.Categories,
		Availability: p.Availability,
	}
	if len(p.Brands) > 0 {
		detail.Brand = p.Brands[0]
	}
	if p.PriceInfo != nil {
		detail.Price = p.PriceInfo.Price
		detail.OriginalPrice = p.PriceInfo.OriginalPrice
		detail.Currency = p.PriceInfo.CurrencyCode
	}
	if len(p.Images) > 0 && p.Images[0] != nil {
		detail.Image = p.Images[0].Uri
	}
	if p.Rating != nil {
		detail.Rating = p.Rating.AverageRating
		detail.RatingCount = p.Rating.RatingCount
	}
	if p.ColorInfo != nil {
		detail.ColorFamilies = p.ColorInfo.ColorFamilies
	}
	return detail
}

func (m *ProductMapper) SearchResultsToCards(results []*retail.SearchResult) []dto.ProductCard {
	cards := make([]dto.ProductCard, 0, len(results))
	for _, r := range results {
		if r == nil || r.Product == nil {
			continue
		}
		cards = append(cards, m.ToCard(r.Product))
	}
	return cards
}

// PredictResultsToCards keeps only recommendation entries that actually carry
// a product payload.
func (m *ProductMapper) PredictResultsToCards(results []*retail.PredictResult) []dto.ProductCard {
	cards := make([]dto.ProductCard, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		if product, ok := r.DecodeProduct(); ok {
			cards = append(cards, m.ToCard(product))
		}
	}
	return cards
}

// FacetsToGroups marks each option as selected when it is part of the current
// filter selection so templates can re-check the boxes.
func (m *ProductMapper) FacetsToGroups(facets []*retail.Facet, selection *facet.Selection) []dto.FacetGroup {
	groups := make([]dto.FacetGroup, 0, len(facets))
	for _, f := range facets {
		if f == nil || len(f.Values) == 0 {
			continue
		}
		group := dto.FacetGroup{Key: f.Key}
		for _, v := range f.Values {
			if v == nil || v.Value == "" {
				continue
			}
			group.Options = append(group.Options, dto.FacetOption{
				Value:    v.Value,
				Count:    v.Count,
				Selected: selection != nil && selection.Has(f.Key, v.Value),
			})
		}
		if len(group.Options) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
