package service

import (
	"context"
	"log"
	"time"

	"retail-storefront/internal/constant"
	"retail-storefront/internal/dto"
	"retail-storefront/internal/entity"
	"retail-storefront/pkg/retail"

	"github.com/patrickmn/go-cache"
)

// ICartService runs the cart lifecycle on top of the session's typed cart.
// Mutations happen on the session entity; this layer adds catalog enrichment
// and the behavioral events each action emits.
type ICartService interface {
	View(ctx context.Context, session *entity.Session) *dto.CartView
	Add(ctx context.Context, session *entity.Session, req *dto.AddToCartRequest)
	Remove(session *entity.Session, productId string)
	Checkout(ctx context.Context, session *entity.Session) *entity.Order
	Confirmation(ctx context.Context, session *entity.Session) *dto.OrderView
}

type cartService struct {
	client *retail.Client
	events IEventService

	// Title/image lookups per product id. Short TTL: the cart page is the
	// only consumer and prices come from the cart lines, not from here.
	metadata *cache.Cache
}

type productMetadata struct {
	Title string
	Image string
}

func NewCartService(client *retail.Client, events IEventService) ICartService {
	return &cartService{
		client:   client,
		events:   events,
		metadata: cache.New(10*time.Minute, 30*time.Minute),
	}
}

func (s *cartService) Add(ctx context.Context, session *entity.Session, req *dto.AddToCartRequest) {
	session.AddItem(req.ProductId, req.Price, req.Quantity)

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	s.events.Write(ctx, &retail.UserEvent{
		EventType: constant.EventTypeAddToCart,
		VisitorId: session.VisitorId,
		ProductDetails: []*retail.ProductDetail{
			{Product: &retail.Product{Id: req.ProductId}, Quantity: quantity},
		},
	})
}

func (s *cartService) Remove(session *entity.Session, productId string) {
	session.RemoveItem(productId)
}

func (s *cartService) View(ctx context.Context, session *entity.Session) *dto.CartView {
	view := &dto.CartView{
		Items: make([]dto.CartItemView, 0, len(session.Cart)),
		Total: session.CartTotal,
	}
	for _, item := range session.Cart {
		view.Items = append(view.Items, s.enrich(ctx, item))
	}
	return view
}

func (s *cartService) Checkout(ctx context.Context, session *entity.Session) *entity.Order {
	order := session.Checkout()

	details := make([]*retail.ProductDetail, 0, len(order.Items))
	for _, item := range order.Items {
		details = append(details, &retail.ProductDetail{
			Product:  &retail.Product{Id: item.ProductId},
			Quantity: item.Quantity,
		})
	}
	s.events.Write(ctx, &retail.UserEvent{
		EventType:      constant.EventTypePurchaseComplete,
		VisitorId:      session.VisitorId,
		ProductDetails: details,
		PurchaseTransaction: &retail.PurchaseTransaction{
			Id:           order.TransactionId,
			Revenue:      order.Total,
			CurrencyCode: constant.CurrencyCode,
		},
	})

	log.Printf("[Cart] Checkout complete, transaction %s total %.2f", order.TransactionId, order.Total)
	return order
}

// Confirmation hands out the last order exactly once. A second visit to the
// confirmation page gets nil and belongs back on the home page.
func (s *cartService) Confirmation(ctx context.Context, session *entity.Session) *dto.OrderView {
	order := session.ConsumeLastOrder()
	if order == nil {
		return nil
	}

	view := &dto.OrderView{
		TransactionId: order.TransactionId,
		Total:         order.Total,
		Items:         make([]dto.CartItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, s.enrich(ctx, item))
	}
	return view
}

// enrich attaches title and image to one cart line. A failed lookup degrades
// to a placeholder entry; the line and its math always render.
func (s *cartService) enrich(ctx context.Context, item entity.CartItem) dto.CartItemView {
	view := dto.CartItemView{
		ProductId: item.ProductId,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
		LineTotal: item.UnitPrice * float64(item.Quantity),
	}

	meta, ok := s.lookup(ctx, item.ProductId)
	if !ok {
		view.Title = "Unavailable product"
		view.Unavailable = true
		return view
	}
	view.Title = meta.Title
	view.Image = meta.Image
	return view
}

func (s *cartService) lookup(ctx context.Context, productId string) (productMetadata, bool) {
	if cached, found := s.metadata.Get(productId); found {
		return cached.(productMetadata), true
	}

	product, err := s.client.GetProduct(ctx, productId)
	if err != nil {
		log.Printf("[Cart] WARN - metadata lookup for %s failed: %v", productId, err)
		return productMetadata{}, false
	}

	meta := productMetadata{Title: product.Title}
	if len(product.Images) > 0 && product.Images[0] != nil {
		meta.Image = product.Images[0].Uri
	}
	s.metadata.Set(productId, meta, cache.DefaultExpiration)
	return meta, true
}
