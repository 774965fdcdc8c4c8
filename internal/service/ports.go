package service

import (
	"context"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/events"
)

// Catalog is the read side of the catalog cache.
type Catalog interface {
	Product(id string) (domain.Product, bool)
	Offer(id string) (domain.Offer, bool)
}

type CouponFinder interface {
	FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error
}
