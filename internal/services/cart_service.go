package services

import (
	"context"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
)

// CartStore is the persistence boundary for carts. The redis cache client
// implements it in production; tests use an in-memory map.
type CartStore interface {
	GetCart(ctx context.Context, userID uint) (*models.Cart, error)
	SetCart(ctx context.Context, userID uint, cart *models.Cart, ttl time.Duration) error
	DeleteCart(ctx context.Context, userID uint) error
}

type CartService interface {
	GetCart(ctx context.Context, userID uint) (*models.Cart, error)
	AddItem(ctx context.Context, userID uint, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uint, itemID string, delta int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uint, itemID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uint) error
}

type cartService struct {
	store CartStore
	ttl   time.Duration
}

func NewCartService(store CartStore, ttl time.Duration) CartService {
	return &cartService{store: store, ttl: ttl}
}

func (s *cartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.store.GetCart(ctx, userID)
}

// AddItem merges by item id: an existing line gains the added quantity, a new
// line is appended. Every mutation writes the whole cart back.
func (s *cartService) AddItem(ctx context.Context, userID uint, item models.CartItem) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ID == item.ID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.store.SetCart(ctx, userID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity applies a signed delta to a line. The line disappears when
// its quantity drops to zero or below.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uint, itemID string, delta int) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}
		cart.Items[i].Quantity += delta
		if cart.Items[i].Quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
		break
	}

	if err := s.store.SetCart(ctx, userID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uint, itemID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}

	if err := s.store.SetCart(ctx, userID, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uint) error {
	return s.store.DeleteCart(ctx, userID)
}
