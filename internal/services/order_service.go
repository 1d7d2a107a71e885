package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

var (
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrNotAssignedRider  = errors.New("order is not assigned to this rider")
)

type OrderService interface {
	GetOrderByID(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrdersByUser(userID uint) ([]models.Order, error)

	StartCooking(ctx context.Context, orderID uint) (*models.Order, error)
	AssignRider(ctx context.Context, orderID uint, riderPhone string) (*models.Order, error)
	UnassignRider(ctx context.Context, orderID uint) (*models.Order, error)
	MarkDelivered(ctx context.Context, orderID uint, riderPhone string) (*models.Order, error)
	ForceComplete(ctx context.Context, orderID uint) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	riderRepo repository.RiderRepository
	publisher OrderEventPublisher
	notifier  NotificationService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	riderRepo repository.RiderRepository,
	publisher OrderEventPublisher,
	notifier NotificationService,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		riderRepo: riderRepo,
		publisher: publisher,
		notifier:  notifier,
	}
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// StartCooking accepts a pending order into the kitchen.
func (s *orderService) StartCooking(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !models.ValidStatusTransition(models.OrderStatus(order.Status), models.OrderCooking) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderCooking)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, order.Version, models.OrderCooking); err != nil {
		return nil, err
	}
	return s.finishMutation(ctx, order.ID, models.OrderCooking)
}

// AssignRider puts a cooking order out for delivery with the chosen rider.
// The rider must exist; a pending order is accepted into Cooking first so
// the guard still holds.
func (s *orderService) AssignRider(ctx context.Context, orderID uint, riderPhone string) (*models.Order, error) {
	rider, err := s.riderRepo.GetByPhone(riderPhone)
	if err != nil {
		return nil, fmt.Errorf("rider not found: %w", err)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if models.OrderStatus(order.Status) == models.OrderPending {
		if err := s.orderRepo.UpdateStatus(order.ID, order.Version, models.OrderCooking); err != nil {
			return nil, err
		}
		order.Status = string(models.OrderCooking)
		order.Version++
	}

	if !models.ValidStatusTransition(models.OrderStatus(order.Status), models.OrderOutForDelivery) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderOutForDelivery)
	}

	// rider_phone and status move together in one update
	if err := s.orderRepo.UpdateRider(order.ID, order.Version, &rider.Phone, models.OrderOutForDelivery); err != nil {
		return nil, err
	}
	return s.finishMutation(ctx, order.ID, models.OrderOutForDelivery)
}

// UnassignRider pulls the order back into the kitchen and clears the rider.
func (s *orderService) UnassignRider(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !models.ValidStatusTransition(models.OrderStatus(order.Status), models.OrderCooking) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderCooking)
	}

	if err := s.orderRepo.UpdateRider(order.ID, order.Version, nil, models.OrderCooking); err != nil {
		return nil, err
	}
	return s.finishMutation(ctx, order.ID, models.OrderCooking)
}

// MarkDelivered is the only status write available to riders, and only for
// orders assigned to them.
func (s *orderService) MarkDelivered(ctx context.Context, orderID uint, riderPhone string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.RiderPhone == nil || *order.RiderPhone != riderPhone {
		return nil, ErrNotAssignedRider
	}

	if !models.ValidStatusTransition(models.OrderStatus(order.Status), models.OrderCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, models.OrderCompleted)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, order.Version, models.OrderCompleted); err != nil {
		return nil, err
	}
	return s.finishMutation(ctx, order.ID, models.OrderCompleted)
}

// ForceComplete is the admin escape hatch: it sets Completed from any state,
// bypassing the transition guard and the version check.
func (s *orderService) ForceComplete(ctx context.Context, orderID uint) (*models.Order, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.ForceStatus(orderID, models.OrderCompleted); err != nil {
		return nil, err
	}
	return s.finishMutation(ctx, orderID, models.OrderCompleted)
}

func (s *orderService) finishMutation(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderEvent(ctx, OrderEvent{
		Event:   OrderEventStatusChanged,
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		log.Printf("Warning: failed to publish order event: %v", err)
	}

	switch status {
	case models.OrderOutForDelivery:
		if err := s.notifier.OrderOutForDelivery(order); err != nil {
			log.Printf("Warning: failed to send delivery notification: %v", err)
		}
	case models.OrderCompleted:
		if err := s.notifier.OrderDelivered(order); err != nil {
			log.Printf("Warning: failed to send delivered notification: %v", err)
		}
	}

	return order, nil
}
