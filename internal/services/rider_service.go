package services

import (
	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

// RiderStats is the summary panel on the rider dashboard. Earnings is the
// delivered order value, not a payout amount.
type RiderStats struct {
	ActiveOrders   int     `json:"active_orders"`
	TotalDelivered int     `json:"total_delivered"`
	Earnings       float64 `json:"earnings"`
}

type RiderService interface {
	CreateRider(rider *models.Rider) error
	GetRiderByPhone(phone string) (*models.Rider, error)
	GetAllRiders() ([]models.Rider, error)
	SetStatus(phone string, status models.RiderStatus) error
	GetActiveOrders(phone string) ([]models.Order, error)
	GetDeliveredOrders(phone string) ([]models.Order, error)
	GetStats(phone string) (*RiderStats, error)
}

type riderService struct {
	riderRepo repository.RiderRepository
	orderRepo repository.OrderRepository
}

func NewRiderService(riderRepo repository.RiderRepository, orderRepo repository.OrderRepository) RiderService {
	return &riderService{riderRepo: riderRepo, orderRepo: orderRepo}
}

func (s *riderService) CreateRider(rider *models.Rider) error {
	if rider.Status == "" {
		rider.Status = string(models.RiderOffline)
	}
	return s.riderRepo.Create(rider)
}

func (s *riderService) GetRiderByPhone(phone string) (*models.Rider, error) {
	return s.riderRepo.GetByPhone(phone)
}

func (s *riderService) GetAllRiders() ([]models.Rider, error) {
	return s.riderRepo.GetAll()
}

func (s *riderService) SetStatus(phone string, status models.RiderStatus) error {
	return s.riderRepo.UpdateStatus(phone, status)
}

func (s *riderService) GetActiveOrders(phone string) ([]models.Order, error) {
	return s.orderRepo.GetActiveByRider(phone)
}

func (s *riderService) GetDeliveredOrders(phone string) ([]models.Order, error) {
	return s.orderRepo.GetCompletedByRider(phone)
}

func (s *riderService) GetStats(phone string) (*RiderStats, error) {
	active, err := s.orderRepo.GetActiveByRider(phone)
	if err != nil {
		return nil, err
	}
	delivered, err := s.orderRepo.GetCompletedByRider(phone)
	if err != nil {
		return nil, err
	}

	stats := &RiderStats{
		ActiveOrders:   len(active),
		TotalDelivered: len(delivered),
	}
	for _, order := range delivered {
		stats.Earnings += order.TotalAmount
	}
	return stats, nil
}
