package repository

import (
	"errors"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a lifecycle update loses the optimistic
// concurrency race: another writer bumped the order's version first.
var ErrVersionConflict = errors.New("order was modified concurrently")

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetActiveByRider(riderPhone string) ([]models.Order, error)
	GetCompletedByRider(riderPhone string) ([]models.Order, error)
	UpdateStatus(id uint, version int64, status models.OrderStatus) error
	UpdateRider(id uint, version int64, riderPhone *string, status models.OrderStatus) error
	ForceStatus(id uint, status models.OrderStatus) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetActiveByRider(riderPhone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("rider_phone = ? AND status != ?", riderPhone, string(models.OrderCompleted)).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetCompletedByRider(riderPhone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("rider_phone = ? AND status = ?", riderPhone, string(models.OrderCompleted)).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, version int64, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"status":  string(status),
			"version": version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *orderRepository) UpdateRider(id uint, version int64, riderPhone *string, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"rider_phone": riderPhone,
			"status":      string(status),
			"version":     version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *orderRepository) ForceStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  string(status),
			"version": gorm.Expr("version + 1"),
		}).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}
