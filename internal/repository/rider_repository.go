package repository

import (
	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"gorm.io/gorm"
)

type RiderRepository interface {
	Create(rider *models.Rider) error
	GetByPhone(phone string) (*models.Rider, error)
	GetAll() ([]models.Rider, error)
	UpdateStatus(phone string, status models.RiderStatus) error
	Delete(id uint) error
}

type riderRepository struct {
	db *gorm.DB
}

func NewRiderRepository(db *gorm.DB) RiderRepository {
	return &riderRepository{db: db}
}

func (r *riderRepository) Create(rider *models.Rider) error {
	return r.db.Create(rider).Error
}

func (r *riderRepository) GetByPhone(phone string) (*models.Rider, error) {
	var rider models.Rider
	err := r.db.Where("phone = ?", phone).First(&rider).Error
	if err != nil {
		return nil, err
	}
	return &rider, nil
}

func (r *riderRepository) GetAll() ([]models.Rider, error) {
	var riders []models.Rider
	err := r.db.Find(&riders).Error
	return riders, err
}

func (r *riderRepository) UpdateStatus(phone string, status models.RiderStatus) error {
	return r.db.Model(&models.Rider{}).Where("phone = ?", phone).Update("status", string(status)).Error
}

func (r *riderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Rider{}, id).Error
}
