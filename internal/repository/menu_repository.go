package repository

import (
	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	CreateMenuItem(item *models.MenuItem) error
	GetMenuItemByID(id uint) (*models.MenuItem, error)
	GetAllMenuItems() ([]models.MenuItem, error)
	GetAvailableMenuItems() ([]models.MenuItem, error)
	UpdateMenuItem(item *models.MenuItem) error
	SetMenuItemAvailability(id uint, available bool) error
	DeleteMenuItem(id uint) error

	GetAllPlans() ([]models.Plan, error)
	GetPlanBySlug(slug string) (*models.Plan, error)
	CreatePlan(plan *models.Plan) error

	GetWeeklyMenu() ([]models.WeeklyMenu, error)
	CreateWeeklyMenuEntry(entry *models.WeeklyMenu) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateMenuItem(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) GetMenuItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetAllMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *menuRepository) GetAvailableMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("is_available = ?", true).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *menuRepository) UpdateMenuItem(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuRepository) SetMenuItemAvailability(id uint, available bool) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("is_available", available).Error
}

func (r *menuRepository) DeleteMenuItem(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

func (r *menuRepository) GetAllPlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Order("base_rate ASC").Find(&plans).Error
	return plans, err
}

func (r *menuRepository) GetPlanBySlug(slug string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("slug = ?", slug).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *menuRepository) CreatePlan(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *menuRepository) GetWeeklyMenu() ([]models.WeeklyMenu, error) {
	var entries []models.WeeklyMenu
	err := r.db.Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *menuRepository) CreateWeeklyMenuEntry(entry *models.WeeklyMenu) error {
	return r.db.Create(entry).Error
}
