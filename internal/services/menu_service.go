package services

import (
	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

type MenuService interface {
	GetAvailableMenuItems() ([]models.MenuItem, error)
	GetAllMenuItems() ([]models.MenuItem, error)
	CreateMenuItem(item *models.MenuItem) error
	UpdateMenuItem(item *models.MenuItem) error
	ToggleAvailability(id uint) (*models.MenuItem, error)
	DeleteMenuItem(id uint) error

	GetPlans() ([]models.Plan, error)
	GetPlanBySlug(slug string) (*models.Plan, error)
	GetWeeklyMenu() ([]models.WeeklyMenu, error)
}

type menuService struct {
	menuRepo repository.MenuRepository
}

func NewMenuService(menuRepo repository.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) GetAvailableMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAvailableMenuItems()
}

func (s *menuService) GetAllMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAllMenuItems()
}

func (s *menuService) CreateMenuItem(item *models.MenuItem) error {
	return s.menuRepo.CreateMenuItem(item)
}

func (s *menuService) UpdateMenuItem(item *models.MenuItem) error {
	return s.menuRepo.UpdateMenuItem(item)
}

func (s *menuService) ToggleAvailability(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.menuRepo.SetMenuItemAvailability(id, !item.IsAvailable); err != nil {
		return nil, err
	}
	item.IsAvailable = !item.IsAvailable
	return item, nil
}

func (s *menuService) DeleteMenuItem(id uint) error {
	return s.menuRepo.DeleteMenuItem(id)
}

func (s *menuService) GetPlans() ([]models.Plan, error) {
	return s.menuRepo.GetAllPlans()
}

func (s *menuService) GetPlanBySlug(slug string) (*models.Plan, error) {
	return s.menuRepo.GetPlanBySlug(slug)
}

func (s *menuService) GetWeeklyMenu() ([]models.WeeklyMenu, error) {
	return s.menuRepo.GetWeeklyMenu()
}
