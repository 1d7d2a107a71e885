package services

import (
	"fmt"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/pkg/notify"
)

// NotificationService sends customer-facing texts. Failures are for the
// caller to log; no workflow depends on a delivered message.
type NotificationService interface {
	OrderPlaced(order *models.Order) error
	OrderOutForDelivery(order *models.Order) error
	OrderDelivered(order *models.Order) error
	PlanExpiryWarning(user *models.User, daysLeft int) error
}

type notificationService struct {
	client *notify.Client
}

func NewNotificationService(client *notify.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) OrderPlaced(order *models.Order) error {
	message := fmt.Sprintf("🍱 Order %s placed! Total ₹%.0f. We'll text you when it's on the way.", order.OrderNumber, order.TotalAmount)
	return s.client.SendMessage(order.CustomerPhone, message)
}

func (s *notificationService) OrderOutForDelivery(order *models.Order) error {
	message := fmt.Sprintf("🛵 Order %s is out for delivery!", order.OrderNumber)
	return s.client.SendMessage(order.CustomerPhone, message)
}

func (s *notificationService) OrderDelivered(order *models.Order) error {
	message := fmt.Sprintf("✅ Order %s delivered. Enjoy your meal!", order.OrderNumber)
	return s.client.SendMessage(order.CustomerPhone, message)
}

func (s *notificationService) PlanExpiryWarning(user *models.User, daysLeft int) error {
	message := fmt.Sprintf("⏳ Your %s plan expires in %d days. Renew to keep your meals coming.", user.ActivePlan, daysLeft)
	return s.client.SendMessage(user.Phone, message)
}
