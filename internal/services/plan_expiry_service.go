package services

import (
	"context"
	"log"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

const expiryWarningWindow = 3 * 24 * time.Hour

// PlanExpiryService sweeps subscription plans: expired plans lose their
// credits, plans about to lapse trigger a warning text.
type PlanExpiryService interface {
	ProcessExpiredPlans(now time.Time) error
	ProcessExpiryWarnings(now time.Time) error
	Run(ctx context.Context, interval time.Duration)
}

type planExpiryService struct {
	userRepo repository.UserRepository
	notifier NotificationService
}

func NewPlanExpiryService(userRepo repository.UserRepository, notifier NotificationService) PlanExpiryService {
	return &planExpiryService{userRepo: userRepo, notifier: notifier}
}

func (s *planExpiryService) ProcessExpiredPlans(now time.Time) error {
	users, err := s.userRepo.GetWithPlansExpiringBefore(now)
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		user.Credits = 0
		user.ActivePlan = ""
		user.PlanExpiry = nil
		if err := s.userRepo.Update(user); err != nil {
			log.Printf("Warning: failed to expire plan for user %d: %v", user.ID, err)
		}
	}
	return nil
}

func (s *planExpiryService) ProcessExpiryWarnings(now time.Time) error {
	users, err := s.userRepo.GetWithPlansExpiringBefore(now.Add(expiryWarningWindow))
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		if user.PlanExpiry == nil || !user.PlanExpiry.After(now) {
			// already expired, the expiry sweep handles it
			continue
		}
		daysLeft := int(user.PlanExpiry.Sub(now).Hours()/24) + 1
		if err := s.notifier.PlanExpiryWarning(user, daysLeft); err != nil {
			log.Printf("Warning: failed to send expiry warning to user %d: %v", user.ID, err)
		}
	}
	return nil
}

// Run sweeps on an interval until ctx is cancelled.
func (s *planExpiryService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if err := s.ProcessExpiryWarnings(now); err != nil {
				log.Printf("Warning: expiry warning sweep failed: %v", err)
			}
			if err := s.ProcessExpiredPlans(now); err != nil {
				log.Printf("Warning: plan expiry sweep failed: %v", err)
			}
		}
	}
}
