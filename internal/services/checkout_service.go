package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingDetails = errors.New("name, phone and address are required")
)

// Credit grants per purchased plan. A standard plan covers one meal a day
// for a month of working days, the combo covers two, the trial pack three
// meals total.
const (
	creditsStandardPlan = 22
	creditsTrialPack    = 3
	creditsComboPlan    = 44

	planValidity = 30 * 24 * time.Hour
)

type CheckoutInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*models.Order, error)
	GetSagaExecution(sagaID string) (*SagaExecution, error)
	ListSagaExecutions() []*SagaExecution
}

// Saga bookkeeping. Each checkout runs as an ordered list of steps with
// compensations executed in reverse when a later step fails, so a succeeded
// debit never survives a failed order insert.

type SagaStatus string

const (
	SagaInProgress  SagaStatus = "in_progress"
	SagaCompleted   SagaStatus = "completed"
	SagaCompensated SagaStatus = "compensated"
)

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

type SagaStep struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  error      `json:"-"`
}

type CompensationAction struct {
	Name   string
	Action func() error
}

type SagaExecution struct {
	ID            string               `json:"id"`
	OrderNumber   string               `json:"order_number"`
	UserID        uint                 `json:"user_id"`
	Status        SagaStatus           `json:"status"`
	Steps         []SagaStep           `json:"steps"`
	Compensations []CompensationAction `json:"-"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type checkoutService struct {
	cartService   CartService
	walletService WalletService
	userRepo      repository.UserRepository
	orderRepo     repository.OrderRepository
	publisher     OrderEventPublisher
	notifier      NotificationService

	mu    sync.RWMutex
	sagas map[string]*SagaExecution
}

func NewCheckoutService(
	cartService CartService,
	walletService WalletService,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	publisher OrderEventPublisher,
	notifier NotificationService,
) CheckoutService {
	return &checkoutService{
		cartService:   cartService,
		walletService: walletService,
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		publisher:     publisher,
		notifier:      notifier,
		sagas:         make(map[string]*SagaExecution),
	}
}

// Checkout runs the payment and order creation workflow:
//  1. validate the cart and delivery details before touching anything
//  2. reject when the wallet cannot cover the total, without debiting
//  3. debit the wallet
//  4. grant plan credits when the cart holds a subscription or trial line
//  5. insert the order with a snapshot of the cart
//
// A failure after the debit unwinds every earlier step, ending with a refund.
// Address bookkeeping, cart clearing and notifications happen only after the
// saga has committed and are best effort.
func (s *checkoutService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*models.Order, error) {
	if input.Name == "" || input.Phone == "" || input.Address == "" {
		return nil, ErrMissingDetails
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total := cart.Total()

	balance, err := s.walletService.GetBalance(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if balance < total {
		return nil, repository.ErrInsufficientBalance
	}

	orderNumber := generateOrderNumber()
	execution := s.newExecution(userID, orderNumber)

	// Step 1: debit the wallet
	if err := s.walletService.Debit(userID, total, orderNumber); err != nil {
		s.failStep(execution, "debit_wallet", err)
		return nil, err
	}
	s.completeStep(execution, "debit_wallet")
	execution.Compensations = append(execution.Compensations, CompensationAction{
		Name: "refund_wallet",
		Action: func() error {
			return s.walletService.Refund(userID, total, orderNumber)
		},
	})

	// Step 2: grant subscription credits
	if sub := cart.SubscriptionItem(); sub != nil {
		grant := CreditGrantFor(sub)
		prevCredits := user.Credits
		prevPlan := user.ActivePlan
		prevExpiry := user.PlanExpiry

		expiry := time.Now().Add(planValidity)
		user.Credits += grant
		user.ActivePlan = sub.Name
		user.PlanExpiry = &expiry

		if err := s.userRepo.Update(user); err != nil {
			s.failStep(execution, "grant_credits", err)
			s.compensate(execution)
			return nil, fmt.Errorf("failed to grant plan credits: %w", err)
		}
		s.completeStep(execution, "grant_credits")
		execution.Compensations = append(execution.Compensations, CompensationAction{
			Name: "revoke_credits",
			Action: func() error {
				user.Credits = prevCredits
				user.ActivePlan = prevPlan
				user.PlanExpiry = prevExpiry
				return s.userRepo.Update(user)
			},
		})
	}

	// Step 3: insert the order with a snapshot of the cart
	order := &models.Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		CustomerName:  input.Name,
		CustomerPhone: input.Phone,
		Address:       input.Address,
		Items:         snapshotItems(cart),
		TotalAmount:   total,
		Status:        string(models.OrderPending),
		Version:       1,
	}
	if err := s.orderRepo.Create(order); err != nil {
		s.failStep(execution, "create_order", err)
		s.compensate(execution)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.completeStep(execution, "create_order")

	execution.Status = SagaCompleted
	s.updateExecution(execution)

	// Post-commit bookkeeping, never unwound
	user.AddAddress(input.Address)
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("Warning: failed to save address for user %d: %v", userID, err)
	}
	if err := s.cartService.ClearCart(ctx, userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %d: %v", userID, err)
	}
	if err := s.publisher.PublishOrderEvent(ctx, OrderEvent{
		Event:   OrderEventCreated,
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		log.Printf("Warning: failed to publish order event: %v", err)
	}
	if err := s.notifier.OrderPlaced(order); err != nil {
		log.Printf("Warning: failed to send order confirmation: %v", err)
	}

	return order, nil
}

// CreditGrantFor maps a subscription line to its credit grant: trial packs
// get 3, lunch+dinner combos 44, every other plan 22.
func CreditGrantFor(item *models.CartItem) int {
	if item.ItemType == string(models.ItemTrial) {
		return creditsTrialPack
	}
	if item.Timing == models.TimingCombo || strings.Contains(item.Name, "Lunch + Dinner") {
		return creditsComboPlan
	}
	return creditsStandardPlan
}

func snapshotItems(cart *models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ItemID:     line.ID,
			Name:       line.Name,
			UnitPrice:  line.Price,
			Quantity:   line.Quantity,
			TotalPrice: line.Price * float64(line.Quantity),
			ItemType:   line.ItemType,
			Timing:     line.Timing,
		})
	}
	return items
}

func generateOrderNumber() string {
	return "BWL-" + strings.ToUpper(uuid.New().String()[:8])
}

func (s *checkoutService) newExecution(userID uint, orderNumber string) *SagaExecution {
	now := time.Now()
	execution := &SagaExecution{
		ID:          uuid.New().String(),
		OrderNumber: orderNumber,
		UserID:      userID,
		Status:      SagaInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.updateExecution(execution)
	return execution
}

func (s *checkoutService) completeStep(execution *SagaExecution, name string) {
	execution.Steps = append(execution.Steps, SagaStep{Name: name, Status: StepCompleted})
	s.updateExecution(execution)
}

func (s *checkoutService) failStep(execution *SagaExecution, name string, err error) {
	execution.Steps = append(execution.Steps, SagaStep{Name: name, Status: StepFailed, Error: err})
	s.updateExecution(execution)
}

func (s *checkoutService) compensate(execution *SagaExecution) {
	execution.Status = SagaCompensated
	for i := len(execution.Compensations) - 1; i >= 0; i-- {
		compensation := execution.Compensations[i]
		if err := compensation.Action(); err != nil {
			log.Printf("Compensation %s failed for saga %s: %v", compensation.Name, execution.ID, err)
		}
	}
	s.updateExecution(execution)
}

func (s *checkoutService) updateExecution(execution *SagaExecution) {
	execution.UpdatedAt = time.Now()
	s.mu.Lock()
	s.sagas[execution.ID] = execution
	s.mu.Unlock()
}

// ListSagaExecutions returns every recorded checkout run, newest first.
func (s *checkoutService) ListSagaExecutions() []*SagaExecution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	executions := make([]*SagaExecution, 0, len(s.sagas))
	for _, execution := range s.sagas {
		executions = append(executions, execution)
	}
	sort.Slice(executions, func(i, j int) bool {
		return executions[i].CreatedAt.After(executions[j].CreatedAt)
	})
	return executions
}

func (s *checkoutService) GetSagaExecution(sagaID string) (*SagaExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	execution, exists := s.sagas[sagaID]
	if !exists {
		return nil, fmt.Errorf("saga execution not found: %s", sagaID)
	}
	return execution, nil
}
