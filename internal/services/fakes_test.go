package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
)

// In-memory fakes for the repository and store interfaces, shared by the
// service tests in this package.

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[uint]*models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[uint]*models.Cart)}
}

func (s *fakeCartStore) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return &models.Cart{Items: []models.CartItem{}}, nil
	}
	copied := &models.Cart{Items: append([]models.CartItem(nil), cart.Items...)}
	return copied, nil
}

func (s *fakeCartStore) SetCart(ctx context.Context, userID uint, cart *models.Cart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = &models.Cart{Items: append([]models.CartItem(nil), cart.Items...)}
	return nil
}

func (s *fakeCartStore) DeleteCart(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

type walletCall struct {
	userID    uint
	amount    float64
	reference string
}

type fakeWalletService struct {
	balances  map[uint]float64
	failDebit bool
	debits    []walletCall
	refunds   []walletCall
}

func newFakeWalletService() *fakeWalletService {
	return &fakeWalletService{balances: make(map[uint]float64)}
}

func (s *fakeWalletService) GetBalance(userID uint) (float64, error) {
	return s.balances[userID], nil
}

func (s *fakeWalletService) TopUp(userID uint, amount float64) (float64, error) {
	s.balances[userID] += amount
	return s.balances[userID], nil
}

func (s *fakeWalletService) Debit(userID uint, amount float64, reference string) error {
	if s.failDebit {
		return errors.New("debit failed")
	}
	if s.balances[userID] < amount {
		return repository.ErrInsufficientBalance
	}
	s.balances[userID] -= amount
	s.debits = append(s.debits, walletCall{userID: userID, amount: amount, reference: reference})
	return nil
}

func (s *fakeWalletService) Refund(userID uint, amount float64, reference string) error {
	s.balances[userID] += amount
	s.refunds = append(s.refunds, walletCall{userID: userID, amount: amount, reference: reference})
	return nil
}

func (s *fakeWalletService) GetTransactions(userID uint) ([]models.WalletTransaction, error) {
	return nil, nil
}

type fakeWalletRepo struct {
	balances map[uint]float64
	txns     []models.WalletTransaction
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{balances: make(map[uint]float64)}
}

func (r *fakeWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	return &models.Wallet{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *fakeWalletRepo) TopUp(userID uint, amount float64) error {
	r.balances[userID] += amount
	return nil
}

func (r *fakeWalletRepo) Debit(userID uint, amount float64) error {
	if r.balances[userID] < amount {
		return repository.ErrInsufficientBalance
	}
	r.balances[userID] -= amount
	return nil
}

func (r *fakeWalletRepo) Credit(userID uint, amount float64) error {
	r.balances[userID] += amount
	return nil
}

func (r *fakeWalletRepo) CreateTransaction(txn *models.WalletTransaction) error {
	txn.ID = uint(len(r.txns) + 1)
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeWalletRepo) GetTransactions(userID uint) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	for _, txn := range r.txns {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

type fakeUserRepo struct {
	users      map[uint]*models.User
	failUpdate bool
	updates    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	for _, user := range r.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if r.failUpdate {
		return errors.New("update failed")
	}
	r.updates++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) GetWithPlansExpiringBefore(deadline time.Time) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		if user.ActivePlan != "" && user.PlanExpiry != nil && user.PlanExpiry.Before(deadline) {
			users = append(users, *user)
		}
	}
	return users, nil
}

type fakeOrderRepo struct {
	orders       map[uint]*models.Order
	nextID       uint
	failCreate   bool
	conflictOnce bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	order.ID = r.nextID
	r.nextID++
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order not found: %d", id)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetActiveByRider(riderPhone string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if order.RiderPhone != nil && *order.RiderPhone == riderPhone && order.Status != string(models.OrderCompleted) {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetCompletedByRider(riderPhone string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if order.RiderPhone != nil && *order.RiderPhone == riderPhone && order.Status == string(models.OrderCompleted) {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uint, version int64, status models.OrderStatus) error {
	if r.conflictOnce {
		r.conflictOnce = false
		return repository.ErrVersionConflict
	}
	order, ok := r.orders[id]
	if !ok || order.Version != version {
		return repository.ErrVersionConflict
	}
	order.Status = string(status)
	order.Version++
	return nil
}

func (r *fakeOrderRepo) UpdateRider(id uint, version int64, riderPhone *string, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok || order.Version != version {
		return repository.ErrVersionConflict
	}
	order.RiderPhone = riderPhone
	order.Status = string(status)
	order.Version++
	return nil
}

func (r *fakeOrderRepo) ForceStatus(id uint, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order not found: %d", id)
	}
	order.Status = string(status)
	order.Version++
	return nil
}

func (r *fakeOrderRepo) Delete(id uint) error {
	delete(r.orders, id)
	return nil
}

type fakeRiderRepo struct {
	riders map[string]*models.Rider
}

func newFakeRiderRepo(riders ...*models.Rider) *fakeRiderRepo {
	repo := &fakeRiderRepo{riders: make(map[string]*models.Rider)}
	for _, rider := range riders {
		repo.riders[rider.Phone] = rider
	}
	return repo
}

func (r *fakeRiderRepo) Create(rider *models.Rider) error {
	if _, exists := r.riders[rider.Phone]; exists {
		return errors.New("rider already exists")
	}
	r.riders[rider.Phone] = rider
	return nil
}

func (r *fakeRiderRepo) GetByPhone(phone string) (*models.Rider, error) {
	rider, ok := r.riders[phone]
	if !ok {
		return nil, errors.New("rider not found")
	}
	return rider, nil
}

func (r *fakeRiderRepo) GetAll() ([]models.Rider, error) {
	var riders []models.Rider
	for _, rider := range r.riders {
		riders = append(riders, *rider)
	}
	return riders, nil
}

func (r *fakeRiderRepo) UpdateStatus(phone string, status models.RiderStatus) error {
	rider, ok := r.riders[phone]
	if !ok {
		return errors.New("rider not found")
	}
	rider.Status = string(status)
	return nil
}

func (r *fakeRiderRepo) Delete(id uint) error { return nil }

type fakePublisher struct {
	events []OrderEvent
}

func (p *fakePublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fakeNotifier struct {
	placed    []string
	delivery  []string
	delivered []string
	warnings  []uint
}

func (n *fakeNotifier) OrderPlaced(order *models.Order) error {
	n.placed = append(n.placed, order.OrderNumber)
	return nil
}

func (n *fakeNotifier) OrderOutForDelivery(order *models.Order) error {
	n.delivery = append(n.delivery, order.OrderNumber)
	return nil
}

func (n *fakeNotifier) OrderDelivered(order *models.Order) error {
	n.delivered = append(n.delivered, order.OrderNumber)
	return nil
}

func (n *fakeNotifier) PlanExpiryWarning(user *models.User, daysLeft int) error {
	n.warnings = append(n.warnings, user.ID)
	return nil
}
