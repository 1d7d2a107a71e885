package services

import (
	"context"
	"testing"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	store    *fakeCartStore
	wallet   *fakeWalletService
	users    *fakeUserRepo
	orders   *fakeOrderRepo
	events   *fakePublisher
	notifier *fakeNotifier
	service  CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		store:    newFakeCartStore(),
		wallet:   newFakeWalletService(),
		users:    newFakeUserRepo(),
		orders:   newFakeOrderRepo(),
		events:   &fakePublisher{},
		notifier: &fakeNotifier{},
	}
	cartService := NewCartService(f.store, time.Hour)
	f.service = NewCheckoutService(cartService, f.wallet, f.users, f.orders, f.events, f.notifier)

	f.users.Create(&models.User{ID: 1, Name: "Rahul", Email: "rahul@example.com", Phone: "9876500001"})
	return f
}

func (f *checkoutFixture) setCart(t *testing.T, items ...models.CartItem) {
	t.Helper()
	err := f.store.SetCart(context.Background(), 1, &models.Cart{Items: items}, time.Hour)
	require.NoError(t, err)
}

var checkoutInput = CheckoutInput{Name: "Rahul", Phone: "9876500001", Address: "221B Salt Lake, Kolkata"}

func TestCheckoutSuccess(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 3500
	f.setCart(t, models.CartItem{
		ID: "smart-mix-lunch-22", Name: "The Smart Mix", Price: 3500, Quantity: 1,
		ItemType: string(models.ItemSubscription), Timing: models.TimingLunch,
	})

	order, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.NoError(t, err)

	assert.Equal(t, 3500.0, order.TotalAmount)
	assert.Equal(t, string(models.OrderPending), order.Status)
	assert.Equal(t, 0.0, f.wallet.balances[1])
	assert.Len(t, f.wallet.debits, 1)

	user, _ := f.users.GetByID(1)
	assert.Equal(t, 22, user.Credits)
	assert.Equal(t, "The Smart Mix", user.ActivePlan)
	require.NotNil(t, user.PlanExpiry)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *user.PlanExpiry, time.Minute)

	// cart is cleared and the order snapshot is intact
	cart, _ := f.store.GetCart(context.Background(), 1)
	assert.True(t, cart.IsEmpty())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "The Smart Mix", order.Items[0].Name)
	assert.Equal(t, 3500.0, order.Items[0].TotalPrice)

	// address saved, event published, confirmation sent
	assert.Contains(t, user.AddressList(), checkoutInput.Address)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, OrderEventCreated, f.events.events[0].Event)
	assert.Len(t, f.notifier.placed, 1)
}

func TestCheckoutInsufficientBalance(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 100
	f.setCart(t, models.CartItem{ID: "red-plan", Name: "The Red Bowl", Price: 3080, Quantity: 1, ItemType: string(models.ItemSubscription)})

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	assert.ErrorIs(t, err, repository.ErrInsufficientBalance)

	// rejected before any debit was attempted
	assert.Empty(t, f.wallet.debits)
	assert.Equal(t, 100.0, f.wallet.balances[1])
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 5000

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutMissingDetails(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 5000
	f.setCart(t, models.CartItem{ID: "lassi", Name: "Sweet Lassi", Price: 60, Quantity: 1, ItemType: string(models.ItemAddon)})

	for _, input := range []CheckoutInput{
		{Phone: "9876500001", Address: "addr"},
		{Name: "Rahul", Address: "addr"},
		{Name: "Rahul", Phone: "9876500001"},
	} {
		_, err := f.service.Checkout(context.Background(), 1, input)
		assert.ErrorIs(t, err, ErrMissingDetails)
	}
	assert.Empty(t, f.wallet.debits)
}

func TestCheckoutCreditGrants(t *testing.T) {
	tests := []struct {
		name string
		item models.CartItem
		want int
	}{
		{
			name: "standard plan grants 22",
			item: models.CartItem{ID: "green", Name: "The Green Bowl", Price: 2420, Quantity: 1, ItemType: string(models.ItemSubscription), Timing: models.TimingLunch},
			want: 22,
		},
		{
			name: "trial pack grants 3",
			item: models.CartItem{ID: "trial-pack", Name: "3-Day Taster Pass", Price: 299, Quantity: 1, ItemType: string(models.ItemTrial)},
			want: 3,
		},
		{
			name: "combo timing grants 44",
			item: models.CartItem{ID: "smart-combo", Name: "The Smart Mix", Price: 5500, Quantity: 1, ItemType: string(models.ItemSubscription), Timing: models.TimingCombo},
			want: 44,
		},
		{
			name: "lunch plus dinner name grants 44",
			item: models.CartItem{ID: "ld", Name: "Lunch + Dinner Special Plan", Price: 6160, Quantity: 1, ItemType: string(models.ItemSubscription)},
			want: 44,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.wallet.balances[1] = 10000
			f.setCart(t, tt.item)

			_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
			require.NoError(t, err)

			user, _ := f.users.GetByID(1)
			assert.Equal(t, tt.want, user.Credits)
			assert.Equal(t, tt.item.Name, user.ActivePlan)
		})
	}
}

func TestCheckoutAddonOnlyNoCredits(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 200
	f.setCart(t,
		models.CartItem{ID: "chaas", Name: "Masala Chaas", Price: 30, Quantity: 2, ItemType: string(models.ItemAddon)},
		models.CartItem{ID: "lassi", Name: "Sweet Lassi", Price: 60, Quantity: 1, ItemType: string(models.ItemAddon)},
	)

	order, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.NoError(t, err)

	assert.Equal(t, 120.0, order.TotalAmount)
	user, _ := f.users.GetByID(1)
	assert.Equal(t, 0, user.Credits)
	assert.Empty(t, user.ActivePlan)
}

func TestCheckoutCompensatesOnOrderInsertFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 3500
	f.orders.failCreate = true
	f.setCart(t, models.CartItem{
		ID: "smart-mix", Name: "The Smart Mix", Price: 3500, Quantity: 1,
		ItemType: string(models.ItemSubscription), Timing: models.TimingLunch,
	})

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.Error(t, err)

	// the debit was unwound and the credit grant rolled back
	require.Len(t, f.wallet.refunds, 1)
	assert.Equal(t, 3500.0, f.wallet.balances[1])
	user, _ := f.users.GetByID(1)
	assert.Equal(t, 0, user.Credits)
	assert.Empty(t, user.ActivePlan)
	assert.Nil(t, user.PlanExpiry)

	// no order row, no event, cart untouched
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.events.events)
	cart, _ := f.store.GetCart(context.Background(), 1)
	assert.False(t, cart.IsEmpty())
}

func TestCheckoutCompensatesOnCreditGrantFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 3500
	f.users.failUpdate = true
	f.setCart(t, models.CartItem{
		ID: "smart-mix", Name: "The Smart Mix", Price: 3500, Quantity: 1,
		ItemType: string(models.ItemSubscription), Timing: models.TimingLunch,
	})

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.Error(t, err)

	// the debit did not survive the failed grant
	require.Len(t, f.wallet.refunds, 1)
	assert.Equal(t, 3500.0, f.wallet.balances[1])
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutSavedAddressesDeduplicated(t *testing.T) {
	f := newCheckoutFixture(t)
	user, _ := f.users.GetByID(1)
	user.SetAddressList([]string{checkoutInput.Address})

	f.wallet.balances[1] = 200
	f.setCart(t, models.CartItem{ID: "lassi", Name: "Sweet Lassi", Price: 60, Quantity: 1, ItemType: string(models.ItemAddon)})

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.NoError(t, err)

	user, _ = f.users.GetByID(1)
	assert.Equal(t, []string{checkoutInput.Address}, user.AddressList())
}

func TestSagaExecutionRecords(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 3500
	f.setCart(t, models.CartItem{
		ID: "smart-mix", Name: "The Smart Mix", Price: 3500, Quantity: 1,
		ItemType: string(models.ItemSubscription), Timing: models.TimingLunch,
	})

	order, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.NoError(t, err)

	executions := f.service.ListSagaExecutions()
	require.Len(t, executions, 1)
	execution := executions[0]
	assert.Equal(t, SagaCompleted, execution.Status)
	assert.Equal(t, order.OrderNumber, execution.OrderNumber)

	names := make([]string, 0, len(execution.Steps))
	for _, step := range execution.Steps {
		names = append(names, step.Name)
		assert.Equal(t, StepCompleted, step.Status)
	}
	assert.Equal(t, []string{"debit_wallet", "grant_credits", "create_order"}, names)

	fetched, err := f.service.GetSagaExecution(execution.ID)
	require.NoError(t, err)
	assert.Equal(t, execution.ID, fetched.ID)

	_, err = f.service.GetSagaExecution("missing")
	assert.Error(t, err)
}

func TestSagaExecutionMarkedCompensated(t *testing.T) {
	f := newCheckoutFixture(t)
	f.wallet.balances[1] = 3500
	f.orders.failCreate = true
	f.setCart(t, models.CartItem{
		ID: "smart-mix", Name: "The Smart Mix", Price: 3500, Quantity: 1,
		ItemType: string(models.ItemSubscription), Timing: models.TimingLunch,
	})

	_, err := f.service.Checkout(context.Background(), 1, checkoutInput)
	require.Error(t, err)

	executions := f.service.ListSagaExecutions()
	require.Len(t, executions, 1)
	assert.Equal(t, SagaCompensated, executions[0].Status)

	last := executions[0].Steps[len(executions[0].Steps)-1]
	assert.Equal(t, "create_order", last.Name)
	assert.Equal(t, StepFailed, last.Status)
}

func TestCreditGrantFor(t *testing.T) {
	trial := &models.CartItem{Name: "3-Day Taster Pass", ItemType: string(models.ItemTrial)}
	assert.Equal(t, 3, CreditGrantFor(trial))

	combo := &models.CartItem{Name: "The Green Bowl", ItemType: string(models.ItemSubscription), Timing: models.TimingCombo}
	assert.Equal(t, 44, CreditGrantFor(combo))

	standard := &models.CartItem{Name: "The Red Bowl", ItemType: string(models.ItemSubscription), Timing: models.TimingDinner}
	assert.Equal(t, 22, CreditGrantFor(standard))
}
