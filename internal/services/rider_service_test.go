package services

import (
	"fmt"
	"testing"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRiderDefaultsToOffline(t *testing.T) {
	service := NewRiderService(newFakeRiderRepo(), newFakeOrderRepo())

	rider := &models.Rider{Name: "Arjun", Phone: "9876511111"}
	require.NoError(t, service.CreateRider(rider))
	assert.Equal(t, string(models.RiderOffline), rider.Status)
}

func TestSetRiderStatus(t *testing.T) {
	riders := newFakeRiderRepo(&models.Rider{ID: 1, Name: "Arjun", Phone: "9876511111", Status: string(models.RiderOffline)})
	service := NewRiderService(riders, newFakeOrderRepo())

	require.NoError(t, service.SetStatus("9876511111", models.RiderOnline))

	rider, err := service.GetRiderByPhone("9876511111")
	require.NoError(t, err)
	assert.Equal(t, string(models.RiderOnline), rider.Status)

	assert.Error(t, service.SetStatus("0000000000", models.RiderOnline))
}

func TestRiderStats(t *testing.T) {
	phone := "9876511111"
	riders := newFakeRiderRepo(&models.Rider{ID: 1, Name: "Arjun", Phone: phone})
	orders := newFakeOrderRepo()
	service := NewRiderService(riders, orders)

	seeded := 0
	seed := func(status models.OrderStatus, amount float64) {
		seeded++
		orders.Create(&models.Order{
			OrderNumber: fmt.Sprintf("BWL-TEST%04d", seeded),
			UserID:      1, CustomerName: "Rahul", Address: "addr",
			TotalAmount: amount, Status: string(status), RiderPhone: &phone, Version: 1,
		})
	}
	seed(models.OrderOutForDelivery, 500)
	seed(models.OrderCompleted, 3500)
	seed(models.OrderCompleted, 299)

	stats, err := service.GetStats(phone)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ActiveOrders)
	assert.Equal(t, 2, stats.TotalDelivered)
	assert.Equal(t, 3799.0, stats.Earnings)
}
