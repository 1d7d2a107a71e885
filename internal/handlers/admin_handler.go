package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
	"github.com/RahulBiswas1704/bowlit-app/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orderService    services.OrderService
	menuService     services.MenuService
	riderService    services.RiderService
	checkoutService services.CheckoutService
}

func NewAdminHandler(
	orderService services.OrderService,
	menuService services.MenuService,
	riderService services.RiderService,
	checkoutService services.CheckoutService,
) *AdminHandler {
	return &AdminHandler{
		orderService:    orderService,
		menuService:     menuService,
		riderService:    riderService,
		checkoutService: checkoutService,
	}
}

// Orders

func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	riders, err := h.riderService.GetAllRiders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pending := 0
	var revenue float64
	for _, order := range orders {
		if order.Status != string(models.OrderCompleted) {
			pending++
		}
		revenue += order.TotalAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"riders": riders,
		"stats": gin.H{
			"total_orders":  len(orders),
			"pending":       pending,
			"revenue":       revenue,
			"active_riders": len(riders),
		},
	})
}

func (h *AdminHandler) StartCooking(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.StartCooking(c.Request.Context(), orderID)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *AdminHandler) AssignRider(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		RiderPhone string `json:"rider_phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.AssignRider(c.Request.Context(), orderID, req.RiderPhone)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *AdminHandler) UnassignRider(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.UnassignRider(c.Request.Context(), orderID)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *AdminHandler) ForceComplete(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.ForceComplete(c.Request.Context(), orderID)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Menu management

func (h *AdminHandler) GetMenuItems(c *gin.Context) {
	items, err := h.menuService.GetAllMenuItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

func (h *AdminHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.menuService.CreateMenuItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

func (h *AdminHandler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	item.ID = uint(id)

	if err := h.menuService.UpdateMenuItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

func (h *AdminHandler) ToggleMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	item, err := h.menuService.ToggleAvailability(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	if err := h.menuService.DeleteMenuItem(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Riders

func (h *AdminHandler) GetRiders(c *gin.Context) {
	riders, err := h.riderService.GetAllRiders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"riders": riders})
}

func (h *AdminHandler) CreateRider(c *gin.Context) {
	var rider models.Rider
	if err := c.ShouldBindJSON(&rider); err != nil || rider.Name == "" || rider.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.riderService.CreateRider(&rider); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rider": rider})
}

// Checkout sagas

func (h *AdminHandler) GetSagas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sagas": h.checkoutService.ListSagaExecutions()})
}

func (h *AdminHandler) GetSaga(c *gin.Context) {
	execution, err := h.checkoutService.GetSagaExecution(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saga": execution})
}

func (h *AdminHandler) orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, repository.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return uint(id), true
}
