package handlers

import (
	"errors"
	"net/http"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
	"github.com/RahulBiswas1704/bowlit-app/internal/services"

	"github.com/gin-gonic/gin"
)

type RiderHandler struct {
	riderService services.RiderService
	orderService services.OrderService
	userService  services.UserService
}

func NewRiderHandler(
	riderService services.RiderService,
	orderService services.OrderService,
	userService services.UserService,
) *RiderHandler {
	return &RiderHandler{
		riderService: riderService,
		orderService: orderService,
		userService:  userService,
	}
}

// riderPhone resolves the logged-in user to their rider phone number.
func (h *RiderHandler) riderPhone(c *gin.Context) (string, bool) {
	user, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil || user.Phone == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no rider profile for this account"})
		return "", false
	}
	return user.Phone, true
}

func (h *RiderHandler) GetActiveOrders(c *gin.Context) {
	phone, ok := h.riderPhone(c)
	if !ok {
		return
	}

	orders, err := h.riderService.GetActiveOrders(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *RiderHandler) GetHistory(c *gin.Context) {
	phone, ok := h.riderPhone(c)
	if !ok {
		return
	}

	orders, err := h.riderService.GetDeliveredOrders(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *RiderHandler) GetStats(c *gin.Context) {
	phone, ok := h.riderPhone(c)
	if !ok {
		return
	}

	stats, err := h.riderService.GetStats(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *RiderHandler) SetStatus(c *gin.Context) {
	phone, ok := h.riderPhone(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	status := models.RiderStatus(req.Status)
	if status != models.RiderOnline && status != models.RiderOffline {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Online or Offline"})
		return
	}

	if err := h.riderService.SetStatus(phone, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *RiderHandler) MarkDelivered(c *gin.Context) {
	phone, ok := h.riderPhone(c)
	if !ok {
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), orderID, phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAssignedRider):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, repository.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
