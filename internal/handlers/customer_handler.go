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

type CustomerHandler struct {
	menuService     services.MenuService
	cartService     services.CartService
	walletService   services.WalletService
	checkoutService services.CheckoutService
	orderService    services.OrderService
	userService     services.UserService
}

func NewCustomerHandler(
	menuService services.MenuService,
	cartService services.CartService,
	walletService services.WalletService,
	checkoutService services.CheckoutService,
	orderService services.OrderService,
	userService services.UserService,
) *CustomerHandler {
	return &CustomerHandler{
		menuService:     menuService,
		cartService:     cartService,
		walletService:   walletService,
		checkoutService: checkoutService,
		orderService:    orderService,
		userService:     userService,
	}
}

// Storefront

func (h *CustomerHandler) GetMenu(c *gin.Context) {
	items, err := h.menuService.GetAvailableMenuItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

func (h *CustomerHandler) GetPlans(c *gin.Context) {
	plans, err := h.menuService.GetPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlanQuote returns a plan with its price for the requested duration and
// timing. Defaults match the monthly single-meal subscription.
func (h *CustomerHandler) GetPlanQuote(c *gin.Context) {
	plan, err := h.menuService.GetPlanBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "22"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}
	timing := c.DefaultQuery("timing", models.TimingLunch)

	c.JSON(http.StatusOK, gin.H{
		"plan":   plan,
		"days":   days,
		"timing": timing,
		"price":  plan.PriceFor(days, timing),
	})
}

func (h *CustomerHandler) GetWeeklyMenu(c *gin.Context) {
	entries, err := h.menuService.GetWeeklyMenu()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly_menu": entries})
}

// Cart

func (h *CustomerHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *CustomerHandler) AddCartItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil || item.ID == "" || item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), currentUserID(c), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *CustomerHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), currentUserID(c), c.Param("item_id"), req.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *CustomerHandler) RemoveCartItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.Total()})
}

func (h *CustomerHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// Wallet

func (h *CustomerHandler) GetWallet(c *gin.Context) {
	userID := currentUserID(c)
	balance, err := h.walletService.GetBalance(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	txns, err := h.walletService.GetTransactions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "transactions": txns})
}

func (h *CustomerHandler) TopUpWallet(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	balance, err := h.walletService.TopUp(currentUserID(c), req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Checkout

func (h *CustomerHandler) Checkout(c *gin.Context) {
	var input services.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingDetails), errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *CustomerHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Profile

func (h *CustomerHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "addresses": user.AddressList()})
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	user.AddAddress(req.Address)

	if err := h.userService.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "addresses": user.AddressList()})
}
