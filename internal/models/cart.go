package models

import "strings"

// CartItem is one selected line in a customer's cart. Carts live in the
// cache store, not the database, so there are no gorm tags here.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ItemType    string  `json:"item_type"` // Subscription, Trial, Add-on
	Timing      string  `json:"timing"`    // lunch, dinner, combo
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type ItemType string

const (
	ItemSubscription ItemType = "Subscription"
	ItemTrial        ItemType = "Trial"
	ItemAddon        ItemType = "Add-on"
)

type Cart struct {
	Items []CartItem `json:"items"`
}

// Total recomputes the cart total from its lines on every call.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SubscriptionItem returns the first plan or trial line in the cart, if any.
// Anything typed Subscription or Trial, or named like a plan, counts.
func (c *Cart) SubscriptionItem() *CartItem {
	for i := range c.Items {
		item := &c.Items[i]
		if item.ItemType == string(ItemSubscription) || item.ItemType == string(ItemTrial) ||
			strings.Contains(item.Name, "Plan") || strings.Contains(item.Name, "Bowl") {
			return item
		}
	}
	return nil
}
