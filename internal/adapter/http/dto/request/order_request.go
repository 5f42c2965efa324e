package request

import (
	"errors"
	"fmt"
	"strings"

	"sevabazar/internal/domain/entities"
)

var (
	ErrItemsRequired         = errors.New("Order items are required")
	ErrPaymentMethodRequired = errors.New("Payment method is required")
)

type OrderItemRequest struct {
	ServiceID     string  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	OriginalPrice float64 `json:"original_price"`
	Details       string  `json:"details"`
}

// CreateOrderRequest is the cart snapshot submitted at checkout. The client
// is untrusted; every field is validated here before it reaches the usecase.
type CreateOrderRequest struct {
	OrderNumber   string             `json:"order_number"`
	CustomerID    string             `json:"customer_id"`
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	PromoCode     string             `json:"promo_code"`
	PromoDiscount float64            `json:"promo_discount"`
	ScheduledDate string             `json:"scheduled_date"`
	ScheduledTime string             `json:"scheduled_time"`
	Address       string             `json:"address"`
	Notes         string             `json:"notes"`
}

// Validate checks the payload and returns an error whose message names the
// offending field, suitable for the API error body as-is.
func (r CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrItemsRequired
	}
	for i, it := range r.Items {
		if strings.TrimSpace(it.ServiceName) == "" {
			return fmt.Errorf("Item %d: service name is required", i+1)
		}
		if it.Price <= 0 {
			return fmt.Errorf("Item %d: price is required", i+1)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("Item %d: quantity must be at least 1", i+1)
		}
		if it.OriginalPrice > 0 && it.OriginalPrice < it.Price {
			return fmt.Errorf("Item %d: original price cannot be below price", i+1)
		}
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return ErrPaymentMethodRequired
	}
	if !r.Method().Valid() {
		return fmt.Errorf("Invalid payment method, allowed values: %s", strings.Join(entities.PaymentMethods, ", "))
	}
	if r.PromoDiscount < 0 {
		return errors.New("Promo discount cannot be negative")
	}
	return nil
}

// Method returns the normalized payment method ("bKash" and "card" are both
// accepted from clients; storage is lowercase).
func (r CreateOrderRequest) Method() entities.PaymentMethod {
	return entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod)))
}

// ToItems maps the payload lines to domain order items.
func (r CreateOrderRequest) ToItems() []entities.OrderItem {
	items := make([]entities.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.OrderItem{
			ServiceID:     strings.TrimSpace(it.ServiceID),
			ServiceName:   strings.TrimSpace(it.ServiceName),
			Quantity:      it.Quantity,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Details:       strings.TrimSpace(it.Details),
		})
	}
	return items
}

// UpdateOrderStatusRequest is the staff payload for a lifecycle transition.
// VendorID is an independent field update carried in the same call.
type UpdateOrderStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	VendorID string `json:"vendor_id"`
}

func (r UpdateOrderStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}
