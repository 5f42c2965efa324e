package entities

import "time"

// OrderStatus represents the lifecycle of a marketplace order.
//
// Domain notes:
//   - The order-service is the source of truth for order/payment state.
//   - The seven non-cancelled statuses form a fixed linear progression;
//     "cancelled" is reachable from any point and ends the timeline.
//   - Stored values and customer-facing labels differ (Label/StatusFromLabel).

type OrderStatus string

const (
	OrderStatusSubmitted  OrderStatus = "submitted"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusAssigned   OrderStatus = "assigned"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReview     OrderStatus = "review"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusClosed     OrderStatus = "closed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderStatusSequence is the linear progression, in order. Cancelled is
// deliberately absent: it has no position on the timeline.
var orderStatusSequence = []OrderStatus{
	OrderStatusSubmitted,
	OrderStatusConfirmed,
	OrderStatusAssigned,
	OrderStatusInProgress,
	OrderStatusReview,
	OrderStatusDelivered,
	OrderStatusClosed,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusSubmitted:  "Initiated",
	OrderStatusConfirmed:  "Confirmed",
	OrderStatusAssigned:   "Assigned",
	OrderStatusInProgress: "In Progress",
	OrderStatusReview:     "Review",
	OrderStatusDelivered:  "Delivered",
	OrderStatusClosed:     "Closed",
	OrderStatusCancelled:  "Cancelled",
}

var orderStatusByLabel = func() map[string]OrderStatus {
	m := make(map[string]OrderStatus, len(orderStatusLabels))
	for s, label := range orderStatusLabels {
		m[label] = s
	}
	return m
}()

// OrderStatuses lists every valid stored status value, for API validation
// messages.
var OrderStatuses = []string{
	string(OrderStatusSubmitted),
	string(OrderStatusConfirmed),
	string(OrderStatusAssigned),
	string(OrderStatusInProgress),
	string(OrderStatusReview),
	string(OrderStatusDelivered),
	string(OrderStatusClosed),
	string(OrderStatusCancelled),
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the customer-facing display label for the status.
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// StatusFromLabel resolves a display label back to its stored status value.
func StatusFromLabel(label string) (OrderStatus, bool) {
	s, ok := orderStatusByLabel[label]
	return s, ok
}

// Terminal reports whether no further progression is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusClosed || s == OrderStatusCancelled
}

// index returns the position of s in the linear progression, or -1 for
// cancelled/unknown values.
func (s OrderStatus) index() int {
	for i, v := range orderStatusSequence {
		if v == s {
			return i
		}
	}
	return -1
}

// TimelineStage is one entry of the order progress timeline shown to the
// customer.
type TimelineStage struct {
	Status    OrderStatus `json:"status"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
}

// Timeline projects the current status onto the fixed stage sequence. A
// stage is completed when its index is at or before the current status's
// index; a cancelled order has no completed stages.
func (s OrderStatus) Timeline() []TimelineStage {
	cur := s.index()
	stages := make([]TimelineStage, 0, len(orderStatusSequence))
	for i, v := range orderStatusSequence {
		stages = append(stages, TimelineStage{
			Status:    v,
			Label:     v.Label(),
			Completed: s != OrderStatusCancelled && cur >= 0 && i <= cur,
		})
	}
	return stages
}

// CanTransitionTo reports whether moving from s to next keeps the linear
// progression. Current behavior does not enforce this on updates; it is the
// hook for a forward-only guard if the product ever wants one.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if next == OrderStatusCancelled {
		return s != OrderStatusClosed && s != OrderStatusCancelled
	}
	if s == OrderStatusCancelled {
		return false
	}
	return next.index() >= s.index()
}

type PaymentMethod string

const (
	PaymentMethodBkash PaymentMethod = "bkash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCash  PaymentMethod = "cash"
)

var PaymentMethods = []string{
	string(PaymentMethodBkash),
	string(PaymentMethodCard),
	string(PaymentMethodCash),
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBkash, PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// OrderItem is one service selection within an order. Price is the charged
// unit price; OriginalPrice is the pre-discount reference price (zero means
// no discount applies to the line).
type OrderItem struct {
	ServiceID     string  `json:"service_id,omitempty"`
	ServiceName   string  `json:"service_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Details       string  `json:"details,omitempty"`
}

// Order is the marketplace order persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: order_number
//   - GSI1 (customer_id-index): customer_id
//
// Monetary invariant:
//   - Total = max(0, Subtotal - Discount - PromoDiscount + AdditionalCost + DeliveryCharge)
type Order struct {
	OrderNumber      string        `json:"order_number"`
	CustomerID       string        `json:"customer_id"`
	Items            []OrderItem   `json:"items"`
	Status           OrderStatus   `json:"status"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	Subtotal         float64       `json:"subtotal"`
	Discount         float64       `json:"discount"`
	PromoCode        string        `json:"promo_code,omitempty"`
	PromoDiscount    float64       `json:"promo_discount"`
	AdditionalCost   float64       `json:"additional_cost"`
	DeliveryCharge   float64       `json:"delivery_charge"`
	Total            float64       `json:"total"`
	AssignedVendorID string        `json:"assigned_vendor_id,omitempty"`
	ScheduledDate    string        `json:"scheduled_date,omitempty"`
	ScheduledTime    string        `json:"scheduled_time,omitempty"`
	Address          string        `json:"address,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
