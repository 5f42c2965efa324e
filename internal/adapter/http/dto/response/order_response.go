package response

import (
	"time"

	"sevabazar/internal/domain/entities"
)

type OrderItemResponse struct {
	ServiceID     string  `json:"service_id,omitempty"`
	ServiceName   string  `json:"service_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Details       string  `json:"details,omitempty"`
}

type TimelineStageResponse struct {
	Status    string `json:"status"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// OrderResponse is the full order projection: stored fields plus the display
// label and the recomputed progress timeline.
type OrderResponse struct {
	OrderNumber      string                  `json:"order_number"`
	CustomerID       string                  `json:"customer_id"`
	Items            []OrderItemResponse     `json:"items"`
	Status           string                  `json:"status"`
	StatusLabel      string                  `json:"status_label"`
	Timeline         []TimelineStageResponse `json:"timeline"`
	PaymentMethod    string                  `json:"payment_method"`
	PaymentStatus    string                  `json:"payment_status"`
	Subtotal         float64                 `json:"subtotal"`
	Discount         float64                 `json:"discount"`
	PromoCode        string                  `json:"promo_code,omitempty"`
	PromoDiscount    float64                 `json:"promo_discount"`
	AdditionalCost   float64                 `json:"additional_cost"`
	DeliveryCharge   float64                 `json:"delivery_charge"`
	Total            float64                 `json:"total"`
	AssignedVendorID string                  `json:"assigned_vendor_id,omitempty"`
	ScheduledDate    string                  `json:"scheduled_date,omitempty"`
	ScheduledTime    string                  `json:"scheduled_time,omitempty"`
	Address          string                  `json:"address,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ServiceID:     it.ServiceID,
			ServiceName:   it.ServiceName,
			Quantity:      it.Quantity,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			Details:       it.Details,
		})
	}

	stages := o.Status.Timeline()
	timeline := make([]TimelineStageResponse, 0, len(stages))
	for _, st := range stages {
		timeline = append(timeline, TimelineStageResponse{
			Status:    string(st.Status),
			Label:     st.Label,
			Completed: st.Completed,
		})
	}

	return OrderResponse{
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		Items:            items,
		Status:           string(o.Status),
		StatusLabel:      o.Status.Label(),
		Timeline:         timeline,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		PromoCode:        o.PromoCode,
		PromoDiscount:    o.PromoDiscount,
		AdditionalCost:   o.AdditionalCost,
		DeliveryCharge:   o.DeliveryCharge,
		Total:            o.Total,
		AssignedVendorID: o.AssignedVendorID,
		ScheduledDate:    o.ScheduledDate,
		ScheduledTime:    o.ScheduledTime,
		Address:          o.Address,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
