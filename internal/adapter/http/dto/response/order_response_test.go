package response

import (
	"testing"
	"time"

	"sevabazar/internal/domain/entities"
)

func TestFromOrder(t *testing.T) {
	now := time.Now().UTC()
	o := entities.Order{
		OrderNumber:   "ORD-1",
		CustomerID:    "cust-1",
		Items:         []entities.OrderItem{{ServiceName: "AC servicing", Quantity: 2, Price: 700, OriginalPrice: 765.25}},
		Status:        entities.OrderStatusInProgress,
		PaymentMethod: entities.PaymentMethodBkash,
		PaymentStatus: entities.PaymentStatusPending,
		Subtotal:      1530.5,
		Discount:      130.5,
		Total:         1400,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res := FromOrder(o)
	if res.OrderNumber != "ORD-1" || res.CustomerID != "cust-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "in_progress" || res.StatusLabel != "In Progress" {
		t.Fatalf("unexpected status fields: %+v", res)
	}
	if len(res.Items) != 1 || res.Items[0].ServiceName != "AC servicing" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if len(res.Timeline) != 7 {
		t.Fatalf("expected 7 timeline stages, got %d", len(res.Timeline))
	}
	completed := 0
	for _, st := range res.Timeline {
		if st.Completed {
			completed++
		}
	}
	if completed != 4 {
		t.Fatalf("expected 4 completed stages for in_progress, got %d", completed)
	}
	if res.Subtotal != 1530.5 || res.Discount != 130.5 || res.Total != 1400 {
		t.Fatalf("unexpected money: %+v", res)
	}
	if !res.CreatedAt.Equal(now) || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromOrder_CancelledTimeline(t *testing.T) {
	res := FromOrder(entities.Order{OrderNumber: "ORD-2", Status: entities.OrderStatusCancelled})
	if res.StatusLabel != "Cancelled" {
		t.Fatalf("unexpected label: %q", res.StatusLabel)
	}
	for _, st := range res.Timeline {
		if st.Completed {
			t.Fatalf("cancelled order should have no completed stages")
		}
	}
}

func TestFromOrders(t *testing.T) {
	out := FromOrders([]entities.Order{
		{OrderNumber: "ORD-1", Status: entities.OrderStatusSubmitted},
		{OrderNumber: "ORD-2", Status: entities.OrderStatusClosed},
	})
	if len(out) != 2 || out[0].OrderNumber != "ORD-1" || out[1].OrderNumber != "ORD-2" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
