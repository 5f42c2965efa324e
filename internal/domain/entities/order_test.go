package entities

import "testing"

func TestOrderStatus_LabelBijection(t *testing.T) {
	for _, raw := range OrderStatuses {
		s := OrderStatus(raw)
		label := s.Label()
		if label == "" {
			t.Fatalf("status %s has no label", s)
		}
		back, ok := StatusFromLabel(label)
		if !ok {
			t.Fatalf("label %q does not resolve back to a status", label)
		}
		if back != s {
			t.Fatalf("label %q resolves to %s, expected %s", label, back, s)
		}
	}

	if label := OrderStatusSubmitted.Label(); label != "Initiated" {
		t.Fatalf("expected Initiated, got %q", label)
	}
	if label := OrderStatusInProgress.Label(); label != "In Progress" {
		t.Fatalf("expected In Progress, got %q", label)
	}

	if _, ok := StatusFromLabel("No Such Label"); ok {
		t.Fatalf("unknown label should not resolve")
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, raw := range OrderStatuses {
		if !OrderStatus(raw).Valid() {
			t.Fatalf("expected %s to be valid", raw)
		}
	}
	if OrderStatus("shipped").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
	if OrderStatus("").Valid() {
		t.Fatalf("empty status should be invalid")
	}
}

func TestOrderStatus_Timeline(t *testing.T) {
	t.Run("in progress", func(t *testing.T) {
		stages := OrderStatusInProgress.Timeline()
		if len(stages) != 7 {
			t.Fatalf("expected 7 stages, got %d", len(stages))
		}
		want := map[OrderStatus]bool{
			OrderStatusSubmitted:  true,
			OrderStatusConfirmed:  true,
			OrderStatusAssigned:   true,
			OrderStatusInProgress: true,
			OrderStatusReview:     false,
			OrderStatusDelivered:  false,
			OrderStatusClosed:     false,
		}
		for _, st := range stages {
			if st.Completed != want[st.Status] {
				t.Fatalf("stage %s: completed=%v, want %v", st.Status, st.Completed, want[st.Status])
			}
			if st.Label != st.Status.Label() {
				t.Fatalf("stage %s carries label %q", st.Status, st.Label)
			}
		}
	})

	t.Run("submitted completes only first stage", func(t *testing.T) {
		stages := OrderStatusSubmitted.Timeline()
		for i, st := range stages {
			if st.Completed != (i == 0) {
				t.Fatalf("stage %s: completed=%v", st.Status, st.Completed)
			}
		}
	})

	t.Run("closed completes everything", func(t *testing.T) {
		for _, st := range OrderStatusClosed.Timeline() {
			if !st.Completed {
				t.Fatalf("stage %s not completed for closed order", st.Status)
			}
		}
	})

	t.Run("cancelled completes nothing", func(t *testing.T) {
		for _, st := range OrderStatusCancelled.Timeline() {
			if st.Completed {
				t.Fatalf("stage %s completed for cancelled order", st.Status)
			}
		}
	})
}

func TestOrderStatus_Terminal(t *testing.T) {
	if !OrderStatusClosed.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatalf("closed and cancelled are terminal")
	}
	if OrderStatusSubmitted.Terminal() || OrderStatusDelivered.Terminal() {
		t.Fatalf("non-terminal status reported terminal")
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	if !OrderStatusSubmitted.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatalf("forward transition should be allowed")
	}
	if !OrderStatusReview.CanTransitionTo(OrderStatusCancelled) {
		t.Fatalf("cancel should be reachable from any active status")
	}
	if OrderStatusClosed.CanTransitionTo(OrderStatusCancelled) {
		t.Fatalf("closed order cannot be cancelled")
	}
	if OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatalf("cancelled order cannot resume")
	}
	if OrderStatusDelivered.CanTransitionTo(OrderStatus("shipped")) {
		t.Fatalf("unknown status is never a valid target")
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, raw := range PaymentMethods {
		if !PaymentMethod(raw).Valid() {
			t.Fatalf("expected %s to be valid", raw)
		}
	}
	if PaymentMethod("paypal").Valid() {
		t.Fatalf("unknown payment method should be invalid")
	}
}

func TestCaller_IsStaff(t *testing.T) {
	if !(Caller{ID: "u1", Role: RoleAdmin}).IsStaff() {
		t.Fatalf("admin is staff")
	}
	if !(Caller{ID: "u2", Role: RoleEmployee}).IsStaff() {
		t.Fatalf("employee is staff")
	}
	if (Caller{ID: "u3", Role: RoleCustomer}).IsStaff() {
		t.Fatalf("customer is not staff")
	}
}
