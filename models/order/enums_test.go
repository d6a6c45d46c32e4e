package order

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPlaced, OrderStatusConfirmed, true},
		{OrderStatusPlaced, OrderStatusCancelled, true},
		{OrderStatusPlaced, OrderStatusShipped, false},
		{OrderStatusPlaced, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPlaced, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPlaced, false},
		{OrderStatusCancelled, OrderStatusPlaced, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range GetAllOrderStatuses() {
		terminal := status == OrderStatusDelivered || status == OrderStatusCancelled
		if got := status.IsTerminal(); got != terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, terminal)
		}
	}
}

func TestCanBeDeleted(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPlaced, true},
		{OrderStatusCancelled, true},
		{OrderStatusConfirmed, false},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, false},
	}
	for _, tt := range tests {
		if got := tt.status.CanBeDeleted(); got != tt.want {
			t.Errorf("%s.CanBeDeleted() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, status := range GetAllOrderStatuses() {
		if !status.IsValid() {
			t.Errorf("%s should be valid", status)
		}
	}
	for _, bad := range []OrderStatus{"", "placed", "Returned", "Unknown"} {
		if bad.IsValid() {
			t.Errorf("%q should be invalid", bad)
		}
	}
}
