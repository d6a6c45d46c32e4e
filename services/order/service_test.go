package order

import (
	"strings"
	"testing"
	"time"

	orderModel "medcare/models/order"
)

func TestGenerateOrderNumber(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := GenerateOrderNumber("anita", ts, 4821)
	want := "anita_20260314150926_4821"
	if got != want {
		t.Errorf("GenerateOrderNumber() = %q, want %q", got, want)
	}

	parts := strings.Split(got, "_")
	if len(parts) != 3 {
		t.Fatalf("expected 3 underscore-separated parts, got %d (%q)", len(parts), got)
	}
	if parts[0] != "anita" {
		t.Errorf("customer part = %q, want anita", parts[0])
	}
	if len(parts[1]) != 14 {
		t.Errorf("timestamp part %q should be 14 digits", parts[1])
	}
}

func TestRandomSuffixRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := randomSuffix(1000, 9999)
		if n < 1000 || n > 9999 {
			t.Fatalf("randomSuffix(1000, 9999) = %d, out of range", n)
		}
	}
}

func TestSummarize(t *testing.T) {
	bike := "MH12AB3456"
	ord := orderModel.Order{
		OrderNumber:     "ravi_20260314120000_1234",
		CustomerName:    "ravi",
		Status:          orderModel.OrderStatusShipped,
		DeliveryAddress: "12 MG Road, Pune",
		PaymentMethod:   "Cash on Delivery",
		ContactNumber:   "9876543210",
		DeliveryAgentBike: &bike,
		Items: []orderModel.OrderItem{
			{DrugID: 1, DrugName: "Paracetamol", Quantity: 2, UnitPrice: 10},
			{DrugID: 2, DrugName: "Cetirizine", Quantity: 1, UnitPrice: 25},
		},
		CreatedAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		StatusUpdatedAt: time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC),
	}

	got := Summarize(ord)

	if got.Total != 45 {
		t.Errorf("Total = %v, want 45", got.Total)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 item lines, got %d", len(got.Items))
	}
	if got.Items[0].Subtotal != 20 {
		t.Errorf("first line subtotal = %v, want 20", got.Items[0].Subtotal)
	}
	if got.Items[1].Subtotal != 25 {
		t.Errorf("second line subtotal = %v, want 25", got.Items[1].Subtotal)
	}
	if got.OrderDate != "2026-03-14 12:00:00" {
		t.Errorf("OrderDate = %q", got.OrderDate)
	}
	if got.StatusUpdatedAt != "2026-03-14 13:30:00" {
		t.Errorf("StatusUpdatedAt = %q", got.StatusUpdatedAt)
	}
	if got.AgentBike == nil || *got.AgentBike != bike {
		t.Errorf("AgentBike not carried through")
	}
}

func TestSummarizeEmptyOrder(t *testing.T) {
	got := Summarize(orderModel.Order{OrderNumber: "x_20260101000000_1111"})
	if got.Total != 0 {
		t.Errorf("Total = %v, want 0", got.Total)
	}
	if len(got.Items) != 0 {
		t.Errorf("expected no item lines, got %d", len(got.Items))
	}
}

func TestSummarizeAllPreservesOrder(t *testing.T) {
	orders := []orderModel.Order{
		{OrderNumber: "a_20260101000000_1111"},
		{OrderNumber: "b_20260102000000_2222"},
	}
	got := SummarizeAll(orders)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].OrderNumber != orders[0].OrderNumber || got[1].OrderNumber != orders[1].OrderNumber {
		t.Errorf("summaries out of order: %v", got)
	}
}

func TestStockErrorMessage(t *testing.T) {
	err := &StockError{DrugName: "Ibuprofen", Available: 3, Requested: 5}
	want := "not enough quantity available for Ibuprofen. Available: 3, Requested: 5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
