package order

import (
	"testing"

	orderModel "medcare/models/order"
)

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		Items:           []CartItem{{DrugID: 1, Quantity: 2}, {DrugID: 2, Quantity: 1}},
		DeliveryAddress: "12 MG Road, Pune",
		PaymentMethod:   "Cash on Delivery",
		ContactNumber:   "9876543210",
	}
}

func TestCheckoutRequestValidate(t *testing.T) {
	if err := validCheckout().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	empty := validCheckout()
	empty.Items = nil
	if err := empty.Validate(); err == nil {
		t.Error("empty cart accepted")
	}

	zeroQty := validCheckout()
	zeroQty.Items[0].Quantity = 0
	if err := zeroQty.Validate(); err == nil {
		t.Error("zero quantity accepted")
	}

	dup := validCheckout()
	dup.Items = []CartItem{{DrugID: 1, Quantity: 2}, {DrugID: 1, Quantity: 1}}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate drug line accepted")
	}

	noAddr := validCheckout()
	noAddr.DeliveryAddress = ""
	if err := noAddr.Validate(); err == nil {
		t.Error("missing address accepted")
	}

	badPhone := validCheckout()
	badPhone.ContactNumber = "12345"
	if err := badPhone.Validate(); err == nil {
		t.Error("bad contact number accepted")
	}
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	ok := UpdateStatusRequest{Status: orderModel.OrderStatusConfirmed}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid transition request rejected: %v", err)
	}

	bad := UpdateStatusRequest{Status: "Returned"}
	if err := bad.Validate(); err == nil {
		t.Error("unknown status accepted")
	}

	shippedNoAgent := UpdateStatusRequest{Status: orderModel.OrderStatusShipped}
	if err := shippedNoAgent.Validate(); err == nil {
		t.Error("shipped without agent phone accepted")
	}

	shippedWithAgent := UpdateStatusRequest{Status: orderModel.OrderStatusShipped, AgentPhone: "9876543210"}
	if err := shippedWithAgent.Validate(); err != nil {
		t.Errorf("shipped with agent phone rejected: %v", err)
	}
}
