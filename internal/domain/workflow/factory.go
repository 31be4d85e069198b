package workflow

import "context"

// ForSupplierQuotation builds the supplier quotation status machine. A
// submitted quotation becomes Ordered when a purchase order is placed against
// it and reverts to Submitted when that order is cancelled.
func ForSupplierQuotation(initial State) StateMachine {
	builder := NewBuilder()

	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateSubmitted).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateSubmitted).
		Permit(TriggerPlaceOrder, StateOrdered).
		Permit(TriggerReject, StateRejected).
		Permit(TriggerExpire, StateExpired).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateOrdered).
		Permit(TriggerCancel, StateSubmitted)

	return builder.Build(initial)
}

// ForPurchaseOrder builds the purchase order status machine. perReceived and
// perBilled are the order's fulfillment percentages; closing is only allowed
// while either side is still outstanding.
func ForPurchaseOrder(initial State, perReceived, perBilled float64) StateMachine {
	builder := NewBuilder()

	receivingOpen := func(ctx context.Context) bool { return perReceived < 100 }
	billingOpen := func(ctx context.Context) bool { return perBilled < 100 }
	anyOpen := func(ctx context.Context) bool { return perReceived < 100 || perBilled < 100 }

	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateToReceiveAndBill).
		Permit(TriggerHold, StateOnHold).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateToReceiveAndBill).
		Permit(TriggerReceive, StateToBill).
		Permit(TriggerBill, StateToReceive).
		Permit(TriggerComplete, StateCompleted).
		PermitIf(TriggerClose, StateClosed, anyOpen).
		Permit(TriggerHold, StateOnHold).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateToBill).
		Permit(TriggerBill, StateCompleted).
		PermitIf(TriggerClose, StateClosed, billingOpen).
		Permit(TriggerHold, StateOnHold).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateToReceive).
		Permit(TriggerReceive, StateCompleted).
		PermitIf(TriggerClose, StateClosed, receivingOpen).
		Permit(TriggerHold, StateOnHold).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateOnHold).
		Permit(TriggerResume, StateToReceiveAndBill).
		Permit(TriggerCancel, StateCancelled)

	builder.Configure(StateClosed).
		Permit(TriggerReopen, StateToReceiveAndBill)

	return builder.Build(initial)
}
