package workflow

// Trigger represents an event that can cause a document status transition
type Trigger string

const (
	TriggerSubmit     Trigger = "SUBMIT"
	TriggerPlaceOrder Trigger = "PLACE_ORDER"
	TriggerCancel     Trigger = "CANCEL"
	TriggerReject     Trigger = "REJECT"
	TriggerExpire     Trigger = "EXPIRE"
	TriggerClose      Trigger = "CLOSE"
	TriggerReopen     Trigger = "REOPEN"
	TriggerHold       Trigger = "HOLD"
	TriggerResume     Trigger = "RESUME"
	TriggerReceive    Trigger = "RECEIVE"
	TriggerBill       Trigger = "BILL"
	TriggerComplete   Trigger = "COMPLETE"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
