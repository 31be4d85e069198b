package event

// Type identifies the type of domain event
type Type string

const (
	TypeOrderSubmitted    Type = "order.submitted"
	TypeOrderCancelled    Type = "order.cancelled"
	TypeOrderClosed       Type = "order.closed"
	TypeOrderReopened     Type = "order.reopened"
	TypeStatusChanged     Type = "document.status_changed"
	TypeQuotationOrdered  Type = "quotation.ordered"
	TypeQuotationReverted Type = "quotation.reverted"
	TypeRFQStatusUpdated  Type = "rfq.status_updated"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeOrderSubmitted,
		TypeOrderCancelled,
		TypeOrderClosed,
		TypeOrderReopened,
		TypeStatusChanged,
		TypeQuotationOrdered,
		TypeQuotationReverted,
		TypeRFQStatusUpdated:
		return true
	default:
		return false
	}
}
