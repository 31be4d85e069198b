package entity

import "time"

// RequestForQuotation represents a request sent to one or more suppliers
// inviting quotations. Its status tracks how many of the invited suppliers
// have submitted a quotation, and flips to "Ordered" once a purchase order
// is placed against any of those quotations.
type RequestForQuotation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	DocStatus int       `json:"docstatus"`
	Suppliers []string  `json:"suppliers,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetStatus implements listview.StatusHolder
func (r *RequestForQuotation) GetStatus() string {
	return r.Status
}

// AwaitingQuotations returns true if the RFQ is still collecting quotations
// and may be flipped to "Ordered" by a purchase order submission.
func (r *RequestForQuotation) AwaitingQuotations() bool {
	switch r.Status {
	case RFQStatusRequested, RFQStatusPartiallyReceived, RFQStatusReceived:
		return true
	default:
		return false
	}
}
