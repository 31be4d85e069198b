package entity

import "time"

// SupplierQuotation represents a quotation received from a supplier, usually
// in response to a Request for Quotation. Submitted quotations can be turned
// into purchase orders, which flips their status to "Ordered".
type SupplierQuotation struct {
	ID             int64                    `json:"id"`
	Name           string                   `json:"name"`
	Supplier       string                   `json:"supplier"`
	Company        string                   `json:"company"`
	Currency       string                   `json:"currency"`
	BaseGrandTotal float64                  `json:"base_grand_total"`
	Status         string                   `json:"status"`
	DocStatus      int                      `json:"docstatus"`
	ValidTill      *time.Time               `json:"valid_till,omitempty"`
	Items          []*SupplierQuotationItem `json:"items,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// GetStatus implements listview.StatusHolder
func (q *SupplierQuotation) GetStatus() string {
	return q.Status
}

// IsSubmitted returns true if the quotation has been submitted
func (q *SupplierQuotation) IsSubmitted() bool {
	return q.DocStatus == DocStatusSubmitted
}

// SupplierQuotationItem is a line item on a supplier quotation. It carries a
// back-reference to the RFQ line it answers, which drives RFQ status recalculation.
type SupplierQuotationItem struct {
	ID                  int64   `json:"id"`
	QuotationID         int64   `json:"quotation_id"`
	ItemCode            string  `json:"item_code"`
	Qty                 float64 `json:"qty"`
	Rate                float64 `json:"rate"`
	Amount              float64 `json:"amount"`
	RequestForQuotation string  `json:"request_for_quotation,omitempty"`
}
