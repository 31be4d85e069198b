package entity

import "time"

// PurchaseOrder represents an order placed with a supplier. Submitting an
// order cascades "Ordered" status onto the supplier quotations and RFQs it
// was sourced from; cancelling reverses the cascade.
type PurchaseOrder struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Supplier       string               `json:"supplier"`
	Company        string               `json:"company"`
	Currency       string               `json:"currency"`
	BaseGrandTotal float64              `json:"base_grand_total"`
	Status         string               `json:"status"`
	DocStatus      int                  `json:"docstatus"`
	PerReceived    float64              `json:"per_received"`
	PerBilled      float64              `json:"per_billed"`
	ScheduleDate   *time.Time           `json:"schedule_date,omitempty"`
	Items          []*PurchaseOrderItem `json:"items,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// GetStatus implements listview.StatusHolder
func (o *PurchaseOrder) GetStatus() string {
	return o.Status
}

// IsSubmitted returns true if the order has been submitted
func (o *PurchaseOrder) IsSubmitted() bool {
	return o.DocStatus == DocStatusSubmitted
}

// QuotationNames returns the distinct supplier quotation names referenced by
// the order's items, in first-seen order.
func (o *PurchaseOrder) QuotationNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range o.Items {
		if item.SupplierQuotation != "" && !seen[item.SupplierQuotation] {
			seen[item.SupplierQuotation] = true
			names = append(names, item.SupplierQuotation)
		}
	}
	return names
}

// PurchaseOrderItem is a line item on a purchase order. SupplierQuotation and
// SupplierQuotationItem link the line back to the quotation it was mapped from.
type PurchaseOrderItem struct {
	ID                    int64   `json:"id"`
	OrderID               int64   `json:"order_id"`
	ItemCode              string  `json:"item_code"`
	Qty                   float64 `json:"qty"`
	StockQty              float64 `json:"stock_qty"`
	Rate                  float64 `json:"rate"`
	Amount                float64 `json:"amount"`
	ReceivedQty           float64 `json:"received_qty"`
	BilledAmt             float64 `json:"billed_amt"`
	MinOrderQty           float64 `json:"min_order_qty"`
	SupplierQuotation     string  `json:"supplier_quotation,omitempty"`
	SupplierQuotationItem string  `json:"supplier_quotation_item,omitempty"`
}
