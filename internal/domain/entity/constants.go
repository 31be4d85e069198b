package entity

// Document type names as registered in the list-view settings registry
const (
	DoctypeSupplierQuotation   = "Supplier Quotation"
	DoctypePurchaseOrder       = "Purchase Order"
	DoctypeRequestForQuotation = "Request for Quotation"
)

// Status constants for SupplierQuotation
const (
	QuotationStatusDraft     = "Draft"
	QuotationStatusSubmitted = "Submitted"
	QuotationStatusOrdered   = "Ordered"
	QuotationStatusRejected  = "Rejected"
	QuotationStatusExpired   = "Expired"
	QuotationStatusCancelled = "Cancelled"
)

// Status constants for PurchaseOrder
const (
	OrderStatusDraft            = "Draft"
	OrderStatusOnHold           = "On Hold"
	OrderStatusToReceiveAndBill = "To Receive and Bill"
	OrderStatusToBill           = "To Bill"
	OrderStatusToReceive        = "To Receive"
	OrderStatusCompleted        = "Completed"
	OrderStatusCancelled        = "Cancelled"
	OrderStatusClosed           = "Closed"
)

// Status constants for RequestForQuotation
const (
	RFQStatusDraft             = "Draft"
	RFQStatusSubmitted         = "Submitted"
	RFQStatusRequested         = "Quotation Requested"
	RFQStatusPartiallyReceived = "Quotation Partially Received"
	RFQStatusReceived          = "Quotation Received"
	RFQStatusOrdered           = "Ordered"
	RFQStatusCancelled         = "Cancelled"
)

// DocStatus values shared by all submittable documents
const (
	DocStatusDraft     = 0
	DocStatusSubmitted = 1
	DocStatusCancelled = 2
)
