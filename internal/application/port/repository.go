// Package port defines the interfaces between the application layer and
// infrastructure adapters.
package port

import (
	"context"

	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/listview"
)

// ListOptions controls pagination and quick-filtering of list queries.
// Filter is the indicator quick-filter triple; only the "=" operator is
// supported by repositories.
type ListOptions struct {
	Limit  int
	Offset int
	Filter *listview.Filter
}

// SupplierQuotationRepository persists supplier quotations
type SupplierQuotationRepository interface {
	Create(ctx context.Context, quotation *entity.SupplierQuotation) error
	GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.SupplierQuotation, error)
	UpdateStatus(ctx context.Context, name string, status string) error
}

// PurchaseOrderRepository persists purchase orders
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, name string, status string, docStatus int) error
	UpdatePercentReceived(ctx context.Context, name string, perReceived float64) error

	// CountSubmittedReferencingQuotation counts submitted orders other than
	// excludeOrder that have at least one item sourced from the quotation.
	CountSubmittedReferencingQuotation(ctx context.Context, quotationName, excludeOrder string) (int, error)
}

// RFQRepository persists requests for quotation
type RFQRepository interface {
	Create(ctx context.Context, rfq *entity.RequestForQuotation) error
	GetByName(ctx context.Context, name string) (*entity.RequestForQuotation, error)
	UpdateStatus(ctx context.Context, name string, status string) error

	// CountSubmittedQuotations counts distinct suppliers with a submitted
	// quotation answering the RFQ.
	CountSubmittedQuotations(ctx context.Context, rfqName string) (int, error)
}
