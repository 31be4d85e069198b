package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/listview"
	"github.com/NamanGarg4/procurement/internal/i18n"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrUnknownDoctype is returned when no list-view settings are registered
// for the requested document type.
var ErrUnknownDoctype = errors.New("unknown doctype")

// ListRow is one rendered list-view row: the prefetched field values plus the
// resolved status indicator. Indicator is nil when the row's status matches
// no rule.
type ListRow struct {
	Name      string                 `json:"name"`
	Fields    map[string]interface{} `json:"fields"`
	Indicator *listview.Indicator    `json:"indicator,omitempty"`
}

// ListPage is a page of list rows together with the field order the list UI
// should render columns in.
type ListPage struct {
	Doctype   string     `json:"doctype"`
	AddFields []string   `json:"add_fields"`
	Rows      []*ListRow `json:"rows"`
}

// ListViewService renders list-view pages for registered document types
type ListViewService interface {
	// List loads a page of rows for the doctype, resolving each row's
	// indicator through the settings registry.
	List(ctx context.Context, doctype string, opts port.ListOptions) (*ListPage, error)
}

type listViewService struct {
	quotationRepo port.SupplierQuotationRepository
	orderRepo     port.PurchaseOrderRepository
	translator    i18n.Translator
	logger        Logger
}

// NewListViewService creates a new ListViewService
func NewListViewService(
	quotationRepo port.SupplierQuotationRepository,
	orderRepo port.PurchaseOrderRepository,
	translator i18n.Translator,
	logger Logger,
) ListViewService {
	return &listViewService{
		quotationRepo: quotationRepo,
		orderRepo:     orderRepo,
		translator:    translator,
		logger:        logger,
	}
}

// List loads a page of rows for the doctype
func (s *listViewService) List(ctx context.Context, doctype string, opts port.ListOptions) (*ListPage, error) {
	settings, ok := listview.Lookup(doctype)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDoctype, doctype)
	}

	rows, err := s.loadRows(ctx, doctype, settings, opts)
	if err != nil {
		s.logger.Error("Failed to load list rows",
			"doctype", doctype,
			"error", err)
		return nil, fmt.Errorf("load list rows: %w", err)
	}

	return &ListPage{
		Doctype:   doctype,
		AddFields: settings.AddFields,
		Rows:      rows,
	}, nil
}

func (s *listViewService) loadRows(ctx context.Context, doctype string, settings listview.Settings, opts port.ListOptions) ([]*ListRow, error) {
	switch doctype {
	case entity.DoctypeSupplierQuotation:
		quotations, err := s.quotationRepo.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]*ListRow, 0, len(quotations))
		for _, q := range quotations {
			rows = append(rows, s.buildRow(doctype, q.Name, quotationFields(q), settings, q))
		}
		return rows, nil

	case entity.DoctypePurchaseOrder:
		orders, err := s.orderRepo.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		rows := make([]*ListRow, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, s.buildRow(doctype, o.Name, orderFields(o), settings, o))
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDoctype, doctype)
	}
}

// buildRow projects the prefetched fields and resolves the row's indicator
func (s *listViewService) buildRow(doctype, name string, fields map[string]interface{}, settings listview.Settings, doc listview.StatusHolder) *ListRow {
	row := &ListRow{
		Name:   name,
		Fields: make(map[string]interface{}, len(settings.AddFields)),
	}

	for _, field := range settings.AddFields {
		if value, ok := fields[field]; ok {
			row.Fields[field] = value
		}
	}

	if settings.GetIndicator != nil {
		if indicator, ok := settings.GetIndicator(doc, s.translator); ok {
			row.Indicator = &indicator
		}
	}

	return row
}

func quotationFields(q *entity.SupplierQuotation) map[string]interface{} {
	return map[string]interface{}{
		"supplier":         q.Supplier,
		"base_grand_total": q.BaseGrandTotal,
		"status":           q.Status,
		"company":          q.Company,
		"currency":         q.Currency,
	}
}

func orderFields(o *entity.PurchaseOrder) map[string]interface{} {
	return map[string]interface{}{
		"supplier":         o.Supplier,
		"base_grand_total": o.BaseGrandTotal,
		"status":           o.Status,
		"company":          o.Company,
		"currency":         o.Currency,
		"per_received":     o.PerReceived,
		"per_billed":       o.PerBilled,
	}
}
