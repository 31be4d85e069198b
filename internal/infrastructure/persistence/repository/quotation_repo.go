// Package repository contains the sqlite-backed implementations of the
// application repository ports.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/listview"
)

// listFilterColumns are the columns quick filters may reference. Anything
// else is rejected before reaching SQL.
var listFilterColumns = map[string]bool{
	"supplier": true,
	"status":   true,
	"company":  true,
	"currency": true,
}

// filterClause renders a quick-filter triple into a WHERE fragment. Only the
// "=" operator is supported.
func filterClause(filter *listview.Filter) (string, []interface{}, error) {
	if filter == nil {
		return "", nil, nil
	}
	if filter.Operator != "=" {
		return "", nil, fmt.Errorf("unsupported filter operator: %s", filter.Operator)
	}
	if !listFilterColumns[filter.Field] {
		return "", nil, fmt.Errorf("unsupported filter field: %s", filter.Field)
	}
	return fmt.Sprintf(" AND %s = ?", filter.Field), []interface{}{filter.Value}, nil
}

// SupplierQuotationRepository implements port.SupplierQuotationRepository
type SupplierQuotationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSupplierQuotationRepository creates a new supplier quotation repository
func NewSupplierQuotationRepository(db *sql.DB, logger *zap.Logger) port.SupplierQuotationRepository {
	return &SupplierQuotationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a quotation and its items
func (r *SupplierQuotationRepository) Create(ctx context.Context, quotation *entity.SupplierQuotation) error {
	query := `
		INSERT INTO supplier_quotations (
			name, supplier, company, currency, base_grand_total, status, docstatus, valid_till
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		quotation.Name,
		quotation.Supplier,
		quotation.Company,
		quotation.Currency,
		quotation.BaseGrandTotal,
		quotation.Status,
		quotation.DocStatus,
		quotation.ValidTill,
	)
	if err != nil {
		r.logger.Error("Failed to create quotation", zap.Error(err))
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	quotation.ID = id

	for _, item := range quotation.Items {
		item.QuotationID = id
		if err := r.createItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *SupplierQuotationRepository) createItem(ctx context.Context, item *entity.SupplierQuotationItem) error {
	query := `
		INSERT INTO supplier_quotation_items (
			quotation_id, item_code, qty, rate, amount, request_for_quotation
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.QuotationID,
		item.ItemCode,
		item.Qty,
		item.Rate,
		item.Amount,
		item.RequestForQuotation,
	)
	if err != nil {
		r.logger.Error("Failed to create quotation item", zap.Error(err))
		return fmt.Errorf("failed to create quotation item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

// GetByName retrieves a quotation and its items by document name
func (r *SupplierQuotationRepository) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	query := `
		SELECT id, name, supplier, company, currency, base_grand_total,
			status, docstatus, valid_till, created_at, updated_at
		FROM supplier_quotations
		WHERE name = ?
	`

	var quotation entity.SupplierQuotation
	var validTill sql.NullTime

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&quotation.ID,
		&quotation.Name,
		&quotation.Supplier,
		&quotation.Company,
		&quotation.Currency,
		&quotation.BaseGrandTotal,
		&quotation.Status,
		&quotation.DocStatus,
		&validTill,
		&quotation.CreatedAt,
		&quotation.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get quotation", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	if validTill.Valid {
		quotation.ValidTill = &validTill.Time
	}

	items, err := r.itemsForQuotation(ctx, quotation.ID)
	if err != nil {
		return nil, err
	}
	quotation.Items = items

	return &quotation, nil
}

func (r *SupplierQuotationRepository) itemsForQuotation(ctx context.Context, quotationID int64) ([]*entity.SupplierQuotationItem, error) {
	query := `
		SELECT id, quotation_id, item_code, qty, rate, amount, request_for_quotation
		FROM supplier_quotation_items
		WHERE quotation_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SupplierQuotationItem
	for rows.Next() {
		var item entity.SupplierQuotationItem
		if err := rows.Scan(
			&item.ID,
			&item.QuotationID,
			&item.ItemCode,
			&item.Qty,
			&item.Rate,
			&item.Amount,
			&item.RequestForQuotation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List retrieves a page of quotations, newest first
func (r *SupplierQuotationRepository) List(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error) {
	clause, args, err := filterClause(opts.Filter)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, supplier, company, currency, base_grand_total,
			status, docstatus, valid_till, created_at, updated_at
		FROM supplier_quotations
		WHERE 1=1` + clause + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list quotations", zap.Error(err))
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var quotations []*entity.SupplierQuotation
	for rows.Next() {
		var quotation entity.SupplierQuotation
		var validTill sql.NullTime
		if err := rows.Scan(
			&quotation.ID,
			&quotation.Name,
			&quotation.Supplier,
			&quotation.Company,
			&quotation.Currency,
			&quotation.BaseGrandTotal,
			&quotation.Status,
			&quotation.DocStatus,
			&validTill,
			&quotation.CreatedAt,
			&quotation.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		if validTill.Valid {
			quotation.ValidTill = &validTill.Time
		}
		quotations = append(quotations, &quotation)
	}
	return quotations, rows.Err()
}

// UpdateStatus updates a quotation's status by document name
func (r *SupplierQuotationRepository) UpdateStatus(ctx context.Context, name string, status string) error {
	query := `
		UPDATE supplier_quotations
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, name)
	if err != nil {
		r.logger.Error("Failed to update quotation status",
			zap.String("name", name),
			zap.Error(err))
		return fmt.Errorf("failed to update quotation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("quotation not found: %s", name)
	}
	return nil
}
