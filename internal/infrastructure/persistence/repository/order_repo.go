package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
)

// PurchaseOrderRepository implements port.PurchaseOrderRepository
type PurchaseOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *sql.DB, logger *zap.Logger) port.PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an order and its items
func (r *PurchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (
			name, supplier, company, currency, base_grand_total, status,
			docstatus, per_received, per_billed, schedule_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.Name,
		order.Supplier,
		order.Company,
		order.Currency,
		order.BaseGrandTotal,
		order.Status,
		order.DocStatus,
		order.PerReceived,
		order.PerBilled,
		order.ScheduleDate,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	order.ID = id

	for _, item := range order.Items {
		item.OrderID = id
		if err := r.createItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *PurchaseOrderRepository) createItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (
			order_id, item_code, qty, stock_qty, rate, amount, received_qty,
			billed_amt, min_order_qty, supplier_quotation, supplier_quotation_item
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		item.OrderID,
		item.ItemCode,
		item.Qty,
		item.StockQty,
		item.Rate,
		item.Amount,
		item.ReceivedQty,
		item.BilledAmt,
		item.MinOrderQty,
		item.SupplierQuotation,
		item.SupplierQuotationItem,
	)
	if err != nil {
		r.logger.Error("Failed to create order item", zap.Error(err))
		return fmt.Errorf("failed to create order item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

// GetByName retrieves an order and its items by document name
func (r *PurchaseOrderRepository) GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, name, supplier, company, currency, base_grand_total, status,
			docstatus, per_received, per_billed, schedule_date, created_at, updated_at
		FROM purchase_orders
		WHERE name = ?
	`

	var order entity.PurchaseOrder
	var scheduleDate sql.NullTime

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&order.ID,
		&order.Name,
		&order.Supplier,
		&order.Company,
		&order.Currency,
		&order.BaseGrandTotal,
		&order.Status,
		&order.DocStatus,
		&order.PerReceived,
		&order.PerBilled,
		&scheduleDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if scheduleDate.Valid {
		order.ScheduleDate = &scheduleDate.Time
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *PurchaseOrderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, item_code, qty, stock_qty, rate, amount, received_qty,
			billed_amt, min_order_qty, supplier_quotation, supplier_quotation_item
		FROM purchase_order_items
		WHERE order_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ItemCode,
			&item.Qty,
			&item.StockQty,
			&item.Rate,
			&item.Amount,
			&item.ReceivedQty,
			&item.BilledAmt,
			&item.MinOrderQty,
			&item.SupplierQuotation,
			&item.SupplierQuotationItem,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List retrieves a page of orders, newest first
func (r *PurchaseOrderRepository) List(ctx context.Context, opts port.ListOptions) ([]*entity.PurchaseOrder, error) {
	clause, args, err := filterClause(opts.Filter)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, supplier, company, currency, base_grand_total, status,
			docstatus, per_received, per_billed, schedule_date, created_at, updated_at
		FROM purchase_orders
		WHERE 1=1` + clause + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var order entity.PurchaseOrder
		var scheduleDate sql.NullTime
		if err := rows.Scan(
			&order.ID,
			&order.Name,
			&order.Supplier,
			&order.Company,
			&order.Currency,
			&order.BaseGrandTotal,
			&order.Status,
			&order.DocStatus,
			&order.PerReceived,
			&order.PerBilled,
			&scheduleDate,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if scheduleDate.Valid {
			order.ScheduleDate = &scheduleDate.Time
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// UpdateStatus updates an order's status and docstatus by document name
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, name string, status string, docStatus int) error {
	query := `
		UPDATE purchase_orders
		SET status = ?, docstatus = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, docStatus, name)
	if err != nil {
		r.logger.Error("Failed to update order status",
			zap.String("name", name),
			zap.Error(err))
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found: %s", name)
	}
	return nil
}

// UpdatePercentReceived updates an order's received percentage
func (r *PurchaseOrderRepository) UpdatePercentReceived(ctx context.Context, name string, perReceived float64) error {
	query := `
		UPDATE purchase_orders
		SET per_received = ?
		WHERE name = ?
	`

	if _, err := r.db.ExecContext(ctx, query, perReceived, name); err != nil {
		r.logger.Error("Failed to update per_received",
			zap.String("name", name),
			zap.Error(err))
		return fmt.Errorf("failed to update per_received: %w", err)
	}
	return nil
}

// CountSubmittedReferencingQuotation counts submitted orders other than
// excludeOrder with at least one item sourced from the quotation
func (r *PurchaseOrderRepository) CountSubmittedReferencingQuotation(ctx context.Context, quotationName, excludeOrder string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT po.id)
		FROM purchase_orders po
		INNER JOIN purchase_order_items poi ON poi.order_id = po.id
		WHERE poi.supplier_quotation = ?
			AND po.docstatus = 1
			AND po.name != ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, quotationName, excludeOrder).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders referencing quotation: %w", err)
	}
	return count, nil
}
