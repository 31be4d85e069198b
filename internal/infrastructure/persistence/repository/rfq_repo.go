package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
)

// RFQRepository implements port.RFQRepository
type RFQRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRFQRepository creates a new RFQ repository
func NewRFQRepository(db *sql.DB, logger *zap.Logger) port.RFQRepository {
	return &RFQRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an RFQ and its invited suppliers
func (r *RFQRepository) Create(ctx context.Context, rfq *entity.RequestForQuotation) error {
	query := `
		INSERT INTO rfqs (name, company, status, docstatus)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rfq.Name,
		rfq.Company,
		rfq.Status,
		rfq.DocStatus,
	)
	if err != nil {
		r.logger.Error("Failed to create RFQ", zap.Error(err))
		return fmt.Errorf("failed to create rfq: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rfq.ID = id

	for _, supplier := range rfq.Suppliers {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO rfq_suppliers (rfq_id, supplier) VALUES (?, ?)",
			id, supplier,
		); err != nil {
			r.logger.Error("Failed to add RFQ supplier", zap.Error(err))
			return fmt.Errorf("failed to add rfq supplier: %w", err)
		}
	}

	return nil
}

// GetByName retrieves an RFQ and its invited suppliers by document name
func (r *RFQRepository) GetByName(ctx context.Context, name string) (*entity.RequestForQuotation, error) {
	query := `
		SELECT id, name, company, status, docstatus, created_at, updated_at
		FROM rfqs
		WHERE name = ?
	`

	var rfq entity.RequestForQuotation
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&rfq.ID,
		&rfq.Name,
		&rfq.Company,
		&rfq.Status,
		&rfq.DocStatus,
		&rfq.CreatedAt,
		&rfq.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get RFQ", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get rfq: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT supplier FROM rfq_suppliers WHERE rfq_id = ? ORDER BY id", rfq.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rfq suppliers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var supplier string
		if err := rows.Scan(&supplier); err != nil {
			return nil, fmt.Errorf("failed to scan rfq supplier: %w", err)
		}
		rfq.Suppliers = append(rfq.Suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rfq, nil
}

// UpdateStatus updates an RFQ's status by document name
func (r *RFQRepository) UpdateStatus(ctx context.Context, name string, status string) error {
	query := `
		UPDATE rfqs
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, name)
	if err != nil {
		r.logger.Error("Failed to update RFQ status",
			zap.String("name", name),
			zap.Error(err))
		return fmt.Errorf("failed to update rfq status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rfq not found: %s", name)
	}
	return nil
}

// CountSubmittedQuotations counts distinct suppliers with a submitted
// quotation answering the RFQ
func (r *RFQRepository) CountSubmittedQuotations(ctx context.Context, rfqName string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT sq.supplier)
		FROM supplier_quotations sq
		INNER JOIN supplier_quotation_items sqi ON sqi.quotation_id = sq.id
		WHERE sqi.request_for_quotation = ?
			AND sq.docstatus = 1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, rfqName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count submitted quotations: %w", err)
	}
	return count, nil
}
