package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/NamanGarg4/procurement/internal/application/dispatcher"
	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/event"
	"github.com/NamanGarg4/procurement/internal/domain/workflow"
)

// ErrQuotationNotFound is returned when the named supplier quotation does not exist
var ErrQuotationNotFound = errors.New("supplier quotation not found")

// QuotationService manages supplier quotations
type QuotationService interface {
	// Create stores a new draft quotation, generating a name when absent
	Create(ctx context.Context, quotation *entity.SupplierQuotation) error

	// GetByName returns the quotation with its items
	GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error)

	// List returns a page of quotations, optionally narrowed by a quick filter
	List(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error)

	// Submit submits a draft quotation
	Submit(ctx context.Context, name string) error

	// Reject marks a submitted quotation as rejected. Rejected quotations
	// appear as "Lost" in the list view.
	Reject(ctx context.Context, name string) error

	// Expire marks a submitted quotation as expired
	Expire(ctx context.Context, name string) error
}

type quotationService struct {
	quotationRepo port.SupplierQuotationRepository
	events        dispatcher.Dispatcher
	logger        Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotationRepo port.SupplierQuotationRepository,
	events dispatcher.Dispatcher,
	logger Logger,
) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		events:        events,
		logger:        logger,
	}
}

// Create stores a new draft quotation
func (s *quotationService) Create(ctx context.Context, quotation *entity.SupplierQuotation) error {
	if quotation.Name == "" {
		quotation.Name = NewDocumentName("PUR-SQTN")
	}
	if quotation.Status == "" {
		quotation.Status = entity.QuotationStatusDraft
	}
	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return fmt.Errorf("create quotation: %w", err)
	}

	s.logger.Info("Supplier quotation created",
		"quotation", quotation.Name,
		"supplier", quotation.Supplier)
	return nil
}

// GetByName returns the quotation with its items
func (s *quotationService) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	quotation, err := s.quotationRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if quotation == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuotationNotFound, name)
	}
	return quotation, nil
}

// List returns a page of quotations
func (s *quotationService) List(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error) {
	quotations, err := s.quotationRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	return quotations, nil
}

// Submit submits a draft quotation
func (s *quotationService) Submit(ctx context.Context, name string) error {
	return s.transition(ctx, name, workflow.TriggerSubmit)
}

// Reject marks a submitted quotation as rejected
func (s *quotationService) Reject(ctx context.Context, name string) error {
	return s.transition(ctx, name, workflow.TriggerReject)
}

// Expire marks a submitted quotation as expired
func (s *quotationService) Expire(ctx context.Context, name string) error {
	return s.transition(ctx, name, workflow.TriggerExpire)
}

func (s *quotationService) transition(ctx context.Context, name string, trigger workflow.Trigger) error {
	quotation, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}

	machine := workflow.ForSupplierQuotation(workflow.State(quotation.Status))
	if err := machine.Fire(ctx, trigger); err != nil {
		return fmt.Errorf("quotation %s: %w", name, err)
	}

	newStatus := machine.State().String()
	if err := s.quotationRepo.UpdateStatus(ctx, name, newStatus); err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}

	s.logger.Info("Supplier quotation status updated",
		"quotation", name,
		"old_status", quotation.Status,
		"new_status", newStatus)
	s.events.DispatchAsync(ctx, event.StatusChanged(entity.DoctypeSupplierQuotation, name, quotation.Status, newStatus))

	return nil
}
