package service

import (
	"context"
	"sync"

	"github.com/NamanGarg4/procurement/internal/application/dispatcher"
	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/event"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

// recordingDispatcher captures dispatched events for assertions
type recordingDispatcher struct {
	mu     sync.Mutex
	events []*event.Event
}

func (d *recordingDispatcher) Subscribe(eventType event.Type, name string, handler dispatcher.Handler) {
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	d.record(evt)
	return nil
}

func (d *recordingDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	d.record(evt)
}

func (d *recordingDispatcher) Close() error { return nil }

func (d *recordingDispatcher) record(evt *event.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, evt)
}

func (d *recordingDispatcher) typesSeen() []event.Type {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]event.Type, 0, len(d.events))
	for _, evt := range d.events {
		types = append(types, evt.Type)
	}
	return types
}

type mockQuotationRepo struct {
	createFunc       func(ctx context.Context, quotation *entity.SupplierQuotation) error
	getByNameFunc    func(ctx context.Context, name string) (*entity.SupplierQuotation, error)
	listFunc         func(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error)
	updateStatusFunc func(ctx context.Context, name string, status string) error
}

func (m *mockQuotationRepo) Create(ctx context.Context, quotation *entity.SupplierQuotation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, quotation)
	}
	return nil
}

func (m *mockQuotationRepo) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockQuotationRepo) List(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockQuotationRepo) UpdateStatus(ctx context.Context, name string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, name, status)
	}
	return nil
}

type mockOrderRepo struct {
	createFunc                func(ctx context.Context, order *entity.PurchaseOrder) error
	getByNameFunc             func(ctx context.Context, name string) (*entity.PurchaseOrder, error)
	listFunc                  func(ctx context.Context, opts port.ListOptions) ([]*entity.PurchaseOrder, error)
	updateStatusFunc          func(ctx context.Context, name string, status string, docStatus int) error
	updatePercentReceivedFunc func(ctx context.Context, name string, perReceived float64) error
	countReferencingFunc      func(ctx context.Context, quotationName, excludeOrder string) (int, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderRepo) GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockOrderRepo) List(ctx context.Context, opts port.ListOptions) ([]*entity.PurchaseOrder, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, name string, status string, docStatus int) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, name, status, docStatus)
	}
	return nil
}

func (m *mockOrderRepo) UpdatePercentReceived(ctx context.Context, name string, perReceived float64) error {
	if m.updatePercentReceivedFunc != nil {
		return m.updatePercentReceivedFunc(ctx, name, perReceived)
	}
	return nil
}

func (m *mockOrderRepo) CountSubmittedReferencingQuotation(ctx context.Context, quotationName, excludeOrder string) (int, error) {
	if m.countReferencingFunc != nil {
		return m.countReferencingFunc(ctx, quotationName, excludeOrder)
	}
	return 0, nil
}

type mockRFQRepo struct {
	createFunc             func(ctx context.Context, rfq *entity.RequestForQuotation) error
	getByNameFunc          func(ctx context.Context, name string) (*entity.RequestForQuotation, error)
	updateStatusFunc       func(ctx context.Context, name string, status string) error
	countSubmittedFunc     func(ctx context.Context, rfqName string) (int, error)
}

func (m *mockRFQRepo) Create(ctx context.Context, rfq *entity.RequestForQuotation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, rfq)
	}
	return nil
}

func (m *mockRFQRepo) GetByName(ctx context.Context, name string) (*entity.RequestForQuotation, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockRFQRepo) UpdateStatus(ctx context.Context, name string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, name, status)
	}
	return nil
}

func (m *mockRFQRepo) CountSubmittedQuotations(ctx context.Context, rfqName string) (int, error) {
	if m.countSubmittedFunc != nil {
		return m.countSubmittedFunc(ctx, rfqName)
	}
	return 0, nil
}
