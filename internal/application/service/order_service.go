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

var (
	// ErrOrderNotFound is returned when the named purchase order does not exist
	ErrOrderNotFound = errors.New("purchase order not found")

	// ErrNotSubmittable is returned when an operation requires a draft order
	ErrNotSubmittable = errors.New("order is not in draft state")

	// ErrNotSubmitted is returned when an operation requires a submitted order
	ErrNotSubmitted = errors.New("order is not submitted")

	// ErrMinimumOrderQty is returned when an item's ordered quantity is below
	// the minimum defined for it
	ErrMinimumOrderQty = errors.New("ordered qty below minimum order qty")
)

// OrderService manages the purchase order lifecycle: submission with the
// "Ordered" status cascade onto linked supplier quotations and RFQs,
// cancellation with the reverse cascade, and close/reopen handling.
type OrderService interface {
	// Create stores a new draft order, generating a name when absent
	Create(ctx context.Context, order *entity.PurchaseOrder) error

	// GetByName returns the order with its items
	GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error)

	// SubmitOrder validates and submits a draft order, then flips every
	// linked supplier quotation and RFQ to "Ordered".
	SubmitOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error)

	// CancelOrder cancels a submitted order and reverts the statuses of the
	// quotations and RFQs it had flipped, recomputing RFQ status from the
	// quotations that remain submitted.
	CancelOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error)

	// CloseOrUncloseOrders closes the named submitted orders, or reopens
	// them when status is anything other than "Closed". Orders that do not
	// qualify are skipped, not failed.
	CloseOrUncloseOrders(ctx context.Context, names []string, status string) error

	// UpdateStatus moves an order to the target status when the transition
	// is permitted by the order workflow.
	UpdateStatus(ctx context.Context, name string, status string) (*entity.PurchaseOrder, error)

	// UpdateReceivingPercentage recomputes per_received from item quantities
	UpdateReceivingPercentage(ctx context.Context, name string) (float64, error)
}

type orderService struct {
	orderRepo     port.PurchaseOrderRepository
	quotationRepo port.SupplierQuotationRepository
	rfqRepo       port.RFQRepository
	events        dispatcher.Dispatcher
	logger        Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo port.PurchaseOrderRepository,
	quotationRepo port.SupplierQuotationRepository,
	rfqRepo port.RFQRepository,
	events dispatcher.Dispatcher,
	logger Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		quotationRepo: quotationRepo,
		rfqRepo:       rfqRepo,
		events:        events,
		logger:        logger,
	}
}

// Create stores a new draft order
func (s *orderService) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if order.Name == "" {
		order.Name = NewDocumentName("PUR-ORD")
	}
	if order.Status == "" {
		order.Status = entity.OrderStatusDraft
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("Purchase order created",
		"order", order.Name,
		"supplier", order.Supplier)
	return nil
}

// GetByName returns the order with its items
func (s *orderService) GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, name)
	}
	return order, nil
}

// SubmitOrder validates and submits a draft order, then runs the Ordered cascade
func (s *orderService) SubmitOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	order, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if order.DocStatus != entity.DocStatusDraft {
		return nil, fmt.Errorf("%w: %s", ErrNotSubmittable, name)
	}

	if err := validateMinimumOrderQty(order); err != nil {
		return nil, err
	}

	machine := workflow.ForPurchaseOrder(workflow.State(order.Status), order.PerReceived, order.PerBilled)
	if err := machine.Fire(ctx, workflow.TriggerSubmit); err != nil {
		return nil, fmt.Errorf("submit order %s: %w", name, err)
	}

	newStatus := machine.State().String()
	if err := s.orderRepo.UpdateStatus(ctx, name, newStatus, entity.DocStatusSubmitted); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = newStatus
	order.DocStatus = entity.DocStatusSubmitted

	if err := s.markSourcesOrdered(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order submitted",
		"order", name,
		"status", newStatus)
	s.events.DispatchAsync(ctx, event.NewEvent(event.TypeOrderSubmitted, entity.DoctypePurchaseOrder, name, nil))

	return order, nil
}

// markSourcesOrdered flips linked supplier quotations and their RFQs to "Ordered"
func (s *orderService) markSourcesOrdered(ctx context.Context, order *entity.PurchaseOrder) error {
	for _, quotationName := range order.QuotationNames() {
		quotation, err := s.quotationRepo.GetByName(ctx, quotationName)
		if err != nil {
			return fmt.Errorf("get quotation %s: %w", quotationName, err)
		}
		if quotation == nil {
			s.logger.Error("Linked quotation missing",
				"order", order.Name,
				"quotation", quotationName)
			continue
		}

		for _, rfqName := range rfqNames(quotation) {
			rfq, err := s.rfqRepo.GetByName(ctx, rfqName)
			if err != nil {
				return fmt.Errorf("get rfq %s: %w", rfqName, err)
			}
			if rfq == nil || !rfq.AwaitingQuotations() {
				continue
			}
			if err := s.rfqRepo.UpdateStatus(ctx, rfqName, entity.RFQStatusOrdered); err != nil {
				return fmt.Errorf("update rfq %s: %w", rfqName, err)
			}
			s.logger.Info("RFQ status updated to Ordered", "rfq", rfqName)
			s.events.DispatchAsync(ctx, event.StatusChanged(entity.DoctypeRequestForQuotation, rfqName, rfq.Status, entity.RFQStatusOrdered))
		}

		if quotation.Status != entity.QuotationStatusOrdered {
			if err := s.quotationRepo.UpdateStatus(ctx, quotationName, entity.QuotationStatusOrdered); err != nil {
				return fmt.Errorf("update quotation %s: %w", quotationName, err)
			}
			s.logger.Info("Supplier quotation status updated to Ordered", "quotation", quotationName)
			s.events.DispatchAsync(ctx, event.NewEvent(event.TypeQuotationOrdered, entity.DoctypeSupplierQuotation, quotationName, map[string]interface{}{
				"order": order.Name,
			}))
		}
	}
	return nil
}

// CancelOrder cancels a submitted order and reverses the Ordered cascade
func (s *orderService) CancelOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	order, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !order.IsSubmitted() {
		return nil, fmt.Errorf("%w: %s", ErrNotSubmitted, name)
	}

	if err := s.orderRepo.UpdateStatus(ctx, name, entity.OrderStatusCancelled, entity.DocStatusCancelled); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = entity.OrderStatusCancelled
	order.DocStatus = entity.DocStatusCancelled

	if err := s.revertSources(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order cancelled", "order", name)
	s.events.DispatchAsync(ctx, event.NewEvent(event.TypeOrderCancelled, entity.DoctypePurchaseOrder, name, nil))

	return order, nil
}

// revertSources recomputes RFQ statuses from the quotations that remain
// submitted and reverts quotations no other submitted order references.
func (s *orderService) revertSources(ctx context.Context, order *entity.PurchaseOrder) error {
	for _, quotationName := range order.QuotationNames() {
		quotation, err := s.quotationRepo.GetByName(ctx, quotationName)
		if err != nil {
			return fmt.Errorf("get quotation %s: %w", quotationName, err)
		}
		if quotation == nil {
			continue
		}

		for _, rfqName := range rfqNames(quotation) {
			rfq, err := s.rfqRepo.GetByName(ctx, rfqName)
			if err != nil {
				return fmt.Errorf("get rfq %s: %w", rfqName, err)
			}
			if rfq == nil {
				continue
			}

			submitted, err := s.rfqRepo.CountSubmittedQuotations(ctx, rfqName)
			if err != nil {
				return fmt.Errorf("count submitted quotations for %s: %w", rfqName, err)
			}

			newStatus := entity.RFQStatusSubmitted
			switch {
			case submitted == 0:
				newStatus = entity.RFQStatusSubmitted
			case submitted < len(rfq.Suppliers):
				newStatus = entity.RFQStatusPartiallyReceived
			default:
				newStatus = entity.RFQStatusReceived
			}

			if rfq.Status != newStatus {
				if err := s.rfqRepo.UpdateStatus(ctx, rfqName, newStatus); err != nil {
					return fmt.Errorf("update rfq %s: %w", rfqName, err)
				}
				s.logger.Info("RFQ status reverted after cancellation",
					"rfq", rfqName,
					"status", newStatus)
				s.events.DispatchAsync(ctx, event.StatusChanged(entity.DoctypeRequestForQuotation, rfqName, rfq.Status, newStatus))
			}
		}

		otherOrders, err := s.orderRepo.CountSubmittedReferencingQuotation(ctx, quotationName, order.Name)
		if err != nil {
			return fmt.Errorf("count orders referencing %s: %w", quotationName, err)
		}
		if otherOrders == 0 && quotation.Status == entity.QuotationStatusOrdered {
			if err := s.quotationRepo.UpdateStatus(ctx, quotationName, entity.QuotationStatusSubmitted); err != nil {
				return fmt.Errorf("update quotation %s: %w", quotationName, err)
			}
			s.logger.Info("Supplier quotation reverted to Submitted after cancellation",
				"quotation", quotationName)
			s.events.DispatchAsync(ctx, event.NewEvent(event.TypeQuotationReverted, entity.DoctypeSupplierQuotation, quotationName, map[string]interface{}{
				"order": order.Name,
			}))
		}
	}
	return nil
}

// CloseOrUncloseOrders closes or reopens the named orders
func (s *orderService) CloseOrUncloseOrders(ctx context.Context, names []string, status string) error {
	for _, name := range names {
		order, err := s.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if !order.IsSubmitted() {
			continue
		}

		if status == entity.OrderStatusClosed {
			if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusClosed {
				continue
			}
			if order.PerReceived >= 100 && order.PerBilled >= 100 {
				continue
			}
			if err := s.orderRepo.UpdateStatus(ctx, name, entity.OrderStatusClosed, order.DocStatus); err != nil {
				return fmt.Errorf("close order %s: %w", name, err)
			}
			s.logger.Info("Purchase order closed", "order", name)
			s.events.DispatchAsync(ctx, event.NewEvent(event.TypeOrderClosed, entity.DoctypePurchaseOrder, name, nil))
			continue
		}

		if order.Status == entity.OrderStatusClosed {
			reopened := statusFromFulfillment(order)
			if err := s.orderRepo.UpdateStatus(ctx, name, reopened, order.DocStatus); err != nil {
				return fmt.Errorf("reopen order %s: %w", name, err)
			}
			s.logger.Info("Purchase order reopened",
				"order", name,
				"status", reopened)
			s.events.DispatchAsync(ctx, event.NewEvent(event.TypeOrderReopened, entity.DoctypePurchaseOrder, name, nil))
		}
	}
	return nil
}

// UpdateStatus moves an order to the target status via the order workflow
func (s *orderService) UpdateStatus(ctx context.Context, name string, status string) (*entity.PurchaseOrder, error) {
	order, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	target := workflow.State(status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %s", workflow.ErrInvalidState, status)
	}

	machine := workflow.ForPurchaseOrder(workflow.State(order.Status), order.PerReceived, order.PerBilled)
	if err := fireTowards(ctx, machine, target); err != nil {
		return nil, fmt.Errorf("order %s: %w", name, err)
	}

	docStatus := order.DocStatus
	if target == workflow.StateCancelled {
		docStatus = entity.DocStatusCancelled
	}
	if err := s.orderRepo.UpdateStatus(ctx, name, status, docStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.logger.Info("Purchase order status updated",
		"order", name,
		"old_status", order.Status,
		"new_status", status)
	s.events.DispatchAsync(ctx, event.StatusChanged(entity.DoctypePurchaseOrder, name, order.Status, status))

	order.Status = status
	order.DocStatus = docStatus
	return order, nil
}

// UpdateReceivingPercentage recomputes per_received from item quantities
func (s *orderService) UpdateReceivingPercentage(ctx context.Context, name string) (float64, error) {
	order, err := s.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}

	var totalQty, receivedQty float64
	for _, item := range order.Items {
		totalQty += item.Qty
		receivedQty += item.ReceivedQty
	}

	perReceived := 0.0
	if totalQty > 0 {
		perReceived = receivedQty / totalQty * 100
	}

	if err := s.orderRepo.UpdatePercentReceived(ctx, name, perReceived); err != nil {
		return 0, fmt.Errorf("update per_received: %w", err)
	}
	return perReceived, nil
}

// validateMinimumOrderQty aggregates ordered quantities per item code and
// rejects the order when any falls below that item's minimum order qty.
func validateMinimumOrderQty(order *entity.PurchaseOrder) error {
	totals := make(map[string]float64)
	minimums := make(map[string]float64)
	for _, item := range order.Items {
		totals[item.ItemCode] += item.StockQty
		if item.MinOrderQty > minimums[item.ItemCode] {
			minimums[item.ItemCode] = item.MinOrderQty
		}
	}
	for code, qty := range totals {
		if min := minimums[code]; qty < min {
			return fmt.Errorf("%w: item %s ordered %.2f, minimum %.2f", ErrMinimumOrderQty, code, qty, min)
		}
	}
	return nil
}

// rfqNames returns the distinct RFQ names referenced by a quotation's items
func rfqNames(q *entity.SupplierQuotation) []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range q.Items {
		if item.RequestForQuotation != "" && !seen[item.RequestForQuotation] {
			seen[item.RequestForQuotation] = true
			names = append(names, item.RequestForQuotation)
		}
	}
	return names
}

// statusFromFulfillment derives a reopened order's status from its
// fulfillment percentages.
func statusFromFulfillment(order *entity.PurchaseOrder) string {
	switch {
	case order.PerReceived >= 100 && order.PerBilled >= 100:
		return entity.OrderStatusCompleted
	case order.PerReceived >= 100:
		return entity.OrderStatusToBill
	case order.PerBilled >= 100:
		return entity.OrderStatusToReceive
	default:
		return entity.OrderStatusToReceiveAndBill
	}
}

// fireTowards fires the first permitted trigger whose transition lands on the
// target state.
func fireTowards(ctx context.Context, machine workflow.StateMachine, target workflow.State) error {
	candidates := map[workflow.State][]workflow.Trigger{
		workflow.StateToReceiveAndBill: {workflow.TriggerSubmit, workflow.TriggerResume, workflow.TriggerReopen},
		workflow.StateToBill:           {workflow.TriggerReceive},
		workflow.StateToReceive:        {workflow.TriggerBill},
		workflow.StateCompleted:        {workflow.TriggerComplete, workflow.TriggerBill, workflow.TriggerReceive},
		workflow.StateOnHold:           {workflow.TriggerHold},
		workflow.StateClosed:           {workflow.TriggerClose},
		workflow.StateCancelled:        {workflow.TriggerCancel},
	}

	for _, trigger := range candidates[target] {
		if !machine.CanFire(trigger) {
			continue
		}
		if err := machine.Fire(ctx, trigger); err != nil {
			return err
		}
		if machine.State() == target {
			return nil
		}
		return fmt.Errorf("%w: %s does not lead to %s", workflow.ErrInvalidTransition, trigger, target)
	}
	return fmt.Errorf("%w: no transition to %s", workflow.ErrInvalidTransition, target)
}
