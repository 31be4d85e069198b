package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/event"
)

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

func TestDispatch_CallsHandlersInOrder(t *testing.T) {
	d := NewDispatcher(testLogger{})

	var order []string
	d.Subscribe(event.TypeStatusChanged, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(event.TypeStatusChanged, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second")
		return nil
	})

	evt := event.StatusChanged(entity.DoctypeSupplierQuotation, "PUR-SQTN-1", "Submitted", "Ordered")
	if err := d.Dispatch(context.Background(), evt); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handlers ran in order %v, want [first second]", order)
	}
}

func TestDispatch_HandlerErrorStopsChain(t *testing.T) {
	d := NewDispatcher(testLogger{})

	wantErr := errors.New("boom")
	secondRan := false
	d.Subscribe(event.TypeOrderSubmitted, "failing", func(ctx context.Context, evt *event.Event) error {
		return wantErr
	})
	d.Subscribe(event.TypeOrderSubmitted, "after", func(ctx context.Context, evt *event.Event) error {
		secondRan = true
		return nil
	})

	evt := event.NewEvent(event.TypeOrderSubmitted, entity.DoctypePurchaseOrder, "PUR-ORD-1", nil)
	err := d.Dispatch(context.Background(), evt)
	if !errors.Is(err, wantErr) {
		t.Errorf("Dispatch error = %v, want %v", err, wantErr)
	}
	if secondRan {
		t.Error("second handler ran after the first failed")
	}
}

func TestDispatch_PanicRecovered(t *testing.T) {
	d := NewDispatcher(testLogger{})

	d.Subscribe(event.TypeOrderCancelled, "panicking", func(ctx context.Context, evt *event.Event) error {
		panic("unexpected")
	})

	evt := event.NewEvent(event.TypeOrderCancelled, entity.DoctypePurchaseOrder, "PUR-ORD-1", nil)
	if err := d.Dispatch(context.Background(), evt); err == nil {
		t.Error("expected an error from a panicking handler")
	}
}

func TestDispatchAsync_CloseWaits(t *testing.T) {
	d := NewDispatcher(testLogger{})

	var calls atomic.Int32
	d.Subscribe(event.TypeOrderClosed, "counter", func(ctx context.Context, evt *event.Event) error {
		calls.Add(1)
		return nil
	})

	for i := 0; i < 5; i++ {
		d.DispatchAsync(context.Background(), event.NewEvent(event.TypeOrderClosed, entity.DoctypePurchaseOrder, "PUR-ORD-1", nil))
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if got := calls.Load(); got != 5 {
		t.Errorf("handler ran %d times, want 5", got)
	}
}

func TestDispatch_AfterCloseFails(t *testing.T) {
	d := NewDispatcher(testLogger{})
	if err := d.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	evt := event.NewEvent(event.TypeStatusChanged, entity.DoctypeSupplierQuotation, "PUR-SQTN-1", nil)
	if err := d.Dispatch(context.Background(), evt); err == nil {
		t.Error("expected an error after Close")
	}
}
