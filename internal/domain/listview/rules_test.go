package listview

import (
	"reflect"
	"testing"

	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/i18n"
)

func TestSupplierQuotationIndicator_Ordered(t *testing.T) {
	doc := &entity.SupplierQuotation{Status: "Ordered"}

	indicator, ok := supplierQuotationIndicator(doc, i18n.Noop{})
	if !ok {
		t.Fatal("expected an indicator for Ordered status")
	}
	if indicator.Label != "Ordered" {
		t.Errorf("Label = %q, want %q", indicator.Label, "Ordered")
	}
	if indicator.Color != ColorPurple {
		t.Errorf("Color = %q, want %q", indicator.Color, ColorPurple)
	}
	want := Filter{Field: "status", Operator: "=", Value: "Ordered"}
	if indicator.Filter != want {
		t.Errorf("Filter = %+v, want %+v", indicator.Filter, want)
	}
}

func TestSupplierQuotationIndicator_RejectedShowsLost(t *testing.T) {
	doc := &entity.SupplierQuotation{Status: "Rejected"}

	indicator, ok := supplierQuotationIndicator(doc, i18n.Noop{})
	if !ok {
		t.Fatal("expected an indicator for Rejected status")
	}
	if indicator.Label != "Lost" {
		t.Errorf("Label = %q, want %q", indicator.Label, "Lost")
	}
	if indicator.Color != ColorDarkgrey {
		t.Errorf("Color = %q, want %q", indicator.Color, ColorDarkgrey)
	}
	// The filter carries the display label "Lost", not the stored status
	want := Filter{Field: "status", Operator: "=", Value: "Lost"}
	if indicator.Filter != want {
		t.Errorf("Filter = %+v, want %+v", indicator.Filter, want)
	}
}

func TestSupplierQuotationIndicator_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{"draft", "Draft"},
		{"submitted", "Submitted"},
		{"expired", "Expired"},
		{"cancelled", "Cancelled"},
		{"empty", ""},
		{"unknown", "Bananas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &entity.SupplierQuotation{Status: tt.status}
			if _, ok := supplierQuotationIndicator(doc, i18n.Noop{}); ok {
				t.Errorf("expected no indicator for status %q", tt.status)
			}
		})
	}
}

func TestSupplierQuotationIndicator_Idempotent(t *testing.T) {
	doc := &entity.SupplierQuotation{Status: "Rejected"}

	first, ok1 := supplierQuotationIndicator(doc, i18n.Noop{})
	second, ok2 := supplierQuotationIndicator(doc, i18n.Noop{})

	if ok1 != ok2 || first != second {
		t.Errorf("resolver not idempotent: first=%+v second=%+v", first, second)
	}
	if doc.Status != "Rejected" {
		t.Error("resolver mutated the record")
	}
}

func TestSupplierQuotationIndicator_Localized(t *testing.T) {
	catalog := i18n.NewCatalog("de", map[string]string{"Lost": "Verloren"})
	doc := &entity.SupplierQuotation{Status: "Rejected"}

	indicator, ok := supplierQuotationIndicator(doc, catalog)
	if !ok {
		t.Fatal("expected an indicator")
	}
	if indicator.Label != "Verloren" {
		t.Errorf("Label = %q, want %q", indicator.Label, "Verloren")
	}
	// Localization applies to the label only; the filter stays stable
	if indicator.Filter.Value != "Lost" {
		t.Errorf("Filter.Value = %q, want %q", indicator.Filter.Value, "Lost")
	}
}

func TestSupplierQuotationSettings_AddFields(t *testing.T) {
	settings, ok := Lookup(entity.DoctypeSupplierQuotation)
	if !ok {
		t.Fatal("supplier quotation settings not registered")
	}

	want := []string{"supplier", "base_grand_total", "status", "company", "currency"}
	if !reflect.DeepEqual(settings.AddFields, want) {
		t.Errorf("AddFields = %v, want %v", settings.AddFields, want)
	}
}

func TestPurchaseOrderIndicator(t *testing.T) {
	tests := []struct {
		status    string
		wantColor Color
		wantOK    bool
	}{
		{"Draft", ColorRed, true},
		{"On Hold", ColorOrange, true},
		{"To Receive and Bill", ColorOrange, true},
		{"To Bill", ColorOrange, true},
		{"To Receive", ColorOrange, true},
		{"Completed", ColorGreen, true},
		{"Cancelled", ColorRed, true},
		{"Closed", ColorDarkgrey, true},
		{"", Color(""), false},
		{"Unknown", Color(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			doc := &entity.PurchaseOrder{Status: tt.status}
			indicator, ok := purchaseOrderIndicator(doc, i18n.Noop{})
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if indicator.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", indicator.Color, tt.wantColor)
			}
			if indicator.Filter.Value != tt.status {
				t.Errorf("Filter.Value = %q, want %q", indicator.Filter.Value, tt.status)
			}
		})
	}
}
