package listview

import (
	"testing"

	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/i18n"
)

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(entity.DoctypeSupplierQuotation, Settings{})
}

func TestRegister_EmptyDoctypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty doctype")
		}
	}()
	Register("", Settings{})
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("No Such Doctype"); ok {
		t.Error("expected no settings for unknown doctype")
	}
}

func TestDoctypes_Sorted(t *testing.T) {
	names := Doctypes()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 registered doctypes, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("doctypes not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestResolve(t *testing.T) {
	doc := &entity.SupplierQuotation{Status: entity.QuotationStatusOrdered}

	indicator, ok := Resolve(entity.DoctypeSupplierQuotation, doc, i18n.Noop{})
	if !ok {
		t.Fatal("expected an indicator")
	}
	if indicator.Color != ColorPurple {
		t.Errorf("Color = %q, want %q", indicator.Color, ColorPurple)
	}

	if _, ok := Resolve("No Such Doctype", doc, i18n.Noop{}); ok {
		t.Error("expected no indicator for unknown doctype")
	}
}
