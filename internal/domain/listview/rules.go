package listview

import (
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/i18n"
)

func init() {
	Register(entity.DoctypeSupplierQuotation, Settings{
		AddFields:    []string{"supplier", "base_grand_total", "status", "company", "currency"},
		GetIndicator: supplierQuotationIndicator,
	})

	Register(entity.DoctypePurchaseOrder, Settings{
		AddFields:    []string{"supplier", "base_grand_total", "status", "company", "currency", "per_received", "per_billed"},
		GetIndicator: purchaseOrderIndicator,
	})
}

// supplierQuotationIndicator maps supplier quotation statuses to list badges.
// Rejected quotations surface as "Lost", and the quick filter carries that
// label rather than the stored status value.
func supplierQuotationIndicator(doc StatusHolder, tr i18n.Translator) (Indicator, bool) {
	switch doc.GetStatus() {
	case entity.QuotationStatusOrdered:
		return Indicator{
			Label:  tr.T("Ordered"),
			Color:  ColorPurple,
			Filter: Filter{Field: "status", Operator: "=", Value: "Ordered"},
		}, true
	case entity.QuotationStatusRejected:
		return Indicator{
			Label:  tr.T("Lost"),
			Color:  ColorDarkgrey,
			Filter: Filter{Field: "status", Operator: "=", Value: "Lost"},
		}, true
	default:
		return Indicator{}, false
	}
}

var purchaseOrderColors = map[string]Color{
	entity.OrderStatusDraft:            ColorRed,
	entity.OrderStatusOnHold:           ColorOrange,
	entity.OrderStatusToReceiveAndBill: ColorOrange,
	entity.OrderStatusToBill:           ColorOrange,
	entity.OrderStatusToReceive:        ColorOrange,
	entity.OrderStatusCompleted:        ColorGreen,
	entity.OrderStatusCancelled:        ColorRed,
	entity.OrderStatusClosed:           ColorDarkgrey,
}

// purchaseOrderIndicator maps every purchase order status to a badge whose
// filter matches the stored status value.
func purchaseOrderIndicator(doc StatusHolder, tr i18n.Translator) (Indicator, bool) {
	status := doc.GetStatus()
	color, ok := purchaseOrderColors[status]
	if !ok {
		return Indicator{}, false
	}
	return Indicator{
		Label:  tr.T(status),
		Color:  color,
		Filter: Filter{Field: "status", Operator: "=", Value: status},
	}, true
}
