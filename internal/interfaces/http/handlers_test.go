package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/application/service"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/listview"
	"github.com/NamanGarg4/procurement/internal/export"
)

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockListViewService struct {
	listFunc func(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error)
}

func (m *mockListViewService) List(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error) {
	return m.listFunc(ctx, doctype, opts)
}

type mockQuotationService struct {
	createFunc    func(ctx context.Context, quotation *entity.SupplierQuotation) error
	getByNameFunc func(ctx context.Context, name string) (*entity.SupplierQuotation, error)
	listFunc      func(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error)
	submitFunc    func(ctx context.Context, name string) error
	rejectFunc    func(ctx context.Context, name string) error
	expireFunc    func(ctx context.Context, name string) error
}

func (m *mockQuotationService) Create(ctx context.Context, quotation *entity.SupplierQuotation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, quotation)
	}
	return nil
}

func (m *mockQuotationService) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrQuotationNotFound, name)
}

func (m *mockQuotationService) List(ctx context.Context, opts port.ListOptions) ([]*entity.SupplierQuotation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockQuotationService) Submit(ctx context.Context, name string) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, name)
	}
	return nil
}

func (m *mockQuotationService) Reject(ctx context.Context, name string) error {
	if m.rejectFunc != nil {
		return m.rejectFunc(ctx, name)
	}
	return nil
}

func (m *mockQuotationService) Expire(ctx context.Context, name string) error {
	if m.expireFunc != nil {
		return m.expireFunc(ctx, name)
	}
	return nil
}

type mockOrderService struct {
	createFunc       func(ctx context.Context, order *entity.PurchaseOrder) error
	getByNameFunc    func(ctx context.Context, name string) (*entity.PurchaseOrder, error)
	submitFunc       func(ctx context.Context, name string) (*entity.PurchaseOrder, error)
	cancelFunc       func(ctx context.Context, name string) (*entity.PurchaseOrder, error)
	closeFunc        func(ctx context.Context, names []string, status string) error
	updateStatusFunc func(ctx context.Context, name string, status string) (*entity.PurchaseOrder, error)
	updatePercFunc   func(ctx context.Context, name string) (float64, error)
}

func (m *mockOrderService) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderService) GetByName(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrOrderNotFound, name)
}

func (m *mockOrderService) SubmitOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrOrderNotFound, name)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrOrderNotFound, name)
}

func (m *mockOrderService) CloseOrUncloseOrders(ctx context.Context, names []string, status string) error {
	if m.closeFunc != nil {
		return m.closeFunc(ctx, names, status)
	}
	return nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, name string, status string) (*entity.PurchaseOrder, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, name, status)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrOrderNotFound, name)
}

func (m *mockOrderService) UpdateReceivingPercentage(ctx context.Context, name string) (float64, error) {
	if m.updatePercFunc != nil {
		return m.updatePercFunc(ctx, name)
	}
	return 0, nil
}

func newTestServer(listView service.ListViewService, quotations service.QuotationService, orders service.OrderService) *Server {
	if listView == nil {
		listView = &mockListViewService{
			listFunc: func(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error) {
				return &service.ListPage{Doctype: doctype}, nil
			},
		}
	}
	if quotations == nil {
		quotations = &mockQuotationService{}
	}
	if orders == nil {
		orders = &mockOrderService{}
	}
	return NewServer(DefaultServerConfig(), listView, quotations, orders, export.NewExcelExporter(zap.NewNop()), testLogger{})
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(nil, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestListView(t *testing.T) {
	var gotDoctype string
	var gotOpts port.ListOptions
	listView := &mockListViewService{
		listFunc: func(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error) {
			gotDoctype = doctype
			gotOpts = opts
			return &service.ListPage{
				Doctype:   doctype,
				AddFields: []string{"supplier", "base_grand_total", "status", "company", "currency"},
				Rows: []*service.ListRow{
					{
						Name:   "PUR-SQTN-1",
						Fields: map[string]interface{}{"supplier": "ACME Industries", "status": "Ordered"},
						Indicator: &listview.Indicator{
							Label:  "Ordered",
							Color:  listview.ColorPurple,
							Filter: listview.Filter{Field: "status", Operator: "=", Value: "Ordered"},
						},
					},
				},
			}, nil
		},
	}
	server := newTestServer(listView, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/api/list/supplier-quotation?limit=5&filter_field=status&filter_value=Ordered", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, entity.DoctypeSupplierQuotation, gotDoctype)
	assert.Equal(t, 5, gotOpts.Limit)
	require.NotNil(t, gotOpts.Filter)
	assert.Equal(t, "=", gotOpts.Filter.Operator, "operator defaults to equality")
	assert.Equal(t, "Ordered", gotOpts.Filter.Value)

	body := rec.Body.String()
	assert.Contains(t, body, `"add_fields":["supplier","base_grand_total","status","company","currency"]`)
	assert.Contains(t, body, `"color":"purple"`)
}

func TestListView_UnknownDoctype(t *testing.T) {
	server := newTestServer(nil, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/api/list/sales-invoice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListView_LimitNormalized(t *testing.T) {
	var gotOpts port.ListOptions
	listView := &mockListViewService{
		listFunc: func(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error) {
			gotOpts = opts
			return &service.ListPage{Doctype: doctype}, nil
		},
	}
	server := newTestServer(listView, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/api/list/purchase-order?limit=9999&offset=-3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultServerConfig().DefaultPageSize, gotOpts.Limit)
	assert.Equal(t, 0, gotOpts.Offset)
}

func TestExportListView(t *testing.T) {
	listView := &mockListViewService{
		listFunc: func(ctx context.Context, doctype string, opts port.ListOptions) (*service.ListPage, error) {
			return &service.ListPage{
				Doctype:   doctype,
				AddFields: []string{"supplier", "status"},
				Rows: []*service.ListRow{
					{Name: "PUR-SQTN-1", Fields: map[string]interface{}{"supplier": "Globex", "status": "Draft"}},
				},
			}, nil
		},
	}
	server := newTestServer(listView, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/api/list/supplier-quotation/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "supplier-quotation.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestCreateQuotation(t *testing.T) {
	quotations := &mockQuotationService{
		createFunc: func(ctx context.Context, quotation *entity.SupplierQuotation) error {
			quotation.Name = "PUR-SQTN-new"
			return nil
		},
	}
	server := newTestServer(nil, quotations, nil)

	rec := doRequest(t, server, http.MethodPost, "/api/supplier-quotations", map[string]interface{}{
		"supplier": "ACME Industries",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "PUR-SQTN-new")
}

func TestGetQuotation_NotFound(t *testing.T) {
	server := newTestServer(nil, nil, nil)

	rec := doRequest(t, server, http.MethodGet, "/api/supplier-quotations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectQuotation(t *testing.T) {
	var rejected string
	quotations := &mockQuotationService{
		rejectFunc: func(ctx context.Context, name string) error {
			rejected = name
			return nil
		},
	}
	server := newTestServer(nil, quotations, nil)

	rec := doRequest(t, server, http.MethodPost, "/api/supplier-quotations/PUR-SQTN-1/reject", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PUR-SQTN-1", rejected)
}

func TestSubmitOrder_Conflict(t *testing.T) {
	orders := &mockOrderService{
		submitFunc: func(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
			return nil, fmt.Errorf("%w: item WIDGET ordered 2.00, minimum 5.00", service.ErrMinimumOrderQty)
		},
	}
	server := newTestServer(nil, nil, orders)

	rec := doRequest(t, server, http.MethodPost, "/api/purchase-orders/PUR-ORD-1/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "minimum")
}

func TestSubmitOrder(t *testing.T) {
	orders := &mockOrderService{
		submitFunc: func(ctx context.Context, name string) (*entity.PurchaseOrder, error) {
			return &entity.PurchaseOrder{
				Name:      name,
				Status:    entity.OrderStatusToReceiveAndBill,
				DocStatus: entity.DocStatusSubmitted,
			}, nil
		},
	}
	server := newTestServer(nil, nil, orders)

	rec := doRequest(t, server, http.MethodPost, "/api/purchase-orders/PUR-ORD-1/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "To Receive and Bill")
}

func TestUpdateOrderStatus_BadBody(t *testing.T) {
	server := newTestServer(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/purchase-orders/PUR-ORD-1/status", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseOrders(t *testing.T) {
	var gotNames []string
	var gotStatus string
	orders := &mockOrderService{
		closeFunc: func(ctx context.Context, names []string, status string) error {
			gotNames = names
			gotStatus = status
			return nil
		},
	}
	server := newTestServer(nil, nil, orders)

	rec := doRequest(t, server, http.MethodPost, "/api/purchase-orders/close", map[string]interface{}{
		"names":  []string{"PUR-ORD-1", "PUR-ORD-2"},
		"status": "Closed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"PUR-ORD-1", "PUR-ORD-2"}, gotNames)
	assert.Equal(t, "Closed", gotStatus)
}
