package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NamanGarg4/procurement/internal/application/port"
	"github.com/NamanGarg4/procurement/internal/application/service"
	"github.com/NamanGarg4/procurement/internal/domain/entity"
	"github.com/NamanGarg4/procurement/internal/domain/listview"
	"github.com/NamanGarg4/procurement/internal/export"
)

// doctypeSlugs maps URL path slugs to registered document type names
var doctypeSlugs = map[string]string{
	"supplier-quotation": entity.DoctypeSupplierQuotation,
	"purchase-order":     entity.DoctypePurchaseOrder,
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	listViewService  service.ListViewService
	quotationService service.QuotationService
	orderService     service.OrderService
	exporter         *export.ExcelExporter
	config           ServerConfig
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	listViewService service.ListViewService,
	quotationService service.QuotationService,
	orderService service.OrderService,
	exporter *export.ExcelExporter,
	config ServerConfig,
	logger Logger,
) *Handlers {
	return &Handlers{
		listViewService:  listViewService,
		quotationService: quotationService,
		orderService:     orderService,
		exporter:         exporter,
		config:           config,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRequest represents query parameters for list views. The filter triple
// mirrors the indicator quick filter.
type ListRequest struct {
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	FilterField    string `form:"filter_field"`
	FilterOperator string `form:"filter_operator"`
	FilterValue    string `form:"filter_value"`
}

// CloseOrdersRequest is the body for bulk close/unclose
type CloseOrdersRequest struct {
	Names  []string `json:"names" binding:"required"`
	Status string   `json:"status" binding:"required"`
}

// UpdateStatusRequest is the body for a status update
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// listOptions binds and normalizes list query parameters
func (h *Handlers) listOptions(c *gin.Context) (port.ListOptions, bool) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return port.ListOptions{}, false
	}

	if req.Limit <= 0 || req.Limit > h.config.MaxPageSize {
		req.Limit = h.config.DefaultPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	opts := port.ListOptions{Limit: req.Limit, Offset: req.Offset}
	if req.FilterField != "" {
		operator := req.FilterOperator
		if operator == "" {
			operator = "="
		}
		opts.Filter = &listview.Filter{
			Field:    req.FilterField,
			Operator: operator,
			Value:    req.FilterValue,
		}
	}
	return opts, true
}

// resolveDoctype translates the URL slug to the registered doctype name
func (h *Handlers) resolveDoctype(c *gin.Context) (string, bool) {
	slug := c.Param("doctype")
	doctype, ok := doctypeSlugs[slug]
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   fmt.Sprintf("unknown doctype: %s", slug),
		})
		return "", false
	}
	return doctype, true
}

// ListView handles GET /api/list/:doctype
func (h *Handlers) ListView(c *gin.Context) {
	doctype, ok := h.resolveDoctype(c)
	if !ok {
		return
	}
	opts, ok := h.listOptions(c)
	if !ok {
		return
	}

	page, err := h.listViewService.List(c.Request.Context(), doctype, opts)
	if err != nil {
		h.logger.Error("Failed to render list view", "doctype", doctype, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load list",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: page})
}

// ExportListView handles GET /api/list/:doctype/export
func (h *Handlers) ExportListView(c *gin.Context) {
	doctype, ok := h.resolveDoctype(c)
	if !ok {
		return
	}
	opts, ok := h.listOptions(c)
	if !ok {
		return
	}

	page, err := h.listViewService.List(c.Request.Context(), doctype, opts)
	if err != nil {
		h.logger.Error("Failed to export list view", "doctype", doctype, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export list",
		})
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(page, &buf); err != nil {
		h.logger.Error("Failed to write workbook", "doctype", doctype, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export list",
		})
		return
	}

	filename := fmt.Sprintf("%s.xlsx", c.Param("doctype"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CreateQuotation handles POST /api/supplier-quotations
func (h *Handlers) CreateQuotation(c *gin.Context) {
	var quotation entity.SupplierQuotation
	if err := c.ShouldBindJSON(&quotation); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.quotationService.Create(c.Request.Context(), &quotation); err != nil {
		h.logger.Error("Failed to create quotation", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create quotation",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: quotation})
}

// GetQuotation handles GET /api/supplier-quotations/:name
func (h *Handlers) GetQuotation(c *gin.Context) {
	quotation, err := h.quotationService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrQuotationNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "quotation not found",
			})
			return
		}
		h.logger.Error("Failed to get quotation", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get quotation",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: quotation})
}

// SubmitQuotation handles POST /api/supplier-quotations/:name/submit
func (h *Handlers) SubmitQuotation(c *gin.Context) {
	h.quotationTransition(c, h.quotationService.Submit)
}

// RejectQuotation handles POST /api/supplier-quotations/:name/reject
func (h *Handlers) RejectQuotation(c *gin.Context) {
	h.quotationTransition(c, h.quotationService.Reject)
}

// ExpireQuotation handles POST /api/supplier-quotations/:name/expire
func (h *Handlers) ExpireQuotation(c *gin.Context) {
	h.quotationTransition(c, h.quotationService.Expire)
}

func (h *Handlers) quotationTransition(c *gin.Context, fn func(ctx context.Context, name string) error) {
	name := c.Param("name")
	if err := fn(c.Request.Context(), name); err != nil {
		if errors.Is(err, service.ErrQuotationNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "quotation not found",
			})
			return
		}
		h.logger.Error("Quotation transition failed", "quotation", name, "error", err)
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// CreateOrder handles POST /api/purchase-orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	var order entity.PurchaseOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.orderService.Create(c.Request.Context(), &order); err != nil {
		h.logger.Error("Failed to create order", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: order})
}

// GetOrder handles GET /api/purchase-orders/:name
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "order not found",
			})
			return
		}
		h.logger.Error("Failed to get order", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to get order",
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: order})
}

// SubmitOrder handles POST /api/purchase-orders/:name/submit
func (h *Handlers) SubmitOrder(c *gin.Context) {
	name := c.Param("name")
	order, err := h.orderService.SubmitOrder(c.Request.Context(), name)
	if err != nil {
		h.orderError(c, name, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: order})
}

// CancelOrder handles POST /api/purchase-orders/:name/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	name := c.Param("name")
	order, err := h.orderService.CancelOrder(c.Request.Context(), name)
	if err != nil {
		h.orderError(c, name, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: order})
}

// UpdateOrderStatus handles PUT /api/purchase-orders/:name/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	name := c.Param("name")
	order, err := h.orderService.UpdateStatus(c.Request.Context(), name, req.Status)
	if err != nil {
		h.orderError(c, name, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: order})
}

// CloseOrUncloseOrders handles POST /api/purchase-orders/close
func (h *Handlers) CloseOrUncloseOrders(c *gin.Context) {
	var req CloseOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if err := h.orderService.CloseOrUncloseOrders(c.Request.Context(), req.Names, req.Status); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		h.logger.Error("Failed to close/unclose orders", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update orders",
		})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// orderError maps order service errors to HTTP responses
func (h *Handlers) orderError(c *gin.Context, name string, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "order not found",
		})
	case errors.Is(err, service.ErrNotSubmittable),
		errors.Is(err, service.ErrNotSubmitted),
		errors.Is(err, service.ErrMinimumOrderQty):
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		h.logger.Error("Order operation failed", "order", name, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "order operation failed",
		})
	}
}
