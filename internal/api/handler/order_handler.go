package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mukesh-on-github/Zyrokart/internal/api/dto"
	"github.com/mukesh-on-github/Zyrokart/internal/model"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/service"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary create order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderDTO true "items, shipping address and payment method"
// @Success 201 {object} api.Response{data=model.Order} "created"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	info := util.GetUserInfoFromContext(r.Context())

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orderService.CreateOrder(r.Context(), info.UID, service.CreateOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		Notes:           req.Notes,
	})
	if err != nil {
		api.ErrorJSON(w, "failed to create order", err)
		return
	}
	api.CreatedJSON(w, "order placed", order)
}

// @Summary list my orders
// @Tags orders
// @Produce json
// @Success 200 {object} api.Response{data=[]model.Order} "success"
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	orders, err := h.orderService.ListOrders(r.Context(), info.UID)
	if err != nil {
		api.ErrorJSON(w, "failed to list orders", err)
		return
	}
	api.ListJSON(w, len(orders), int64(len(orders)), orders)
}

// @Summary get order
// @Tags orders
// @Produce json
// @Param orderId path string true "order number"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /orders/{orderId} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	order, err := h.orderService.GetOrder(r.Context(), info.UID, chi.URLParam(r, "orderId"))
	if err != nil {
		api.ErrorJSON(w, "failed to get order", err)
		return
	}
	api.SuccessJSON(w, "", order)
}

// @Summary cancel order
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "order number"
// @Param body body dto.CancelOrderDTO false "cancellation reason"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /orders/{orderId}/cancel [put]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelOrderDTO
	// body可以為空
	_ = json.NewDecoder(r.Body).Decode(&req)

	info := util.GetUserInfoFromContext(r.Context())

	order, err := h.orderService.CancelOrder(r.Context(), info.UID, chi.URLParam(r, "orderId"), req.Reason)
	if err != nil {
		api.ErrorJSON(w, "failed to cancel order", err)
		return
	}
	api.SuccessJSON(w, "order cancelled", order)
}

// @Summary get order tracking
// @Tags orders
// @Produce json
// @Param orderId path string true "order number"
// @Success 200 {object} api.Response{data=model.TrackingInfo} "success"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Router /orders/{orderId}/tracking [get]
func (h *OrderHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	info := util.GetUserInfoFromContext(r.Context())

	tracking, err := h.orderService.GetTracking(r.Context(), info.UID, chi.URLParam(r, "orderId"))
	if err != nil {
		api.ErrorJSON(w, "failed to get tracking", err)
		return
	}
	api.SuccessJSON(w, "", tracking)
}

// @Summary list all orders (admin)
// @Tags admin
// @Produce json
// @Param status query string false "filter by status"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} api.Response{data=[]model.Order} "success"
// @Router /admin/orders [get]
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, total, err := h.orderService.ListAllOrders(r.Context(), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		api.ErrorJSON(w, "failed to list orders", err)
		return
	}
	api.ListJSON(w, len(orders), total, orders)
}

// @Summary update order status (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param orderId path string true "order number"
// @Param body body dto.UpdateOrderStatusDTO true "new status"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 400 {object} api.Response "BadRequestCode"
// @Router /admin/orders/{orderId}/status [put]
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		api.ErrorJSON(w, "failed to update order status", err)
		return
	}
	api.SuccessJSON(w, "order status updated", order)
}

// @Summary update supplier info (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param orderId path string true "order number"
// @Param body body dto.UpdateSupplierDTO true "supplier order info"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Router /admin/orders/{orderId}/supplier [put]
func (h *OrderHandler) UpdateSupplierInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSupplierDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, "invalid request body", apperr.New(apperr.BadRequestCode, "invalid request body"))
		return
	}

	order, err := h.orderService.UpdateSupplierInfo(r.Context(), chi.URLParam(r, "orderId"),
		req.SupplierOrderID, req.SupplierStatus)
	if err != nil {
		api.ErrorJSON(w, "failed to update supplier info", err)
		return
	}
	api.SuccessJSON(w, "supplier info updated", order)
}
